package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/cache"
	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"go.uber.org/zap"
)

// memUsers: простой in-memory UserRepo поверх MockUserRepo.
func memUsers(users map[string]*models.User) *MockUserRepo {
	return &MockUserRepo{
		CreateFunc: func(ctx context.Context, u *models.User) error {
			users[u.ID] = u
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return users[id], nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, nil
		},
		GetByPhoneFunc: func(ctx context.Context, phone string) (*models.User, error) {
			for _, u := range users {
				if u.Phone == phone {
					return u, nil
				}
			}
			return nil, nil
		},
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			for _, u := range users {
				if u.Email == email {
					return true, nil
				}
			}
			return false, nil
		},
		CountAdminsFunc: func(ctx context.Context) (int64, error) {
			var n int64
			for _, u := range users {
				if u.IsAdmin {
					n++
				}
			}
			return n, nil
		},
	}
}

func newAuthService(users map[string]*models.User, opts service.AuthOptions) *service.AuthService {
	if opts.AccessTTL == 0 {
		opts.AccessTTL = time.Hour
	}
	return service.NewAuthService(memUsers(users), MockHasher{}, &MockTokenProvider{}, cache.NewMemoryCache(), opts, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	users := map[string]*models.User{}
	svc := newAuthService(users, service.AuthOptions{})
	ctx := context.Background()

	u, err := svc.Register(ctx, service.RegisterInput{Name: "Asha", Email: "Asha@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "asha@example.com" || u.IsAdmin {
		t.Fatalf("user = %+v", u)
	}

	if _, err := svc.Register(ctx, service.RegisterInput{Email: "asha@example.com", Password: "secret1"}); !errors.Is(err, service.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := svc.Register(ctx, service.RegisterInput{Email: "bad", Password: "secret1"}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Register(ctx, service.RegisterInput{Email: "x@example.com", Password: "123"}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	res, err := svc.Login(ctx, "asha@example.com", "secret1")
	if err != nil || res.Token == "" || res.User.ID != u.ID {
		t.Fatalf("Login: %v %+v", err, res)
	}
	if _, err := svc.Login(ctx, "asha@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost@example.com", "secret1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminLogin_RequiresExistingAdmin(t *testing.T) {
	users := map[string]*models.User{
		"a": {ID: "a", Email: "admin@example.com", PasswordHash: "hash:adminpw", IsAdmin: true},
		"c": {ID: "c", Email: "cust@example.com", PasswordHash: "hash:custpw"},
	}
	svc := newAuthService(users, service.AuthOptions{})
	ctx := context.Background()

	if _, err := svc.AdminLogin(ctx, "admin@example.com", "adminpw"); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "cust@example.com", "custpw"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("non-admin must be rejected, got %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "new@example.com", "whatever"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("unknown admin must not be created, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("admin login created users: %d", len(users))
	}
}

func TestCreateAdmin(t *testing.T) {
	users := map[string]*models.User{}
	svc := newAuthService(users, service.AuthOptions{BootstrapToken: "boot"})
	ctx := context.Background()
	in := service.RegisterInput{Name: "Root", Email: "root@example.com", Password: "rootpw1"}

	if _, err := svc.CreateAdmin(ctx, in, ""); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("anonymous without token: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, in, "wrong"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("wrong token: expected ErrForbidden, got %v", err)
	}

	u, err := svc.CreateAdmin(ctx, in, "boot")
	if err != nil || !u.IsAdmin {
		t.Fatalf("bootstrap CreateAdmin: %v %+v", err, u)
	}

	// bootstrap-токен работает только пока нет ни одного администратора
	second := service.RegisterInput{Email: "two@example.com", Password: "secret2"}
	if _, err := svc.CreateAdmin(ctx, second, "boot"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("second bootstrap: expected ErrForbidden, got %v", err)
	}

	adminCtx := service.WithClaims(ctx, &service.Claims{UserID: u.ID, IsAdmin: true})
	if _, err := svc.CreateAdmin(adminCtx, second, ""); err != nil {
		t.Fatalf("admin CreateAdmin: %v", err)
	}

	userCtx := service.WithClaims(ctx, &service.Claims{UserID: "x"})
	third := service.RegisterInput{Email: "three@example.com", Password: "secret3"}
	if _, err := svc.CreateAdmin(userCtx, third, ""); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("non-admin caller: expected ErrForbidden, got %v", err)
	}
}

func TestPhoneOTP_SingleUseAndRateLimit(t *testing.T) {
	users := map[string]*models.User{}
	svc := newAuthService(users, service.AuthOptions{OTPDebug: true, OTPCooldown: time.Minute})
	ctx := context.Background()
	phone := "+919876543210"

	ch, err := svc.RequestPhoneOTP(ctx, phone)
	if err != nil {
		t.Fatalf("RequestPhoneOTP: %v", err)
	}
	if len(ch.DebugCode) != 6 {
		t.Fatalf("debug code = %q", ch.DebugCode)
	}

	if _, err := svc.RequestPhoneOTP(ctx, phone); !errors.Is(err, service.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}

	res, err := svc.PhoneLogin(ctx, "Ravi", phone, ch.DebugCode)
	if err != nil {
		t.Fatalf("PhoneLogin: %v", err)
	}
	if res.User.Phone != phone || res.User.Name != "Ravi" {
		t.Fatalf("user = %+v", res.User)
	}

	if _, err := svc.PhoneLogin(ctx, "Ravi", phone, ch.DebugCode); !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("code must be single-use, got %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d", len(users))
	}
}

func TestPhoneOTP_WrongCodeAndExistingUser(t *testing.T) {
	phone := "9876543210"
	users := map[string]*models.User{
		"u1": {ID: "u1", Name: "Existing", Phone: phone},
	}
	svc := newAuthService(users, service.AuthOptions{OTPDebug: true})
	ctx := context.Background()

	if _, err := svc.RequestPhoneOTP(ctx, "12"); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	ch, err := svc.RequestPhoneOTP(ctx, phone)
	if err != nil {
		t.Fatalf("RequestPhoneOTP: %v", err)
	}
	if _, err := svc.PhoneLogin(ctx, "", phone, "000000x"); !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	// неверная попытка погашает код
	if _, err := svc.PhoneLogin(ctx, "", phone, ch.DebugCode); !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("code must be consumed by a failed attempt, got %v", err)
	}

	svc2 := newAuthService(users, service.AuthOptions{OTPDebug: true})
	ch2, _ := svc2.RequestPhoneOTP(ctx, phone)
	res, err := svc2.PhoneLogin(ctx, "", phone, ch2.DebugCode)
	if err != nil || res.User.ID != "u1" {
		t.Fatalf("existing user not reused: %v %+v", err, res)
	}
}

func TestMe(t *testing.T) {
	users := map[string]*models.User{"u1": {ID: "u1", Email: "a@example.com"}}
	tokens := &MockTokenProvider{
		ParseFunc: func(ctx context.Context, token string) (*service.Claims, error) {
			if token != "valid" {
				return nil, errors.New("bad token")
			}
			return &service.Claims{UserID: "u1"}, nil
		},
	}
	svc := service.NewAuthService(memUsers(users), MockHasher{}, tokens, cache.NewMemoryCache(), service.AuthOptions{}, zap.NewNop())
	ctx := context.Background()

	u, err := svc.Me(ctx, "valid")
	if err != nil || u.ID != "u1" {
		t.Fatalf("Me: %v %+v", err, u)
	}
	if _, err := svc.Me(ctx, "forged"); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.Me(ctx, ""); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
