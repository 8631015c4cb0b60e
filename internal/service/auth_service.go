package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/util"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type AuthService struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenProvider
	cache  CacheClient

	accessTTL      time.Duration
	otpTTL         time.Duration
	otpCooldown    time.Duration
	otpDebug       bool
	bootstrapToken string
	now            func() time.Time

	log *zap.Logger
}

type AuthOptions struct {
	AccessTTL      time.Duration
	OTPTTL         time.Duration
	OTPCooldown    time.Duration
	OTPDebug       bool
	BootstrapToken string
}

func NewAuthService(
	users UserRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	cache CacheClient,
	opts AuthOptions,
	log *zap.Logger,
) *AuthService {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 5 * time.Minute
	}
	if opts.OTPCooldown <= 0 {
		opts.OTPCooldown = time.Minute
	}
	return &AuthService{
		users:          users,
		hasher:         hasher,
		tokens:         tokens,
		cache:          cache,
		accessTTL:      opts.AccessTTL,
		otpTTL:         opts.OTPTTL,
		otpCooldown:    opts.OTPCooldown,
		otpDebug:       opts.OTPDebug,
		bootstrapToken: opts.BootstrapToken,
		now:            time.Now,
		log:            log,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type OTPChallenge struct {
	Phone     string
	ExpiresAt time.Time
	// DebugCode заполняется только при OTP_DEBUG=true.
	DebugCode string
}

// IssueToken подписывает токен доступа для пользователя.
func (s *AuthService) IssueToken(ctx context.Context, u *models.User) (*LoginResult, error) {
	token, exp, err := s.tokens.SignAccess(ctx, u.ID, u.Email, u.IsAdmin, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createUser(ctx, in, false)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, isAdmin bool) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationf("invalid email")
	}
	if len(in.Password) < 6 {
		return nil, validationf("password must be at least 6 characters")
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		return nil, validationf("invalid phone number")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.checkPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.IssueToken(ctx, u)
}

// AdminLogin принимает только существующих администраторов: встроенных учётных
// данных и создания администратора при первом входе нет.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.checkPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		s.log.Warn("non-admin attempted admin login", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	return s.IssueToken(ctx, u)
}

func (s *AuthService) checkPassword(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" || !s.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CreateAdmin создаёт администратора. Вызывающий должен быть администратором;
// единственное исключение: первый администратор, создаваемый по bootstrap-токену.
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput, bootstrapToken string) (*models.User, error) {
	if !IsAdminContext(ctx) {
		if s.bootstrapToken == "" || bootstrapToken == "" ||
			subtle.ConstantTimeCompare([]byte(s.bootstrapToken), []byte(bootstrapToken)) != 1 {
			return nil, ErrForbidden
		}
		n, err := s.users.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrForbidden
		}
	}

	u, err := s.createUser(ctx, in, true)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin account created", zap.String("user_id", u.ID), zap.String("email", u.Email))
	return u, nil
}

func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func otpKey(phone string) string      { return "otp:phone:" + phone }
func otpLimitKey(phone string) string { return "otp:limit:" + phone }

// RequestPhoneOTP выдаёт одноразовый код для входа по телефону.
func (s *AuthService) RequestPhoneOTP(ctx context.Context, phone string) (*OTPChallenge, error) {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, validationf("invalid phone number")
	}

	limited, err := s.cache.CheckRateLimit(ctx, otpLimitKey(phone))
	if err != nil {
		return nil, err
	}
	if limited {
		return nil, ErrTooManyRequests
	}

	code, err := nanorand.Gen(6)
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(code)

	if err := s.cache.Set(ctx, otpKey(phone), util.Sha256Base64URL(code), s.otpTTL); err != nil {
		return nil, err
	}
	if err := s.cache.SetRateLimit(ctx, otpLimitKey(phone), s.otpCooldown); err != nil {
		s.log.Warn("failed to set otp rate limit", zap.String("phone", phone), zap.Error(err))
	}

	// TODO: отправлять код через SMS-провайдера вместо лога
	s.log.Info("Код входа по телефону", zap.String("phone", phone), zap.String("code", code))

	ch := &OTPChallenge{Phone: phone, ExpiresAt: s.now().Add(s.otpTTL)}
	if s.otpDebug {
		ch.DebugCode = code
	}
	return ch, nil
}

// PhoneLogin проверяет и погашает код, затем находит пользователя по телефону
// или создаёт его при первом входе.
func (s *AuthService) PhoneLogin(ctx context.Context, name, phone, code string) (*LoginResult, error) {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, validationf("invalid phone number")
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidOTP
	}

	stored, err := s.cache.Take(ctx, otpKey(phone))
	if err != nil {
		return nil, err
	}
	given := util.Sha256Base64URL(strings.ToUpper(strings.TrimSpace(code)))
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(given)) != 1 {
		return nil, ErrInvalidOTP
	}

	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u, err = s.createPhoneUser(ctx, name, phone)
		if err != nil {
			return nil, err
		}
	}
	return s.IssueToken(ctx, u)
}

func (s *AuthService) createPhoneUser(ctx context.Context, name, phone string) (*models.User, error) {
	// пароль случайный: вход для таких пользователей возможен только по коду
	secret, err := nanorand.Gen(24)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Customer"
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimPrefix(phone, "+") + "@phone.local",
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// параллельный вход с тем же номером успел создать пользователя
			existing, gerr := s.users.GetByPhone(ctx, phone)
			if gerr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	s.log.Info("user registered by phone", zap.String("user_id", u.ID))
	return u, nil
}
