package service

import (
	"context"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	Replace(ctx context.Context, p *models.Product) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	BatchGetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
}

type CartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, c *models.Cart) error
}

type WishlistRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error)
	AddItem(ctx context.Context, userID string, item models.WishlistItem) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

type ReviewRepo interface {
	Create(ctx context.Context, rv *models.Review) error
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
}

type CouponRepo interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID  string
	Email   string
	IsAdmin bool
	Exp     time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub, email string, isAdmin bool, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// CacheClient: Redis или его in-memory замена. Get/Take возвращают "" при промахе.
type CacheClient interface {
	SetRateLimit(ctx context.Context, key string, ttl time.Duration) error
	CheckRateLimit(ctx context.Context, key string) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Take(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type PaymentIntent struct {
	ID       string
	Amount   int64 // в минимальных единицах валюты (пайсы)
	Currency string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentIntent, error)
	// VerifySignature возвращает nil для подлинной подписи, ErrPaymentFailed для
	// поддельной и ErrGatewayUnavailable, если проверка невозможна.
	VerifySignature(ctx context.Context, intentID, paymentID, signature string) error
	KeyID() string
}

type CouponValidator interface {
	ValidateCoupon(ctx context.Context, code string) (*models.Coupon, error)
}
