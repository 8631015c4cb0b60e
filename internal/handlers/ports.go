package handlers

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*service.LoginResult, error)
	CreateAdmin(ctx context.Context, in service.RegisterInput, bootstrapToken string) (*models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
	RequestPhoneOTP(ctx context.Context, phone string) (*service.OTPChallenge, error)
	PhoneLogin(ctx context.Context, name, phone, code string) (*service.LoginResult, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, in service.CategoryInput) (*models.Category, error)
	ListProducts(ctx context.Context, f service.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, in service.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in service.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddToCart(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error)
	ReplaceCart(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID, size, color string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) (*models.Cart, error)
}

type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, in service.ReviewInput) (*models.Review, error)
	ListReviewsForProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, in service.OrderInput) (*service.CreatedOrder, error)
	VerifyPayment(ctx context.Context, intentID, paymentID, signature string) (*models.Order, error)
	CreatePaymentIntent(ctx context.Context, orderID string) (*models.Order, *service.PaymentIntent, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	KeyID() string
}

type CouponService interface {
	ValidateCoupon(ctx context.Context, code string) (*models.Coupon, error)
	CreateCoupon(ctx context.Context, in service.CouponInput) (*models.Coupon, error)
}
