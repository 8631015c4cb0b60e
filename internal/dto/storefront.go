package dto

import (
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type ProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	Price            float64  `json:"price" binding:"gte=0"`
	DiscountPrice    *float64 `json:"discount_price" binding:"omitempty,gte=0"`
	CategoryID       string   `json:"category_id"`
	Category         string   `json:"category"`
	Images           []string `json:"images"`
	Sizes            []string `json:"sizes"`
	Colors           []string `json:"colors"`
	CareInstructions string   `json:"care_instructions"`
	StockQuantity    int      `json:"stock_quantity" binding:"gte=0"`
	Featured         bool     `json:"featured"`
}

type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type WishlistItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type ReviewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type CouponValidateRequest struct {
	Code string `json:"code" binding:"required"`
}

type CouponValidateResponse struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}

type CouponRequest struct {
	Code            string    `json:"code" binding:"required"`
	DiscountPercent float64   `json:"discount_percent" binding:"gt=0,lte=100"`
	ExpiryDate      time.Time `json:"expiry_date" binding:"required"`
	Active          *bool     `json:"active"`
}

type OrderItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserID          string                 `json:"user_id"`
	CustomerName    string                 `json:"customer_name"`
	CustomerEmail   string                 `json:"customer_email"`
	CustomerPhone   string                 `json:"customer_phone"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	CouponCode      string                 `json:"coupon_code"`
	Subtotal        float64                `json:"subtotal"`
	Discount        float64                `json:"discount"`
	Total           float64                `json:"total"`
}

// OrderCreatedResponse: заказ плюс данные для открытия окна оплаты Razorpay.
type OrderCreatedResponse struct {
	*models.Order
	RazorpayKeyID string `json:"razorpay_key_id"`
	AmountMinor   int64  `json:"amount_minor"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type VerifyPaymentResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Order   *models.Order `json:"order"`
}

type CreatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	// Amount игнорируется: сумма берётся из заказа.
	Amount float64 `json:"amount"`
}

type PaymentIntentResponse struct {
	RazorpayOrderID string `json:"razorpay_order_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyID           string `json:"key_id"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type RazorpayConfigResponse struct {
	KeyID string `json:"key_id"`
}
