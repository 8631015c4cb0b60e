package models

import "time"

type Category struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"image_url" json:"image_url"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID               string   `bson:"id" json:"id"`
	Name             string   `bson:"name" json:"name"`
	Slug             string   `bson:"slug" json:"slug"`
	Description      string   `bson:"description" json:"description"`
	Price            float64  `bson:"price" json:"price"`
	DiscountPrice    *float64 `bson:"discount_price,omitempty" json:"discount_price,omitempty"`
	CategoryID       string   `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Category         string   `bson:"category,omitempty" json:"category,omitempty"` // имя категории из первой ревизии схемы
	Images           []string `bson:"images" json:"images"`
	Sizes            []string `bson:"sizes" json:"sizes"`
	Colors           []string `bson:"colors" json:"colors"`
	CareInstructions string   `bson:"care_instructions,omitempty" json:"care_instructions,omitempty"`
	StockQuantity    int      `bson:"stock_quantity" json:"stock_quantity"`
	InStock          bool     `bson:"in_stock" json:"in_stock"`
	Featured         bool     `bson:"featured" json:"featured"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// EffectivePrice возвращает цену за единицу при оформлении заказа, со скидкой, если она задана.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}

type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type CartItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Size      string `bson:"size" json:"size"`
	Color     string `bson:"color" json:"color"`
}

// SameVariant сравнивает позиции по ключу варианта (товар, размер, цвет).
func (i CartItem) SameVariant(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Color == other.Color
}

type Cart struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	Version   int64      `bson:"version" json:"-"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type WishlistItem struct {
	ProductID string    `bson:"product_id" json:"product_id"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

type Wishlist struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"user_id" json:"user_id"`
	Items     []WishlistItem `bson:"items" json:"items"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

type Review struct {
	ID        string    `bson:"id" json:"id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Size        string  `bson:"size" json:"size"`
	Color       string  `bson:"color" json:"color"`
	Price       float64 `bson:"price" json:"price"`
}

type ShippingAddress struct {
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	AddressLine1 string `bson:"address_line1" json:"address_line1"`
	AddressLine2 string `bson:"address_line2,omitempty" json:"address_line2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	Pincode      string `bson:"pincode" json:"pincode"`
}

type Order struct {
	ID              string          `bson:"id" json:"id"`
	OrderNumber     string          `bson:"order_number" json:"order_number"`
	UserID          string          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CustomerName    string          `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	CustomerEmail   string          `bson:"customer_email,omitempty" json:"customer_email,omitempty"`
	CustomerPhone   string          `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	Items           []OrderItem     `bson:"items" json:"items"`
	Subtotal        float64         `bson:"subtotal" json:"subtotal"`
	Discount        float64         `bson:"discount" json:"discount"`
	Total           float64         `bson:"total" json:"total"`
	CouponCode      string          `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	Currency        string          `bson:"currency" json:"currency"`
	PaymentStatus   PaymentStatus   `bson:"payment_status" json:"payment_status"`
	OrderStatus     OrderStatus     `bson:"order_status" json:"order_status"`

	RazorpayOrderID   *string `bson:"razorpay_order_id" json:"razorpay_order_id"`
	RazorpayPaymentID *string `bson:"razorpay_payment_id" json:"razorpay_payment_id"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Coupon struct {
	ID              string    `bson:"id" json:"id"`
	Code            string    `bson:"code" json:"code"`
	DiscountPercent float64   `bson:"discount_percent" json:"discount_percent"`
	ExpiryDate      time.Time `bson:"expiry_date" json:"expiry_date"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
