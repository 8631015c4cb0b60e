package service_test

import (
	"context"
	"testing"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"go.uber.org/zap"
)

// Категория -> товар -> корзина -> заказ -> оплата на in-memory репозиториях.
func TestCheckoutFlow(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	categories := map[string]models.Category{}
	catRepo := &MockCategoryRepo{
		CreateFunc: func(ctx context.Context, c *models.Category) error {
			categories[c.ID] = *c
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*models.Category, error) {
			if c, ok := categories[id]; ok {
				return &c, nil
			}
			return nil, nil
		},
	}
	products := map[string]models.Product{}
	prodRepo := &MockProductRepo{
		CreateFunc: func(ctx context.Context, p *models.Product) error {
			products[p.ID] = *p
			return nil
		},
		BatchGetByIDsFunc: func(ctx context.Context, ids []string) ([]models.Product, error) {
			out := []models.Product{}
			for _, id := range ids {
				if p, ok := products[id]; ok {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}

	catalog := service.NewCatalogService(catRepo, prodRepo, nil, 0, log)
	cat, err := catalog.CreateCategory(ctx, service.CategoryInput{Name: "Daily", Slug: "daily"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	p, err := catalog.CreateProduct(ctx, service.ProductInput{
		Name: "Sandal", Slug: "sandal", Price: 500, StockQuantity: 10, CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if !p.InStock {
		t.Fatal("product with stock must be in stock")
	}

	carts := service.NewCartService(newMemCartRepo(), log)
	item := models.CartItem{ProductID: p.ID, Quantity: 2, Size: "7"}
	for i := 0; i < 2; i++ {
		if _, err := carts.AddToCart(ctx, "u1", item); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
	}
	cart, err := carts.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 4 {
		t.Fatalf("cart items = %+v", cart.Items)
	}

	orders := service.NewOrderService(newMemOrderRepo(), prodRepo, validCoupons(), &MockGateway{}, &MockBus{}, "INR", log)
	in := service.OrderInput{UserID: "u1", ShippingAddress: shipping()}
	for _, it := range cart.Items {
		in.Items = append(in.Items, service.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity, Size: it.Size, Color: it.Color})
	}
	created, err := orders.CreateOrder(ctx, in)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.Order.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("payment status = %q", created.Order.PaymentStatus)
	}
	if created.Order.Total != 2000 {
		t.Errorf("total = %v, want 2000", created.Order.Total)
	}

	paid, err := orders.VerifyPayment(ctx, created.Intent.ID, "pay_1", "good")
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if paid.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("payment status = %q", paid.PaymentStatus)
	}
}
