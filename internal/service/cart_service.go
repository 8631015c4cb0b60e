package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"

	"go.uber.org/zap"
)

const maxCartWriteAttempts = 3

type CartService struct {
	carts CartRepo
	now   func() time.Time
	log   *zap.Logger
}

func NewCartService(carts CartRepo, log *zap.Logger) *CartService {
	return &CartService{carts: carts, now: time.Now, log: log}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("user id is required")
	}
	return s.carts.GetOrCreate(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	if strings.TrimSpace(item.ProductID) == "" {
		return nil, validationf("product_id is required")
	}
	if item.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	return s.mutate(ctx, userID, func(c *models.Cart) {
		c.Items = MergeCartItem(c.Items, item)
	})
}

// ReplaceCart заменяет содержимое корзины целиком.
func (s *CartService) ReplaceCart(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, validationf("product_id is required")
		}
		if it.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
	}
	return s.mutate(ctx, userID, func(c *models.Cart) {
		c.Items = append([]models.CartItem{}, items...)
	})
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID, size, color string) (*models.Cart, error) {
	key := models.CartItem{ProductID: productID, Size: size, Color: color}
	return s.mutate(ctx, userID, func(c *models.Cart) {
		c.Items = RemoveCartItems(c.Items, key)
	})
}

func (s *CartService) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.mutate(ctx, userID, func(c *models.Cart) {
		c.Items = []models.CartItem{}
	})
}

// mutate выполняет read-modify-write с проверкой версии и повторяет цикл,
// если корзину успел изменить параллельный запрос.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(c *models.Cart)) (*models.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("user id is required")
	}
	for attempt := 1; attempt <= maxCartWriteAttempts; attempt++ {
		c, err := s.carts.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		fn(c)
		c.UpdatedAt = s.now().UTC()

		err = s.carts.Save(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		s.log.Debug("cart version conflict, retrying", zap.String("user_id", userID), zap.Int("attempt", attempt))
	}
	return nil, ErrCartContention
}
