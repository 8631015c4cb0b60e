package service

import (
	"context"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
)

type WishlistService struct {
	wishlists WishlistRepo
	now       func() time.Time
}

func NewWishlistService(wishlists WishlistRepo) *WishlistService {
	return &WishlistService{wishlists: wishlists, now: time.Now}
}

func (s *WishlistService) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("user id is required")
	}
	return s.wishlists.GetOrCreate(ctx, userID)
}

// AddToWishlist идемпотентен: повторное добавление товара ничего не меняет.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, validationf("product_id is required")
	}
	if _, err := s.GetWishlist(ctx, userID); err != nil {
		return nil, err
	}
	item := models.WishlistItem{ProductID: productID, AddedAt: s.now().UTC()}
	if err := s.wishlists.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return s.wishlists.GetOrCreate(ctx, userID)
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	if _, err := s.GetWishlist(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.wishlists.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.wishlists.GetOrCreate(ctx, userID)
}
