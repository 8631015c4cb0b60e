package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/shopspring/decimal"
)

func TestWishlistService(t *testing.T) {
	svc := service.NewWishlistService(newMockWishlistRepo())
	ctx := context.Background()

	if _, err := svc.AddToWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	wl, err := svc.AddToWishlist(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if len(wl.Items) != 1 {
		t.Fatalf("add must be idempotent, items=%+v", wl.Items)
	}

	wl, err = svc.RemoveFromWishlist(ctx, "u1", "p1")
	if err != nil || len(wl.Items) != 0 {
		t.Fatalf("RemoveFromWishlist: %v %+v", err, wl)
	}
	if _, err := svc.AddToWishlist(ctx, "u1", ""); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWishlistService_RepeatedGetIsStable(t *testing.T) {
	svc := service.NewWishlistService(newMockWishlistRepo())
	ctx := context.Background()

	empty, err := svc.GetWishlist(ctx, "new-user")
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("first read must return an empty list, items=%#v", empty.Items)
	}

	if _, err := svc.AddToWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	first, err := svc.GetWishlist(ctx, "u1")
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	second, err := svc.GetWishlist(ctx, "u1")
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated GetWishlist differs:\n%+v\n%+v", first, second)
	}
}

func TestReviewService_Rating(t *testing.T) {
	var saved *models.Review
	svc := service.NewReviewService(&MockReviewRepo{
		CreateFunc: func(ctx context.Context, rv *models.Review) error {
			saved = rv
			return nil
		},
	})
	ctx := context.Background()

	for _, r := range []int{0, 6, -1} {
		if _, err := svc.CreateReview(ctx, service.ReviewInput{ProductID: "p1", Rating: r}); !errors.Is(err, service.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", r, err)
		}
	}
	if _, err := svc.CreateReview(ctx, service.ReviewInput{ProductID: "p1", UserName: "Ravi", Rating: 1}); err != nil {
		t.Fatalf("rating 1 must be accepted: %v", err)
	}
	rv, err := svc.CreateReview(ctx, service.ReviewInput{ProductID: "p1", UserName: " Asha ", Rating: 5, Comment: "comfy"})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if saved == nil || saved.ID != rv.ID || rv.UserName != "Asha" || rv.CreatedAt.IsZero() {
		t.Fatalf("review = %+v", rv)
	}
}

func TestCouponService(t *testing.T) {
	now := time.Now()
	coupons := map[string]models.Coupon{
		"SAVE10":  {Code: "SAVE10", DiscountPercent: 10, Active: true, ExpiryDate: now.Add(time.Hour)},
		"OFF":     {Code: "OFF", DiscountPercent: 10, Active: false, ExpiryDate: now.Add(time.Hour)},
		"EXPIRED": {Code: "EXPIRED", DiscountPercent: 10, Active: true, ExpiryDate: now.Add(-time.Hour)},
	}
	repo := &MockCouponRepo{
		GetByCodeFunc: func(ctx context.Context, code string) (*models.Coupon, error) {
			c, ok := coupons[code]
			if !ok {
				return nil, nil
			}
			return &c, nil
		},
		CreateFunc: func(ctx context.Context, c *models.Coupon) error {
			if _, ok := coupons[c.Code]; ok {
				return repository.ErrDuplicate
			}
			coupons[c.Code] = *c
			return nil
		},
	}
	svc := service.NewCouponService(repo)
	ctx := context.Background()

	if c, err := svc.ValidateCoupon(ctx, " save10 "); err != nil || c.DiscountPercent != 10 {
		t.Fatalf("ValidateCoupon: %v %+v", err, c)
	}
	if _, err := svc.ValidateCoupon(ctx, "OFF"); !errors.Is(err, service.ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}
	if _, err := svc.ValidateCoupon(ctx, "EXPIRED"); !errors.Is(err, service.ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
	if _, err := svc.ValidateCoupon(ctx, "NOPE"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	c, err := svc.CreateCoupon(ctx, service.CouponInput{Code: "new20", DiscountPercent: 20, ExpiryDate: now.Add(time.Hour), Active: true})
	if err != nil || c.Code != "NEW20" {
		t.Fatalf("CreateCoupon: %v %+v", err, c)
	}
	if _, err := svc.CreateCoupon(ctx, service.CouponInput{Code: "NEW20", DiscountPercent: 20, ExpiryDate: now}); !errors.Is(err, service.ErrCouponExists) {
		t.Fatalf("expected ErrCouponExists, got %v", err)
	}
	if _, err := svc.CreateCoupon(ctx, service.CouponInput{Code: "X", DiscountPercent: 120, ExpiryDate: now}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.CreateCoupon(ctx, service.CouponInput{Code: "X", DiscountPercent: 5}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error for missing expiry, got %v", err)
	}
}

func TestComputeTotals(t *testing.T) {
	items := []models.OrderItem{
		{Price: 0.1, Quantity: 3},
		{Price: 199.99, Quantity: 2},
	}
	totals := service.ComputeTotals(items, 15)

	if !totals.Subtotal.Equal(decimal.RequireFromString("400.28")) {
		t.Fatalf("subtotal = %s", totals.Subtotal)
	}
	if !totals.Discount.Equal(decimal.RequireFromString("60.04")) {
		t.Fatalf("discount = %s", totals.Discount)
	}
	if !totals.Total.Equal(decimal.RequireFromString("340.24")) {
		t.Fatalf("total = %s", totals.Total)
	}
	if got := service.ToMinorUnits(totals.Total); got != 34024 {
		t.Fatalf("minor units = %d", got)
	}

	full := service.ComputeTotals(items, 100)
	if !full.Total.IsZero() {
		t.Fatalf("100%% coupon total = %s", full.Total)
	}
	if none := service.ComputeTotals(nil, 0); !none.Total.IsZero() {
		t.Fatalf("empty total = %s", none.Total)
	}
}
