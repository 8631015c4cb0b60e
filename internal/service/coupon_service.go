package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"

	"github.com/google/uuid"
)

type CouponService struct {
	coupons CouponRepo
	now     func() time.Time
}

func NewCouponService(coupons CouponRepo) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

type CouponInput struct {
	Code            string
	DiscountPercent float64
	ExpiryDate      time.Time
	Active          bool
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCoupon не ведёт учёт погашений: один купон можно применять сколько угодно раз.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	c, err := s.coupons.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	if !c.Active {
		return nil, ErrCouponInactive
	}
	if c.ExpiryDate.Before(s.now()) {
		return nil, ErrCouponExpired
	}
	return c, nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	code := normalizeCode(in.Code)
	if code == "" {
		return nil, validationf("coupon code is required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return nil, validationf("discount_percent must be in (0, 100]")
	}
	if in.ExpiryDate.IsZero() {
		return nil, validationf("expiry_date is required")
	}

	c := &models.Coupon{
		ID:              uuid.NewString(),
		Code:            code,
		DiscountPercent: in.DiscountPercent,
		ExpiryDate:      in.ExpiryDate.UTC(),
		Active:          in.Active,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCouponExists
		}
		return nil, err
	}
	return c, nil
}
