package service

import (
	"context"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"github.com/google/uuid"
)

type ReviewService struct {
	reviews ReviewRepo
	now     func() time.Time
}

func NewReviewService(reviews ReviewRepo) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

type ReviewInput struct {
	ProductID string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
}

// CreateReview не проверяет существование товара.
func (s *ReviewService) CreateReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, validationf("product_id is required")
	}

	rv := &models.Review{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		UserID:    in.UserID,
		UserName:  strings.TrimSpace(in.UserName),
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListReviewsForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
