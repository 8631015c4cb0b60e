package repository

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *models.Review) error
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type reviewRepo struct{ coll *mongo.Collection }

func NewReviewRepo(db *mongo.Database) ReviewRepo {
	return &reviewRepo{coll: db.Collection(CollReviews)}
}

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	_, err := r.coll.InsertOne(ctx, rv)
	return err
}

// ListByProduct возвращает отзывы в порядке вставки (_id монотонен).
func (r *reviewRepo) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	cur, err := r.coll.Find(ctx, bson.M{"product_id": productID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	list := []models.Review{}
	err = cur.All(ctx, &list)
	return list, err
}
