package repository

import (
	"context"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error)
	AddItem(ctx context.Context, userID string, item models.WishlistItem) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

type wishlistRepo struct{ coll *mongo.Collection }

func NewWishlistRepo(db *mongo.Database) WishlistRepo {
	return &wishlistRepo{coll: db.Collection(CollWishlists)}
}

func (r *wishlistRepo) GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error) {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"id":         uuid.NewString(),
			"user_id":    userID,
			"items":      bson.A{},
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, err
	}

	var w models.Wishlist
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&w); err != nil {
		return nil, err
	}
	if w.Items == nil {
		w.Items = []models.WishlistItem{}
	}
	return &w, nil
}

// AddItem добавляет товар, только если его ещё нет в списке: проверка и запись
// выполняются одним условным обновлением.
func (r *wishlistRepo) AddItem(ctx context.Context, userID string, item models.WishlistItem) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": item.ProductID}},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updated_at": item.AddedAt},
		},
	)
	return err
}

func (r *wishlistRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}
