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

type CartRepo interface {
	// GetOrCreate возвращает корзину пользователя, создавая пустую при первом обращении.
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	// Save записывает позиции, только если версия в базе совпадает с c.Version.
	Save(ctx context.Context, c *models.Cart) error
}

type cartRepo struct{ coll *mongo.Collection }

func NewCartRepo(db *mongo.Database) CartRepo {
	return &cartRepo{coll: db.Collection(CollCarts)}
}

func (r *cartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	now := time.Now().UTC()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"id":         uuid.NewString(),
			"user_id":    userID,
			"items":      bson.A{},
			"version":    int64(0),
			"updated_at": now,
		}},
		options.Update().SetUpsert(true),
	)
	// два параллельных upsert могут столкнуться на уникальном индексе: документ уже есть
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, err
	}

	var c models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, nil
}

func (r *cartRepo) Save(ctx context.Context, c *models.Cart) error {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": c.UserID, "version": c.Version},
		bson.M{
			"$set": bson.M{"items": items, "updated_at": c.UpdatedAt},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	c.Version++
	return nil
}
