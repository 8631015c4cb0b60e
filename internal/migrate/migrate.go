package migrate

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MigrateOptions struct {
	WithLookupIndexes bool // неуникальные индексы для выборок (reviews, orders)
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{WithLookupIndexes: true}
}

type indexSpec struct {
	coll  string
	model mongo.IndexModel
}

func unique(coll, field string, sparse bool) indexSpec {
	opts := options.Index().SetUnique(true).SetName("ux_" + coll + "_" + field)
	if sparse {
		opts.SetSparse(true)
	}
	return indexSpec{coll: coll, model: mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: opts}}
}

// MigrateStoreDB создаёт индексы всех коллекций. Операция идемпотентна.
func MigrateStoreDB(ctx context.Context, db *mongo.Database, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции хранилища")

	specs := []indexSpec{
		unique(repository.CollCategories, "id", false),
		unique(repository.CollCategories, "slug", false),
		unique(repository.CollProducts, "id", false),
		unique(repository.CollProducts, "slug", false),
		unique(repository.CollUsers, "id", false),
		unique(repository.CollUsers, "email", true),
		unique(repository.CollUsers, "phone", true),
		unique(repository.CollCarts, "user_id", false),
		unique(repository.CollWishlists, "user_id", false),
		unique(repository.CollReviews, "id", false),
		unique(repository.CollOrders, "id", false),
		unique(repository.CollOrders, "order_number", false),
		unique(repository.CollCoupons, "code", false),
	}

	if opt.WithLookupIndexes {
		specs = append(specs,
			indexSpec{coll: repository.CollReviews, model: mongo.IndexModel{
				Keys:    bson.D{{Key: "product_id", Value: 1}},
				Options: options.Index().SetName("ix_reviews_product"),
			}},
			indexSpec{coll: repository.CollOrders, model: mongo.IndexModel{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("ix_orders_user_created"),
			}},
			indexSpec{coll: repository.CollOrders, model: mongo.IndexModel{
				Keys:    bson.D{{Key: "razorpay_order_id", Value: 1}},
				Options: options.Index().SetName("ix_orders_gateway_order"),
			}},
			indexSpec{coll: repository.CollProducts, model: mongo.IndexModel{
				Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "featured", Value: 1}},
				Options: options.Index().SetName("ix_products_category_featured"),
			}},
		)
	}

	for _, s := range specs {
		name, err := db.Collection(s.coll).Indexes().CreateOne(ctx, s.model)
		if err != nil {
			log.Error("Не удалось создать индекс", zap.String("collection", s.coll), zap.Error(err))
			return err
		}
		log.Info("Индекс создан", zap.String("collection", s.coll), zap.String("index", name))
	}

	log.Info("Миграция хранилища завершена", zap.Int("indexes", len(specs)))
	return nil
}
