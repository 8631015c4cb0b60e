package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollCategories = "categories"
	CollProducts   = "products"
	CollUsers      = "users"
	CollCarts      = "carts"
	CollWishlists  = "wishlists"
	CollReviews    = "reviews"
	CollOrders     = "orders"
	CollCoupons    = "coupons"
)

var (
	// ErrDuplicate: нарушение уникального индекса (slug, email, phone, code).
	ErrDuplicate = errors.New("duplicate key")
	// ErrVersionConflict: документ изменён параллельным запросом между чтением и записью.
	ErrVersionConflict = errors.New("version conflict")
)

type Repository struct {
	DB         *mongo.Database
	Categories CategoryRepo
	Products   ProductRepo
	Users      UserRepo
	Carts      CartRepo
	Wishlists  WishlistRepo
	Reviews    ReviewRepo
	Orders     OrderRepo
	Coupons    CouponRepo
}

func New(db *mongo.Database) *Repository {
	return &Repository{
		DB:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Users:      NewUserRepo(db),
		Carts:      NewCartRepo(db),
		Wishlists:  NewWishlistRepo(db),
		Reviews:    NewReviewRepo(db),
		Orders:     NewOrderRepo(db),
		Coupons:    NewCouponRepo(db),
	}
}

// Ping проверяет доступность хранилища (используется в /health).
func (r *Repository) Ping(ctx context.Context) error {
	return r.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// findOne декодирует один документ; отсутствие документа: (false, nil).
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
