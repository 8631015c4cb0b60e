package repository

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CouponRepo interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type couponRepo struct{ coll *mongo.Collection }

func NewCouponRepo(db *mongo.Database) CouponRepo {
	return &couponRepo{coll: db.Collection(CollCoupons)}
}

func (r *couponRepo) Create(ctx context.Context, c *models.Coupon) error {
	_, err := r.coll.InsertOne(ctx, c)
	return wrapWriteErr(err)
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	ok, err := findOne(ctx, r.coll, bson.M{"code": code}, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}
