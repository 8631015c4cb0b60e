package repository

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// Update перезаписывает изменяемые поля заказа при совпадении версии.
	Update(ctx context.Context, o *models.Order) error
}

type orderRepo struct{ coll *mongo.Collection }

func NewOrderRepo(db *mongo.Database) OrderRepo {
	return &orderRepo{coll: db.Collection(CollOrders)}
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	_, err := r.coll.InsertOne(ctx, o)
	return wrapWriteErr(err)
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	ok, err := findOne(ctx, r.coll, bson.M{"id": id}, &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var o models.Order
	ok, err := findOne(ctx, r.coll, bson.M{"razorpay_order_id": gatewayOrderID}, &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *orderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *orderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	list := []models.Order{}
	err = cur.All(ctx, &list)
	return list, err
}

func (r *orderRepo) Update(ctx context.Context, o *models.Order) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": o.ID, "version": o.Version},
		bson.M{
			"$set": bson.M{
				"payment_status":      o.PaymentStatus,
				"order_status":        o.OrderStatus,
				"razorpay_order_id":   o.RazorpayOrderID,
				"razorpay_payment_id": o.RazorpayPaymentID,
				"updated_at":          o.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	o.Version++
	return nil
}
