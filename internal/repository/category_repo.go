package repository

import (
	"context"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

type categoryRepo struct{ coll *mongo.Collection }

func NewCategoryRepo(db *mongo.Database) CategoryRepo {
	return &categoryRepo{coll: db.Collection(CollCategories)}
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	_, err := r.coll.InsertOne(ctx, c)
	return wrapWriteErr(err)
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	list := []models.Category{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	ok, err := findOne(ctx, r.coll, bson.M{"id": id}, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	ok, err := findOne(ctx, r.coll, bson.M{"slug": slug}, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	return n > 0, err
}
