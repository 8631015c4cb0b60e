package repository

import (
	"context"
	"regexp"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductListFilter struct {
	// CategoryKeys сравниваются и с category_id, и с устаревшим полем category.
	CategoryKeys []string
	Featured     *bool
	// Search: подстрока названия без учёта регистра.
	Search string
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	Replace(ctx context.Context, p *models.Product) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	BatchGetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type productRepo struct{ coll *mongo.Collection }

func NewProductRepo(db *mongo.Database) ProductRepo {
	return &productRepo{coll: db.Collection(CollProducts)}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	_, err := r.coll.InsertOne(ctx, p)
	return wrapWriteErr(err)
}

func (r *productRepo) Replace(ctx context.Context, p *models.Product) (bool, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return false, wrapWriteErr(err)
	}
	return res.MatchedCount > 0, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	ok, err := findOne(ctx, r.coll, bson.M{"id": id}, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	ok, err := findOne(ctx, r.coll, bson.M{"slug": slug}, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	filter := bson.M{}
	if len(f.CategoryKeys) > 0 {
		filter["$or"] = bson.A{
			bson.M{"category_id": bson.M{"$in": f.CategoryKeys}},
			bson.M{"category": bson.M{"$in": f.CategoryKeys}},
		}
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	list := []models.Product{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *productRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *productRepo) BatchGetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	list := []models.Product{}
	err = cur.All(ctx, &list)
	return list, err
}
