package repository

import (
	"context"
	"strings"

	"github.com/vraj1599/jasubhaichappal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
}

type userRepo struct{ coll *mongo.Collection }

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{coll: db.Collection(CollUsers)}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.coll.InsertOne(ctx, u)
	return wrapWriteErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	ok, err := findOne(ctx, r.coll, bson.M{"id": id}, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	ok, err := findOne(ctx, r.coll, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	ok, err := findOne(ctx, r.coll, bson.M{"phone": phone}, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *userRepo) CountAdmins(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"is_admin": true})
}
