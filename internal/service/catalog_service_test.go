package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/cache"
	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"go.uber.org/zap"
)

func TestCreateCategory_SlugFromName(t *testing.T) {
	var created *models.Category
	cats := &MockCategoryRepo{
		CreateFunc: func(ctx context.Context, c *models.Category) error {
			created = c
			return nil
		},
		ExistsBySlugFunc: func(ctx context.Context, slug string) (bool, error) {
			return slug == "taken", nil
		},
	}
	svc := service.NewCatalogService(cats, &MockProductRepo{}, nil, 0, zap.NewNop())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, service.CategoryInput{Name: "Men's Chappals"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.Slug == "" || c.ID == "" || created != c {
		t.Fatalf("category = %+v", c)
	}

	if _, err := svc.CreateCategory(ctx, service.CategoryInput{Name: "X", Slug: "taken"}); !errors.Is(err, service.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if _, err := svc.CreateCategory(ctx, service.CategoryInput{Name: " "}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListProducts_CategoryKeys(t *testing.T) {
	var got repository.ProductListFilter
	cats := &MockCategoryRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*models.Category, error) {
			if slug == "women" {
				return &models.Category{ID: "cat-w", Name: "Women", Slug: "women"}, nil
			}
			return nil, nil
		},
	}
	products := &MockProductRepo{
		ListFunc: func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error) {
			got = f
			return []models.Product{{ID: "p1", Name: "Juti", StockQuantity: 0}}, nil
		},
	}
	svc := service.NewCatalogService(cats, products, nil, 0, zap.NewNop())
	featured := true

	list, err := svc.ListProducts(context.Background(), service.ProductFilter{Category: "women", Featured: &featured, Search: " juti "})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	want := []string{"women", "cat-w", "Women"}
	if len(got.CategoryKeys) != len(want) {
		t.Fatalf("category keys = %v", got.CategoryKeys)
	}
	for i := range want {
		if got.CategoryKeys[i] != want[i] {
			t.Fatalf("category keys = %v", got.CategoryKeys)
		}
	}
	if got.Search != "juti" || got.Featured == nil || !*got.Featured {
		t.Fatalf("filter = %+v", got)
	}
	if list[0].InStock || list[0].Slug == "" || list[0].Images == nil {
		t.Fatalf("product not normalized: %+v", list[0])
	}
}

func TestProductCRUD(t *testing.T) {
	store := map[string]models.Product{}
	products := &MockProductRepo{
		CreateFunc: func(ctx context.Context, p *models.Product) error {
			store[p.ID] = *p
			return nil
		},
		ReplaceFunc: func(ctx context.Context, p *models.Product) (bool, error) {
			if _, ok := store[p.ID]; !ok {
				return false, nil
			}
			store[p.ID] = *p
			return true, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*models.Product, error) {
			p, ok := store[id]
			if !ok {
				return nil, nil
			}
			return &p, nil
		},
		DeleteFunc: func(ctx context.Context, id string) (bool, error) {
			_, ok := store[id]
			delete(store, id)
			return ok, nil
		},
	}
	cats := &MockCategoryRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Category, error) {
			if id == "cat-1" {
				return &models.Category{ID: id}, nil
			}
			return nil, nil
		},
	}
	svc := service.NewCatalogService(cats, products, cache.NewMemoryCache(), time.Minute, zap.NewNop())
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, service.ProductInput{Name: "Kolhapuri Classic", Price: 1200, CategoryID: "cat-1", StockQuantity: 3})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if !p.InStock || p.Slug != "kolhapuri-classic" {
		t.Fatalf("product = %+v", p)
	}

	if _, err := svc.CreateProduct(ctx, service.ProductInput{Name: "X", CategoryID: "nope"}); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, service.ProductInput{Name: "X", Price: -1}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// прогреваем кэш, затем обновление должно его сбросить
	if _, err := svc.GetProduct(ctx, p.ID); err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	upd, err := svc.UpdateProduct(ctx, p.ID, service.ProductInput{Name: "Kolhapuri Classic", Price: 999, CategoryID: "cat-1"})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if upd.InStock || !upd.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("updated = %+v", upd)
	}
	again, _ := svc.GetProduct(ctx, p.ID)
	if again.Price != 999 {
		t.Fatalf("stale cached product: price=%v", again.Price)
	}

	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := svc.GetProduct(ctx, p.ID); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.DeleteProduct(ctx, p.ID); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.UpdateProduct(ctx, "missing", service.ProductInput{Name: "X"}); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
