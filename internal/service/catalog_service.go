package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService struct {
	categories CategoryRepo
	products   ProductRepo
	cache      CacheClient // может быть nil
	cacheTTL   time.Duration
	now        func() time.Time
	log        *zap.Logger
}

func NewCatalogService(categories CategoryRepo, products ProductRepo, cache CacheClient, cacheTTL time.Duration, log *zap.Logger) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      cache,
		cacheTTL:   cacheTTL,
		now:        time.Now,
		log:        log,
	}
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type ProductInput struct {
	Name             string
	Slug             string
	Description      string
	Price            float64
	DiscountPrice    *float64
	CategoryID       string
	Category         string
	Images           []string
	Sizes            []string
	Colors           []string
	CareInstructions string
	StockQuantity    int
	Featured         bool
}

type ProductFilter struct {
	CategoryID string
	Category   string // id, slug или имя категории
	Featured   *bool
	Search     string
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationf("category name is required")
	}
	slug := util.Slugify(in.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}

	exists, err := s.categories.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	c := &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	rf := repository.ProductListFilter{Featured: f.Featured, Search: strings.TrimSpace(f.Search)}
	if id := strings.TrimSpace(f.CategoryID); id != "" {
		rf.CategoryKeys = append(rf.CategoryKeys, id)
	}
	if key := strings.TrimSpace(f.Category); key != "" {
		rf.CategoryKeys = append(rf.CategoryKeys, key)
		// ?category= может прийти slug'ом категории второй ревизии
		if c, err := s.categories.GetBySlug(ctx, key); err == nil && c != nil {
			rf.CategoryKeys = append(rf.CategoryKeys, c.ID, c.Name)
		}
	}

	list, err := s.products.List(ctx, rf)
	if err != nil {
		return nil, err
	}
	for i := range list {
		normalizeProduct(&list[i])
	}
	return list, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if p := s.cachedProduct(ctx, id); p != nil {
		return p, nil
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	normalizeProduct(p)
	s.cacheProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	normalizeProduct(p)
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{ID: uuid.NewString(), CreatedAt: s.now().UTC()}
	if err := s.applyInput(ctx, p, in); err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsBySlug(ctx, p.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	s.log.Info("product created", zap.String("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// UpdateProduct полностью заменяет изменяемые поля товара.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	p := &models.Product{ID: existing.ID, CreatedAt: existing.CreatedAt}
	if in.Slug == "" && existing.Slug != "" {
		in.Slug = existing.Slug
	}
	if err := s.applyInput(ctx, p, in); err != nil {
		return nil, err
	}

	if p.Slug != existing.Slug {
		taken, err := s.products.ExistsBySlug(ctx, p.Slug)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugExists
		}
	}

	found, err := s.products.Replace(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	if !found {
		return nil, ErrProductNotFound
	}
	s.evictProduct(ctx, id)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	s.evictProduct(ctx, id)
	return nil
}

func (s *CatalogService) applyInput(ctx context.Context, p *models.Product, in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return validationf("product name is required")
	}
	if in.Price < 0 {
		return validationf("price must be >= 0")
	}
	if in.DiscountPrice != nil && *in.DiscountPrice < 0 {
		return validationf("discount_price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return validationf("stock_quantity must be >= 0")
	}
	if in.CategoryID != "" {
		c, err := s.categories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCategoryNotFound
		}
	}

	slug := util.Slugify(in.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}

	p.Name = name
	p.Slug = slug
	p.Description = in.Description
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.CategoryID = in.CategoryID
	p.Category = in.Category
	p.Images = nonNil(in.Images)
	p.Sizes = nonNil(in.Sizes)
	p.Colors = nonNil(in.Colors)
	p.CareInstructions = in.CareInstructions
	p.StockQuantity = in.StockQuantity
	p.InStock = in.StockQuantity > 0
	p.Featured = in.Featured
	p.UpdatedAt = s.now().UTC()
	return nil
}

// normalizeProduct выставляет производные поля для записей, созданных до их появления.
func normalizeProduct(p *models.Product) {
	p.InStock = p.StockQuantity > 0
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Name)
	}
	p.Images = nonNil(p.Images)
	p.Sizes = nonNil(p.Sizes)
	p.Colors = nonNil(p.Colors)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func productCacheKey(id string) string { return "product:" + id }

func (s *CatalogService) cachedProduct(ctx context.Context, id string) *models.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, productCacheKey(id))
	if err != nil || raw == "" {
		return nil
	}
	var p models.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func (s *CatalogService) cacheProduct(ctx context.Context, p *models.Product) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKey(p.ID), data, s.cacheTTL); err != nil {
		s.log.Warn("product cache set failed", zap.String("id", p.ID), zap.Error(err))
	}
}

func (s *CatalogService) evictProduct(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("product cache evict failed", zap.String("id", id), zap.Error(err))
	}
}
