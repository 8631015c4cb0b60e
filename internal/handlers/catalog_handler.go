package handlers

import (
	"net/http"
	"strconv"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListCategories godoc
// @Summary Список категорий
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetCategoryBySlug godoc
// @Summary Категория по slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.Category
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/categories/slug/{slug} [get]
func (h *CatalogHandler) GetCategoryBySlug(c *gin.Context) {
	cat, err := h.catalog.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CategoryRequest true "Категория"
// @Success 200 {object} models.Category
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// ListProducts godoc
// @Summary Список товаров
// @Tags catalog
// @Produce json
// @Param category query string false "id, slug или имя категории"
// @Param category_id query string false "id категории"
// @Param featured query bool false "Только избранные"
// @Param search query string false "Поиск по названию"
// @Success 200 {array} models.Product
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	f := service.ProductFilter{
		CategoryID: c.Query("category_id"),
		Category:   c.Query("category"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("featured must be a boolean", []dto.FieldError{
				{Field: "featured", Message: "must be true or false", Tag: "boolean"},
			}))
			return
		}
		f.Featured = &v
	}

	list, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetProduct godoc
// @Summary Товар по id
// @Tags catalog
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} models.Product
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProductBySlug godoc
// @Summary Товар по slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.Product
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/slug/{slug} [get]
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	p, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func toProductInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		CategoryID:       req.CategoryID,
		Category:         req.Category,
		Images:           req.Images,
		Sizes:            req.Sizes,
		Colors:           req.Colors,
		CareInstructions: req.CareInstructions,
		StockQuantity:    req.StockQuantity,
		Featured:         req.Featured,
	}
}

// CreateProduct godoc
// @Summary Создание товара
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.ProductRequest true "Товар"
// @Success 200 {object} models.Product
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), toProductInput(req))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct godoc
// @Summary Обновление товара
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.ProductRequest true "Товар"
// @Success 200 {object} models.Product
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct godoc
// @Summary Удаление товара
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted"})
}
