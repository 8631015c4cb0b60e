package handlers

import (
	"net/http"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart     CartService
	wishlist WishlistService
	log      *zap.Logger
}

func NewCartHandler(cart CartService, wishlist WishlistService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, wishlist: wishlist, log: log}
}

// GetCart godoc
// @Summary Корзина пользователя
// @Description Пустая корзина создаётся при первом обращении
// @Tags cart
// @Produce json
// @Param userId path string true "ID пользователя или гостевой сессии"
// @Success 200 {object} models.Cart
// @Router /api/cart/{userId} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cart.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart godoc
// @Summary Добавить товар в корзину
// @Description Совпадающий вариант (товар, размер, цвет) увеличивает количество
// @Tags cart
// @Accept json
// @Produce json
// @Param userId path string true "ID пользователя"
// @Param item body dto.CartItemRequest true "Позиция"
// @Success 200 {object} models.Cart
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/cart/{userId}/add [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.CartItemRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cart, err := h.cart.AddToCart(c.Request.Context(), c.Param("userId"), toCartItem(req))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ReplaceCart godoc
// @Summary Заменить содержимое корзины
// @Tags cart
// @Accept json
// @Produce json
// @Param userId path string true "ID пользователя"
// @Param items body []dto.CartItemRequest true "Позиции"
// @Success 200 {object} models.Cart
// @Router /api/cart/{userId} [post]
func (h *CartHandler) ReplaceCart(c *gin.Context) {
	var req []dto.CartItemRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	items := make([]models.CartItem, 0, len(req))
	for _, it := range req {
		items = append(items, toCartItem(it))
	}
	cart, err := h.cart.ReplaceCart(c.Request.Context(), c.Param("userId"), items)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart godoc
// @Summary Удалить позицию из корзины
// @Tags cart
// @Produce json
// @Param userId path string true "ID пользователя"
// @Param productId path string true "ID товара"
// @Param size query string false "Размер"
// @Param color query string false "Цвет"
// @Success 200 {object} models.Cart
// @Router /api/cart/{userId}/item/{productId} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cart, err := h.cart.RemoveFromCart(c.Request.Context(), c.Param("userId"), c.Param("productId"), c.Query("size"), c.Query("color"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart godoc
// @Summary Очистить корзину
// @Tags cart
// @Produce json
// @Param userId path string true "ID пользователя"
// @Success 200 {object} models.Cart
// @Router /api/cart/{userId} [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.cart.ClearCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetWishlist godoc
// @Summary Список желаний
// @Tags wishlist
// @Produce json
// @Param userId path string true "ID пользователя"
// @Success 200 {object} models.Wishlist
// @Router /api/wishlist/{userId} [get]
func (h *CartHandler) GetWishlist(c *gin.Context) {
	w, err := h.wishlist.GetWishlist(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// AddToWishlist godoc
// @Summary Добавить товар в список желаний
// @Tags wishlist
// @Accept json
// @Produce json
// @Param userId path string true "ID пользователя"
// @Param item body dto.WishlistItemRequest true "Товар"
// @Success 200 {object} models.Wishlist
// @Router /api/wishlist/{userId}/add [post]
func (h *CartHandler) AddToWishlist(c *gin.Context) {
	var req dto.WishlistItemRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	w, err := h.wishlist.AddToWishlist(c.Request.Context(), c.Param("userId"), req.ProductID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// RemoveFromWishlist godoc
// @Summary Удалить товар из списка желаний
// @Tags wishlist
// @Produce json
// @Param userId path string true "ID пользователя"
// @Param productId path string true "ID товара"
// @Success 200 {object} models.Wishlist
// @Router /api/wishlist/{userId}/item/{productId} [delete]
func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	w, err := h.wishlist.RemoveFromWishlist(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func toCartItem(req dto.CartItemRequest) models.CartItem {
	return models.CartItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	}
}
