package handlers

import (
	"net/http"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/middleware"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviews ReviewService
	log     *zap.Logger
}

func NewReviewHandler(reviews ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

// ListReviews godoc
// @Summary Отзывы о товаре
// @Tags reviews
// @Produce json
// @Param productId path string true "ID товара"
// @Success 200 {array} models.Review
// @Router /api/reviews/product/{productId} [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	list, err := h.reviews.ListReviewsForProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateReview godoc
// @Summary Оставить отзыв
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body dto.ReviewRequest true "Отзыв"
// @Success 200 {object} models.Review
// @Failure 400 {object} dto.ValidationErrorResponse "Оценка вне диапазона 1..5"
// @Router /api/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	// авторизованный автор берётся из токена, user_id из тела только для анонимных
	userID := req.UserID
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if id, _ := v.(string); id != "" {
			userID = id
		}
	}
	rv, err := h.reviews.CreateReview(c.Request.Context(), service.ReviewInput{
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}
