package handlers

import (
	"net/http"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CouponHandler struct {
	coupons CouponService
	log     *zap.Logger
}

func NewCouponHandler(coupons CouponService, log *zap.Logger) *CouponHandler {
	return &CouponHandler{coupons: coupons, log: log}
}

// Validate godoc
// @Summary Проверка купона
// @Tags coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CouponValidateRequest true "Код купона"
// @Success 200 {object} dto.CouponValidateResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Купон неактивен или истёк"
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req dto.CouponValidateRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cp, err := h.coupons.ValidateCoupon(c.Request.Context(), req.Code)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CouponValidateResponse{Code: cp.Code, DiscountPercent: cp.DiscountPercent})
}

// Create godoc
// @Summary Создание купона
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param coupon body dto.CouponRequest true "Купон"
// @Success 201 {object} models.Coupon
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CouponRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	cp, err := h.coupons.CreateCoupon(c.Request.Context(), service.CouponInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ExpiryDate:      req.ExpiryDate,
		Active:          active,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}
