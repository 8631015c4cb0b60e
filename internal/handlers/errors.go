package handlers

import (
	"errors"
	"net/http"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError переводит ошибку сервиса в HTTP-статус и тело dto.BaseError.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.Warn("validation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), []dto.FieldError{}))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrConflict):
		log.Warn("conflict", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	case errors.Is(err, service.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError("too many requests, try again later"))
	case errors.Is(err, service.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, dto.NewPaymentFailedError(err.Error()))
	case errors.Is(err, service.ErrGatewayRejected):
		log.Error("payment gateway rejected request", zap.Error(err))
		c.JSON(http.StatusBadGateway, dto.NewGatewayRejectedError(""))
	case errors.Is(err, service.ErrGatewayUnavailable):
		log.Error("payment gateway unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewGatewayUnavailableError(""))
	default:
		log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func bindJSON(c *gin.Context, log *zap.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", dto.FieldsFromBindError(err)))
		return false
	}
	return true
}
