package service

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Каждый вид соответствует отдельному HTTP-статусу.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
	ErrPaymentFailed      = errors.New("payment verification failed")
)

var (
	ErrCategoryNotFound = kindOf(ErrNotFound, "category not found")
	ErrProductNotFound  = kindOf(ErrNotFound, "product not found")
	ErrOrderNotFound    = kindOf(ErrNotFound, "order not found")
	ErrCouponNotFound   = kindOf(ErrNotFound, "invalid coupon code")
	ErrUserNotFound     = kindOf(ErrNotFound, "user not found")

	ErrSlugExists        = kindOf(ErrConflict, "slug already exists")
	ErrEmailExists       = kindOf(ErrConflict, "email already exists")
	ErrCouponExists      = kindOf(ErrConflict, "coupon code already exists")
	ErrCartContention    = kindOf(ErrConflict, "cart was modified concurrently, retry")
	ErrOrderContention   = kindOf(ErrConflict, "order was modified concurrently, retry")
	ErrInvalidTransition = kindOf(ErrConflict, "order status transition not allowed")
	ErrOrderAlreadyPaid  = kindOf(ErrConflict, "order is already paid")

	ErrInvalidCredentials = kindOf(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = kindOf(ErrUnauthorized, "invalid token")
	ErrInvalidOTP         = kindOf(ErrUnauthorized, "invalid or expired code")

	ErrInvalidRating   = kindOf(ErrValidation, "rating must be between 1 and 5")
	ErrCouponInactive  = kindOf(ErrValidation, "coupon is inactive")
	ErrCouponExpired   = kindOf(ErrValidation, "coupon has expired")
	ErrEmptyItems      = kindOf(ErrValidation, "order must have at least one item")
	ErrQuantityInvalid = kindOf(ErrValidation, "quantity must be > 0")
	ErrInvalidStatus   = kindOf(ErrValidation, "unknown order status")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func kindOf(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func validationf(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}
