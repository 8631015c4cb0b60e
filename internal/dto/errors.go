package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BaseError универсальный корневой формат ошибки
// Code — машинно-ориентированный код (snake_case)
// Message — краткое человеко-читаемое описание
// Details — дополнительная строка (пояснение / fragment)
// Fields — для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Семантические псевдонимы для swagger @Failure. По JSON все совпадают с BaseError.

// ValidationErrorResponse 400, code "validation_error"
type ValidationErrorResponse BaseError

// UnauthorizedErrorResponse 401, code "unauthorized"
type UnauthorizedErrorResponse BaseError

// PaymentFailedErrorResponse 402, code "payment_failed"
type PaymentFailedErrorResponse BaseError

// ForbiddenErrorResponse 403, code "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404, code "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409, code "conflict"
type ConflictErrorResponse BaseError

// RateLimitedErrorResponse 429, code "rate_limited"
type RateLimitedErrorResponse BaseError

// InternalErrorResponse 500, code "internal_error"
type InternalErrorResponse BaseError

// GatewayRejectedErrorResponse 502, code "gateway_rejected"
type GatewayRejectedErrorResponse BaseError

// GatewayUnavailableErrorResponse 503, code "gateway_unavailable"
type GatewayUnavailableErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewRateLimitedError(msg string) RateLimitedErrorResponse {
	return RateLimitedErrorResponse(BaseError{Code: "rate_limited", Message: msg})
}
func NewPaymentFailedError(msg string) PaymentFailedErrorResponse {
	return PaymentFailedErrorResponse(BaseError{Code: "payment_failed", Message: msg})
}
func NewGatewayUnavailableError(details string) GatewayUnavailableErrorResponse {
	return GatewayUnavailableErrorResponse(BaseError{Code: "gateway_unavailable", Message: "payment gateway unavailable", Details: details})
}
func NewGatewayRejectedError(details string) GatewayRejectedErrorResponse {
	return GatewayRejectedErrorResponse(BaseError{Code: "gateway_rejected", Message: "payment gateway rejected the request", Details: details})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}

// FieldsFromBindError разворачивает ошибки валидатора gin в список полей.
// Для ошибок разбора JSON список пуст.
func FieldsFromBindError(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Tag:     fe.Tag(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}

// UseJSONFieldNames заставляет валидатор gin называть поля по json-тегам,
// чтобы Fields в ответе совпадали с именами в теле запроса.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}
