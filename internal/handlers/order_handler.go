package handlers

import (
	"net/http"
	"strings"

	"github.com/vraj1599/jasubhaichappal/internal/dto"
	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// CreateOrder godoc
// @Summary Оформление заказа
// @Description Суммы пересчитываются на сервере по текущим ценам и купону; суммы клиента только сверяются.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Заказ"
// @Success 200 {object} dto.OrderCreatedResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар или купон не найден"
// @Router /api/orders/create [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	in := service.OrderInput{
		UserID:          req.UserID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		CouponCode:      req.CouponCode,
		ClientSubtotal:  req.Subtotal,
		ClientDiscount:  req.Discount,
		ClientTotal:     req.Total,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	res, err := h.orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp := dto.OrderCreatedResponse{Order: res.Order, RazorpayKeyID: res.KeyID}
	if res.Intent != nil {
		resp.AmountMinor = res.Intent.Amount
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPayment godoc
// @Summary Проверка оплаты
// @Tags orders
// @Accept json
// @Produce json
// @Param payment body dto.VerifyPaymentRequest true "Данные Razorpay"
// @Success 200 {object} dto.VerifyPaymentResponse
// @Failure 402 {object} dto.PaymentFailedErrorResponse "Подпись не прошла проверку"
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 503 {object} dto.GatewayUnavailableErrorResponse
// @Router /api/orders/verify-payment [post]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	o, err := h.orders.VerifyPayment(c.Request.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{Status: "success", Message: "Payment verified", Order: o})
}

// CreatePayment godoc
// @Summary Создание платежа Razorpay для заказа
// @Tags orders
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Заказ"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Заказ уже оплачен"
// @Failure 502 {object} dto.GatewayRejectedErrorResponse "Razorpay отклонил запрос"
// @Failure 503 {object} dto.GatewayUnavailableErrorResponse
// @Router /api/payment/create-order [post]
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	_, intent, err := h.orders.CreatePaymentIntent(c.Request.Context(), req.OrderID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		RazorpayOrderID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		KeyID:           h.orders.KeyID(),
	})
}

// GetOrder godoc
// @Summary Заказ по id
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ListUserOrders godoc
// @Summary Заказы пользователя
// @Tags orders
// @Produce json
// @Param userId path string true "ID пользователя"
// @Success 200 {array} models.Order
// @Router /api/orders/user/{userId} [get]
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	list, err := h.orders.ListOrdersByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListOrders godoc
// @Summary Все заказы
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	list, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateStatus godoc
// @Summary Изменение статуса заказа
// @Description Статус передаётся в теле {"status": ...} или параметром ?status=
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status query string false "Новый статус"
// @Param body body dto.OrderStatusRequest false "Новый статус"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Недопустимый переход"
// @Router /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" && c.Request.ContentLength != 0 {
		var req dto.OrderStatusRequest
		if !bindJSON(c, h.log, &req) {
			return
		}
		status = req.Status
	}
	if strings.TrimSpace(status) == "" {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("status is required", []dto.FieldError{
			{Field: "status", Message: "is required", Tag: "required"},
		}))
		return
	}

	o, err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// RazorpayConfig godoc
// @Summary Публичный ключ Razorpay
// @Tags orders
// @Produce json
// @Success 200 {object} dto.RazorpayConfigResponse
// @Router /api/config/razorpay [get]
func (h *OrderHandler) RazorpayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RazorpayConfigResponse{KeyID: h.orders.KeyID()})
}
