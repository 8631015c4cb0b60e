package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	orderNumberPrefix       = "JC"
	maxOrderWriteAttempts   = 3
	orderNumberSuffixLength = 6
)

// переходы order_status, которые может выполнить администратор
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

// CanTransition сообщает, допустим ли переход статуса заказа.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	orders   OrderRepo
	products ProductRepo
	coupons  CouponValidator
	gateway  PaymentGateway
	events   EventBus
	currency string
	now      func() time.Time
	log      *zap.Logger
}

func NewOrderService(
	orders OrderRepo,
	products ProductRepo,
	coupons CouponValidator,
	gateway PaymentGateway,
	events EventBus,
	currency string,
	log *zap.Logger,
) *OrderService {
	if currency == "" {
		currency = "INR"
	}
	return &OrderService{
		orders:   orders,
		products: products,
		coupons:  coupons,
		gateway:  gateway,
		events:   events,
		currency: currency,
		now:      time.Now,
		log:      log,
	}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

type OrderInput struct {
	UserID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress models.ShippingAddress
	Items           []OrderItemInput
	CouponCode      string

	// Суммы, посчитанные клиентом. Только для сверки, в заказ не попадают.
	ClientSubtotal float64
	ClientDiscount float64
	ClientTotal    float64
}

type CreatedOrder struct {
	Order  *models.Order
	Intent *PaymentIntent // nil, если шлюз не ответил
	KeyID  string
}

func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*CreatedOrder, error) {
	if err := validateShipping(in.ShippingAddress); err != nil {
		return nil, err
	}
	items, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	var (
		couponCode string
		percent    float64
	)
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		c, err := s.coupons.ValidateCoupon(ctx, code)
		if err != nil {
			return nil, err
		}
		couponCode, percent = c.Code, c.DiscountPercent
	}
	totals := ComputeTotals(items, percent)

	if in.ClientTotal > 0 && toFloat(totals.Total) != in.ClientTotal {
		s.log.Warn("client order total differs from computed",
			zap.Float64("client_total", in.ClientTotal),
			zap.String("computed_total", totals.Total.StringFixed(2)),
		)
	}

	number, err := s.orderNumber()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	o := &models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     number,
		UserID:          in.UserID,
		CustomerName:    firstNonEmpty(in.CustomerName, in.ShippingAddress.Name),
		CustomerEmail:   firstNonEmpty(in.CustomerEmail, in.ShippingAddress.Email),
		CustomerPhone:   firstNonEmpty(in.CustomerPhone, in.ShippingAddress.Phone),
		ShippingAddress: in.ShippingAddress,
		Items:           items,
		Subtotal:        toFloat(totals.Subtotal),
		Discount:        toFloat(totals.Discount),
		Total:           toFloat(totals.Total),
		CouponCode:      couponCode,
		Currency:        s.currency,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Ошибка шлюза не мешает созданию заказа: намерение можно создать позже.
	intent, err := s.gateway.CreateIntent(ctx, ToMinorUnits(totals.Total), s.currency, number)
	if err != nil {
		s.log.Warn("payment intent creation failed, order stored without gateway id",
			zap.String("order_number", number), zap.Error(err))
		intent = nil
	} else {
		o.RazorpayOrderID = &intent.ID
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Total),
	)
	s.publish(ctx, EventOrderCreated, o)

	return &CreatedOrder{Order: o, Intent: intent, KeyID: s.gateway.KeyID()}, nil
}

func (s *OrderService) priceItems(ctx context.Context, in []OrderItemInput) ([]models.OrderItem, error) {
	if len(in) == 0 {
		return nil, ErrEmptyItems
	}
	ids := make([]string, 0, len(in))
	for _, it := range in {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, validationf("product_id is required")
		}
		if it.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
		ids = append(ids, it.ProductID)
	}

	found, err := s.products.BatchGetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	items := make([]models.OrderItem, 0, len(in))
	for _, it := range in {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		items = append(items, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			Size:        it.Size,
			Color:       it.Color,
			Price:       p.EffectivePrice(),
		})
	}
	return items, nil
}

func validateShipping(a models.ShippingAddress) error {
	required := []struct{ name, val string }{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.val) == "" {
			return validationf("shipping_address.%s is required", f.name)
		}
	}
	return nil
}

// orderNumber: JC + YYYYMMDD + 6 символов в верхнем регистре.
func (s *OrderService) orderNumber() (string, error) {
	suffix, err := nanorand.Gen(orderNumberSuffixLength)
	if err != nil {
		return "", err
	}
	return orderNumberPrefix + s.now().UTC().Format("20060102") + strings.ToUpper(suffix), nil
}

// VerifyPayment применяет результат проверки подписи к заказу. Оплаченный заказ
// никогда не откатывается: повторная проверка только возвращает его как есть.
func (s *OrderService) VerifyPayment(ctx context.Context, intentID, paymentID, signature string) (*models.Order, error) {
	if strings.TrimSpace(intentID) == "" || strings.TrimSpace(paymentID) == "" || strings.TrimSpace(signature) == "" {
		return nil, validationf("razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
	}

	o, err := s.orders.GetByGatewayOrderID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	verr := s.gateway.VerifySignature(ctx, intentID, paymentID, signature)
	if errors.Is(verr, ErrGatewayUnavailable) {
		return nil, verr
	}
	if verr != nil && !errors.Is(verr, ErrPaymentFailed) {
		return nil, verr
	}

	if verr == nil {
		o, err = s.applyUpdate(ctx, o, func(o *models.Order) (bool, error) {
			if o.PaymentStatus == models.PaymentStatusCompleted {
				return false, nil
			}
			o.PaymentStatus = models.PaymentStatusCompleted
			if o.OrderStatus == models.OrderStatusPending {
				o.OrderStatus = models.OrderStatusConfirmed
			}
			o.RazorpayPaymentID = &paymentID
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		s.log.Info("payment verified", zap.String("order_id", o.ID), zap.String("payment_id", paymentID))
		return o, nil
	}

	s.log.Warn("payment signature mismatch", zap.String("order_id", o.ID), zap.String("intent_id", intentID))
	if _, err := s.applyUpdate(ctx, o, func(o *models.Order) (bool, error) {
		if o.PaymentStatus != models.PaymentStatusPending {
			return false, nil
		}
		o.PaymentStatus = models.PaymentStatusFailed
		return true, nil
	}); err != nil {
		return nil, err
	}
	return nil, ErrPaymentFailed
}

// CreatePaymentIntent создаёт намерение оплаты для заказа, у которого его нет
// (шлюз был недоступен при оформлении). Существующее намерение возвращается повторно.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, orderID string) (*models.Order, *PaymentIntent, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o.PaymentStatus == models.PaymentStatusCompleted {
		return nil, nil, ErrOrderAlreadyPaid
	}

	amount := ToMinorUnits(decimal.NewFromFloat(o.Total))
	if o.RazorpayOrderID != nil && *o.RazorpayOrderID != "" {
		return o, &PaymentIntent{ID: *o.RazorpayOrderID, Amount: amount, Currency: o.Currency}, nil
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, o.Currency, o.OrderNumber)
	if err != nil {
		return nil, nil, err
	}
	o, err = s.applyUpdate(ctx, o, func(o *models.Order) (bool, error) {
		if o.RazorpayOrderID != nil && *o.RazorpayOrderID != "" {
			return false, nil
		}
		o.RazorpayOrderID = &intent.ID
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if *o.RazorpayOrderID != intent.ID {
		// параллельный запрос успел привязать своё намерение
		intent = &PaymentIntent{ID: *o.RazorpayOrderID, Amount: amount, Currency: o.Currency}
	}
	return o, intent, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	status = models.OrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := o.OrderStatus
	o, err = s.applyUpdate(ctx, o, func(o *models.Order) (bool, error) {
		if o.OrderStatus == status {
			return false, nil
		}
		if !CanTransition(o.OrderStatus, status) {
			return false, ErrInvalidTransition
		}
		o.OrderStatus = status
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if prev != o.OrderStatus {
		s.log.Info("order status updated",
			zap.String("order_id", o.ID),
			zap.String("from", string(prev)),
			zap.String("to", string(o.OrderStatus)),
		)
	}
	return o, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

// applyUpdate применяет fn к заказу и сохраняет его с проверкой версии. При
// конфликте заказ перечитывается и fn вызывается снова, уже к свежему состоянию.
func (s *OrderService) applyUpdate(ctx context.Context, o *models.Order, fn func(o *models.Order) (bool, error)) (*models.Order, error) {
	for attempt := 1; attempt <= maxOrderWriteAttempts; attempt++ {
		before := *o
		changed, err := fn(o)
		if err != nil {
			return nil, err
		}
		if !changed {
			return o, nil
		}
		o.UpdatedAt = s.now().UTC()

		err = s.orders.Update(ctx, o)
		if err == nil {
			s.publishForChange(ctx, &before, o)
			return o, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		s.log.Debug("order version conflict, retrying", zap.String("order_id", o.ID), zap.Int("attempt", attempt))

		fresh, err := s.orders.GetByID(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, ErrOrderNotFound
		}
		o = fresh
	}
	return nil, ErrOrderContention
}

func (s *OrderService) publishForChange(ctx context.Context, before, after *models.Order) {
	switch {
	case before.PaymentStatus != after.PaymentStatus && after.PaymentStatus == models.PaymentStatusCompleted:
		s.publish(ctx, EventOrderPaid, after)
	case before.PaymentStatus != after.PaymentStatus && after.PaymentStatus == models.PaymentStatusFailed:
		s.publish(ctx, EventOrderPaymentFailed, after)
	case before.OrderStatus != after.OrderStatus:
		s.publish(ctx, EventOrderStatusUpdated, after)
	}
}

func (s *OrderService) publish(ctx context.Context, t OrderEventType, o *models.Order) {
	if s.events == nil {
		return
	}
	e := OrderEvent{
		Type:          t,
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Total:         o.Total,
		Currency:      o.Currency,
		PaymentStatus: string(o.PaymentStatus),
		OrderStatus:   string(o.OrderStatus),
		OccurredAt:    s.now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, e); err != nil {
		// событие теряется, заказ уже сохранён
		s.log.Error("failed to publish order event", zap.String("type", string(t)), zap.String("order_id", o.ID), zap.Error(err))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// KeyID: публичный ключ шлюза для клиентского окна оплаты.
func (s *OrderService) KeyID() string { return s.gateway.KeyID() }
