package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/models"
	"github.com/vraj1599/jasubhaichappal/internal/repository"
	"github.com/vraj1599/jasubhaichappal/internal/service"
)

// MockUserRepo
type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *models.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	GetByPhoneFunc    func(ctx context.Context, phone string) (*models.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	CountAdminsFunc   func(ctx context.Context) (int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) CountAdmins(ctx context.Context) (int64, error) {
	if m.CountAdminsFunc != nil {
		return m.CountAdminsFunc(ctx)
	}
	return 0, nil
}

// MockHasher
type MockHasher struct{}

func (MockHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (MockHasher) Compare(hash, password string) bool   { return hash == "hash:"+password }

// MockTokenProvider
type MockTokenProvider struct {
	SignAccessFunc func(ctx context.Context, sub, email string, isAdmin bool, ttl time.Duration) (string, time.Time, error)
	ParseFunc      func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokenProvider) SignAccess(ctx context.Context, sub, email string, isAdmin bool, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, email, isAdmin, ttl)
	}
	return "token-" + sub, time.Now().Add(ttl), nil
}

func (m *MockTokenProvider) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, token)
	}
	return nil, service.ErrInvalidToken
}

// MockCategoryRepo
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, c *models.Category) error
	ListFunc         func(ctx context.Context) ([]models.Category, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.Category, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*models.Category, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Category{}, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugFunc != nil {
		return m.ExistsBySlugFunc(ctx, slug)
	}
	return false, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc        func(ctx context.Context, p *models.Product) error
	ReplaceFunc       func(ctx context.Context, p *models.Product) (bool, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Product, error)
	GetBySlugFunc     func(ctx context.Context, slug string) (*models.Product, error)
	ListFunc          func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error)
	DeleteFunc        func(ctx context.Context, id string) (bool, error)
	ExistsBySlugFunc  func(ctx context.Context, slug string) (bool, error)
	BatchGetByIDsFunc func(ctx context.Context, ids []string) ([]models.Product, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) Replace(ctx context.Context, p *models.Product) (bool, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, p)
	}
	return true, nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return []models.Product{}, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugFunc != nil {
		return m.ExistsBySlugFunc(ctx, slug)
	}
	return false, nil
}

func (m *MockProductRepo) BatchGetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if m.BatchGetByIDsFunc != nil {
		return m.BatchGetByIDsFunc(ctx, ids)
	}
	return []models.Product{}, nil
}

// MockCartRepo
type MockCartRepo struct {
	GetOrCreateFunc func(ctx context.Context, userID string) (*models.Cart, error)
	SaveFunc        func(ctx context.Context, c *models.Cart) error
}

func (m *MockCartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	return &models.Cart{ID: "cart-" + userID, UserID: userID, Items: []models.CartItem{}}, nil
}

func (m *MockCartRepo) Save(ctx context.Context, c *models.Cart) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

// memCartRepo хранит корзины в памяти с той же проверкой версии, что и Mongo-репозиторий.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]models.Cart
}

func newMemCartRepo() *memCartRepo { return &memCartRepo{carts: map[string]models.Cart{}} }

func (r *memCartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		c = models.Cart{ID: "cart-" + userID, UserID: userID, Items: []models.CartItem{}}
		r.carts[userID] = c
	}
	c.Items = append([]models.CartItem{}, c.Items...)
	return &c, nil
}

func (r *memCartRepo) Save(ctx context.Context, c *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.carts[c.UserID]
	if cur.Version != c.Version {
		return repository.ErrVersionConflict
	}
	c.Version++
	stored := *c
	stored.Items = append([]models.CartItem{}, c.Items...)
	r.carts[c.UserID] = stored
	return nil
}

// MockWishlistRepo
type MockWishlistRepo struct {
	mu    sync.Mutex
	items map[string][]models.WishlistItem
}

func newMockWishlistRepo() *MockWishlistRepo {
	return &MockWishlistRepo{items: map[string][]models.WishlistItem{}}
}

func (m *MockWishlistRepo) GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]models.WishlistItem{}, m.items[userID]...)
	return &models.Wishlist{ID: "wl-" + userID, UserID: userID, Items: items}, nil
}

func (m *MockWishlistRepo) AddItem(ctx context.Context, userID string, item models.WishlistItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items[userID] {
		if it.ProductID == item.ProductID {
			return nil
		}
	}
	m.items[userID] = append(m.items[userID], item)
	return nil
}

func (m *MockWishlistRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.items[userID][:0]
	for _, it := range m.items[userID] {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	m.items[userID] = out
	return nil
}

// MockReviewRepo
type MockReviewRepo struct {
	CreateFunc        func(ctx context.Context, rv *models.Review) error
	ListByProductFunc func(ctx context.Context, productID string) ([]models.Review, error)
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rv)
	}
	return nil
}

func (m *MockReviewRepo) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID)
	}
	return []models.Review{}, nil
}

// MockCouponRepo
type MockCouponRepo struct {
	CreateFunc    func(ctx context.Context, c *models.Coupon) error
	GetByCodeFunc func(ctx context.Context, code string) (*models.Coupon, error)
}

func (m *MockCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

// memOrderRepo: заказы в памяти с проверкой версии при Update.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]models.Order

	// conflicts: сколько ближайших Update вернут ErrVersionConflict
	conflicts int
	updates   int
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{orders: map[string]models.Order{}} }

func (r *memOrderRepo) Create(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.RazorpayOrderID != nil && *o.RazorpayOrderID == gatewayOrderID {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) Update(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.conflicts > 0 {
		r.conflicts--
		return repository.ErrVersionConflict
	}
	cur, ok := r.orders[o.ID]
	if !ok || cur.Version != o.Version {
		return repository.ErrVersionConflict
	}
	o.Version++
	r.orders[o.ID] = *o
	return nil
}

// MockGateway
type MockGateway struct {
	CreateIntentFunc    func(ctx context.Context, amountMinor int64, currency, receipt string) (*service.PaymentIntent, error)
	VerifySignatureFunc func(ctx context.Context, intentID, paymentID, signature string) error
	Calls               int
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*service.PaymentIntent, error) {
	m.Calls++
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, amountMinor, currency, receipt)
	}
	return &service.PaymentIntent{ID: "order_mock_" + receipt, Amount: amountMinor, Currency: currency}, nil
}

func (m *MockGateway) VerifySignature(ctx context.Context, intentID, paymentID, signature string) error {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(ctx, intentID, paymentID, signature)
	}
	if signature == "good" {
		return nil
	}
	return service.ErrPaymentFailed
}

func (m *MockGateway) KeyID() string { return "rzp_mock" }

// MockBus запоминает опубликованные события.
type MockBus struct {
	mu     sync.Mutex
	Events []service.OrderEvent
}

func (b *MockBus) PublishOrderEvent(ctx context.Context, e service.OrderEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, e)
	return nil
}

func (b *MockBus) Types() []service.OrderEventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]service.OrderEventType, 0, len(b.Events))
	for _, e := range b.Events {
		out = append(out, e.Type)
	}
	return out
}
