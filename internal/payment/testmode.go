package payment

import (
	"context"
	"strings"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

const testModeSecret = "test_mode_secret"

// TestGateway: локальная заглушка шлюза для PAYMENT_TEST_MODE=true.
// Намерения получают id вида order_test_*, подпись проверяется тем же HMAC.
type TestGateway struct {
	secret string
	log    *zap.Logger
}

func NewTestGateway(secret string, log *zap.Logger) *TestGateway {
	if secret == "" {
		secret = testModeSecret
	}
	log.Warn("Платёжный шлюз работает в тестовом режиме")
	return &TestGateway{secret: secret, log: log}
}

func (g *TestGateway) KeyID() string { return "rzp_test_mode" }

func (g *TestGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*service.PaymentIntent, error) {
	suffix, err := nanorand.Gen(14)
	if err != nil {
		return nil, err
	}
	id := "order_test_" + strings.ToLower(suffix)
	g.log.Info("test payment intent created", zap.String("intent_id", id), zap.Int64("amount", amountMinor))
	return &service.PaymentIntent{ID: id, Amount: amountMinor, Currency: currency}, nil
}

func (g *TestGateway) VerifySignature(ctx context.Context, intentID, paymentID, signature string) error {
	return verify(g.secret, intentID, paymentID, signature)
}

// NewGateway выбирает реализацию по конфигурации.
func NewGateway(cfg *config.Razorpay, log *zap.Logger) service.PaymentGateway {
	if cfg.TestMode {
		return NewTestGateway(cfg.KeySecret, log)
	}
	return NewClient(cfg, log)
}
