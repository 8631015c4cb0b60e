package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client: HTTP-клиент Orders API Razorpay.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	maxRetries int
	http       *http.Client
	newBackOff func() backoff.BackOff
	log        *zap.Logger
}

func NewClient(cfg *config.Razorpay, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		http:       &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		log: log,
	}
}

func (c *Client) KeyID() string { return c.keyID }

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateIntent создаёт заказ Razorpay на сумму в пайсах. Сетевые ошибки и 5xx
// повторяются не более maxRetries раз; после этого возвращается ErrGatewayUnavailable.
// Отказ Razorpay (4xx) не повторяется и возвращается как ErrGatewayRejected.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*service.PaymentIntent, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("%w: razorpay credentials are not configured", service.ErrGatewayUnavailable)
	}
	body, err := json.Marshal(createOrderRequest{Amount: amountMinor, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, err
	}

	var out orderResponse
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.SetBasicAuth(c.keyID, c.keySecret)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn("razorpay request failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			c.log.Warn("razorpay response read failed", zap.Int("attempt", attempt), zap.Error(err))
			return fmt.Errorf("read razorpay response: %w", err)
		}

		switch {
		case resp.StatusCode >= 500:
			c.log.Warn("razorpay server error", zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			return fmt.Errorf("razorpay status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			var ae apiError
			_ = json.Unmarshal(raw, &ae)
			return backoff.Permanent(fmt.Errorf("%w: status %d: %s", service.ErrGatewayRejected, resp.StatusCode, ae.Error.Description))
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode razorpay response: %w", err))
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(max(c.maxRetries, 0))), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if errors.Is(err, service.ErrGatewayRejected) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", service.ErrGatewayUnavailable, err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: razorpay returned empty order id", service.ErrGatewayUnavailable)
	}

	return &service.PaymentIntent{ID: out.ID, Amount: out.Amount, Currency: out.Currency}, nil
}

func (c *Client) VerifySignature(ctx context.Context, intentID, paymentID, signature string) error {
	if c.keySecret == "" {
		return fmt.Errorf("%w: razorpay secret is not configured", service.ErrGatewayUnavailable)
	}
	return verify(c.keySecret, intentID, paymentID, signature)
}

// Signature: HMAC-SHA256(order_id|payment_id) в hex, как его считает Razorpay.
func Signature(secret, intentID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verify(secret, intentID, paymentID, signature string) error {
	expected := Signature(secret, intentID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
		return service.ErrPaymentFailed
	}
	return nil
}
