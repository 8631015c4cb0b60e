package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string, retries int) *Client {
	c := NewClient(&config.Razorpay{
		KeyID:      "rzp_key",
		KeySecret:  "rzp_secret",
		BaseURL:    url,
		Timeout:    time.Second,
		MaxRetries: retries,
	}, zap.NewNop())
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestCreateIntent_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_key", user)
		assert.Equal(t, "rzp_secret", pass)

		var req createOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(90000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "JC20250101ABCDEF", req.Receipt)

		_ = json.NewEncoder(w).Encode(orderResponse{ID: "order_abc", Amount: req.Amount, Currency: req.Currency, Status: "created"})
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL, 3).CreateIntent(context.Background(), 90000, "INR", "JC20250101ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", intent.ID)
	assert.Equal(t, int64(90000), intent.Amount)
}

func TestCreateIntent_RetriesThenGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).CreateIntent(context.Background(), 100, "INR", "r")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrGatewayUnavailable))
	// первая попытка + 2 повтора
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreateIntent_RecoversAfterTransientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(orderResponse{ID: "order_ok", Amount: 100, Currency: "INR"})
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL, 3).CreateIntent(context.Background(), 100, "INR", "r")
	require.NoError(t, err)
	assert.Equal(t, "order_ok", intent.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreateIntent_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).CreateIntent(context.Background(), 100, "INR", "r")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrGatewayRejected)
	assert.False(t, errors.Is(err, service.ErrGatewayUnavailable))
	assert.True(t, strings.Contains(err.Error(), "Authentication failed"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateIntent_TruncatedBodyIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// обещаем больше байт, чем отдаём: клиент получит unexpected EOF
			w.Header().Set("Content-Length", "512")
			_, _ = w.Write([]byte(`{"id":"order_`))
			return
		}
		_ = json.NewEncoder(w).Encode(orderResponse{ID: "order_full", Amount: 100, Currency: "INR"})
	}))
	defer srv.Close()

	intent, err := newTestClient(srv.URL, 3).CreateIntent(context.Background(), 100, "INR", "r")
	require.NoError(t, err)
	assert.Equal(t, "order_full", intent.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreateIntent_NoCredentials(t *testing.T) {
	c := NewClient(&config.Razorpay{BaseURL: "http://unused"}, zap.NewNop())
	_, err := c.CreateIntent(context.Background(), 100, "INR", "r")
	assert.True(t, errors.Is(err, service.ErrGatewayUnavailable))
}

func TestVerifySignature(t *testing.T) {
	c := newTestClient("http://unused", 0)
	ctx := context.Background()
	good := Signature("rzp_secret", "order_1", "pay_1")

	assert.NoError(t, c.VerifySignature(ctx, "order_1", "pay_1", good))
	assert.NoError(t, c.VerifySignature(ctx, "order_1", "pay_1", strings.ToUpper(good)))
	assert.ErrorIs(t, c.VerifySignature(ctx, "order_1", "pay_2", good), service.ErrPaymentFailed)
	assert.ErrorIs(t, c.VerifySignature(ctx, "order_1", "pay_1", "deadbeef"), service.ErrPaymentFailed)

	noSecret := NewClient(&config.Razorpay{KeyID: "k"}, zap.NewNop())
	assert.ErrorIs(t, noSecret.VerifySignature(ctx, "order_1", "pay_1", good), service.ErrGatewayUnavailable)
}

func TestTestGateway(t *testing.T) {
	g := NewTestGateway("", zap.NewNop())
	ctx := context.Background()

	intent, err := g.CreateIntent(ctx, 5000, "INR", "r")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.ID, "order_test_"))
	assert.Equal(t, int64(5000), intent.Amount)

	sig := Signature(testModeSecret, intent.ID, "pay_test")
	assert.NoError(t, g.VerifySignature(ctx, intent.ID, "pay_test", sig))
	assert.ErrorIs(t, g.VerifySignature(ctx, intent.ID, "pay_test", "bad"), service.ErrPaymentFailed)
}

func TestNewGateway_SelectsByFlag(t *testing.T) {
	_, isTest := NewGateway(&config.Razorpay{TestMode: true}, zap.NewNop()).(*TestGateway)
	assert.True(t, isTest)
	_, isClient := NewGateway(&config.Razorpay{}, zap.NewNop()).(*Client)
	assert.True(t, isClient)
}
