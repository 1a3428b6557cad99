package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/config"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) Client {
	return NewClient(config.PaymentConfig{
		BaseURL:   baseURL,
		KeyID:     "key-id",
		KeySecret: "key-secret",
		Timeout:   2 * time.Second,
	})
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key-id", user)
		assert.Equal(t, "key-secret", pass)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(499900), req.Amount)

		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_abc123",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	order, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{
		Amount:   499900,
		Currency: "INR",
		Receipt:  "sub_42",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, "sub_42", order.Receipt)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestCreateOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestCreateOrder_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
