package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/config"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"

	"go.uber.org/zap"
)

// OrderRequest is the upstream order-creation payload. Amount is in the
// smallest currency unit (paise).
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order is the gateway's created order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client creates payment orders against the external gateway.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type httpClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewClient builds a gateway client from config.
func NewClient(cfg config.PaymentConfig) Client {
	return &httpClient{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateOrder posts an order to the gateway. Any transport or non-2xx
// outcome surfaces as ErrUpstream; the caller does not retry.
func (c *httpClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		logger.Get().Warn("payment gateway unreachable", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", apperrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Warn("payment gateway rejected order",
			zap.Int("status", resp.StatusCode),
			zap.String("receipt", req.Receipt))
		return nil, fmt.Errorf("create order: gateway status %d: %w", resp.StatusCode, apperrors.ErrUpstream)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("create order: decode response: %w", apperrors.ErrUpstream)
	}
	return &order, nil
}
