package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"investment-ledger-go/internal/api"
	"investment-ledger-go/internal/config"
	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/models"
)

// Client talks to a running ledger API server. Requests are paced by a rate
// limiter and never retried.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewClient creates a client for the server at cfg.BaseURL.
func NewClient(cfg config.Client, logger *zap.Logger) *Client {
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)
	if cfg.RateLimit <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Client{
		client:  resty.New().SetBaseURL(cfg.BaseURL).SetHeader("Accept", "application/json"),
		logger:  logger.Named("ledger-client"),
		limiter: limiter,
	}
}

// doRequest waits for the limiter, executes req and turns error statuses
// into errors. 400 and 404 map to ledger.ErrValidation and ledger.ErrNotFound.
func (c *Client) doRequest(ctx context.Context, method, path string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+path))
	resp, err := req.SetContext(ctx).SetError(&api.ErrorResponse{}).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return resp, nil
	}

	msg := resp.String()
	if e, ok := resp.Error().(*api.ErrorResponse); ok && e.Error != "" {
		msg = e.Error
	}
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%s: %w", msg, ledger.ErrValidation)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", msg, ledger.ErrNotFound)
	default:
		return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), msg)
	}
}

// ListTransactions returns the transactions matching c.
func (c *Client) ListTransactions(ctx context.Context, criteria ledger.Criteria) ([]models.Transaction, error) {
	params := url.Values{}
	if criteria.Asset != "" {
		params.Set("asset", criteria.Asset)
	}
	if criteria.Action != "" {
		params.Set("action", criteria.Action)
	}
	if criteria.Broker != "" {
		params.Set("broker", criteria.Broker)
	}

	var transactions []models.Transaction
	req := c.client.R().SetQueryParamsFromValues(params).SetResult(&transactions)
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/transactions", req); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction returns one transaction.
func (c *Client) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	var tx models.Transaction
	req := c.client.R().SetPathParam("id", id).SetResult(&tx)
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/transactions/{id}", req); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return tx, nil
}

// CreateTransaction records d and returns the stored transaction.
func (c *Client) CreateTransaction(ctx context.Context, d models.Draft) (models.Transaction, error) {
	var tx models.Transaction
	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(d).
		SetResult(&tx)
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/transactions", req); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	c.logger.Info("Created transaction", zap.String("id", tx.ID))
	return tx, nil
}

// UpdateTransaction replaces the transaction with the given id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, d models.Draft) (models.Transaction, error) {
	var tx models.Transaction
	req := c.client.R().
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(d).
		SetResult(&tx)
	if _, err := c.doRequest(ctx, http.MethodPut, "/api/transactions/{id}", req); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	req := c.client.R().SetPathParam("id", id)
	if _, err := c.doRequest(ctx, http.MethodDelete, "/api/transactions/{id}", req); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return nil
}

// Statistics returns the overview figures.
func (c *Client) Statistics(ctx context.Context) (api.StatisticsResponse, error) {
	var stats api.StatisticsResponse
	req := c.client.R().SetResult(&stats)
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/statistics", req); err != nil {
		return api.StatisticsResponse{}, fmt.Errorf("failed to get statistics: %w", err)
	}
	return stats, nil
}

// Allocation returns the per-asset totals and shares.
func (c *Client) Allocation(ctx context.Context) ([]api.AllocationEntry, error) {
	var entries []api.AllocationEntry
	req := c.client.R().SetResult(&entries)
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/allocation", req); err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return entries, nil
}

// Filters returns the distinct assets and brokers.
func (c *Client) Filters(ctx context.Context) (api.FiltersResponse, error) {
	var filters api.FiltersResponse
	req := c.client.R().SetResult(&filters)
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/filters", req); err != nil {
		return api.FiltersResponse{}, fmt.Errorf("failed to get filters: %w", err)
	}
	return filters, nil
}
