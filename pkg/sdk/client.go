// Package sdk wraps the trading REST API as plain function calls.
// Network-level failures surface in the same error-envelope shape the
// server uses.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"equity_go/internal/domain"
)

// APIError mirrors the server's error envelope. Transport failures are
// reported through the same shape.
type APIError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the trading backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL (e.g. "http://localhost:5000").
func New(baseURL string) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxConnsPerHost = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// envelope is the common response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Status: "error", Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Status: "error", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: "error", Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: "error", Message: fmt.Sprintf("malformed response: %v", err)}
	}

	if env.Status != "success" {
		return &APIError{Status: env.Status, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Status: "error", Message: fmt.Sprintf("malformed payload: %v", err)}
		}
	}
	return nil
}

// Instruments fetches the tradable instrument catalog.
func (c *Client) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	var out []domain.Instrument
	if err := c.do(ctx, http.MethodGet, "/api/v1/instruments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceOrder submits an order. For LIMIT orders the request price is
// required; MARKET orders execute immediately at the last traded price.
func (c *Client) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", req, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// OrderStatus fetches a single order by id.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+orderID, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// Trades fetches all executed trades.
func (c *Client) Trades(ctx context.Context) ([]domain.Trade, error) {
	var out []domain.Trade
	if err := c.do(ctx, http.MethodGet, "/api/v1/trades", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Portfolio fetches the current holdings valued at the last traded price.
func (c *Client) Portfolio(ctx context.Context) ([]domain.PortfolioView, error) {
	var out []domain.PortfolioView
	if err := c.do(ctx, http.MethodGet, "/api/v1/portfolio", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
