package sdk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"equity_go/internal/api"
	"equity_go/internal/domain"
	"equity_go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func startTestBackend(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	instruments := []domain.Instrument{
		{Symbol: "RELIANCE", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("2450.50")},
	}
	svc := service.NewTradingService(instruments, "user123")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := api.NewServer(svc, nil, nil, logger)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	return New(ts.URL)
}

func TestClient_EndToEnd(t *testing.T) {
	c := startTestBackend(t)
	ctx := context.Background()

	instruments, err := c.Instruments(ctx)
	if err != nil {
		t.Fatalf("Instruments failed: %v", err)
	}
	if len(instruments) != 1 || instruments[0].Symbol != "RELIANCE" {
		t.Fatalf("instruments = %+v", instruments)
	}

	order, err := c.PlaceOrder(ctx, &domain.OrderRequest{
		Symbol:     "RELIANCE",
		OrderType:  "BUY",
		OrderStyle: "MARKET",
		Quantity:   10,
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.Status != domain.OrderStatusExecuted {
		t.Errorf("order status = %s, want EXECUTED", order.Status)
	}

	fetched, err := c.OrderStatus(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("OrderStatus failed: %v", err)
	}
	if fetched.OrderID != order.OrderID {
		t.Errorf("fetched order %s, want %s", fetched.OrderID, order.OrderID)
	}

	trades, err := c.Trades(ctx)
	if err != nil {
		t.Fatalf("Trades failed: %v", err)
	}
	if len(trades) != 1 || trades[0].OrderID != order.OrderID {
		t.Errorf("trades = %+v", trades)
	}

	portfolio, err := c.Portfolio(ctx)
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}
	if len(portfolio) != 1 || portfolio[0].Quantity != 10 {
		t.Errorf("portfolio = %+v", portfolio)
	}
}

func TestClient_ServerErrorEnvelope(t *testing.T) {
	c := startTestBackend(t)

	_, err := c.PlaceOrder(context.Background(), &domain.OrderRequest{
		Symbol:     "WIPRO",
		OrderType:  "BUY",
		OrderStyle: "MARKET",
		Quantity:   1,
	})
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != "error" {
		t.Errorf("Status = %q, want error", apiErr.Status)
	}
	if apiErr.Message != "Invalid symbol: WIPRO" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestClient_NetworkFailureEnvelope(t *testing.T) {
	// Nothing listens here; the transport error must surface in the
	// envelope shape.
	c := New("http://127.0.0.1:1")

	_, err := c.Instruments(context.Background())
	if err == nil {
		t.Fatal("expected network error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != "error" || apiErr.Message == "" {
		t.Errorf("APIError = %+v", apiErr)
	}
}
