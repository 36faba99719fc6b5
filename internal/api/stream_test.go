package api

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"equity_go/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

func dialTestHub(t *testing.T, hub *TradeHub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws/trades", hub.Subscribe)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/trades"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens in the handler goroutine; wait for it.
	waitForSubscribers(t, hub, 1)
	return conn
}

func waitForSubscribers(t *testing.T, hub *TradeHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers = %d, want %d", hub.SubscriberCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTradeHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewTradeHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	conn := dialTestHub(t, hub)

	trade := domain.Trade{
		TradeID:   "t-1",
		OrderID:   "o-1",
		UserID:    "user123",
		Symbol:    "RELIANCE",
		OrderType: "BUY",
		Quantity:  10,
		Price:     decimal.RequireFromString("2450.50"),
		Timestamp: time.Now(),
	}
	hub.Publish(trade)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received domain.Trade
	if err := conn.ReadJSON(&received); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if received.TradeID != "t-1" || received.Symbol != "RELIANCE" {
		t.Errorf("received = %+v", received)
	}
	if !received.Price.Equal(trade.Price) {
		t.Errorf("price = %s, want %s", received.Price, trade.Price)
	}
}

func TestTradeHub_DropsClosedSubscriber(t *testing.T) {
	hub := NewTradeHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	conn := dialTestHub(t, hub)

	conn.Close()
	waitForSubscribers(t, hub, 0)

	// Publishing to an empty hub must not panic.
	hub.Publish(domain.Trade{TradeID: "t-2"})
}
