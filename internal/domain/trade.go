package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the immutable record of an executed order. Exactly one trade
// exists per executed order; it mirrors the order's economic terms.
type Trade struct {
	TradeID   string          `json:"tradeId"`
	OrderID   string          `json:"orderId"`
	UserID    string          `json:"userId"`
	Symbol    string          `json:"symbol"`
	OrderType string          `json:"orderType"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}
