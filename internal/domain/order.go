package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a user's request to buy or sell a quantity of an
// instrument. Created once; a market order transitions PLACED -> EXECUTED
// exactly once, synchronously at placement. Limit orders stay PLACED
// (there is no matching engine).
type Order struct {
	OrderID    string          `json:"orderId"`
	UserID     string          `json:"userId"`
	Symbol     string          `json:"symbol"`
	OrderType  string          `json:"orderType"`  // "BUY", "SELL"
	OrderStyle string          `json:"orderStyle"` // "MARKET", "LIMIT"
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`  // limit price, or last traded price at placement for market orders
	Status     string          `json:"status"` // "PLACED", "EXECUTED"
	Timestamp  time.Time       `json:"timestamp"`
}

const (
	OrderTypeBuy  = "BUY"
	OrderTypeSell = "SELL"

	OrderStyleMarket = "MARKET"
	OrderStyleLimit  = "LIMIT"

	OrderStatusPlaced   = "PLACED"
	OrderStatusExecuted = "EXECUTED"
)

// IsExecuted checks if the order has been filled.
func (o *Order) IsExecuted() bool {
	return o.Status == OrderStatusExecuted
}

// OrderRequest is the raw place-order payload before validation.
type OrderRequest struct {
	Symbol     string          `json:"symbol"`
	OrderType  string          `json:"orderType"`
	OrderStyle string          `json:"orderStyle"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}
