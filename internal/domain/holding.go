package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// invariantTolerance absorbs the rounding introduced when the average
// price is derived by division.
var invariantTolerance = decimal.New(1, -6) // 0.000001

// Holding represents a position in a single symbol under
// weighted-average-cost accounting. Invariant: TotalCost equals
// Quantity * AveragePrice within rounding tolerance, and Quantity > 0
// for any holding present in the ledger.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// ApplyBuy adds qty shares bought at price and recomputes the weighted
// average. The divisor is the new quantity, which is always positive
// for a validated buy.
func (h *Holding) ApplyBuy(qty int64, price decimal.Decimal) {
	h.TotalCost = h.TotalCost.Add(price.Mul(decimal.NewFromInt(qty)))
	h.Quantity += qty
	h.AveragePrice = h.TotalCost.Div(decimal.NewFromInt(h.Quantity))
}

// ApplySell removes qty shares. Selling realizes cost at the existing
// average: the average price is carried forward unchanged and only the
// total cost is re-derived from it. Returns true when the position is
// exhausted and must be removed from the ledger.
func (h *Holding) ApplySell(qty int64) bool {
	h.Quantity -= qty
	if h.Quantity == 0 {
		return true
	}
	h.TotalCost = decimal.NewFromInt(h.Quantity).Mul(h.AveragePrice)
	return false
}

// VerifyInvariant checks that the holding satisfies the cost invariant.
// Call this after any state change to ensure data integrity.
func (h *Holding) VerifyInvariant() {
	if h.Quantity <= 0 {
		panic(fmt.Sprintf("HOLDING_INVARIANT_NON_POSITIVE_QUANTITY: %s = %d",
			h.Symbol, h.Quantity))
	}

	derived := decimal.NewFromInt(h.Quantity).Mul(h.AveragePrice)
	if h.TotalCost.Sub(derived).Abs().GreaterThan(invariantTolerance) {
		panic(fmt.Sprintf("HOLDING_INVARIANT_COST_DRIFT: %s total=%s, qty*avg=%s",
			h.Symbol, h.TotalCost.String(), derived.String()))
	}
}

// PortfolioView combines a holding with the instrument's current last
// traded price for the read path.
type PortfolioView struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentValue decimal.Decimal `json:"currentValue"`
}
