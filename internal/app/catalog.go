package app

import (
	"equity_go/internal/domain"

	"github.com/shopspring/decimal"
)

// defaultCatalog is the closed instrument universe seeded into the
// reference store on first boot.
var defaultCatalog = []domain.Instrument{
	{Symbol: "RELIANCE", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("2450.50"), IsActive: true},
	{Symbol: "TCS", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("3680.25"), IsActive: true},
	{Symbol: "INFY", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("1542.75"), IsActive: true},
	{Symbol: "HDFCBANK", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("1625.30"), IsActive: true},
	{Symbol: "ICICIBANK", Exchange: "NSE", InstrumentType: "EQUITY", LastTradedPrice: decimal.RequireFromString("1089.60"), IsActive: true},
}
