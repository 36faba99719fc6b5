package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"equity_go/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradingService owns the in-memory trading state: the order book, the
// trade log and the portfolio ledger. All trading state lives for the
// lifetime of the process; a restart intentionally resets it.
//
// A single mutex serializes validate-and-place (including the synchronous
// market-order execution) against every read, so the sell-side balance
// check and the subsequent execution always observe a consistent
// portfolio snapshot.
type TradingService struct {
	mu       sync.Mutex
	catalog  map[string]domain.Instrument
	orders   map[string]*domain.Order
	trades   []domain.Trade
	holdings map[string]*domain.Holding

	userID  string
	onTrade func(domain.Trade) // notified after each execution, outside the lock
	now     func() time.Time
}

// NewTradingService creates a service with an empty order book and ledger
// over the given instrument catalog.
func NewTradingService(instruments []domain.Instrument, userID string) *TradingService {
	catalog := make(map[string]domain.Instrument, len(instruments))
	for _, inst := range instruments {
		catalog[inst.Symbol] = inst
	}
	return &TradingService{
		catalog:  catalog,
		orders:   make(map[string]*domain.Order),
		holdings: make(map[string]*domain.Holding),
		userID:   userID,
		now:      time.Now,
	}
}

// SetTradeListener registers a callback invoked once per executed trade.
func (s *TradingService) SetTradeListener(fn func(domain.Trade)) {
	s.onTrade = fn
}

// Instruments returns the catalog sorted by symbol.
func (s *TradingService) Instruments() []domain.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Instrument, 0, len(s.catalog))
	for _, inst := range s.catalog {
		result = append(result, inst)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})
	return result
}

// SetFavorite updates the favorite flag on a catalog entry. Reference
// metadata only; the trading path never calls this.
func (s *TradingService) SetFavorite(symbol string, favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inst, ok := s.catalog[symbol]; ok {
		inst.IsFavorite = favorite
		s.catalog[symbol] = inst
	}
}

// PlaceOrder validates the request, resolves the transaction price,
// inserts the order into the order book and, for market orders, executes
// it synchronously before returning. The returned order carries the
// post-execution state.
func (s *TradingService) PlaceOrder(req *domain.OrderRequest) (domain.Order, error) {
	s.mu.Lock()

	if err := s.validate(req); err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}

	price := req.Price
	if req.OrderStyle == domain.OrderStyleMarket {
		price = s.catalog[req.Symbol].LastTradedPrice
	}

	order := &domain.Order{
		OrderID:    uuid.NewString(),
		UserID:     s.userID,
		Symbol:     req.Symbol,
		OrderType:  req.OrderType,
		OrderStyle: req.OrderStyle,
		Quantity:   req.Quantity,
		Price:      price,
		Status:     domain.OrderStatusPlaced,
		Timestamp:  s.now(),
	}
	s.orders[order.OrderID] = order

	var executed *domain.Trade
	if order.OrderStyle == domain.OrderStyleMarket {
		executed = s.execute(order.OrderID)
	}

	result := *order
	s.mu.Unlock()

	if executed != nil && s.onTrade != nil {
		s.onTrade(*executed)
	}
	return result, nil
}

// validate applies the placement rules in order; the first failure wins.
// Caller must hold the lock (the sell-side check reads the ledger).
func (s *TradingService) validate(req *domain.OrderRequest) error {
	if req == nil {
		return domain.NewValidationError("Request body is required")
	}
	if req.OrderType != domain.OrderTypeBuy && req.OrderType != domain.OrderTypeSell {
		return domain.NewValidationError("orderType must be BUY or SELL")
	}
	if req.OrderStyle != domain.OrderStyleMarket && req.OrderStyle != domain.OrderStyleLimit {
		return domain.NewValidationError("orderStyle must be MARKET or LIMIT")
	}
	if req.Symbol == "" {
		return domain.NewValidationError("symbol is required")
	}
	if req.Quantity <= 0 {
		return domain.NewValidationError("quantity must be greater than 0")
	}
	// Presence check only: a zero price counts as missing.
	if req.OrderStyle == domain.OrderStyleLimit && req.Price.IsZero() {
		return domain.NewValidationError("price is required for LIMIT orders")
	}
	if _, ok := s.catalog[req.Symbol]; !ok {
		return domain.NewValidationError(fmt.Sprintf("Invalid symbol: %s", req.Symbol))
	}
	if req.OrderType == domain.OrderTypeSell {
		var held int64
		if h, ok := s.holdings[req.Symbol]; ok {
			held = h.Quantity
		}
		if held < req.Quantity {
			return domain.NewValidationError("Insufficient holdings to sell")
		}
	}
	return nil
}

// execute transitions an order to EXECUTED, appends the trade record and
// applies the portfolio delta. No-op if the order is missing. Caller must
// hold the lock and must invoke this exactly once per order: a second
// call would double-book the trade.
func (s *TradingService) execute(orderID string) *domain.Trade {
	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}

	order.Status = domain.OrderStatusExecuted

	trade := domain.Trade{
		TradeID:   uuid.NewString(),
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Symbol:    order.Symbol,
		OrderType: order.OrderType,
		Quantity:  order.Quantity,
		Price:     order.Price,
		Timestamp: s.now(),
	}
	s.trades = append(s.trades, trade)

	h, ok := s.holdings[order.Symbol]
	if !ok {
		h = &domain.Holding{
			Symbol:       order.Symbol,
			AveragePrice: decimal.Zero,
			TotalCost:    decimal.Zero,
		}
		s.holdings[order.Symbol] = h
	}

	switch order.OrderType {
	case domain.OrderTypeBuy:
		h.ApplyBuy(order.Quantity, order.Price)
		h.VerifyInvariant()
	case domain.OrderTypeSell:
		if exhausted := h.ApplySell(order.Quantity); exhausted {
			delete(s.holdings, order.Symbol)
		} else {
			h.VerifyInvariant()
		}
	}

	return &trade
}

// Order returns the stored order or ErrOrderNotFound.
func (s *TradingService) Order(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *order, nil
}

// Trades returns the executed trades belonging to the configured user,
// in the order they were appended (insertion order = execution order).
func (s *TradingService) Trades() []domain.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Trade, 0, len(s.trades))
	for _, t := range s.trades {
		if t.UserID == s.userID {
			result = append(result, t)
		}
	}
	return result
}

// Portfolio projects every held symbol against the catalog's current last
// traded price. Read-only. An instrument missing from the catalog values
// the position at zero rather than failing.
func (s *TradingService) Portfolio() []domain.PortfolioView {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.PortfolioView, 0, len(s.holdings))
	for symbol, h := range s.holdings {
		currentPrice := decimal.Zero
		if inst, ok := s.catalog[symbol]; ok {
			currentPrice = inst.LastTradedPrice
		}
		result = append(result, domain.PortfolioView{
			Symbol:       symbol,
			Quantity:     h.Quantity,
			AveragePrice: h.AveragePrice,
			CurrentValue: decimal.NewFromInt(h.Quantity).Mul(currentPrice),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})
	return result
}
