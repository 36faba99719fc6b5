package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"equity_go/internal/domain"
	"equity_go/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const streamWriteTimeout = 5 * time.Second

// TradeHub broadcasts executed trades to websocket subscribers. It is
// registered as the trading service's trade listener.
type TradeHub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewTradeHub creates an empty hub.
func NewTradeHub(logger *slog.Logger) *TradeHub {
	return &TradeHub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Single-user local backend, no cross-origin policy to enforce.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish sends a trade to every subscriber, dropping broken connections.
func (h *TradeHub) Publish(trade domain.Trade) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(trade); err != nil {
			h.logger.Warn("dropping trade stream subscriber", slog.Any("error", err))
			conn.Close()
			delete(h.conns, conn)
			infra.GlobalMetrics.DecrementStreams()
		}
	}
}

// Subscribe upgrades the request and registers the connection for trade
// broadcasts. Inbound messages are discarded; the read loop only detects
// the close.
func (h *TradeHub) Subscribe(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	infra.GlobalMetrics.IncrementStreams()

	go h.readLoop(conn)
}

func (h *TradeHub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.conns[conn]; ok {
			delete(h.conns, conn)
			infra.GlobalMetrics.DecrementStreams()
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *TradeHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
