package api

import (
	"log/slog"
	"net/http"
	"time"

	"equity_go/internal/domain"
	"equity_go/internal/infra"
	"equity_go/internal/service"

	"github.com/gin-gonic/gin"
)

// Server wires the gin router to the trading service.
type Server struct {
	router *gin.Engine
	svc    *service.TradingService
	store  domain.InstrumentStore
	hub    *TradeHub
	logger *slog.Logger
}

// NewServer builds the router with logging, recovery and all routes.
func NewServer(svc *service.TradingService, store domain.InstrumentStore, hub *TradeHub, logger *slog.Logger) *Server {
	g := gin.New()

	s := &Server{
		router: g,
		svc:    svc,
		store:  store,
		hub:    hub,
		logger: logger,
	}

	g.Use(requestLogger(logger))

	// Panics surface as the generic error envelope, never a stack trace.
	g.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		infra.GlobalMetrics.RecordError()
		logger.Error("panic recovered", slog.Any("panic", recovered))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}))

	g.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Endpoint not found")
	})

	v1 := g.Group("/api/v1")
	v1.GET("/instruments", s.getInstruments)
	v1.PUT("/instruments/:symbol/favorite", s.toggleFavorite)
	v1.POST("/orders", s.placeOrder)
	v1.GET("/orders/:orderId", s.getOrder)
	v1.GET("/trades", s.getTrades)
	v1.GET("/portfolio", s.getPortfolio)
	v1.GET("/metrics", s.getMetrics)

	if hub != nil {
		g.GET("/ws/trades", hub.Subscribe)
	}

	return s
}

// Router exposes the underlying handler for the HTTP server.
func (s *Server) Router() http.Handler {
	return s.router
}

// requestLogger records latency and outcome of every request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		infra.GlobalMetrics.RecordRequest(latency.Nanoseconds())
		logger.Info("http_request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", latency),
		)
	}
}

// All responses are envelopes: {"status": ..., "data"|"message": ...}.

func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}
