package api

import (
	"log/slog"
	"net/http"

	"equity_go/internal/domain"
	"equity_go/internal/infra"

	"github.com/gin-gonic/gin"
)

func (s *Server) getInstruments(c *gin.Context) {
	respondData(c, http.StatusOK, s.svc.Instruments())
}

func (s *Server) placeOrder(c *gin.Context) {
	var req domain.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		infra.GlobalMetrics.RecordOrderRejected()
		respondError(c, http.StatusBadRequest, "Request body is required")
		return
	}

	order, err := s.svc.PlaceOrder(&req)
	if err != nil {
		if domain.IsValidation(err) {
			infra.GlobalMetrics.RecordOrderRejected()
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(c, "PlaceOrder", err)
		return
	}

	infra.GlobalMetrics.RecordOrderPlaced()
	if order.IsExecuted() {
		infra.GlobalMetrics.RecordOrderExecuted()
	}
	respondData(c, http.StatusCreated, order)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.svc.Order(c.Param("orderId"))
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(c, "Order", err)
		return
	}
	respondData(c, http.StatusOK, order)
}

func (s *Server) getTrades(c *gin.Context) {
	respondData(c, http.StatusOK, s.svc.Trades())
}

func (s *Server) getPortfolio(c *gin.Context) {
	respondData(c, http.StatusOK, s.svc.Portfolio())
}

func (s *Server) toggleFavorite(c *gin.Context) {
	symbol := c.Param("symbol")

	favorite, err := s.store.ToggleFavorite(symbol)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(c, "ToggleFavorite", err)
		return
	}

	// Keep the in-memory catalog in step with the reference store.
	s.svc.SetFavorite(symbol, favorite)

	respondData(c, http.StatusOK, gin.H{"symbol": symbol, "is_favorite": favorite})
}

func (s *Server) getMetrics(c *gin.Context) {
	respondData(c, http.StatusOK, infra.GlobalMetrics.Snapshot())
}

func (s *Server) internalError(c *gin.Context, where string, err error) {
	infra.GlobalMetrics.RecordError()
	s.logger.Error("internal_error", slog.String("where", where), slog.Any("error", err))
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
