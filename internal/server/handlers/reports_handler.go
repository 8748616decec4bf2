package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
)

// ReportsHandler serves the read-side aggregation endpoints.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// GetSales returns revenue channel sums for a date range and store filter.
func (h *ReportsHandler) GetSales(c *gin.Context) {
	var query models.SalesQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.logger.Warn("invalid sales query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.svc.GetSales(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed aggregating sales", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sales data unavailable"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListStores returns the deduplicated store directory.
func (h *ReportsHandler) ListStores(c *gin.Context) {
	stores, err := h.svc.ListStores(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing stores", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "store directory unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// UpdateSalesChannel rewrites one payment channel amount, recomputing the
// stored total by difference.
func (h *ReportsHandler) UpdateSalesChannel(c *gin.Context) {
	var req models.ChannelUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid channel update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.UpdateChannel(c.Request.Context(), req)
	switch {
	case errors.Is(err, reporting.ErrUnknownChannel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown revenue channel"})
		return
	case errors.Is(err, reporting.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no sale record for store/date"})
		return
	case err != nil:
		h.logger.Error("failed updating sales channel", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sales data unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQuantity returns product quantity aggregates.
func (h *ReportsHandler) GetQuantity(c *gin.Context) {
	var query models.QuantityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.logger.Warn("invalid quantity query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.svc.GetQuantity(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed aggregating quantities", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "quantity data unavailable"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetExports returns the aggregate over the deduplicated export set.
func (h *ReportsHandler) GetExports(c *gin.Context) {
	var query models.ExportQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		h.logger.Warn("invalid export query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.svc.GetExports(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed aggregating exports", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "export data unavailable"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
