package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/inventory"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/notify"
)

// AuthUserKey is the gin context key the auth middleware stores the verified
// username under.
const AuthUserKey = "auth_user"

// InventoryHandler serves the ledger mutation endpoints and the cake check.
type InventoryHandler struct {
	svc    *inventory.Service
	notify *notify.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter. notify may be nil
// when the chat channel is not configured.
func NewInventoryHandler(svc *inventory.Service, notify *notify.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, notify: notify, logger: logger}
}

// ApplyDelta applies one signed stock change and returns the new quantity.
func (h *InventoryHandler) ApplyDelta(c *gin.Context) {
	var req models.DeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid delta payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Kind {
	case models.DeltaIntake, models.DeltaProduction, models.DeltaExport:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown delta kind"})
		return
	}

	quantity, err := h.svc.ApplyDelta(c.Request.Context(), req, c.GetString(AuthUserKey))
	if err != nil {
		h.logger.Error("failed applying delta", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory store unavailable"})
		return
	}

	if h.notify != nil {
		if err := h.notify.NotifyDelta(c.Request.Context(), req, quantity); err != nil {
			h.logger.Warn("delta notification failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"item": req.Item, "quantity": quantity})
}

// AdjustSnapshot replaces counted items in the latest snapshot and persists a
// new one.
func (h *InventoryHandler) AdjustSnapshot(c *gin.Context) {
	var req models.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid adjust payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.AdjustSnapshot(c.Request.Context(), req, c.GetString(AuthUserKey))
	if err != nil {
		h.logger.Error("failed adjusting snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetSnapshot returns the latest snapshot for a store.
func (h *InventoryHandler) GetSnapshot(c *gin.Context) {
	store := c.Param("store")
	if store == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
		return
	}

	snap, err := h.svc.CurrentSnapshot(c.Request.Context(), store)
	if err != nil {
		h.logger.Error("failed loading snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// RunCakeCheck evaluates the cake stock differential for both SKUs.
func (h *InventoryHandler) RunCakeCheck(c *gin.Context) {
	var req models.CakeCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid cake check payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.RunCakeCheck(c.Request.Context(), req, c.GetString(AuthUserKey))
	if err != nil {
		h.logger.Error("failed recording cake check", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory store unavailable"})
		return
	}

	if h.notify != nil {
		if err := h.notify.NotifyCakeCheck(c.Request.Context(), result); err != nil {
			h.logger.Warn("cake check notification failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}
