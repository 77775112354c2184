package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
	"github.com/pocketfox/pocketfox_backend/internal/middleware"
)

// balanceHandler handles HTTP requests for aggregate balance totals.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to aggregate balances.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balance := rg.Group("/balance")
	{
		balance.GET("/summary", h.getSummary)
		balance.POST("/refresh", h.refreshTotals)
	}
}

// getSummary godoc
// @Summary Get aggregate balance totals
// @Description Totals cover every account not excluded from aggregation
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Router /balance/summary [get]
func (h *balanceHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.balanceService.Summary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute balance summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}

// refreshTotals godoc
// @Summary Recompute aggregate balance totals
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 500 {object} map[string]string "Failed to refresh totals"
// @Router /balance/refresh [post]
func (h *balanceHandler) refreshTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.balanceService.RefreshTotals(c.Request.Context()); err != nil {
		logger.Error("Failed to refresh balance totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh totals"})
		return
	}

	summary, err := h.balanceService.Summary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read refreshed totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh totals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}
