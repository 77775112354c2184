package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
	"github.com/pocketfox/pocketfox_backend/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:from/:to", h.getRate)
	}
}

// getRate godoc
// @Summary Get the conversion ratio between two currencies
// @Description Serves the cached ratio, refreshing it from the external rate service when stale
// @Tags rates
// @Produce  json
// @Param   from path string true "Source currency code (3 letters)"
// @Param   to path string true "Target currency code (3 letters)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 502 {object} map[string]string "Rate service unavailable"
// @Router /rates/{from}/{to} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Param("from")
	to := c.Param("to")

	rate, err := h.rateService.GetRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Warn("Rate unavailable", slog.String("from", from), slog.String("to", to),
				slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Rate service unavailable"})
		} else {
			logger.Error("Failed to get rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
