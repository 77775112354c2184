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

// settingHandler handles HTTP requests related to application settings.
type settingHandler struct {
	settingService portssvc.SettingSvcFacade
}

func newSettingHandler(ss portssvc.SettingSvcFacade) *settingHandler {
	return &settingHandler{settingService: ss}
}

// registerSettingRoutes registers routes related to application settings.
func registerSettingRoutes(rg *gin.RouterGroup, settingService portssvc.SettingSvcFacade) {
	h := newSettingHandler(settingService)

	settings := rg.Group("/settings")
	{
		settings.GET("/default-currency", h.getDefaultCurrency)
		settings.PUT("/default-currency", h.setDefaultCurrency)
	}
}

// getDefaultCurrency godoc
// @Summary Get the app-wide default currency
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.DefaultCurrencyResponse
// @Failure 500 {object} map[string]string "Failed to read default currency"
// @Router /settings/default-currency [get]
func (h *settingHandler) getDefaultCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := h.settingService.GetDefaultCurrency(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read default currency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read default currency"})
		return
	}

	c.JSON(http.StatusOK, dto.DefaultCurrencyResponse{CurrencyCode: currency})
}

// setDefaultCurrency godoc
// @Summary Set the app-wide default currency
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   setting body dto.UpdateDefaultCurrencyRequest true "New default currency"
// @Success 200 {object} dto.DefaultCurrencyResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 500 {object} map[string]string "Failed to store default currency"
// @Router /settings/default-currency [put]
func (h *settingHandler) setDefaultCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateDefaultCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.settingService.SetDefaultCurrency(c.Request.Context(), req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to store default currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store default currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DefaultCurrencyResponse{CurrencyCode: req.CurrencyCode})
}
