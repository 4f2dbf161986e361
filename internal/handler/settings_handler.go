package handler

import (
	"net/http"
	"strings"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)
	managers := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	settings := router.Group("/api/settings")
	{
		settings.GET("/rates", staff, h.Rates)
		settings.PUT("/rates/:code", managers, h.UpdateRate)
		settings.POST("/rates/reset", managers, h.ResetRates)
		settings.GET("/preferences", staff, h.GetPreferences)
		settings.PUT("/preferences", managers, h.SetPreferences)
	}
}

// Rates returns the current exchange rate table
// @Summary      List exchange rates
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/settings/rates [get]
func (h *SettingsHandler) Rates(c *gin.Context) {
	rates, err := h.settingsService.Rates(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rates))
}

// UpdateRate sets the rate for one currency
// @Summary      Update exchange rate
// @Description  Sets base units per 1 unit of the currency; the base currency cannot be changed
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        code     path      string                     true  "Currency code"
// @Param        payload  body      service.UpdateRateRequest  true  "Rate Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/settings/rates/{code} [put]
func (h *SettingsHandler) UpdateRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	var req service.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.settingsService.UpdateRate(c.Request.Context(), code, req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"currency": code, "rate": req.Rate}))
}

// ResetRates restores the default exchange rate table
// @Summary      Reset exchange rates
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/settings/rates/reset [post]
func (h *SettingsHandler) ResetRates(c *gin.Context) {
	if err := h.settingsService.ResetRates(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"reset": true}))
}

// GetPreferences returns the persisted app preferences
// @Summary      Get preferences
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.Preferences}
// @Router       /api/settings/preferences [get]
func (h *SettingsHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.settingsService.GetPreferences(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prefs))
}

// SetPreferences persists display currency, locale and default tax rate
// @Summary      Update preferences
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.Preferences  true  "Preferences Payload"
// @Success      200      {object}  response.Response{data=service.Preferences}
// @Failure      400      {object}  response.Response
// @Router       /api/settings/preferences [put]
func (h *SettingsHandler) SetPreferences(c *gin.Context) {
	var prefs service.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.settingsService.SetPreferences(c.Request.Context(), prefs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prefs))
}
