package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showreel/internal/db"
	"showreel/internal/logger"
	"showreel/internal/models"
)

// SetSettingRequest carries a setting value
type SetSettingRequest struct {
	Value string `json:"value"`
}

// SettingsListResponse is the full settings store
type SettingsListResponse struct {
	Items []*models.Setting `json:"items"`
}

// SettingsHandler handles key/value settings requests
type SettingsHandler struct {
	repos *db.Repositories
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(repos *db.Repositories) *SettingsHandler {
	return &SettingsHandler{repos: repos}
}

// List handles GET /api/settings
func (h *SettingsHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.repos.Settings.All(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list settings")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve settings",
		})
		return
	}

	c.JSON(http.StatusOK, SettingsListResponse{Items: settings})
}

// Get handles GET /api/settings/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	setting, err := h.repos.Settings.Get(ctx, key)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Setting not found",
			})
			return
		}
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to get setting")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve setting",
		})
		return
	}

	c.JSON(http.StatusOK, setting)
}

// Set handles PUT /api/settings/:key
func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("key")

	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repos.Settings.Set(ctx, key, req.Value); err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to set setting")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "update_failed",
			Message: "Failed to store setting",
		})
		return
	}

	setting, err := h.repos.Settings.Get(ctx, key)
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to re-read setting")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve setting",
		})
		return
	}

	c.JSON(http.StatusOK, setting)
}

// SetupSettingsRoutes registers settings routes. Reads are public, writes go
// through the editor group.
func SetupSettingsRoutes(public, editor *gin.RouterGroup, repos *db.Repositories) {
	handler := NewSettingsHandler(repos)

	public.GET("/settings", handler.List)
	public.GET("/settings/:key", handler.Get)
	editor.PUT("/settings/:key", handler.Set)
}
