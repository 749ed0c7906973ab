package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showreel/internal/catalog"
	"showreel/internal/narration"
)

const (
	// Narration uploads include the remote write and optional transcription
	narrationTimeout = 2 * time.Minute

	// Narration recordings are short voice clips
	maxNarrationBytes = 50 << 20 // 50 MB
)

// NarrationHandler handles narration upload and delete requests
type NarrationHandler struct {
	service *narration.Service
}

// NewNarrationHandler creates a new narration handler instance
func NewNarrationHandler(service *narration.Service) *NarrationHandler {
	return &NarrationHandler{service: service}
}

// Upload handles PUT /api/entries/:id/narration with the raw audio as body
func (h *NarrationHandler) Upload(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	audio, err := io.ReadAll(io.LimitReader(c.Request.Body, maxNarrationBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to read audio body",
		})
		return
	}
	if len(audio) == 0 || len(audio) > maxNarrationBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio",
			Message: "Audio body must be non-empty and at most 50 MB",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), narrationTimeout)
	defer cancel()

	entry, err := h.service.Upload(ctx, id, audio)
	if err != nil {
		if catalog.IsEntryNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Entry not found",
			})
			return
		}
		respondRemoteError(c, err, "Failed to upload narration")
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// Delete handles DELETE /api/entries/:id/narration
func (h *NarrationHandler) Delete(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), narrationTimeout)
	defer cancel()

	entry, err := h.service.Delete(ctx, id)
	if err != nil {
		if catalog.IsEntryNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Entry not found",
			})
			return
		}
		respondRemoteError(c, err, "Failed to delete narration")
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// SetupNarrationRoutes registers narration routes on the editor group
func SetupNarrationRoutes(editor *gin.RouterGroup, service *narration.Service) {
	handler := NewNarrationHandler(service)

	editor.PUT("/entries/:id/narration", handler.Upload)
	editor.DELETE("/entries/:id/narration", handler.Delete)
}
