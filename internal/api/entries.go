package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"showreel/internal/catalog"
	"showreel/internal/logger"
	"showreel/internal/models"
	"showreel/internal/remote"
)

const queryTimeout = 10 * time.Second

// Request/Response DTOs

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// OptionalField distinguishes a JSON key that is absent from one that is
// present with a null value. UnmarshalJSON only runs for present keys, so the
// zero value means "leave the stored field untouched".
type OptionalField[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marks the field as present and captures null as a nil value
func (o *OptionalField[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UpdateEntryRequest is a partial update of an entry's mutable fields
type UpdateEntryRequest struct {
	Title        OptionalField[string] `json:"title"`
	Transcript   OptionalField[string] `json:"transcript"`
	Position     OptionalField[int]    `json:"position"`
	Disabled     *bool                 `json:"disabled"`
	HasNarration *bool                 `json:"has_narration"`
}

// Patch converts the request into a repository patch
func (r UpdateEntryRequest) Patch() models.EntryPatch {
	return models.EntryPatch{
		Title:        models.Optional[string]{Valid: r.Title.Set, Value: r.Title.Value},
		Transcript:   models.Optional[string]{Valid: r.Transcript.Set, Value: r.Transcript.Value},
		Position:     models.Optional[int]{Valid: r.Position.Set, Value: r.Position.Value},
		Disabled:     r.Disabled,
		HasNarration: r.HasNarration,
	}
}

// SetStatusRequest moves an entry to a lifecycle state
type SetStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// ReorderRequest replaces the positions of the listed entries
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// EntryListResponse is a list of entries
type EntryListResponse struct {
	Items []*EntryResponse `json:"items"`
	Total int              `json:"total"`
}

// EntryResponse is an entry with its derived status
type EntryResponse struct {
	*models.Entry
	Status models.Status `json:"status"`
}

// DeleteEntryResponse reports whether a row was actually removed
type DeleteEntryResponse struct {
	Deleted bool `json:"deleted"`
}

// LinkResponse carries a temporary, directly fetchable URL
type LinkResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

func entryResponse(entry *models.Entry) *EntryResponse {
	return &EntryResponse{Entry: entry, Status: entry.Status()}
}

func entryListResponse(entries []*models.Entry) EntryListResponse {
	items := make([]*EntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryResponse(entry))
	}
	return EntryListResponse{Items: items, Total: len(items)}
}

// EntryHandler handles entry-related API requests
type EntryHandler struct {
	catalog *catalog.Service
	links   *remote.LinkCache
}

// NewEntryHandler creates a new entry handler instance
func NewEntryHandler(cat *catalog.Service, links *remote.LinkCache) *EntryHandler {
	return &EntryHandler{catalog: cat, links: links}
}

// ListEntries handles GET /api/entries with an optional ?status= filter
func (h *EntryHandler) ListEntries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var (
		entries []*models.Entry
		err     error
	)
	if statusParam := c.Query("status"); statusParam != "" {
		status := models.Status(statusParam)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_status",
				Message: "Status must be one of: active, staging, disabled",
			})
			return
		}
		entries, err = h.catalog.ListByStatus(ctx, status)
	} else {
		entries, err = h.catalog.ListAll(ctx)
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to list entries")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "query_failed",
			Message: "Failed to retrieve entries",
		})
		return
	}

	c.JSON(http.StatusOK, entryListResponse(entries))
}

// GetEntry handles GET /api/entries/:id
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	entry, err := h.catalog.Get(ctx, id)
	if err != nil {
		respondEntryError(c, id, err, "Failed to get entry")
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// UpdateEntry handles PATCH /api/entries/:id
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	entry, err := h.catalog.Update(ctx, id, req.Patch())
	if err != nil {
		if catalog.IsInvalidPosition(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_position",
				Message: "Position must be non-negative",
			})
			return
		}
		respondEntryError(c, id, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// SetStatus handles POST /api/entries/:id/status
func (h *EntryHandler) SetStatus(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	entry, err := h.catalog.SetStatus(ctx, id, req.Status)
	if err != nil {
		if catalog.IsInvalidStatus(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_status",
				Message: "Status must be one of: active, staging, disabled",
			})
			return
		}
		respondEntryError(c, id, err, "Failed to set entry status")
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// Reorder handles POST /api/entries/reorder
func (h *EntryHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	if err := h.catalog.Reorder(ctx, req.IDs); err != nil {
		if catalog.IsEntryNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "An entry in the list does not exist; no positions were changed",
			})
			return
		}
		logger.Log.Error().Err(err).Int("count", len(req.IDs)).Msg("Failed to reorder entries")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "reorder_failed",
			Message: "Failed to reorder entries",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteEntry handles DELETE /api/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	deleted, err := h.catalog.Delete(ctx, id)
	if err != nil {
		logger.Log.Error().Err(err).Str("id", id.String()).Msg("Failed to delete entry")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete entry",
		})
		return
	}

	c.JSON(http.StatusOK, DeleteEntryResponse{Deleted: deleted})
}

// GetMediaLink handles GET /api/entries/:id/link
func (h *EntryHandler) GetMediaLink(c *gin.Context) {
	h.respondLink(c, func(entry *models.Entry) (string, bool) {
		return entry.RemotePath, true
	})
}

// GetNarrationLink handles GET /api/entries/:id/narration/link
func (h *EntryHandler) GetNarrationLink(c *gin.Context) {
	h.respondLink(c, func(entry *models.Entry) (string, bool) {
		if !entry.HasNarration {
			return "", false
		}
		return remote.NarrationPath(entry.RemotePath), true
	})
}

// respondLink resolves an entry, derives the object path, and serves a
// temporary link. Only this path touches remote-store I/O; catalog reads
// never do.
func (h *EntryHandler) respondLink(c *gin.Context, pathOf func(*models.Entry) (string, bool)) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	entry, err := h.catalog.Get(ctx, id)
	if err != nil {
		respondEntryError(c, id, err, "Failed to get entry for link")
		return
	}

	remotePath, ok := pathOf(entry)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "no_narration",
			Message: "Entry has no narration",
		})
		return
	}

	link, err := h.links.GetLink(ctx, remotePath)
	if err != nil {
		respondRemoteError(c, err, "Failed to mint temporary link")
		return
	}

	c.JSON(http.StatusOK, LinkResponse{Path: remotePath, URL: link})
}

// parseEntryID validates the :id route parameter, writing the error response
// itself on failure
func parseEntryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid entry ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondEntryError maps catalog lookup errors to status codes
func respondEntryError(c *gin.Context, id uuid.UUID, err error, logMsg string) {
	if catalog.IsEntryNotFound(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Entry not found",
		})
		return
	}

	logger.Log.Error().Err(err).Str("id", id.String()).Msg(logMsg)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "query_failed",
		Message: "Failed to retrieve entry",
	})
}

// respondRemoteError maps remote-store errors to status codes
func respondRemoteError(c *gin.Context, err error, logMsg string) {
	logger.Log.Error().Err(err).Msg(logMsg)

	if remote.IsMissingCredentials(err) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "configuration_error",
			Message: "Remote store credentials are not configured",
		})
		return
	}
	if remote.IsRemoteUnavailable(err) || errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "remote_unavailable",
			Message: "Remote store request failed",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Unexpected error",
	})
}

// SetupEntryRoutes registers entry routes. Reads go on the public group,
// mutations on the editor group.
func SetupEntryRoutes(public, editor *gin.RouterGroup, cat *catalog.Service, links *remote.LinkCache) {
	handler := NewEntryHandler(cat, links)

	public.GET("/entries", handler.ListEntries)
	public.GET("/entries/:id", handler.GetEntry)
	public.GET("/entries/:id/link", handler.GetMediaLink)
	public.GET("/entries/:id/narration/link", handler.GetNarrationLink)

	editor.PATCH("/entries/:id", handler.UpdateEntry)
	editor.POST("/entries/:id/status", handler.SetStatus)
	editor.POST("/entries/reorder", handler.Reorder)
	editor.DELETE("/entries/:id", handler.DeleteEntry)
}
