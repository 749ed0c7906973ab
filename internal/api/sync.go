package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showreel/internal/reconcile"
)

// A full listing of a large remote folder can be slow; give the pass room
const syncTimeout = 2 * time.Minute

// SyncHandler handles reconciliation trigger requests
type SyncHandler struct {
	engine *reconcile.Engine
}

// NewSyncHandler creates a new sync handler instance
func NewSyncHandler(engine *reconcile.Engine) *SyncHandler {
	return &SyncHandler{engine: engine}
}

// TriggerSync handles POST /api/sync. Returns the pass's
// {added, removed, unchanged} counts on success and a single generic failure
// signal otherwise.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), syncTimeout)
	defer cancel()

	report, err := h.engine.Run(ctx)
	if err != nil {
		respondRemoteError(c, err, "Reconciliation pass failed")
		return
	}

	c.JSON(http.StatusOK, report)
}

// SetupSyncRoutes registers the reconciliation trigger on the editor group
func SetupSyncRoutes(editor *gin.RouterGroup, engine *reconcile.Engine) {
	handler := NewSyncHandler(engine)
	editor.POST("/sync", handler.TriggerSync)
}
