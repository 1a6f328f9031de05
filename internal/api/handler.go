package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"status-backend/config"
	"status-backend/internal/filecache"
	"status-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg   *config.Config
	store store.Store
	cache *filecache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, s store.Store, fc *filecache.Cache) *Handler {
	return &Handler{
		cfg:   cfg,
		store: s,
		cache: fc,
	}
}

// writeError maps store errors onto HTTP responses. Validation problems
// come back 400 with their reason, absence comes back 404, and anything
// else is a 500 whose message stays generic.
func writeError(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Reason})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
