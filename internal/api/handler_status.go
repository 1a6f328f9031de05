package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusList handles GET /api/status/list and returns the whole catalog.
func (h *Handler) StatusList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"list":    h.store.Catalog(),
	})
}

// GetStatus handles GET /api/status.
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.store.CurrentStatus(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status.ID,
		"info":    status,
	})
}

// SetStatus handles POST /api/status.
func (h *Handler) SetStatus(c *gin.Context) {
	var req struct {
		Status *int `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "status must be an integer"})
		return
	}
	if err := h.store.SetStatusID(c.Request.Context(), *req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": *req.Status})
}

// GetPrivate handles GET /api/private.
func (h *Handler) GetPrivate(c *gin.Context) {
	private, err := h.store.PrivateMode(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "private": private})
}

// SetPrivate handles POST /api/private.
func (h *Handler) SetPrivate(c *gin.Context) {
	var req struct {
		Private *bool `json:"private"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Private == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "private must be a boolean"})
		return
	}
	if err := h.store.SetPrivateMode(c.Request.Context(), *req.Private); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "private": *req.Private})
}
