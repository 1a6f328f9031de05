package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"status-backend/internal/store"
)

// SetDevice handles POST /api/device/set. Absent JSON keys leave the
// stored value alone; fields are merged, not replaced.
func (h *Handler) SetDevice(c *gin.Context) {
	var req struct {
		ID       string         `json:"id"`
		ShowName *string        `json:"show_name"`
		Using    *bool          `json:"using"`
		Status   *string        `json:"status"`
		Fields   map[string]any `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	err := h.store.UpsertDevice(c.Request.Context(), store.DeviceUpdate{
		ID:       req.ID,
		ShowName: req.ShowName,
		Using:    req.Using,
		Status:   req.Status,
		Fields:   req.Fields,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveDevice handles POST /api/device/remove. The id may come from the
// JSON body or the query string. Removing an unknown id still succeeds.
func (h *Handler) RemoveDevice(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.ID == "" {
		req.ID = c.Query("id")
	}
	if req.ID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "device id cannot be empty!"})
		return
	}

	if err := h.store.RemoveDevice(c.Request.Context(), req.ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearDevices handles POST /api/device/clear.
func (h *Handler) ClearDevices(c *gin.Context) {
	if err := h.store.ClearDevices(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetDevice handles GET /api/device/:id. It reads the raw record, so it
// works in private mode too; the route sits behind the secret.
func (h *Handler) GetDevice(c *gin.Context) {
	attrs, err := h.store.Device(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "device": attrs})
}
