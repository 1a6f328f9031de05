package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPluginData handles GET /api/plugin/:id. First access creates an empty
// document, so the response is always a JSON object.
func (h *Handler) GetPluginData(c *gin.Context) {
	data, err := h.store.PluginData(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// SetPluginData handles POST /api/plugin/:id and replaces the document.
func (h *Handler) SetPluginData(c *gin.Context) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if err := h.store.SetPluginData(c.Request.Context(), c.Param("id"), req.Data); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
