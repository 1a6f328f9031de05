package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMetrics handles GET /api/metrics. With metrics disabled only the
// enabled flag is reported.
func (h *Handler) GetMetrics(c *gin.Context) {
	if !h.cfg.Metrics.Enabled {
		c.JSON(http.StatusOK, gin.H{"success": true, "enabled": false})
		return
	}

	snap, err := h.store.MetricsSnapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now().In(h.cfg.Location)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"enabled":    true,
		"time":       now.Unix(),
		"time_local": now.Format("2006-01-02 15:04:05"),
		"timezone":   h.cfg.Timezone,
		"daily":      snap.Daily,
		"weekly":     snap.Weekly,
		"monthly":    snap.Monthly,
		"yearly":     snap.Yearly,
		"total":      snap.Total,
	})
}
