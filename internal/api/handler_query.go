package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var apiVersion = [3]int{1, 0, 0}

const apiVersionStr = "1.0.0"

// Root handles GET /. It greets with the service version, the resolved
// status and, when metrics are on, the visit counters of this page.
func (h *Handler) Root(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.store.CurrentStatus(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	last, err := h.store.LastUpdated(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"success":      true,
		"hello":        "status-backend",
		"version":      apiVersion,
		"version_str":  apiVersionStr,
		"status":       status,
		"last_updated": last.Unix(),
	}
	if h.cfg.Metrics.Enabled {
		counters, err := h.store.IndexMetrics(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		resp["metrics"] = counters
	}
	c.JSON(http.StatusOK, resp)
}

// Query handles GET /api/query, the one-call poll target: current status,
// the assembled device view and the freshness stamp.
func (h *Handler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.store.CurrentStatus(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := h.store.DeviceView(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	last, err := h.store.LastUpdated(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now().In(h.cfg.Location)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"time":         now.Format("2006-01-02 15:04:05"),
		"timezone":     h.cfg.Timezone,
		"status":       status.ID,
		"info":         status,
		"device":       view,
		"last_updated": last.Unix(),
	})
}
