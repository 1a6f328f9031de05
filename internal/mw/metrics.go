package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"status-backend/internal/store"
)

// Metrics counts the visit before the handler runs. The store ignores
// paths outside the allow-list; a failed write fails the request like any
// other storage error.
func Metrics(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.RecordMetric(c.Request.Context(), c.Request.URL.Path, 1, false); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.Next()
	}
}
