package api

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// Static handles GET /static/*filepath through the TTL file cache. Paths
// that escape the static root and non-files both come back as 404.
func (h *Handler) Static(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	dir, file := path.Split(rel)
	dir = strings.TrimSuffix(dir, "/")

	data, ok := h.cache.File(dir, file)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
		return
	}

	ctype := mime.TypeByExtension(path.Ext(file))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, ctype, data)
}
