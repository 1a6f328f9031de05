package mw

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireSecret guards mutating endpoints. The secret may arrive in the
// JSON body ("secret"), the query string, a Status-Secret header, a bearer
// Authorization header or a status-secret cookie, checked in that order.
func RequireSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if src, ok := secretSource(c, secret); ok {
			log.Printf("[auth] secret accepted from %s", src)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "wrong secret",
		})
	}
}

func secretSource(c *gin.Context, secret string) (string, bool) {
	if v, ok := bodySecret(c); ok && v == secret {
		return "body", true
	}
	if c.Query("secret") == secret {
		return "query", true
	}
	if c.GetHeader("Status-Secret") == secret {
		return "header", true
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") &&
		strings.TrimPrefix(auth, "Bearer ") == secret {
		return "bearer", true
	}
	if v, err := c.Cookie("status-secret"); err == nil && v == secret {
		return "cookie", true
	}
	return "", false
}

// bodySecret pulls "secret" out of a JSON body without consuming the body
// for the handler that runs next.
func bodySecret(c *gin.Context) (string, bool) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return "", false
	}
	data, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil || len(data) == 0 {
		return "", false
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return "", false
	}
	s, ok := body["secret"].(string)
	return s, ok
}
