package mw

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(secret string) *gin.Engine {
	r := gin.Default()
	r.POST("/protected", RequireSecret(secret), func(c *gin.Context) {
		var req struct {
			Value string `json:"value"`
		}
		_ = c.ShouldBindJSON(&req)
		c.JSON(http.StatusOK, gin.H{"success": true, "value": req.Value})
	})
	return r
}

func TestRequireSecret(t *testing.T) {
	router := setupAuthRouter("s3cret")

	jsonReq := func(body string) *http.Request {
		req, _ := http.NewRequest("POST", "/protected", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	testCases := []struct {
		name       string
		request    func() *http.Request
		wantStatus int
	}{
		{
			name:       "secret in JSON body",
			request:    func() *http.Request { return jsonReq(`{"secret":"s3cret"}`) },
			wantStatus: http.StatusOK,
		},
		{
			name: "secret in query string",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected?secret=s3cret", nil)
				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "secret in dedicated header",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected", nil)
				req.Header.Set("Status-Secret", "s3cret")
				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "secret as bearer token",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected", nil)
				req.Header.Set("Authorization", "Bearer s3cret")
				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "secret in cookie",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected", nil)
				req.AddCookie(&http.Cookie{Name: "status-secret", Value: "s3cret"})
				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong body value falls through to a correct query value",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected?secret=s3cret", bytes.NewBufferString(`{"secret":"nope"}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong secret",
			request:    func() *http.Request { return jsonReq(`{"secret":"nope"}`) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "no secret at all",
			request: func() *http.Request {
				req, _ := http.NewRequest("POST", "/protected", nil)
				return req
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request())

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"success":false,"error":"wrong secret"}`, w.Body.String())
			}
		})
	}
}

// The secret check reads the request body, so the handler behind it must
// still be able to bind it.
func TestRequireSecretPreservesBody(t *testing.T) {
	router := setupAuthRouter("s3cret")

	w := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/protected", bytes.NewBufferString(`{"secret":"s3cret","value":"hello"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"value":"hello"}`, w.Body.String())
}
