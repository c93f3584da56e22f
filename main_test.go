package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRun_RouterWiring(t *testing.T) {
	isTest = true
	defer func() { isTest = false }()

	// intercept the engine instead of listening
	var captured *gin.Engine
	startServer = func(r *gin.Engine) error {
		captured = r
		return nil
	}

	main()
	assert.NotNil(t, captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	captured.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/appointments", nil)
	captured.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	captured.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
