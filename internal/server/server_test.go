package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/services"
	"github.com/gravadigital/wedding-api/internal/storage/storagetest"
)

func newTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.CORS.AllowOrigins = "https://wedding.example"
	cfg.CORS.AllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	cfg.CORS.AllowHeaders = "Content-Type,Authorization,X-Auth-Password"

	repos := storagetest.NewContainer(t)
	svc := services.New(repos, services.NewSessionManager("secret", time.Hour), nil)
	return New(cfg, repos, svc)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	require.NoError(t, srv.repos.Close())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/guests", nil)
	req.Header.Set("Origin", "https://wedding.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "X-Auth-Password")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://wedding.example", w.Header().Get("Access-Control-Allow-Origin"))
}
