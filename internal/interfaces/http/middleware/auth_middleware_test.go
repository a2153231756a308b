package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-custody.backend/internal/interfaces/http/middleware"
	"coin-custody.backend/pkg/jwt"
	"coin-custody.backend/pkg/utils"
)

func newAuthTestRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(jwtService))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	r := newAuthTestRouter(jwtService)

	userID := utils.GenerateUUIDv7()
	pair, err := jwtService.GenerateTokenPair(userID, "user@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newAuthTestRouter(jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	r := newAuthTestRouter(jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", -time.Minute, 24*time.Hour)
	r := newAuthTestRouter(jwtService)

	pair, err := jwtService.GenerateTokenPair(utils.GenerateUUIDv7(), "user@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signer := jwt.NewJWTService("other-secret", time.Hour, 24*time.Hour)
	r := newAuthTestRouter(jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour))

	pair, err := signer.GenerateTokenPair(utils.GenerateUUIDv7(), "user@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	adminPair, err := jwtService.GenerateTokenPair(utils.GenerateUUIDv7(), "admin@example.com", "admin")
	require.NoError(t, err)
	userPair, err := jwtService.GenerateTokenPair(utils.GenerateUUIDv7(), "user@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userPair.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
