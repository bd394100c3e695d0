package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formgate/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin/ping", AdminAuth(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username"), "role": c.GetString("role")})
	})
	return r
}

func TestAdminAuth_ValidToken(t *testing.T) {
	svc := jwt.New("test-secret", time.Hour)
	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	r := setupAuthRouter(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(t, jwt.New("test-secret", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAdminAuth_MalformedHeader(t *testing.T) {
	r := setupAuthRouter(t, jwt.New("test-secret", time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongSecret(t *testing.T) {
	other := jwt.New("other-secret", time.Hour)
	token, err := other.GenerateToken("admin", "admin")
	require.NoError(t, err)

	r := setupAuthRouter(t, jwt.New("test-secret", time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_ExpiredToken(t *testing.T) {
	svc := jwt.New("test-secret", -time.Minute)
	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	r := setupAuthRouter(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
