package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/infrastructure/auth"
	"coachdesk/internal/shared/authorization"
	"coachdesk/internal/shared/logger"
)

func testRouter(t *testing.T, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mw := NewAuthMiddleware(jwtService, logger.NewLogger())

	r := gin.New()
	r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint(ContextKeyUserID),
			"email":   c.GetString(ContextKeyUserEmail),
			"role":    c.GetString(authorization.ContextKeyUserRole),
		})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15)

	u, err := user.NewUser("ana@example.com", "Ana", "$2a$12$hash", authorization.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, u.SetID(7))

	token, _, err := jwtService.Issue(u)
	require.NoError(t, err)

	r := testRouter(t, jwtService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := testRouter(t, auth.NewJWTService("test-secret", 15))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	issuer := auth.NewJWTService("other-secret", 15)

	u, err := user.NewUser("ana@example.com", "Ana", "$2a$12$hash", authorization.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, u.SetID(7))

	token, _, err := issuer.Issue(u)
	require.NoError(t, err)

	r := testRouter(t, auth.NewJWTService("test-secret", 15))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	r := testRouter(t, auth.NewJWTService("test-secret", 15))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
