//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/user"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/jwt"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T, secret string, minRole *user.Role) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := jwt.NewService(secret, time.Hour)
	validator := usecase.NewTokenValidator(service)
	cfg := config.NewTestConfig()
	authMw := middleware.NewAuthMiddleware(validator, cfg)

	router := gin.New()
	handlers := []gin.HandlerFunc{authMw.RequireAuth()}
	if minRole != nil {
		handlers = append(handlers, authMw.RequireRoleAtLeast(*minRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "role": role.String()})
	})
	router.GET("/protected", handlers...)

	return router, service
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()

	t.Run("accepts a bearer token and exposes identity and role", func(t *testing.T) {
		router, service := newAuthTestRouter(t, "secret-1", nil)
		token, err := service.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
		assert.Contains(t, rec.Body.String(), "customer")
	})

	t.Run("accepts the session cookie", func(t *testing.T) {
		router, service := newAuthTestRouter(t, "secret-1", nil)
		token, err := service.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, "secret-1", nil)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, "secret-1", nil)
		otherService := jwt.NewService("secret-2", time.Hour)
		token, err := otherService.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("clears a dead session cookie", func(t *testing.T) {
		router, _ := newAuthTestRouter(t, "secret-1", nil)
		expiredService := jwt.NewService("secret-1", -time.Minute)
		token, err := expiredService.GenerateToken(userID, user.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == "access_token" && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "expired cookie should be expired out")
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	userID := uuid.New()
	minRole := user.RoleSeller

	cases := []struct {
		name       string
		role       user.Role
		expectCode int
	}{
		{name: "customer is below the seller gate", role: user.RoleCustomer, expectCode: http.StatusForbidden},
		{name: "seller meets the gate exactly", role: user.RoleSeller, expectCode: http.StatusOK},
		{name: "admin exceeds the gate", role: user.RoleAdmin, expectCode: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, service := newAuthTestRouter(t, "secret-1", &minRole)
			token, err := service.GenerateToken(userID, tc.role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}
}
