package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/config"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "test-signing-secret"
	testAPIKey = "test-api-key-12345"
)

func uintPtr(v uint) *uint { return &v }

func newTestMiddleware() *auth.Middleware {
	return auth.NewMiddleware(&config.AuthConfig{JWTSecret: testSecret, Issuer: "fpemc-crm", APIKey: testAPIKey}, zap.NewNop())
}

func signedToken(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, err := auth.NewJWTValidator(testSecret, "fpemc-crm").SignToken(claims, time.Hour)
	require.NoError(t, err)
	return token
}

func capture(target **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*target, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	validator := auth.NewJWTValidator(testSecret, "fpemc-crm")
	token := signedToken(t, auth.Claims{UserID: 7, Email: "m@fpemc.fr", Roles: []string{"manager", "unknown"}, CompanyID: uintPtr(3)})

	user, err := validator.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.UserID)
	assert.Equal(t, []domain.UserRoleType{domain.RoleManager}, user.Roles)
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, uint(3), *user.CompanyID)
}

func TestJWTValidator_Rejects(t *testing.T) {
	validator := auth.NewJWTValidator(testSecret, "fpemc-crm")

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.NewJWTValidator("other", "fpemc-crm").SignToken(auth.Claims{UserID: 1}, time.Hour)
		require.NoError(t, err)
		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := validator.SignToken(auth.Claims{UserID: 1}, -time.Minute)
		require.NoError(t, err)
		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := auth.NewJWTValidator(testSecret, "someone-else").SignToken(auth.Claims{UserID: 1}, time.Hour)
		require.NoError(t, err)
		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := auth.Claims{UserID: 1}
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
		claims.Issuer = "fpemc-crm"
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing user", func(t *testing.T) {
		token := signedToken(t, auth.Claims{Roles: []string{"admin"}})
		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware_Authenticate_WithAPIKey(t *testing.T) {
	var user *auth.UserContext
	handler := newTestMiddleware().Authenticate(capture(&user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics/global", nil)
	req.Header.Set("x-api-key", testAPIKey)
	req.Header.Set("X-Company-ID", "4")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.True(t, user.HasRole(domain.RoleAPIService))
	require.NotNil(t, user.CompanyID)
	assert.Equal(t, uint(4), *user.CompanyID)
}

func TestMiddleware_Authenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
	}{
		{"wrong api key", "x-api-key", "nope"},
		{"no credentials", "", ""},
		{"basic auth", "Authorization", "Basic abc"},
		{"garbage token", "Authorization", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := newTestMiddleware().Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called)
		})
	}
}

func TestMiddleware_Authenticate_WithBearer(t *testing.T) {
	var user *auth.UserContext
	handler := newTestMiddleware().Authenticate(capture(&user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics/agency/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, auth.Claims{UserID: 12, Roles: []string{"sales"}}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.Equal(t, uint(12), user.UserID)
}

func TestMiddleware_RequireRole(t *testing.T) {
	m := newTestMiddleware()
	handler := m.RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sales/fdr-promotion", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	ctx := auth.WithUserContext(req.Context(), &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleSales}})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, w.Code)

	ctx = auth.WithUserContext(req.Context(), &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleAdmin}})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUserContext_CanAccessCompany(t *testing.T) {
	tests := []struct {
		name     string
		user     auth.UserContext
		company  uint
		expected bool
	}{
		{"admin sees every agency", auth.UserContext{Roles: []domain.UserRoleType{domain.RoleAdmin}}, 9, true},
		{"manager sees own agency", auth.UserContext{Roles: []domain.UserRoleType{domain.RoleManager}, CompanyID: uintPtr(2)}, 2, true},
		{"manager cannot see another agency", auth.UserContext{Roles: []domain.UserRoleType{domain.RoleManager}, CompanyID: uintPtr(2)}, 3, false},
		{"manager without agency", auth.UserContext{Roles: []domain.UserRoleType{domain.RoleManager}}, 2, false},
		{"sales cannot see agency figures", auth.UserContext{Roles: []domain.UserRoleType{domain.RoleSales}, CompanyID: uintPtr(2)}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.CanAccessCompany(tt.company))
		})
	}
}

func TestUserContext_CanViewGlobalStatistics(t *testing.T) {
	assert.True(t, (&auth.UserContext{Roles: []domain.UserRoleType{domain.RoleSuperSales}}).CanViewGlobalStatistics())
	assert.True(t, (&auth.UserContext{Roles: []domain.UserRoleType{domain.RoleSuperAdmin}}).CanViewGlobalStatistics())
	assert.False(t, (&auth.UserContext{Roles: []domain.UserRoleType{domain.RoleManager}}).CanViewGlobalStatistics())
}
