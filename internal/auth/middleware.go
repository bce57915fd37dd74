package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpemc/crm-api/internal/config"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/logger"
	"go.uber.org/zap"
)

// systemUserID identifies requests made with the API key
const systemUserID = 0

var (
	errMissingCredentials = errors.New("missing authorization header")
	errMalformedHeader    = errors.New("invalid authorization header format")
	errInvalidAPIKey      = errors.New("invalid API key")
)

// Middleware authenticates requests with a bearer token issued by the CRM
// front office, or with the system API key.
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	logger       *zap.Logger
}

func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(cfg.JWTSecret, cfg.Issuer),
		apiKey:       cfg.APIKey,
		logger:       logger,
	}
}

// Authenticate puts the caller's UserContext on the request context. The
// x-api-key header is checked first. A request with neither credential is
// rejected with 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, method, err := m.identify(r)
		if err != nil {
			m.logger.Warn("authentication failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("auth_type", method),
				zap.Error(err),
			)
			deny(w, http.StatusUnauthorized, err.Error())
			return
		}

		logger.WithUser(m.logger, user.UserID, user.RolesAsStrings()).Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", method),
		)
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

func (m *Middleware) identify(r *http.Request) (*UserContext, string, error) {
	if key := r.Header.Get("x-api-key"); key != "" {
		if !m.validateAPIKey(key) {
			return nil, "api_key", errInvalidAPIKey
		}
		return m.systemUser(r), "api_key", nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, "none", errMissingCredentials
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, "jwt", errMalformedHeader
	}
	user, err := m.jwtValidator.ValidateToken(token)
	if err != nil {
		return nil, "jwt", err
	}
	return user, "jwt", nil
}

// RequireRole lets through users holding at least one of roles
func (m *Middleware) RequireRole(roles ...domain.UserRoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				deny(w, http.StatusForbidden, "no user context")
				return
			}
			if !user.HasAnyRole(roles...) {
				deny(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, status int, detail string) {
	errType := domain.ErrorTypeUnauthorized
	if status == http.StatusForbidden {
		errType = domain.ErrorTypeForbidden
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// systemUser builds the principal of an API key request. The optional
// X-Company-ID header scopes it to an agency.
func (m *Middleware) systemUser(r *http.Request) *UserContext {
	user := &UserContext{
		UserID:      systemUserID,
		DisplayName: "System",
		Email:       "system@fpemc.fr",
		Roles:       []domain.UserRoleType{domain.RoleSuperAdmin, domain.RoleAPIService},
	}
	if header := r.Header.Get("X-Company-ID"); header != "" {
		if id, err := strconv.ParseUint(header, 10, 64); err == nil && id > 0 {
			companyID := uint(id)
			user.CompanyID = &companyID
		}
	}
	return user
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
