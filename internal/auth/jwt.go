package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the claims carried by the CRM access tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint     `json:"uid"`
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name,omitempty"`
	Roles     []string `json:"roles"`
	CompanyID *uint    `json:"companyId,omitempty"`
}

// JWTValidator validates HS256 tokens signed with the shared secret
type JWTValidator struct {
	secret []byte
	issuer string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(secret, issuer string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret), issuer: issuer}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return &UserContext{
		UserID:      claims.UserID,
		DisplayName: claims.Name,
		Email:       claims.Email,
		Roles:       ExtractRoles(claims.Roles),
		CompanyID:   claims.CompanyID,
	}, nil
}

// SignToken issues a token for the claims, valid for ttl
func (v *JWTValidator) SignToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Issuer == "" {
		claims.Issuer = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// ExtractRoles keeps the known roles of a token, in order
func ExtractRoles(raw []string) []domain.UserRoleType {
	roles := make([]domain.UserRoleType, 0, len(raw))
	for _, r := range raw {
		role := domain.UserRoleType(r)
		switch role {
		case domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleSuperSales,
			domain.RoleSales, domain.RoleManager, domain.RoleAPIService:
			roles = append(roles, role)
		}
	}
	return roles
}
