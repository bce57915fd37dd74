package auth

import (
	"context"

	"github.com/fpemc/crm-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uint
	DisplayName string
	Email       string
	Roles       []domain.UserRoleType
	// CompanyID is the agency the user is affiliated with, if any
	CompanyID *uint
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRoleType) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user administers the whole network
func (u *UserContext) IsAdmin() bool {
	return u.HasAnyRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleAPIService)
}

// CanViewGlobalStatistics reports whether the user may see network-wide figures
func (u *UserContext) CanViewGlobalStatistics() bool {
	return u.IsAdmin() || u.HasRole(domain.RoleSuperSales)
}

// CanAccessCompany checks if user can see the statistics of an agency.
// Admins see every agency, managers only their own.
func (u *UserContext) CanAccessCompany(companyID uint) bool {
	if u.IsAdmin() {
		return true
	}
	return u.HasRole(domain.RoleManager) && u.BelongsToCompany(companyID)
}

// BelongsToCompany reports whether the user is affiliated with the agency
func (u *UserContext) BelongsToCompany(companyID uint) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}

// RolesAsStrings returns the roles for logging
func (u *UserContext) RolesAsStrings() []string {
	out := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		out[i] = string(r)
	}
	return out
}
