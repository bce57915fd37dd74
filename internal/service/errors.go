package service

import "errors"

// Common service errors
var (
	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRecord is returned when stored data breaks the data model.
	// The engine error stays reachable with errors.As.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidComparisonMode is returned for an unknown comparison mode
	ErrInvalidComparisonMode = errors.New("invalid comparison mode")

	// ErrInvalidScope is returned for an unknown leaderboard scope
	ErrInvalidScope = errors.New("invalid leaderboard scope")

	// ErrAgencyScopeRequired is returned when the agency scope has no company
	ErrAgencyScopeRequired = errors.New("agency scope requires a company")

	// ErrForbiddenCompany is returned when the caller may not see an agency
	ErrForbiddenCompany = errors.New("access to company statistics denied")

	// ErrNoCompany is returned when the caller is not affiliated with any agency
	ErrNoCompany = errors.New("user is not affiliated with a company")
)
