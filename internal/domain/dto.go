package domain

// DTOs for API responses and requests outside the statistics views

type CompanyDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	City      string `json:"city,omitempty"`
	IsActive  bool   `json:"isActive"`
	Entity    string `json:"entity"`
	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}

type FdrPromotionResultDTO struct {
	Updated       int64  `json:"updated"`
	ThresholdDays int    `json:"thresholdDays"`
	CreatedBefore string `json:"createdBefore"` // ISO 8601
	FromStatus    string `json:"fromStatus"`
	ToStatus      string `json:"toStatus"`
}

// Request DTOs

type FdrPromotionRequest struct {
	ThresholdDays int `json:"thresholdDays,omitempty" validate:"omitempty,min=1,max=365"`
}

// StatisticsQuery holds the query parameters of the comparison views
type StatisticsQuery struct {
	Comparison string `validate:"omitempty,oneof=monthly daily"`
	Debug      bool
}

// LeaderboardQuery holds the query parameters of the leaderboard
type LeaderboardQuery struct {
	Scope     string `validate:"omitempty,oneof=global agency"`
	CompanyID uint   `validate:"required_if=Scope agency"`
}

// CompanyComparisonQuery holds the query parameters of the company comparison
type CompanyComparisonQuery struct {
	Month string `validate:"omitempty,datetime=2006-01"`
}
