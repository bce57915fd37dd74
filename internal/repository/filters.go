package repository

import (
	"time"

	"gorm.io/gorm"
)

// ApplyCompanyFilter restricts a query to one agency. A nil company leaves the
// query unchanged, which is the global scope.
func ApplyCompanyFilter(query *gorm.DB, companyID *uint) *gorm.DB {
	return ApplyCompanyFilterWithColumn(query, companyID, "company_id")
}

// ApplyCompanyFilterWithColumn applies the company filter using a specific column name
// Use this when the company_id column needs table qualification
func ApplyCompanyFilterWithColumn(query *gorm.DB, companyID *uint, columnName string) *gorm.DB {
	if companyID != nil {
		return query.Where(columnName+" = ?", *companyID)
	}
	return query
}

// ApplyDateRange restricts column to the half-open range [from, to).
// Either bound may be nil.
func ApplyDateRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where(column+" < ?", to.UTC())
	}
	return query
}
