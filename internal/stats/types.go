// Package stats holds the sales statistics and commission attribution rules.
//
// Everything in this package is pure: callers load sales and appointments,
// convert them to the types below and receive plain value records back.
// Nothing here performs I/O or keeps state between calls, so scopes can be
// aggregated concurrently.
package stats

import (
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Entity is one of the business units agencies roll up into for reporting.
// Agencies that match none of them report under their raw prefix.
type Entity string

const (
	EntityFP Entity = "FP"
	Entity3M Entity = "3M"
	EntityPH Entity = "PH"
	EntityMP Entity = "MP"
)

// ReportingEntities lists the entities that get a revenue breakdown
var ReportingEntities = []Entity{EntityFP, Entity3M, EntityPH, EntityMP}

// Company is the agency owning a sale
type Company struct {
	ID     uint
	Prefix string
	Name   string
}

// SellerRef is a commercial credited on a sale in addition to the primary seller
type SellerRef struct {
	UserID    uint
	Firstname string
	Lastname  string
	AddedAt   time.Time
}

// LineItem is a priced line of a sale. Prices are nil when not set.
type LineItem struct {
	Quantity     int64
	CustomPrice  *decimal.Decimal
	ServicePrice *decimal.Decimal
	PackagePrice *decimal.Decimal
	Offered      bool
}

// FinancialSection carries the amounts captured when a sale is financed
type FinancialSection struct {
	Price        *decimal.Decimal
	TotalTax     *decimal.Decimal
	TotalWithTax *decimal.Decimal
}

// Sale is the statistics view of a sale.
//
// AdditionalSellers is the single source of additional credit; legacy
// single-seller data must be folded into it before reaching this package.
type Sale struct {
	ID                uint
	CustomerID        uint
	Company           *Company
	Status            domain.SaleStatus
	Source            string
	CreatedAt         time.Time
	PrimarySellerID   uint
	AdditionalSellers []SellerRef
	Financial         *FinancialSection
	Items             []LineItem
}

// Appointment is the statistics view of a prospect appointment
type Appointment struct {
	ID        uint
	UserID    uint
	Status    domain.AppointmentStatus
	CreatedAt time.Time
}
