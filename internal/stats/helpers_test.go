package stats_test

import (
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/stats"
	"github.com/shopspring/decimal"
)

var (
	fpAgency = &stats.Company{ID: 1, Prefix: "FP", Name: "FPEMC Lyon"}
	mAgency  = &stats.Company{ID: 2, Prefix: "3M", Name: "Trois Mille SARL"}
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func pricedSale(id uint, source string, price string) stats.Sale {
	return stats.Sale{
		ID:              id,
		CustomerID:      id,
		Company:         fpAgency,
		Status:          domain.SaleStatusCashed,
		Source:          source,
		CreatedAt:       time.Date(2024, time.November, 10, 12, 0, 0, 0, time.UTC),
		PrimarySellerID: 100,
		Financial:       &stats.FinancialSection{Price: dec(price)},
	}
}

func saleAt(t time.Time) stats.Sale {
	s := pricedSale(1, "R1", "1000")
	s.CreatedAt = t
	return s
}

func appointments(status domain.AppointmentStatus, n int) []stats.Appointment {
	out := make([]stats.Appointment, n)
	for i := range out {
		out[i] = stats.Appointment{
			ID:        uint(i + 1),
			UserID:    100,
			Status:    status,
			CreatedAt: time.Date(2024, time.November, 10, 9, 0, 0, 0, time.UTC),
		}
	}
	return out
}
