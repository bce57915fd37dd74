package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/stats"
	"github.com/shopspring/decimal"
)

// Keys of the financial section read by the statistics
const (
	financialPriceKey        = "price"
	financialTotalTaxKey     = "totalTax"
	financialTotalWithTaxKey = "totalWithTax"
)

// ToStatsSale converts a persisted sale to the statistics view.
// A legacy single additional seller is folded into the sellers list when the
// list is empty; a populated list always wins.
func ToStatsSale(sale *domain.Sale) stats.Sale {
	out := stats.Sale{
		ID:                sale.ID,
		Company:           ToStatsCompany(sale.Company),
		Status:            domain.NormalizeSaleStatus(string(sale.Status)),
		Source:            string(sale.Source),
		Financial:         ToFinancialSection(sale.FinancialSection),
		AdditionalSellers: make([]stats.SellerRef, 0, len(sale.AdditionalSellers)),
		Items:             make([]stats.LineItem, 0, len(sale.Items)),
	}
	if sale.CreatedDate != nil {
		out.CreatedAt = *sale.CreatedDate
	}
	if sale.CustomerID != nil {
		out.CustomerID = *sale.CustomerID
	}
	if sale.PrimarySellerID != nil {
		out.PrimarySellerID = *sale.PrimarySellerID
	}

	for _, seller := range sale.AdditionalSellers {
		out.AdditionalSellers = append(out.AdditionalSellers, stats.SellerRef{
			UserID:    seller.UserID,
			Firstname: seller.Firstname,
			Lastname:  seller.Lastname,
			AddedAt:   seller.AddedAt,
		})
	}
	if len(out.AdditionalSellers) == 0 && sale.AdditionalSellerID != nil && *sale.AdditionalSellerID != 0 {
		out.AdditionalSellers = append(out.AdditionalSellers, stats.SellerRef{UserID: *sale.AdditionalSellerID})
	}

	for i := range sale.Items {
		out.Items = append(out.Items, ToLineItem(&sale.Items[i]))
	}
	return out
}

// ToStatsSales converts a slice of sales
func ToStatsSales(sales []domain.Sale) []stats.Sale {
	out := make([]stats.Sale, len(sales))
	for i := range sales {
		out[i] = ToStatsSale(&sales[i])
	}
	return out
}

// ToLineItem converts a sale item with the prices of its service and package
func ToLineItem(item *domain.SaleItem) stats.LineItem {
	li := stats.LineItem{
		Quantity: int64(item.Quantity),
		Offered:  item.Offered,
	}
	if item.CustomPrice.Valid {
		price := item.CustomPrice.Decimal
		li.CustomPrice = &price
	}
	if item.Service != nil {
		price := item.Service.Price
		li.ServicePrice = &price
	}
	if item.Package != nil {
		price := item.Package.Price
		li.PackagePrice = &price
	}
	return li
}

// ToFinancialSection reads the amounts of a stored financial section.
// Amounts that are missing or not numeric are left nil.
func ToFinancialSection(section domain.FinancialSection) *stats.FinancialSection {
	if len(section) == 0 {
		return nil
	}
	return &stats.FinancialSection{
		Price:        ParseAmount(section[financialPriceKey]),
		TotalTax:     ParseAmount(section[financialTotalTaxKey]),
		TotalWithTax: ParseAmount(section[financialTotalWithTaxKey]),
	}
}

// ParseAmount converts a JSON value to a decimal. Strings may use a decimal
// comma and spaces as thousands separators.
func ParseAmount(value any) *decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(normalizeAmount(v))
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &d
}

func normalizeAmount(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		case ',':
			return '.'
		}
		return r
	}, s)
	return strings.TrimSuffix(s, "€")
}

// ToStatsAppointment converts a persisted appointment. Unrecognised statuses
// are kept as stored and only count toward the appointment total.
func ToStatsAppointment(appt *domain.Appointment) stats.Appointment {
	out := stats.Appointment{ID: appt.ID}
	if status, ok := domain.NormalizeAppointmentStatus(string(appt.Status)); ok {
		out.Status = status
	} else {
		out.Status = appt.Status
	}
	if appt.UserID != nil {
		out.UserID = *appt.UserID
	}
	if appt.CreatedDate != nil {
		out.CreatedAt = *appt.CreatedDate
	}
	return out
}

// ToStatsAppointments converts a slice of appointments
func ToStatsAppointments(appts []domain.Appointment) []stats.Appointment {
	out := make([]stats.Appointment, len(appts))
	for i := range appts {
		out[i] = ToStatsAppointment(&appts[i])
	}
	return out
}

// ToStatsCompany converts an agency; nil stays nil
func ToStatsCompany(company *domain.Company) *stats.Company {
	if company == nil {
		return nil
	}
	return &stats.Company{ID: company.ID, Prefix: company.Prefix, Name: company.Name}
}

// ToSellerProfile converts a commercial to the identity shown in rankings
func ToSellerProfile(user *domain.User) stats.SellerProfile {
	return stats.SellerProfile{
		ID:             user.ID,
		Firstname:      user.Firstname,
		Lastname:       user.Lastname,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
	}
}

// ToCompanyDTO converts Company to CompanyDTO with its reporting entity
func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		Prefix:    company.Prefix,
		City:      company.City,
		IsActive:  company.IsActive,
		Entity:    string(stats.ClassifyEntity(ToStatsCompany(company))),
		CreatedAt: company.CreatedAt.Format(time.RFC3339),
		UpdatedAt: company.UpdatedAt.Format(time.RFC3339),
	}
}
