package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BaseModel carries the columns shared by every table
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Company is an agency of the network. Agencies roll up into reporting entities.
type Company struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Prefix   string `gorm:"type:varchar(20);index" json:"prefix"`
	Address  string `gorm:"type:varchar(500)" json:"address,omitempty"`
	City     string `gorm:"type:varchar(100)" json:"city,omitempty"`
	IsActive bool   `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// UserRoleType represents the role a user holds in the CRM
type UserRoleType string

const (
	RoleSuperAdmin UserRoleType = "super_admin"
	RoleAdmin      UserRoleType = "admin"
	RoleSuperSales UserRoleType = "super_sales"
	RoleSales      UserRoleType = "sales"
	// RoleManager is an agency manager limited to the statistics of its own company
	RoleManager    UserRoleType = "manager"
	RoleAPIService UserRoleType = "api_service"
)

// CommercialRoles are the roles whose holders appear in seller rankings
var CommercialRoles = []UserRoleType{RoleSales, RoleSuperSales}

// User is a CRM account. Commercials are users with a sales role.
type User struct {
	BaseModel
	Firstname      string       `gorm:"type:varchar(100);not null" json:"firstname"`
	Lastname       string       `gorm:"type:varchar(100);not null" json:"lastname"`
	Email          string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	ProfilePicture string       `gorm:"type:varchar(500);column:profile_picture" json:"profilePicture,omitempty"`
	Role           UserRoleType `gorm:"type:varchar(50);not null;default:'sales';index" json:"role"`
	Enabled        bool         `gorm:"not null;default:true" json:"enabled"`
	CompanyID      *uint        `gorm:"column:company_id;index" json:"companyId,omitempty"`
	Company        *Company     `gorm:"foreignKey:CompanyID" json:"-"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

// Customer is an end customer of a sale
type Customer struct {
	BaseModel
	Firstname string   `gorm:"type:varchar(100)" json:"firstname"`
	Lastname  string   `gorm:"type:varchar(100)" json:"lastname"`
	Email     string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone     string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	City      string   `gorm:"type:varchar(100)" json:"city,omitempty"`
	CompanyID *uint    `gorm:"column:company_id;index" json:"companyId,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// Service is a catalogue entry that can be sold on its own
type Service struct {
	BaseModel
	Name  string          `gorm:"type:varchar(200);not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
}

// ServicePackage is a bundle of services sold at a package price
type ServicePackage struct {
	BaseModel
	Name  string          `gorm:"type:varchar(200);not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
}

// TableName keeps the package table name short
func (ServicePackage) TableName() string {
	return "service_packages"
}

// SaleSource is the commercial origin of a sale as stored
type SaleSource string

const (
	SaleSourceR1  SaleSource = "R1"
	SaleSourceREF SaleSource = "REF"
	SaleSourceVA  SaleSource = "VA"
)

// Sale is the central record of the CRM
type Sale struct {
	BaseModel
	Number             int              `gorm:"not null;default:0;index" json:"number"`
	CreatedDate        *time.Time       `gorm:"column:created_date;index" json:"createdDate"`
	Status             SaleStatus       `gorm:"type:varchar(50);not null;default:'awaiting_fdr';index" json:"status"`
	Source             SaleSource       `gorm:"type:varchar(20);index" json:"source"`
	CompanyID          uint             `gorm:"column:company_id;not null;index" json:"companyId"`
	Company            *Company         `gorm:"foreignKey:CompanyID" json:"-"`
	CustomerID         *uint            `gorm:"column:customer_id;index" json:"customerId,omitempty"`
	Customer           *Customer        `gorm:"foreignKey:CustomerID" json:"-"`
	PrimarySellerID    *uint            `gorm:"column:primary_seller_id;index" json:"primarySellerId,omitempty"`
	AdditionalSellerID *uint            `gorm:"column:additional_seller_id;index" json:"additionalSellerId,omitempty"`
	AdditionalSellers  []SaleSeller     `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"additionalSellers"`
	FinancialSection   FinancialSection `gorm:"column:financial_section" json:"financialSection,omitempty"`
	Items              []SaleItem       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CancellationDate   *time.Time       `gorm:"column:cancellation_date" json:"cancellationDate,omitempty"`
}

// CancelledAt returns when the sale was cancelled. Sales cancelled before the
// cancellation date was recorded fall back to their last update.
func (s *Sale) CancelledAt() *time.Time {
	if s.CancellationDate != nil {
		return s.CancellationDate
	}
	if NormalizeSaleStatus(string(s.Status)) == SaleStatusCancelled {
		updated := s.UpdatedAt
		return &updated
	}
	return nil
}

// SaleSeller is a snapshot of an additional commercial credited on a sale
type SaleSeller struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	SaleID    uint      `gorm:"column:sale_id;not null;index" json:"-"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"id"`
	Firstname string    `gorm:"type:varchar(100)" json:"firstname"`
	Lastname  string    `gorm:"type:varchar(100)" json:"lastname"`
	AddedAt   time.Time `gorm:"column:added_at;not null;default:CURRENT_TIMESTAMP" json:"addedAt"`
}

// SaleItem is a line of a sale referencing a service or a package
type SaleItem struct {
	ID          uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID      uint                `gorm:"column:sale_id;not null;index" json:"-"`
	ServiceID   *uint               `gorm:"column:service_id" json:"serviceId,omitempty"`
	Service     *Service            `gorm:"foreignKey:ServiceID" json:"-"`
	PackageID   *uint               `gorm:"column:package_id" json:"packageId,omitempty"`
	Package     *ServicePackage     `gorm:"foreignKey:PackageID" json:"-"`
	Quantity    int                 `gorm:"not null;default:1" json:"quantity"`
	CustomPrice decimal.NullDecimal `gorm:"type:numeric(12,2);column:custom_price" json:"customPrice"`
	Offered     bool                `gorm:"not null;default:false" json:"offered"`
}

// Appointment is a prospect meeting owned by a commercial
type Appointment struct {
	BaseModel
	CreatedDate *time.Time        `gorm:"column:created_date;index" json:"createdDate"`
	Status      AppointmentStatus `gorm:"type:varchar(50);not null;default:'upcoming';index" json:"status"`
	UserID      *uint             `gorm:"column:user_id;index" json:"userId,omitempty"`
	User        *User             `gorm:"foreignKey:UserID" json:"-"`
	CustomerID  *uint             `gorm:"column:customer_id" json:"customerId,omitempty"`
}

// FinancialSection is the structured financing block captured on a sale.
// Values are kept as raw JSON because historical rows mix numbers and strings.
type FinancialSection map[string]any

// Value implements driver.Valuer
func (f FinancialSection) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal financial section: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (f *FinancialSection) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported financial section column type")
	}
	if len(raw) == 0 {
		*f = nil
		return nil
	}
	out := FinancialSection{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to unmarshal financial section: %w", err)
	}
	*f = out
	return nil
}

// GormDataType names the generic column type
func (FinancialSection) GormDataType() string {
	return "json"
}

// GormDBDataType picks the dialect specific column type
func (FinancialSection) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}
