// Package testutil provides an isolated database and seed helpers for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/database"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory database with the full schema.
// Each call gets its own database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=UTC", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestCompany creates an active agency
func CreateTestCompany(t *testing.T, db *gorm.DB, prefix, name string) *domain.Company {
	t.Helper()
	company := &domain.Company{Name: name, Prefix: prefix, IsActive: true}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateTestUser creates an enabled user with the given role, optionally
// affiliated with a company
func CreateTestUser(t *testing.T, db *gorm.DB, firstname, lastname string, role domain.UserRoleType, company *domain.Company) *domain.User {
	t.Helper()
	user := &domain.User{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     fmt.Sprintf("%s.%s.%d@fpemc.test", firstname, lastname, time.Now().UnixNano()),
		Role:      role,
		Enabled:   true,
	}
	if company != nil {
		user.CompanyID = &company.ID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(user).Error)
	return user
}

// SaleSpec describes a sale to seed
type SaleSpec struct {
	Company     *domain.Company
	Seller      *domain.User
	CoSellers   []*domain.User
	Source      domain.SaleSource
	Status      domain.SaleStatus
	Price       string
	CreatedDate *time.Time
	CustomerID  *uint
}

// CreateTestSale creates a sale priced through its financial section
func CreateTestSale(t *testing.T, db *gorm.DB, spec SaleSpec) *domain.Sale {
	t.Helper()
	require.NotNil(t, spec.Company, "a sale needs a company")

	status := spec.Status
	if status == "" {
		status = domain.SaleStatusCashed
	}
	sale := &domain.Sale{
		CreatedDate: spec.CreatedDate,
		Status:      status,
		Source:      spec.Source,
		CompanyID:   spec.Company.ID,
		CustomerID:  spec.CustomerID,
	}
	if spec.Seller != nil {
		sale.PrimarySellerID = &spec.Seller.ID
	}
	for _, u := range spec.CoSellers {
		sale.AdditionalSellers = append(sale.AdditionalSellers, domain.SaleSeller{
			UserID:    u.ID,
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			AddedAt:   time.Now().UTC(),
		})
	}
	if spec.Price != "" {
		sale.FinancialSection = domain.FinancialSection{"price": spec.Price}
	}
	require.NoError(t, db.Omit("Company", "Customer").Create(sale).Error)
	return sale
}

// CreateTestAppointment creates an appointment owned by user
func CreateTestAppointment(t *testing.T, db *gorm.DB, user *domain.User, status domain.AppointmentStatus, created time.Time) *domain.Appointment {
	t.Helper()
	appt := &domain.Appointment{Status: status, CreatedDate: &created}
	if user != nil {
		appt.UserID = &user.ID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(appt).Error)
	return appt
}

// CreateTestService creates a catalogue service
func CreateTestService(t *testing.T, db *gorm.DB, name, price string) *domain.Service {
	t.Helper()
	svc := &domain.Service{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
