package repository

import (
	"context"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"gorm.io/gorm"
)

// AppointmentFilter narrows the appointments returned by List.
// A non-nil but empty UserIDs matches nothing.
type AppointmentFilter struct {
	UserIDs []uint
	From    *time.Time
	To      *time.Time
}

// AppointmentRepository handles database operations for appointments
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts an appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	return r.db.WithContext(ctx).Omit("User").Create(appt).Error
}

// List returns the appointments matching the filter
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	appointments := []domain.Appointment{}
	if filter.UserIDs != nil && len(filter.UserIDs) == 0 {
		return appointments, nil
	}

	query := r.db.WithContext(ctx).Model(&domain.Appointment{})
	if filter.UserIDs != nil {
		query = query.Where("user_id IN ?", filter.UserIDs)
	}
	query = ApplyDateRange(query, "created_date", filter.From, filter.To)

	err := query.Order("created_date ASC, id ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
