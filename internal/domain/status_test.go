package domain_test

import (
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSaleStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.SaleStatus
	}{
		{"awaiting_fdr", domain.SaleStatusAwaitingFdr},
		{"CANCELLED", domain.SaleStatusCancelled},
		{"En attente FDR", domain.SaleStatusAwaitingFdr},
		{"  en   attente  pose ", domain.SaleStatusAwaitingInstall},
		{"ANNULÉE", domain.SaleStatusCancelled},
		{"Encaissée", domain.SaleStatusCashed},
		{"", domain.SaleStatusOther},
		{"archived", domain.SaleStatusOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeSaleStatus(tt.raw))
		})
	}
}

func TestNormalizeAppointmentStatus(t *testing.T) {
	status, ok := domain.NormalizeAppointmentStatus("Vente")
	assert.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusConvertedToSale, status)

	status, ok = domain.NormalizeAppointmentStatus("A venir")
	assert.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusUpcoming, status)

	status, ok = domain.NormalizeAppointmentStatus("in_meeting")
	assert.True(t, ok)
	assert.Equal(t, domain.AppointmentStatusInMeeting, status)

	_, ok = domain.NormalizeAppointmentStatus("lost")
	assert.False(t, ok)
}

func TestSale_CancelledAt(t *testing.T) {
	updated := time.Date(2024, time.October, 3, 9, 0, 0, 0, time.UTC)
	cancelled := time.Date(2024, time.October, 1, 9, 0, 0, 0, time.UTC)

	t.Run("uses the cancellation date", func(t *testing.T) {
		sale := domain.Sale{Status: domain.SaleStatusCancelled, CancellationDate: &cancelled}
		sale.UpdatedAt = updated
		assert.Equal(t, &cancelled, sale.CancelledAt())
	})

	t.Run("falls back to the last update for legacy cancellations", func(t *testing.T) {
		sale := domain.Sale{Status: "Annulée"}
		sale.UpdatedAt = updated
		got := sale.CancelledAt()
		if assert.NotNil(t, got) {
			assert.True(t, updated.Equal(*got))
		}
	})

	t.Run("nil for active sales", func(t *testing.T) {
		sale := domain.Sale{Status: domain.SaleStatusCashed}
		sale.UpdatedAt = updated
		assert.Nil(t, sale.CancelledAt())
	})
}
