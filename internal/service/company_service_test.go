package service_test

import (
	"context"
	"testing"

	"github.com/fpemc/crm-api/internal/repository"
	"github.com/fpemc/crm-api/internal/service"
	"github.com/fpemc/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompanyService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())

	testutil.CreateTestCompany(t, db, "3M", "Trois Mille SARL")
	testutil.CreateTestCompany(t, db, "XY", "Agence Sud")
	closed := testutil.CreateTestCompany(t, db, "PH", "Prime Habitat Est")
	require.NoError(t, db.Model(closed).Update("is_active", false).Error)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Agence Sud", active[0].Name)
	assert.Equal(t, "XY", active[0].Entity, "unknown agencies report under their prefix")
	assert.Equal(t, "3M", active[1].Entity)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.False(t, all[1].IsActive)
	assert.Equal(t, "PH", all[1].Entity)
}

func TestCompanyService_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())
	company := testutil.CreateTestCompany(t, db, "MP", "Mon Patrimoine")

	dto, err := svc.GetByID(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, "MP", dto.Entity)
	assert.True(t, dto.IsActive)

	_, err = svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrCompanyNotFound)
}
