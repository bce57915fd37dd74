package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/repository"
	"github.com/fpemc/crm-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleIDs(sales []domain.Sale) []uint {
	ids := make([]uint, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
	}
	return ids
}

func TestSaleRepository_ListPreloadsAssociations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSaleRepository(db)
	company := testutil.CreateTestCompany(t, db, "FP", "FPEMC Lyon")
	seller := testutil.CreateTestUser(t, db, "Camille", "Roux", domain.RoleSales, company)
	partner := testutil.CreateTestUser(t, db, "Hugo", "Blanc", domain.RoleSales, company)
	service := testutil.CreateTestService(t, db, "Pompe a chaleur", "8000")

	sale := &domain.Sale{
		CreatedDate:       testutil.Date(2024, time.October, 3),
		Status:            domain.SaleStatusCashed,
		Source:            domain.SaleSourceR1,
		CompanyID:         company.ID,
		PrimarySellerID:   &seller.ID,
		AdditionalSellers: []domain.SaleSeller{{UserID: partner.ID, Firstname: "Hugo", Lastname: "Blanc", AddedAt: time.Now().UTC()}},
		FinancialSection:  domain.FinancialSection{"price": 9500.5},
		Items: []domain.SaleItem{
			{ServiceID: &service.ID, Quantity: 1},
			{Quantity: 2, CustomPrice: decimal.NewNullDecimal(decimal.RequireFromString("120.50"))},
		},
	}
	require.NoError(t, repo.Create(context.Background(), sale))

	sales, err := repo.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got := sales[0]
	require.NotNil(t, got.Company)
	assert.Equal(t, "FP", got.Company.Prefix)
	require.Len(t, got.AdditionalSellers, 1)
	assert.Equal(t, partner.ID, got.AdditionalSellers[0].UserID)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Service)
	assert.True(t, got.Items[0].Service.Price.Equal(decimal.NewFromInt(8000)))
	assert.True(t, got.Items[1].CustomPrice.Valid)
	assert.Equal(t, 9500.5, got.FinancialSection["price"])
}

func TestSaleRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSaleRepository(db)
	lyon := testutil.CreateTestCompany(t, db, "FP", "FPEMC Lyon")
	nantes := testutil.CreateTestCompany(t, db, "MP", "Mon Patrimoine Nantes")
	alice := testutil.CreateTestUser(t, db, "Alice", "Martin", domain.RoleSales, lyon)
	bob := testutil.CreateTestUser(t, db, "Bob", "Durand", domain.RoleSales, nantes)

	s1 := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: lyon, Seller: alice, Source: domain.SaleSourceR1, Price: "100", CreatedDate: testutil.Date(2024, time.September, 10)})
	s2 := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: nantes, Seller: bob, CoSellers: []*domain.User{alice}, Source: domain.SaleSourceREF, Price: "200", CreatedDate: testutil.Date(2024, time.October, 1)})
	s3 := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: nantes, Seller: bob, Source: domain.SaleSourceVA, Price: "300", CreatedDate: testutil.Date(2024, time.October, 31)})
	legacy := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: lyon, Seller: bob, Source: domain.SaleSourceR1, Price: "50"})
	require.NoError(t, db.Model(legacy).Update("additional_seller_id", alice.ID).Error)

	tests := []struct {
		name     string
		filter   repository.SaleFilter
		expected []uint
	}{
		{"everything", repository.SaleFilter{}, []uint{legacy.ID, s1.ID, s2.ID, s3.ID}},
		{"by company", repository.SaleFilter{CompanyID: &nantes.ID}, []uint{s2.ID, s3.ID}},
		{"by credited user", repository.SaleFilter{UserID: &alice.ID}, []uint{legacy.ID, s1.ID, s2.ID}},
		{"by date range", repository.SaleFilter{From: testutil.Date(2024, time.October, 1), To: testutil.Date(2024, time.October, 31)}, []uint{s2.ID}},
		{"combined", repository.SaleFilter{CompanyID: &nantes.ID, UserID: &alice.ID}, []uint{s2.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sales, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, saleIDs(sales))
		})
	}
}

func TestSaleRepository_PromoteStaleFdr(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSaleRepository(db)
	company := testutil.CreateTestCompany(t, db, "FP", "FPEMC Lyon")
	cutoff := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)

	stale := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, Status: domain.SaleStatusAwaitingFdr, CreatedDate: testutil.Date(2024, time.October, 1)})
	staleLabel := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, Status: "En attente FDR", CreatedDate: testutil.Date(2024, time.October, 15)})
	recent := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, Status: domain.SaleStatusAwaitingFdr, CreatedDate: testutil.Date(2024, time.October, 16)})
	undated := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, Status: domain.SaleStatusAwaitingFdr})
	cashed := testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, Status: domain.SaleStatusCashed, CreatedDate: testutil.Date(2024, time.January, 1)})

	updated, err := repo.PromoteStaleFdr(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	expected := map[uint]domain.SaleStatus{
		stale.ID:      domain.SaleStatusAwaitingInstall,
		staleLabel.ID: domain.SaleStatusAwaitingInstall,
		recent.ID:     domain.SaleStatusAwaitingFdr,
		undated.ID:    domain.SaleStatusAwaitingFdr,
		cashed.ID:     domain.SaleStatusCashed,
	}
	for id, status := range expected {
		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status, "sale %d", id)
	}
}

func TestSaleRepository_LatestCreatedDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSaleRepository(db)

	latest, err := repo.LatestCreatedDate(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, latest)

	company := testutil.CreateTestCompany(t, db, "FP", "FPEMC Lyon")
	testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, CreatedDate: testutil.Date(2024, time.August, 2)})
	testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company, CreatedDate: testutil.Date(2024, time.October, 20)})
	testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: company})

	latest, err = repo.LatestCreatedDate(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(*testutil.Date(2024, time.October, 20)))

	undated, err := repo.CountUndated(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), undated)
}
