package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsHandler_Global(t *testing.T) {
	f := setupHandlerFixture(t)

	t.Run("monthly by default", func(t *testing.T) {
		w := serve(f.statistics.Global, adminContext(), http.MethodGet, "/api/v1/statistics/global", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[stats.Overview](t, w)
		assert.Equal(t, stats.ModeMonthly, body.Period.Mode)
		assert.Equal(t, stats.PeriodReal, body.Period.Status)
		assert.Equal(t, 1500.0, body.Revenue.Current)
		assert.Equal(t, 1000.0, body.Revenue.Previous)
		assert.Equal(t, 50.0, body.Revenue.Progress)
		assert.Nil(t, body.Debug)
	})

	t.Run("debug payload", func(t *testing.T) {
		w := serve(f.statistics.Global, adminContext(), http.MethodGet, "/api/v1/statistics/global?debug=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[stats.Overview](t, w)
		require.NotNil(t, body.Debug)
		assert.Equal(t, 1.0, body.Debug.Current.CountR1)
	})

	t.Run("daily mode", func(t *testing.T) {
		w := serve(f.statistics.Global, adminContext(), http.MethodGet, "/api/v1/statistics/global?comparison=daily", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, stats.ModeDaily, decode[stats.Overview](t, w).Period.Mode)
	})

	t.Run("unknown comparison mode", func(t *testing.T) {
		w := serve(f.statistics.Global, adminContext(), http.MethodGet, "/api/v1/statistics/global?comparison=weekly", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[domain.APIError](t, w)
		assert.Equal(t, domain.ErrorTypeValidation, body.Type)
		assert.Contains(t, body.Errors, "comparison")
	})
}

func TestStatisticsHandler_Global_InvalidRecord(t *testing.T) {
	f := setupHandlerFixture(t)
	require.NoError(t, f.db.Exec("INSERT INTO sales (status, source, company_id, created_date, created_at, updated_at) VALUES ('cashed', 'R1', 4242, '2024-10-05 00:00:00+00:00', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)").Error)

	w := serve(f.statistics.Global, adminContext(), http.MethodGet, "/api/v1/statistics/global", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, domain.ErrorTypeUnprocessable, decode[domain.APIError](t, w).Type)
}

func TestStatisticsHandler_Agency(t *testing.T) {
	f := setupHandlerFixture(t)
	lyonID := strconv.FormatUint(uint64(f.lyon.ID), 10)

	t.Run("manager of the agency", func(t *testing.T) {
		w := serve(f.statistics.Agency, userContext(f.manager), http.MethodGet, "/api/v1/statistics/agency/"+lyonID, map[string]string{"companyId": lyonID})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[stats.AgencyOverview](t, w)
		assert.Equal(t, f.lyon.ID, body.Company.ID)
		assert.Equal(t, 1500.0, body.Revenue.Current)
		require.Len(t, body.AffiliatedUsers.Users, 1)
		assert.Equal(t, f.alice.ID, body.AffiliatedUsers.Users[0].ID)
		assert.Equal(t, 1500.0, body.AffiliatedUsers.Totals.CaR1Ref)
	})

	t.Run("commercials are forbidden", func(t *testing.T) {
		w := serve(f.statistics.Agency, userContext(f.alice), http.MethodGet, "/api/v1/statistics/agency/"+lyonID, map[string]string{"companyId": lyonID})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown company", func(t *testing.T) {
		w := serve(f.statistics.Agency, adminContext(), http.MethodGet, "/api/v1/statistics/agency/999", map[string]string{"companyId": "999"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := serve(f.statistics.Agency, adminContext(), http.MethodGet, "/api/v1/statistics/agency/abc", map[string]string{"companyId": "abc"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("my agency", func(t *testing.T) {
		w := serve(f.statistics.MyAgency, userContext(f.manager), http.MethodGet, "/api/v1/statistics/agency/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, f.lyon.ID, decode[stats.AgencyOverview](t, w).Company.ID)
	})

	t.Run("my agency without affiliation", func(t *testing.T) {
		w := serve(f.statistics.MyAgency, adminContext(), http.MethodGet, "/api/v1/statistics/agency/me", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestStatisticsHandler_Leaderboard(t *testing.T) {
	f := setupHandlerFixture(t)
	lyonID := strconv.FormatUint(uint64(f.lyon.ID), 10)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"global", "/api/v1/statistics/leaderboard", http.StatusOK},
		{"agency", "/api/v1/statistics/leaderboard?scope=agency&companyId=" + lyonID, http.StatusOK},
		{"agency without company", "/api/v1/statistics/leaderboard?scope=agency", http.StatusBadRequest},
		{"unknown scope", "/api/v1/statistics/leaderboard?scope=region", http.StatusBadRequest},
		{"malformed company", "/api/v1/statistics/leaderboard?scope=agency&companyId=x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(f.statistics.Leaderboard, userContext(f.alice), http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := serve(f.statistics.Leaderboard, userContext(f.alice), http.MethodGet, "/api/v1/statistics/leaderboard?scope=agency&companyId="+lyonID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[stats.Leaderboard](t, w)
	assert.Equal(t, stats.ScopeAgency, board.Scope)
	require.NotNil(t, board.Company)
	assert.Equal(t, stats.EntityFP, board.Company.Entity)
	require.Len(t, board.Users, 1)
	assert.Equal(t, 1500.0, board.Users[0].RevenueR1)
}

func TestStatisticsHandler_Companies(t *testing.T) {
	f := setupHandlerFixture(t)

	w := serve(f.statistics.Companies, adminContext(), http.MethodGet, "/api/v1/statistics/companies?month=2024-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]stats.CompanyComparison](t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, 1500.0, rows[0].CurrentMonth.CaR1Ref)
	assert.Equal(t, 1000.0, rows[0].PreviousMonth.CaR1Ref)
	assert.Equal(t, 50.0, rows[0].ProgressCaR1Ref)

	w = serve(f.statistics.Companies, adminContext(), http.MethodGet, "/api/v1/statistics/companies?month=october", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
