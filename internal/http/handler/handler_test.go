package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/http/handler"
	"github.com/fpemc/crm-api/internal/repository"
	"github.com/fpemc/crm-api/internal/service"
	"github.com/fpemc/crm-api/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var handlerNow = time.Date(2024, time.November, 20, 12, 0, 0, 0, time.UTC)

type handlerFixture struct {
	db         *gorm.DB
	statistics *handler.StatisticsHandler
	companies  *handler.CompanyHandler
	admin      *handler.AdminHandler
	lyon       *domain.Company
	alice      *domain.User
	manager    *domain.User
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	saleRepo := repository.NewSaleRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	statisticsService := service.NewStatisticsService(
		saleRepo,
		repository.NewAppointmentRepository(db),
		companyRepo,
		repository.NewUserRepository(db),
		service.StatisticsOptions{Location: time.UTC, Now: func() time.Time { return handlerNow }, MinSalesForMonthly: 2},
		logger,
	)

	f := &handlerFixture{
		db:         db,
		statistics: handler.NewStatisticsHandler(statisticsService, 5*time.Second, logger),
		companies:  handler.NewCompanyHandler(service.NewCompanyService(companyRepo, logger), logger),
		admin:      handler.NewAdminHandler(service.NewSaleStatusService(saleRepo, 15*24*time.Hour, logger), logger),
	}
	f.lyon = testutil.CreateTestCompany(t, db, "FP", "FPEMC Lyon")
	f.alice = testutil.CreateTestUser(t, db, "Alice", "Martin", domain.RoleSales, f.lyon)
	f.manager = testutil.CreateTestUser(t, db, "Carla", "Petit", domain.RoleManager, f.lyon)

	testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: f.lyon, Seller: f.alice, Source: domain.SaleSourceR1, Price: "1500", CreatedDate: testutil.Date(2024, time.October, 3)})
	testutil.CreateTestSale(t, db, testutil.SaleSpec{Company: f.lyon, Seller: f.alice, Source: domain.SaleSourceR1, Price: "1000", CreatedDate: testutil.Date(2024, time.September, 3)})
	return f
}

func userContext(user *domain.User) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     []domain.UserRoleType{user.Role},
		CompanyID: user.CompanyID,
	})
}

func adminContext() context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		DisplayName: "Admin",
		Roles:       []domain.UserRoleType{domain.RoleAdmin},
	})
}

// serve runs h on a request carrying ctx and the chi url params
func serve(h http.HandlerFunc, ctx context.Context, method, target string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	w := httptest.NewRecorder()
	h(w, req.WithContext(ctx))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}
