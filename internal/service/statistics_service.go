package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/mapper"
	"github.com/fpemc/crm-api/internal/repository"
	"github.com/fpemc/crm-api/internal/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultStatisticsWorkers = 8

// StatisticsOptions tunes period resolution and fan-out
type StatisticsOptions struct {
	Location           *time.Location
	Now                func() time.Time
	MinSalesForMonthly int
	// Workers bounds the concurrent per-seller and per-company aggregations
	Workers int
}

// StatisticsService loads sales and appointments and runs them through the
// statistics engine. Nothing it computes is stored.
type StatisticsService struct {
	saleRepo        *repository.SaleRepository
	appointmentRepo *repository.AppointmentRepository
	companyRepo     *repository.CompanyRepository
	userRepo        *repository.UserRepository
	resolver        *stats.Resolver
	workers         int
	logger          *zap.Logger
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(
	saleRepo *repository.SaleRepository,
	appointmentRepo *repository.AppointmentRepository,
	companyRepo *repository.CompanyRepository,
	userRepo *repository.UserRepository,
	opts StatisticsOptions,
	logger *zap.Logger,
) *StatisticsService {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultStatisticsWorkers
	}
	return &StatisticsService{
		saleRepo:        saleRepo,
		appointmentRepo: appointmentRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		resolver:        stats.NewResolver(opts.Location, opts.Now, opts.MinSalesForMonthly),
		workers:         workers,
		logger:          logger,
	}
}

// ParseMode validates a comparison mode. An empty value selects monthly.
func ParseMode(raw string) (stats.Mode, error) {
	switch mode := stats.Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return stats.ModeMonthly, nil
	case stats.ModeMonthly, stats.ModeDaily:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidComparisonMode, raw)
}

// ParseScope validates a leaderboard scope. An empty value selects global.
func ParseScope(raw string) (stats.Scope, error) {
	switch scope := stats.Scope(strings.ToLower(strings.TrimSpace(raw))); scope {
	case "":
		return stats.ScopeGlobal, nil
	case stats.ScopeGlobal, stats.ScopeAgency:
		return scope, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, raw)
}

// GlobalStatistics compares the whole network over the resolved periods
func (s *StatisticsService) GlobalStatistics(ctx context.Context, mode stats.Mode, debug bool) (*stats.Overview, error) {
	sales, err := s.loadSales(ctx, repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	appointments, err := s.loadAppointments(ctx, repository.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(sales, mode)
	overview := stats.BuildOverview(stats.Compare(sales, appointments, res), debug)

	s.logger.Debug("global statistics computed",
		zap.String("mode", string(mode)),
		zap.String("period_status", string(res.Status)),
		zap.Int("sales", len(sales)),
		zap.Int("appointments", len(appointments)),
		zap.Int("skipped_records", overview.SkippedRecords),
	)
	return &overview, nil
}

// AgencyStatistics compares one agency over the resolved periods and ranks
// its commercials over the last month with data
func (s *StatisticsService) AgencyStatistics(ctx context.Context, companyID uint, mode stats.Mode) (*stats.AgencyOverview, error) {
	if err := s.authorizeCompany(ctx, companyID); err != nil {
		return nil, err
	}
	company, err := s.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sales, err := s.loadSales(ctx, repository.SaleFilter{CompanyID: &companyID})
	if err != nil {
		return nil, err
	}
	memberIDs, err := s.userRepo.ListIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agency users: %w", err)
	}
	if memberIDs == nil {
		memberIDs = []uint{}
	}
	appointments, err := s.loadAppointments(ctx, repository.AppointmentFilter{UserIDs: memberIDs})
	if err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(sales, mode)
	overview := stats.BuildOverview(stats.Compare(sales, appointments, res), false)

	users, err := s.userRepo.ListCommercials(ctx, &companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agency commercials: %w", err)
	}
	roster, err := s.rankSellers(ctx, users)
	if err != nil {
		return nil, err
	}

	return &stats.AgencyOverview{
		Company:         stats.NewCompanySummary(*mapper.ToStatsCompany(company)),
		Overview:        overview,
		AffiliatedUsers: roster,
	}, nil
}

// MyAgencyStatistics runs AgencyStatistics for the caller's own agency
func (s *StatisticsService) MyAgencyStatistics(ctx context.Context, mode stats.Mode) (*stats.AgencyOverview, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbiddenCompany
	}
	if user.CompanyID == nil {
		return nil, ErrNoCompany
	}
	return s.AgencyStatistics(ctx, *user.CompanyID, mode)
}

// Leaderboard ranks the commercials of the network or of one agency over the
// last month with data
func (s *StatisticsService) Leaderboard(ctx context.Context, scope stats.Scope, companyID *uint) (*stats.Leaderboard, error) {
	board := &stats.Leaderboard{Scope: scope}

	var filter *uint
	switch scope {
	case stats.ScopeGlobal:
	case stats.ScopeAgency:
		if companyID == nil || *companyID == 0 {
			return nil, ErrAgencyScopeRequired
		}
		if err := s.authorizeLeaderboard(ctx, *companyID); err != nil {
			return nil, err
		}
		company, err := s.getCompany(ctx, *companyID)
		if err != nil {
			return nil, err
		}
		summary := stats.NewCompanySummary(*mapper.ToStatsCompany(company))
		board.Company = &summary
		filter = companyID
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}

	users, err := s.userRepo.ListCommercials(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list commercials: %w", err)
	}
	ranking, err := s.rankSellers(ctx, users)
	if err != nil {
		return nil, err
	}
	board.Ranking = ranking

	skipped, err := s.saleRepo.CountUndated(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count undated sales: %w", err)
	}
	board.SkippedRecords = int(skipped)

	s.logger.Debug("leaderboard computed",
		zap.String("scope", string(scope)),
		zap.Int("users", len(ranking.Users)),
		zap.String("period_status", string(ranking.Period.Status)),
	)
	return board, nil
}

// CompanyComparison compares every active agency between a reference month and
// the month before. A nil month selects the current month.
func (s *StatisticsService) CompanyComparison(ctx context.Context, month *time.Time) ([]stats.CompanyComparison, error) {
	ref := s.resolver.Now()
	if month != nil {
		ref = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, s.resolver.Location())
	}
	current := stats.MonthWindow(ref)
	previous := stats.MonthWindow(current.Start.AddDate(0, -1, 0))

	companies, err := s.companyRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	sales, err := s.loadSales(ctx, repository.SaleFilter{From: &previous.Start, To: &current.End})
	if err != nil {
		return nil, err
	}

	out := make([]stats.CompanyComparison, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range companies {
		company := mapper.ToStatsCompany(&companies[i])
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			own := stats.ForCompany(sales, company.ID)
			out[i] = stats.CompareCompany(*company,
				stats.Aggregate(stats.SalesIn(own, current), nil),
				stats.Aggregate(stats.SalesIn(own, previous), nil),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compare companies: %w", err)
	}
	return out, nil
}

// rankSellers aggregates every user over the last month holding a sale.
// Sales from any agency count toward a commercial they credit.
func (s *StatisticsService) rankSellers(ctx context.Context, users []domain.User) (stats.Ranking, error) {
	latest, err := s.saleRepo.LatestCreatedDate(ctx, nil)
	if err != nil {
		return stats.Ranking{}, fmt.Errorf("failed to find latest sale: %w", err)
	}
	var latestAt time.Time
	if latest != nil {
		latestAt = *latest
	}
	window, status := s.resolver.MonthOf(latestAt)
	period := stats.PeriodInfo{Mode: stats.ModeMonthly, Status: status, Current: window}

	if len(users) == 0 {
		return stats.NewRanking(period, nil), nil
	}

	sales, err := s.loadSales(ctx, repository.SaleFilter{From: &window.Start, To: &window.End})
	if err != nil {
		return stats.Ranking{}, err
	}
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	appointments, err := s.loadAppointments(ctx, repository.AppointmentFilter{
		UserIDs: ids,
		From:    &window.Start,
		To:      &window.End,
	})
	if err != nil {
		return stats.Ranking{}, err
	}

	rows := make([]stats.SellerStats, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range users {
		profile := mapper.ToSellerProfile(&users[i])
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record := stats.Aggregate(
				stats.CreditedTo(sales, profile.ID),
				stats.OwnedBy(appointments, profile.ID),
			)
			rows[i] = stats.NewSellerStats(profile, record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats.Ranking{}, fmt.Errorf("failed to aggregate sellers: %w", err)
	}
	return stats.NewRanking(period, rows), nil
}

func (s *StatisticsService) loadSales(ctx context.Context, filter repository.SaleFilter) ([]stats.Sale, error) {
	sales, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	out := mapper.ToStatsSales(sales)
	if err := stats.ValidateSales(out); err != nil {
		s.logger.Error("sale rejected by statistics", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return out, nil
}

func (s *StatisticsService) loadAppointments(ctx context.Context, filter repository.AppointmentFilter) ([]stats.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return mapper.ToStatsAppointments(appointments), nil
}

func (s *StatisticsService) getCompany(ctx context.Context, id uint) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// authorizeCompany lets admins see every agency and managers their own
func (s *StatisticsService) authorizeCompany(ctx context.Context, companyID uint) error {
	user, ok := auth.FromContext(ctx)
	if !ok || !user.CanAccessCompany(companyID) {
		return ErrForbiddenCompany
	}
	return nil
}

// authorizeLeaderboard also opens an agency leaderboard to its own members
// and to users allowed on the global figures
func (s *StatisticsService) authorizeLeaderboard(ctx context.Context, companyID uint) error {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return ErrForbiddenCompany
	}
	if user.CanViewGlobalStatistics() || user.CanAccessCompany(companyID) || user.BelongsToCompany(companyID) {
		return nil
	}
	return ErrForbiddenCompany
}
