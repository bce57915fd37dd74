package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/service"
	"github.com/fpemc/crm-api/internal/stats"
	"go.uber.org/zap"
)


type StatisticsHandler struct {
	statisticsService *service.StatisticsService
	timeout           time.Duration
	logger            *zap.Logger
}

// NewStatisticsHandler creates a handler whose computations are bounded by
// timeout. A zero timeout disables the bound.
func NewStatisticsHandler(statisticsService *service.StatisticsService, timeout time.Duration, logger *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
		timeout:           timeout,
		logger:            logger,
	}
}

func (h *StatisticsHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// parseComparison validates the comparison query parameter
func parseComparison(w http.ResponseWriter, r *http.Request) (stats.Mode, bool) {
	query := domain.StatisticsQuery{Comparison: r.URL.Query().Get("comparison")}
	if err := validate.Struct(query); err != nil {
		respondValidationError(w, err)
		return "", false
	}
	mode, err := service.ParseMode(query.Comparison)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return mode, true
}

// @Summary Global statistics
// @Description Compare network-wide sales figures between the current and previous periods
// @Tags Statistics
// @Produce json
// @Param comparison query string false "Comparison mode (monthly, daily)" default(monthly)
// @Param debug query bool false "Include the raw statistics records"
// @Success 200 {object} stats.Overview
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /statistics/global [get]
func (h *StatisticsHandler) Global(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseComparison(w, r)
	if !ok {
		return
	}
	debug, _ := strconv.ParseBool(r.URL.Query().Get("debug"))

	ctx, cancel := h.requestContext(r)
	defer cancel()

	overview, err := h.statisticsService.GlobalStatistics(ctx, mode, debug)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute global statistics")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// @Summary Agency statistics
// @Description Compare the figures of one agency and rank its commercials
// @Tags Statistics
// @Produce json
// @Param companyId path int true "Company ID"
// @Param comparison query string false "Comparison mode (monthly, daily)" default(monthly)
// @Success 200 {object} stats.AgencyOverview
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /statistics/agency/{companyId} [get]
func (h *StatisticsHandler) Agency(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseIDParam(r, "companyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, ok := parseComparison(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	overview, err := h.statisticsService.AgencyStatistics(ctx, companyID, mode)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute agency statistics")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// @Summary Statistics of my agency
// @Tags Statistics
// @Produce json
// @Param comparison query string false "Comparison mode (monthly, daily)" default(monthly)
// @Success 200 {object} stats.AgencyOverview
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /statistics/agency/me [get]
func (h *StatisticsHandler) MyAgency(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseComparison(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	overview, err := h.statisticsService.MyAgencyStatistics(ctx, mode)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute agency statistics")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// @Summary Commercial leaderboard
// @Description Rank commercials over the last month holding a sale
// @Tags Statistics
// @Produce json
// @Param scope query string false "Scope (global, agency)" default(global)
// @Param companyId query int false "Company ID, required for the agency scope"
// @Success 200 {object} stats.Leaderboard
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /statistics/leaderboard [get]
func (h *StatisticsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	query := domain.LeaderboardQuery{Scope: r.URL.Query().Get("scope")}
	if raw := r.URL.Query().Get("companyId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid companyId: must be a positive integer")
			return
		}
		query.CompanyID = uint(id)
	}
	if err := validate.Struct(query); err != nil {
		respondValidationError(w, err)
		return
	}
	scope, err := service.ParseScope(query.Scope)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var companyID *uint
	if query.CompanyID != 0 {
		companyID = &query.CompanyID
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	board, err := h.statisticsService.Leaderboard(ctx, scope, companyID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute leaderboard")
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// @Summary Company comparison
// @Description Compare every active agency between a month and the month before
// @Tags Statistics
// @Produce json
// @Param month query string false "Reference month (YYYY-MM), defaults to the current month"
// @Success 200 {array} stats.CompanyComparison
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /statistics/companies [get]
func (h *StatisticsHandler) Companies(w http.ResponseWriter, r *http.Request) {
	query := domain.CompanyComparisonQuery{Month: r.URL.Query().Get("month")}
	if err := validate.Struct(query); err != nil {
		respondValidationError(w, err)
		return
	}

	var month *time.Time
	if query.Month != "" {
		m, err := time.Parse("2006-01", query.Month)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid month: expected YYYY-MM")
			return
		}
		month = &m
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	rows, err := h.statisticsService.CompanyComparison(ctx, month)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compare companies")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
