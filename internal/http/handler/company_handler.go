package handler

import (
	"net/http"
	"strconv"

	"github.com/fpemc/crm-api/internal/service"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// @Summary Get all companies
// @Description List agencies with the reporting entity they roll up into
// @Tags Companies
// @Produce json
// @Param includeInactive query bool false "Include inactive agencies"
// @Success 200 {array} domain.CompanyDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	companies, err := h.companyService.List(r.Context(), includeInactive)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list companies")
		return
	}
	respondJSON(w, http.StatusOK, companies)
}

// @Summary Get company
// @Tags Companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} domain.CompanyDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get company")
		return
	}
	respondJSON(w, http.StatusOK, company)
}
