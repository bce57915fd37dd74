package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/service"
	"go.uber.org/zap"
)

type AdminHandler struct {
	saleStatusService *service.SaleStatusService
	logger            *zap.Logger
}

func NewAdminHandler(saleStatusService *service.SaleStatusService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		saleStatusService: saleStatusService,
		logger:            logger,
	}
}

// @Summary Promote stale FDR sales
// @Description Move sales waiting for their FDR past the threshold to awaiting installation
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body domain.FdrPromotionRequest false "Threshold override"
// @Success 200 {object} domain.FdrPromotionResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/sales/fdr-promotion [post]
func (h *AdminHandler) PromoteFdr(w http.ResponseWriter, r *http.Request) {
	var req domain.FdrPromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.saleStatusService.PromoteStaleFdr(r.Context(), req.ThresholdDays)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to promote FDR sales")
		return
	}

	if user, ok := auth.FromContext(r.Context()); ok {
		h.logger.Info("FDR promotion triggered manually",
			zap.Uint("user_id", user.UserID),
			zap.Int64("updated", result.Updated),
		)
	}
	respondJSON(w, http.StatusOK, result)
}
