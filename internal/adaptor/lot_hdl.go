package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"
	"parking-booking/internal/usecase"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LotHandler struct {
	service usecase.LotService
	log     *zap.Logger
}

func NewLotHandler(service usecase.LotService, log *zap.Logger) *LotHandler {
	return &LotHandler{
		service: service,
		log:     log.With(zap.String("handler", "lot")),
	}
}

// ListLots handles GET /api/lots (protected)
func (h *LotHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.ListLots(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list lots")
		return
	}

	utils.ResponseSuccess(w, "success", lots)
}

// SearchLots handles GET /api/lots/search?q= (protected)
func (h *LotHandler) SearchLots(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		utils.ResponseBadRequest(w, "Search term is required", nil)
		return
	}

	lots, err := h.service.SearchLots(r.Context(), term)
	if err != nil {
		h.handleServiceError(w, err, "search lots")
		return
	}

	utils.ResponseSuccess(w, "success", lots)
}

// ListSpots handles GET /api/lots/{id}/spots (protected)
func (h *LotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	lotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid lot ID", nil)
		return
	}

	spots, err := h.service.ListSpots(r.Context(), lotID)
	if err != nil {
		h.handleServiceError(w, err, "list spots")
		return
	}

	utils.ResponseSuccess(w, "success", spots)
}

// ==================== ADMIN METHODS ====================

// CreateLot handles POST /api/admin/lots (admin only)
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lot, err := h.service.CreateLot(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create lot")
		return
	}

	utils.ResponseCreated(w, "success", lot)
}

// UpdateLot handles PUT /api/admin/lots/{id} (admin only)
func (h *LotHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	lotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid lot ID", nil)
		return
	}

	var req request.UpdateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateLot(r.Context(), lotID, &req); err != nil {
		h.handleServiceError(w, err, "update lot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// AddSpots handles POST /api/admin/lots/{id}/spots (admin only)
func (h *LotHandler) AddSpots(w http.ResponseWriter, r *http.Request) {
	lotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid lot ID", nil)
		return
	}

	var req request.AddSpotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AddSpots(r.Context(), lotID, &req); err != nil {
		h.handleServiceError(w, err, "add spots")
		return
	}

	utils.ResponseCreated(w, "success", nil)
}

// SpotDetail handles GET /api/admin/spots/{id} (admin only)
func (h *LotHandler) SpotDetail(w http.ResponseWriter, r *http.Request) {
	spotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid spot ID", nil)
		return
	}

	detail, err := h.service.SpotDetail(r.Context(), spotID)
	if err != nil {
		h.handleServiceError(w, err, "get spot detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// DeleteSpot handles DELETE /api/admin/spots/{id} (admin only)
func (h *LotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	spotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid spot ID", nil)
		return
	}

	if err := h.service.DeleteSpot(r.Context(), spotID); err != nil {
		h.handleServiceError(w, err, "delete spot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError routes lot errors to HTTP status codes
func (h *LotHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, repository.ErrSpotOccupied):
		h.log.Warn(operation+" failed - spot occupied",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, repository.ErrAlreadyExists):
		h.log.Warn(operation+" failed - duplicate",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
