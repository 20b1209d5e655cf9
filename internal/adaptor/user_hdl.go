package adaptor

import (
	"errors"
	"net/http"

	"parking-booking/internal/data/repository"
	"parking-booking/internal/usecase"
	"parking-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	reports usecase.ReportService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, reports usecase.ReportService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		reports: reports,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// GetSummary handles GET /api/user/summary (protected)
func (h *UserHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	summary, err := h.reports.UserSummary(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// ==================== ADMIN METHODS ====================

// ListCustomers handles GET /api/admin/users (admin only)
func (h *UserHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// handleServiceError routes user errors to HTTP status codes
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
