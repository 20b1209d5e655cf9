package adaptor

import (
	"net/http"

	"parking-booking/internal/usecase"
	"parking-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// RevenueByLot handles GET /api/admin/stats/revenue-by-lot (admin only)
func (h *ReportHandler) RevenueByLot(w http.ResponseWriter, r *http.Request) {
	revenues, err := h.service.RevenueByLot(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "revenue by lot")
		return
	}

	utils.ResponseSuccess(w, "success", revenues)
}

// RevenueByDay handles GET /api/admin/stats/revenue-by-day (admin only)
func (h *ReportHandler) RevenueByDay(w http.ResponseWriter, r *http.Request) {
	revenues, err := h.service.RevenueByDay(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "revenue by day")
		return
	}

	utils.ResponseSuccess(w, "success", revenues)
}

// Occupancy handles GET /api/admin/stats/occupancy (admin only)
func (h *ReportHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	occupancy, err := h.service.Occupancy(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "occupancy")
		return
	}

	utils.ResponseSuccess(w, "success", occupancy)
}

func (h *ReportHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	h.log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
