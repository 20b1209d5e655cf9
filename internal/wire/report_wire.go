package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/stats", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/stats/revenue-by-lot - Completed booking revenue per lot
		r.Get("/revenue-by-lot", reportHandler.RevenueByLot)

		// GET /api/admin/stats/revenue-by-day - Completed booking revenue per day
		r.Get("/revenue-by-day", reportHandler.RevenueByDay)

		// GET /api/admin/stats/occupancy - Live spot occupancy per lot
		r.Get("/occupancy", reportHandler.Occupancy)
	})
}
