package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLot(
	r chi.Router,
	lotHandler *adaptor.LotHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/lots - List lots with live availability
		r.Get("/api/lots", lotHandler.ListLots)

		// GET /api/lots/search?q= - Search lots by name, address or pincode
		r.Get("/api/lots/search", lotHandler.SearchLots)

		// GET /api/lots/{id}/spots - Spot grid for one lot
		r.Get("/api/lots/{id}/spots", lotHandler.ListSpots)
	})

	// ==================== ADMIN ROUTES ====================
	// Lot management routes
	r.Route("/api/admin/lots", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/lots - Create lot with its initial spots
		r.Post("/", lotHandler.CreateLot)

		// PUT /api/admin/lots/{id} - Edit lot metadata and rate
		r.Put("/{id}", lotHandler.UpdateLot)

		// POST /api/admin/lots/{id}/spots - Grow the lot
		r.Post("/{id}/spots", lotHandler.AddSpots)
	})

	// Spot management routes
	r.Route("/api/admin/spots", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/spots/{id} - Spot occupant detail
		r.Get("/{id}", lotHandler.SpotDetail)

		// DELETE /api/admin/spots/{id} - Remove an available spot
		r.Delete("/{id}", lotHandler.DeleteSpot)
	})
}
