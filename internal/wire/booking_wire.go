package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Reserve a spot (auto-allocated)
		r.Post("/api/bookings", bookingHandler.Reserve)

		// PUT /api/bookings/{id}/start - Mark arrival, billing starts
		r.Put("/api/bookings/{id}/start", bookingHandler.StartParking)

		// PUT /api/bookings/{id}/complete - Release the spot, compute cost
		r.Put("/api/bookings/{id}/complete", bookingHandler.CompleteParking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})
}
