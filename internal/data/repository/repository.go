package repository

import (
	"parking-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Lot     LotRepository
	Spot    SpotRepository
	Booking BookingRepository
	Report  ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Lot:     NewLotRepository(db, log),
		Spot:    NewSpotRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Report:  NewReportRepository(db, log),
	}
}
