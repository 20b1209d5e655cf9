package usecase

import (
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/database"
	"parking-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Lot     LotService
	Booking BookingService
	Report  ReportService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	pricing := NewHourlyCostCalculator(config.Booking.ClampNegativeDuration)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Lot:     NewLotService(db, repo, pricing, config.Booking.SpotPrefix, log),
		Booking: NewBookingService(db, repo, pricing, log),
		Report:  NewReportService(repo, log),
	}
}
