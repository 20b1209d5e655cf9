package adaptor

import (
	"parking-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Lot     *LotHandler
	Booking *BookingHandler
	Report  *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, service.Report, log),
		Lot:     NewLotHandler(service.Lot, log),
		Booking: NewBookingHandler(service.Booking, log),
		Report:  NewReportHandler(service.Report, log),
	}
}
