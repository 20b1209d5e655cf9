package response

import (
	"time"

	"parking-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	LotID         string               `json:"lot_id"`
	SpotID        string               `json:"spot_id"`
	LotName       string               `json:"lot_name,omitempty"`
	SpotUID       string               `json:"spot_uid,omitempty"`
	VehicleNumber string               `json:"vehicle_number"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       *time.Time           `json:"end_time,omitempty"`
	DurationHours float64              `json:"duration_hours"`
	Cost          float64              `json:"cost"`
	Status        entity.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		LotID:         b.LotID.String(),
		SpotID:        b.SpotID.String(),
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.DurationHours,
		Cost:          b.Cost,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
