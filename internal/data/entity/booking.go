package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	UserID        uuid.UUID     `db:"user_id"`
	LotID         uuid.UUID     `db:"lot_id"`
	SpotID        uuid.UUID     `db:"spot_id"`
	VehicleNumber string        `db:"vehicle_number"`
	StartTime     time.Time     `db:"start_time"`
	EndTime       *time.Time    `db:"end_time"`
	DurationHours float64       `db:"duration_hours"`
	Cost          float64       `db:"cost"`
	Status        BookingStatus `db:"status"`
}

// IsActive reports whether the booking currently holds its spot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusBooked || b.Status == BookingStatusOngoing
}
