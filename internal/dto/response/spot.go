package response

import (
	"time"

	"parking-booking/internal/data/entity"
)

type SpotResponse struct {
	ID      string            `json:"id"`
	LotID   string            `json:"lot_id"`
	SpotUID string            `json:"spot_uid"`
	Status  entity.SpotStatus `json:"status"`
}

func SpotToResponse(s *entity.Spot) SpotResponse {
	return SpotResponse{
		ID:      s.ID.String(),
		LotID:   s.LotID.String(),
		SpotUID: s.SpotUID,
		Status:  s.Status,
	}
}

// SpotDetailResponse is the occupant summary for a single spot. The
// occupant fields are only present while an active booking holds the spot.
type SpotDetailResponse struct {
	SpotResponse
	CustomerName  *string    `json:"customer_name,omitempty"`
	VehicleNumber *string    `json:"vehicle_number,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	ElapsedHours  *float64   `json:"elapsed_hours,omitempty"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
}
