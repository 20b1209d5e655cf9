package response

import "parking-booking/internal/data/repository"

type LotResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Pincode      string  `json:"pincode"`
	PricePerHour float64 `json:"price_per_hour"`
	TotalSlots   int     `json:"total_slots"`
	// AvailableSlots is derived from spot rows at read time.
	AvailableSlots int `json:"available_slots"`
}

func LotToResponse(lot *repository.LotWithAvailability) LotResponse {
	return LotResponse{
		ID:             lot.ID.String(),
		Name:           lot.Name,
		Address:        lot.Address,
		Pincode:        lot.Pincode,
		PricePerHour:   lot.PricePerHour,
		TotalSlots:     lot.TotalSlots,
		AvailableSlots: lot.AvailableSlots,
	}
}
