package request

type CreateLotRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Address      string  `json:"address" validate:"required,max=255"`
	Pincode      string  `json:"pincode" validate:"required,min=4,max=10"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
	TotalSlots   int     `json:"total_slots" validate:"required,min=1,max=1000"`
}

type UpdateLotRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Address      string  `json:"address" validate:"required,max=255"`
	Pincode      string  `json:"pincode" validate:"required,min=4,max=10"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

type AddSpotsRequest struct {
	Count int `json:"count" validate:"required,min=1,max=1000"`
}
