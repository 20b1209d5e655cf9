package request

type ReserveRequest struct {
	LotID         string `json:"lot_id" validate:"required,uuid4"`
	VehicleNumber string `json:"vehicle_number" validate:"required,min=2,max=20"`
	// StartTime is the intended reservation time (RFC3339). It is
	// provisional: starting the parking replaces it with the arrival
	// instant, which is what gets billed.
	StartTime string `json:"start_time" validate:"required"`
}
