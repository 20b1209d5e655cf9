package entity

import "github.com/google/uuid"

type SpotStatus string

const (
	SpotStatusAvailable SpotStatus = "available"
	SpotStatusOccupied  SpotStatus = "occupied"
)

type Spot struct {
	BaseSimple
	LotID   uuid.UUID  `db:"lot_id"`
	SpotUID string     `db:"spot_uid"` // A-1, A-2, etc., unique within a lot
	Status  SpotStatus `db:"status"`
}
