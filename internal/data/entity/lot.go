package entity

type Lot struct {
	Base
	Name         string  `db:"name"`
	Address      string  `db:"address"`
	Pincode      string  `db:"pincode"`
	PricePerHour float64 `db:"price_per_hour"`
	// TotalSlots must always equal the number of spot rows belonging to
	// the lot; it changes only together with spot creation/deletion.
	TotalSlots int `db:"total_slots"`
}
