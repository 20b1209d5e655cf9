package usecase

import "time"

// CostCalculator maps a parking interval and an hourly rate to a charge.
// Implementations must be pure and deterministic; duration keeps its
// fractional hours, rounding happens only at presentation time.
type CostCalculator interface {
	Quote(start, end time.Time, ratePerHour float64) (hours, cost float64)
}

type HourlyCostCalculator struct {
	// ClampNegative maps end < start (clock skew, bad input) to zero hours
	// instead of a negative charge. When false the raw negative duration
	// is returned and the caller decides whether to reject.
	ClampNegative bool
}

func NewHourlyCostCalculator(clampNegative bool) *HourlyCostCalculator {
	return &HourlyCostCalculator{ClampNegative: clampNegative}
}

func (c *HourlyCostCalculator) Quote(start, end time.Time, ratePerHour float64) (float64, float64) {
	hours := end.Sub(start).Hours()
	if hours < 0 && c.ClampNegative {
		hours = 0
	}
	return hours, hours * ratePerHour
}
