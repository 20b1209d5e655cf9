package response

type UserSummaryResponse struct {
	TotalHours float64              `json:"total_hours"`
	TotalCost  float64              `json:"total_cost"`
	DailySpend []DailySpendResponse `json:"daily_spend"`
}

type DailySpendResponse struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

type LotRevenueResponse struct {
	LotID   string  `json:"lot_id"`
	LotName string  `json:"lot_name"`
	Revenue float64 `json:"revenue"`
}

type DayRevenueResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type LotOccupancyResponse struct {
	LotID      string `json:"lot_id"`
	LotName    string `json:"lot_name"`
	TotalSlots int    `json:"total_slots"`
	Available  int    `json:"available"`
	Occupied   int    `json:"occupied"`
}
