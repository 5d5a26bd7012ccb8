package dto

const (
	RangeDay  = "day"
	RangeWeek = "week"
)

// PeakHour is one hour bucket ranked by reservation count.
type PeakHour struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type OccupancyReportResponse struct {
	Range             string     `json:"range"`
	From              string     `json:"from"`
	To                string     `json:"to"`
	TotalReservations int        `json:"total_reservations"`
	TableCount        int        `json:"table_count"`
	OccupancyPct      int        `json:"occupancy_pct"`
	PeakHours         []PeakHour `json:"peak_hours"`
}
