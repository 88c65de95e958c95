// internal/domain/user/summary.go
package user

import "time"

// Summary is the derived, non-persisted aggregate of one user's reservation
// activity. It is recomputed from reservation records on every query and has
// no independent lifecycle.
type Summary struct {
	UID                  string
	Email                string
	DisplayName          string
	TotalReservations    int
	DaysActive           int
	FavoriteSection      string
	AvgDailyReservations float64
	CubicleSequence      string
	LastActivity         time.Time
}

// UtilizationReport describes overall cubicle usage across all reservations.
// Percentages are relative to the cubicle capacity.
type UtilizationReport struct {
	AveragePct        float64
	PeakPct           float64
	PeakDay           string
	TotalReservations int
	Capacity          int
}
