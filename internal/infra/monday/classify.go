package monday

import (
	"fmt"

	"cubicle_notifier/internal/domain/user"
)

// Action describes the work item a utilization report warrants.
type Action struct {
	Priority string
	Status   string
	Summary  string
}

const (
	priorityUrgent = "Urgent"
	priorityHigh   = "High"
	priorityMedium = "Medium"
)

// classify maps a utilization report onto the action policy:
// average >= 90% is urgent, average >= 85% or a peak more than 40 points above
// average is high, low usage (average < 25% and fewer than 10 reservations)
// warrants a medium-priority promotional push. Anything else needs no task.
func classify(r user.UtilizationReport) (Action, bool) {
	switch {
	case r.AveragePct >= 90:
		return Action{
			Priority: priorityUrgent,
			Status:   "Working on it",
			Summary:  fmt.Sprintf("Cubicle capacity critical: average utilization at %.1f%%. Plan additional desks.", r.AveragePct),
		}, true
	case r.AveragePct >= 85 || r.PeakPct-r.AveragePct > 40:
		return Action{
			Priority: priorityHigh,
			Status:   "To Do",
			Summary:  fmt.Sprintf("Cubicle utilization high or spiky: average %.1f%%, peak %.1f%% on %s.", r.AveragePct, r.PeakPct, r.PeakDay),
		}, true
	case r.AveragePct < 25 && r.TotalReservations < 10:
		return Action{
			Priority: priorityMedium,
			Status:   "To Do",
			Summary:  fmt.Sprintf("Cubicle usage low: average %.1f%% over %d reservations. Consider a promotional push.", r.AveragePct, r.TotalReservations),
		}, true
	default:
		return Action{}, false
	}
}
