package reservation

import (
	"context"
	"time"
)

// Filter restricts a reservation lookup. The zero value matches everything.
type Filter struct {
	UserID string     // restrict to a single user id when non-empty
	Day    *time.Time // restrict to a single calendar day when non-nil
}

// Source defines read access to the reservation store. Implementations must
// return records joined with cubicle serial/section and user email/name.
type Source interface {
	Find(ctx context.Context, filter Filter) ([]Record, error)
	// CountCubicles returns the total number of cubicles, used as the
	// capacity denominator for utilization percentages.
	CountCubicles(ctx context.Context) (int, error)
}
