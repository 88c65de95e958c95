// internal/domain/notification/repository.go
package notification

import (
	"context"
)

// Repository defines the append-only write contract of the audit log, plus a
// read path for operational inspection. Insert failures are handled by the
// caller as best-effort: a failure to log must never abort the delivery it is
// logging.
type Repository interface {
	Insert(ctx context.Context, attempt *Attempt) error
	ListRecent(ctx context.Context, limit int) ([]*Attempt, error)
}
