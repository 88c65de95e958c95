// internal/domain/delivery/channel.go
package delivery

import (
	"context"

	"cubicle_notifier/internal/domain/user"
)

// Context carries per-operation metadata into channel sends. Channels own
// their formatting; the orchestrator only supplies the facts.
type Context struct {
	Initiator   string
	DateFilter  string
	Utilization *user.UtilizationReport
}

// Channel is the capability contract every delivery mechanism implements.
// An unconfigured channel must report so via IsConfigured and is simply
// skipped by callers; Send on an unconfigured channel is undefined.
type Channel interface {
	Name() string
	IsConfigured() bool
	Send(ctx context.Context, u user.Summary, nctx Context) error
}

// Broadcaster is implemented by channels that support a channel-wide
// announcement in addition to per-user sends.
type Broadcaster interface {
	Broadcast(ctx context.Context, message string) error
}

// CustomSender is implemented by channels that can deliver an arbitrary
// operator-supplied message to a single user.
type CustomSender interface {
	SendCustom(ctx context.Context, u user.Summary, message string) error
}

// TaskCreator is implemented by channels that turn a utilization report into
// a work item in an external tracker. The returned id identifies the created
// item; reports needing no action yield (false, "", nil).
type TaskCreator interface {
	CreateTask(ctx context.Context, report user.UtilizationReport) (created bool, itemID string, err error)
}
