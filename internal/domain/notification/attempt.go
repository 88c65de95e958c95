// internal/domain/notification/attempt.go
package notification

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Type identifies what kind of delivery produced an audit record.
type Type string

const (
	TypeIndividualEmail Type = "individual_email"
	TypeIndividualSlack Type = "individual_slack"
	TypeBulkEmail       Type = "bulk_email"
	TypeBulkSlack       Type = "bulk_slack"
	TypeCustomEmail     Type = "custom_email"
	TypeCustomSlack     Type = "custom_slack"
	TypeTaskCreated     Type = "task_created"
)

// Status is the outcome of a single delivery attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Attempt is one persisted audit record of a single delivery attempt.
// Corresponds to the append-only 'notification_history' table. Exactly one
// Attempt is written per (recipient, channel) delivery, success or failure.
type Attempt struct {
	ID         int64
	Type       Type
	Status     Status
	Message    string
	Recipients []string // recipient email addresses; empty for channel-wide sends
	SentBy     sql.NullString
	Error      sql.NullString
	Data       json.RawMessage // optional structured payload (counts, run id, ...)
	CreatedAt  time.Time
}
