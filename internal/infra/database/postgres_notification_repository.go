// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"cubicle_notifier/internal/domain/notification"

	"github.com/lib/pq" // For pq.Array and driver registration
)

// PostgresNotificationRepository persists notification attempts in the
// append-only 'notification_history' table. Rows are never updated or deleted.
type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Insert(ctx context.Context, attempt *notification.Attempt) error {
	query := `INSERT INTO notification_history (notification_type, status, message, recipients, sent_by, error_message, data)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING id, created_at`
	// pq cannot serialize a nil json.RawMessage into JSONB directly.
	var data interface{}
	if len(attempt.Data) > 0 {
		data = []byte(attempt.Data)
	}
	err := r.db.QueryRowContext(ctx, query,
		attempt.Type, attempt.Status, attempt.Message,
		pq.Array(attempt.Recipients), attempt.SentBy, attempt.Error, data,
	).Scan(&attempt.ID, &attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting notification attempt: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) ListRecent(ctx context.Context, limit int) ([]*notification.Attempt, error) {
	query := `SELECT id, notification_type, status, message, recipients, sent_by, error_message, data, created_at
               FROM notification_history
               ORDER BY created_at DESC, id DESC
               LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying notification history: %w", err)
	}
	defer rows.Close()

	attempts := make([]*notification.Attempt, 0)
	for rows.Next() {
		a := &notification.Attempt{}
		var data []byte
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Status, &a.Message,
			pq.Array(&a.Recipients), &a.SentBy, &a.Error, &data, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning notification attempt row: %w", err)
		}
		a.Data = data
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification attempt rows: %w", err)
	}
	return attempts, nil
}
