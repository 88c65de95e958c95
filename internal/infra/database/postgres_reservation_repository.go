package database

import (
	"context"
	"database/sql"
	"fmt"

	"cubicle_notifier/internal/domain/reservation"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresReservationRepository provides read-only access to the reservation
// store. Reservations are joined with their cubicle and user rows so every
// record carries the serial, section, email and display name.
type PostgresReservationRepository struct {
	db *sql.DB
}

func NewPostgresReservationRepository(db *sql.DB) *PostgresReservationRepository {
	return &PostgresReservationRepository{db: db}
}

func (r *PostgresReservationRepository) Find(ctx context.Context, filter reservation.Filter) ([]reservation.Record, error) {
	query := `SELECT u.uid, u.email, u.display_name, c.serial, c.section, res.reserved_on
               FROM reservations res
               JOIN cubicles c ON c.serial = res.cubicle_serial
               JOIN users u ON u.uid = res.user_uid`

	var args []interface{}
	where := ""
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = fmt.Sprintf(" WHERE u.uid = $%d", len(args))
	}
	if filter.Day != nil {
		day := filter.Day.Format("2006-01-02")
		args = append(args, day)
		if where == "" {
			where = fmt.Sprintf(" WHERE res.reserved_on = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND res.reserved_on = $%d", len(args))
		}
	}
	// Ordered by day then email so aggregation sees a stable insertion order.
	query += where + ` ORDER BY res.reserved_on, u.email, c.serial`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	records := make([]reservation.Record, 0)
	for rows.Next() {
		var rec reservation.Record
		if err := rows.Scan(&rec.UserID, &rec.UserEmail, &rec.UserName, &rec.CubicleSerial, &rec.CubicleSection, &rec.Date); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}
	return records, nil
}

func (r *PostgresReservationRepository) CountCubicles(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cubicles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting cubicles: %w", err)
	}
	return count, nil
}
