package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for trip persistence.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id BIGSERIAL PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDailyLogsQuery := `
	CREATE TABLE IF NOT EXISTS daily_logs (
		id BIGSERIAL PRIMARY KEY,
		trip_id BIGINT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_number INTEGER NOT NULL,
		date DATE,
		driving_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		on_duty_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		off_duty_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		notes TEXT
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_daily_logs_trip_day
	ON daily_logs(trip_id, day_number);
	`

	statements := []string{
		createTripsQuery,
		createDailyLogsQuery,
		createIndexQuery,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
