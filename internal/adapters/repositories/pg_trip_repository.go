package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
)

// PgTripRepository persists computed trips and their daily logs.
type PgTripRepository struct {
	DB *sql.DB
}

func NewPgTripRepository(db *sql.DB) *PgTripRepository {
	return &PgTripRepository{DB: db}
}

func (r *PgTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "triprepo.SaveTrip")(&err)

	if r.DB == nil {
		return errors.New("trip repository: db is nil")
	}
	if trip == nil {
		return errors.New("trip repository: trip is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
	INSERT INTO trips (current_location, pickup_location, dropoff_location,
	                   current_cycle_used, total_distance, total_duration)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at;
	`,
		trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation,
		trip.CurrentCycleUsed, trip.TotalDistance, trip.TotalDuration,
	).Scan(&trip.ID, &trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("save trip: insert trip: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO daily_logs (trip_id, day_number, date, driving_hours,
	                        on_duty_hours, off_duty_hours, notes)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
	RETURNING id;
	`)
	if err != nil {
		return fmt.Errorf("save trip: db prepare: %w", err)
	}
	defer stmt.Close()

	for i := range trip.DailyLogs {
		dl := &trip.DailyLogs[i]
		err := stmt.QueryRowContext(ctx,
			trip.ID, dl.DayNumber, dl.Date,
			dl.DrivingHours, dl.OnDutyHours, dl.OffDutyHours, dl.Notes,
		).Scan(&dl.ID)
		if err != nil {
			return fmt.Errorf("save trip: insert daily log day=%d: %w", dl.DayNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip: commit: %w", err)
	}

	return nil
}

func (r *PgTripRepository) GetTrip(ctx context.Context, id int64) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "triprepo.GetTrip")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	trip := &domain.Trip{}
	err = r.DB.QueryRowContext(ctx, `
	SELECT id, current_location, pickup_location, dropoff_location,
	       current_cycle_used, total_distance, total_duration, created_at
	FROM trips
	WHERE id = $1;
	`, id).Scan(
		&trip.ID, &trip.CurrentLocation, &trip.PickupLocation, &trip.DropoffLocation,
		&trip.CurrentCycleUsed, &trip.TotalDistance, &trip.TotalDuration, &trip.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: query trips: %w", id, err)
	}

	logs, err := r.logsForTrips(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	trip.DailyLogs = logs[id]

	return trip, nil
}

func (r *PgTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "triprepo.ListTrips")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT id, current_location, pickup_location, dropoff_location,
	       current_cycle_used, total_distance, total_duration, created_at
	FROM trips
	ORDER BY created_at DESC, id DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips: %w", err)
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	ids := []int64{}
	for rows.Next() {
		trip := &domain.Trip{}
		if err := rows.Scan(
			&trip.ID, &trip.CurrentLocation, &trip.PickupLocation, &trip.DropoffLocation,
			&trip.CurrentCycleUsed, &trip.TotalDistance, &trip.TotalDuration, &trip.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list trips: scan rows: %w", err)
		}
		trips = append(trips, trip)
		ids = append(ids, trip.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	if len(trips) == 0 {
		return trips, nil
	}

	logs, err := r.logsForTrips(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	for _, trip := range trips {
		trip.DailyLogs = logs[trip.ID]
	}

	return trips, nil
}

func (r *PgTripRepository) logsForTrips(ctx context.Context, tripIDs []int64) (map[int64][]domain.DailyLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT id, trip_id, day_number, COALESCE(date::text, ''), driving_hours,
	       on_duty_hours, off_duty_hours, COALESCE(notes, '')
	FROM daily_logs
	WHERE trip_id = ANY($1::bigint[])
	ORDER BY trip_id, day_number;
	`, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("query daily_logs: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.DailyLog, len(tripIDs))
	for rows.Next() {
		var dl domain.DailyLog
		var tripID int64
		if err := rows.Scan(
			&dl.ID, &tripID, &dl.DayNumber, &dl.Date,
			&dl.DrivingHours, &dl.OnDutyHours, &dl.OffDutyHours, &dl.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan daily_logs: %w", err)
		}
		out[tripID] = append(out[tripID], dl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily_logs iteration: %w", err)
	}

	return out, nil
}
