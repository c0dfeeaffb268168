package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertActivity inserts or updates an activity summary.
func (s *Store) UpsertActivity(a *Activity) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (
			id, name, sport_type, start_date, start_date_local,
			distance, moving_time, elapsed_time, total_elevation_gain,
			average_heartrate, max_heartrate, average_speed, synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport_type = excluded.sport_type,
			start_date = excluded.start_date,
			start_date_local = excluded.start_date_local,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			total_elevation_gain = excluded.total_elevation_gain,
			average_heartrate = excluded.average_heartrate,
			max_heartrate = excluded.max_heartrate,
			average_speed = excluded.average_speed,
			synced_at = excluded.synced_at
	`,
		a.ID, a.Name, a.SportType,
		a.StartDate.UTC().Format(time.RFC3339),
		a.StartDateLocal.Format(time.RFC3339),
		a.Distance, a.MovingTime, a.ElapsedTime, a.TotalElevationGain,
		a.AverageHeartrate, a.MaxHeartrate, a.AverageSpeed,
		a.SyncedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting activity %d: %w", a.ID, err)
	}
	return nil
}

// GetActivity returns a single activity by ID.
func (s *Store) GetActivity(id int64) (*Activity, error) {
	row := s.db.QueryRow(activitySelect+` WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying activity %d: %w", id, err)
	}
	return a, nil
}

// ListActivities returns activities ordered by start date descending.
func (s *Store) ListActivities(limit, offset int) ([]Activity, error) {
	rows, err := s.db.Query(activitySelect+`
		ORDER BY start_date DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// CountActivities returns the total number of stored activities.
func (s *Store) CountActivities() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return count, nil
}

// GetActivitiesNeedingLoad returns activities without a computed load.
func (s *Store) GetActivitiesNeedingLoad() ([]Activity, error) {
	rows, err := s.db.Query(activitySelect + `
		WHERE id NOT IN (SELECT activity_id FROM activity_loads)
		ORDER BY start_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying unloaded activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

const activitySelect = `
	SELECT id, name, sport_type, start_date, start_date_local,
		distance, moving_time, elapsed_time, total_elevation_gain,
		average_heartrate, max_heartrate, average_speed, synced_at
	FROM activities`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*Activity, error) {
	var a Activity
	var startDate, startDateLocal, syncedAt string
	err := row.Scan(
		&a.ID, &a.Name, &a.SportType, &startDate, &startDateLocal,
		&a.Distance, &a.MovingTime, &a.ElapsedTime, &a.TotalElevationGain,
		&a.AverageHeartrate, &a.MaxHeartrate, &a.AverageSpeed, &syncedAt,
	)
	if err != nil {
		return nil, err
	}
	if a.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if a.StartDateLocal, err = time.Parse(time.RFC3339, startDateLocal); err != nil {
		return nil, fmt.Errorf("parsing start_date_local: %w", err)
	}
	if a.SyncedAt, err = time.Parse(time.RFC3339, syncedAt); err != nil {
		return nil, fmt.Errorf("parsing synced_at: %w", err)
	}
	return &a, nil
}
