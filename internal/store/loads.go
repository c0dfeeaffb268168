package store

import (
	"fmt"
	"time"
)

// SaveActivityLoad stores or replaces the computed load for an activity.
func (s *Store) SaveActivityLoad(l *ActivityLoad) error {
	_, err := s.db.Exec(`
		INSERT INTO activity_loads (activity_id, trimp, hrss, computed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(activity_id) DO UPDATE SET
			trimp = excluded.trimp,
			hrss = excluded.hrss,
			computed_at = excluded.computed_at
	`, l.ActivityID, l.TRIMP, l.HRSS, l.ComputedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving load for activity %d: %w", l.ActivityID, err)
	}
	return nil
}

// GetActivitiesWithLoads returns activities joined with their loads,
// newest first. Activities without a computed load have nil TRIMP/HRSS.
func (s *Store) GetActivitiesWithLoads(limit, offset int) ([]ActivityWithLoad, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.name, a.sport_type, a.start_date, a.start_date_local,
			a.distance, a.moving_time, a.elapsed_time, a.total_elevation_gain,
			a.average_heartrate, a.max_heartrate, a.average_speed, a.synced_at,
			l.trimp, l.hrss
		FROM activities a
		LEFT JOIN activity_loads l ON l.activity_id = a.id
		ORDER BY a.start_date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying activities with loads: %w", err)
	}
	defer rows.Close()

	var result []ActivityWithLoad
	for rows.Next() {
		var awl ActivityWithLoad
		var startDate, startDateLocal, syncedAt string
		err := rows.Scan(
			&awl.ID, &awl.Name, &awl.SportType, &startDate, &startDateLocal,
			&awl.Distance, &awl.MovingTime, &awl.ElapsedTime, &awl.TotalElevationGain,
			&awl.AverageHeartrate, &awl.MaxHeartrate, &awl.AverageSpeed, &syncedAt,
			&awl.TRIMP, &awl.HRSS,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning activity with load: %w", err)
		}
		if awl.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if awl.StartDateLocal, err = time.Parse(time.RFC3339, startDateLocal); err != nil {
			return nil, fmt.Errorf("parsing start_date_local: %w", err)
		}
		if awl.SyncedAt, err = time.Parse(time.RFC3339, syncedAt); err != nil {
			return nil, fmt.Errorf("parsing synced_at: %w", err)
		}
		result = append(result, awl)
	}
	return result, rows.Err()
}

// GetDailyLoads returns total training load per local calendar day,
// oldest first. Days without activities are absent.
func (s *Store) GetDailyLoads() ([]DailyLoad, error) {
	rows, err := s.db.Query(`
		SELECT date(a.start_date_local), SUM(l.trimp), SUM(l.hrss)
		FROM activities a
		JOIN activity_loads l ON l.activity_id = a.id
		GROUP BY date(a.start_date_local)
		ORDER BY date(a.start_date_local) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying daily loads: %w", err)
	}
	defer rows.Close()

	var loads []DailyLoad
	for rows.Next() {
		var dl DailyLoad
		var day string
		if err := rows.Scan(&day, &dl.TRIMP, &dl.HRSS); err != nil {
			return nil, fmt.Errorf("scanning daily load: %w", err)
		}
		if dl.Date, err = time.Parse("2006-01-02", day); err != nil {
			return nil, fmt.Errorf("parsing day %q: %w", day, err)
		}
		loads = append(loads, dl)
	}
	return loads, rows.Err()
}
