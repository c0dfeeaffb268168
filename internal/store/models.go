package store

import "time"

// Auth holds the stored OAuth credentials for the single local athlete.
type Auth struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	AthleteID    int64
	AthleteName  string
}

// Activity is a synced activity summary.
type Activity struct {
	ID                 int64
	Name               string
	SportType          string
	StartDate          time.Time
	StartDateLocal     time.Time
	Distance           float64
	MovingTime         int
	ElapsedTime        int
	TotalElevationGain float64
	AverageHeartrate   *float64
	MaxHeartrate       *float64
	AverageSpeed       float64
	SyncedAt           time.Time
}

// ActivityLoad is the computed training impulse for one activity.
type ActivityLoad struct {
	ActivityID int64
	TRIMP      float64
	HRSS       float64
	ComputedAt time.Time
}

// ActivityWithLoad pairs an activity with its load, when computed.
type ActivityWithLoad struct {
	Activity
	TRIMP *float64
	HRSS  *float64
}

// DailyLoad is the summed training load for one calendar day,
// keyed by the activity's local date.
type DailyLoad struct {
	Date  time.Time
	TRIMP float64
	HRSS  float64
}
