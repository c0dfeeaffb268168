package strava

import "time"

// Activity is an activity summary from the API. Summary responses
// carry everything the load model needs; detail endpoints are not used.
type Activity struct {
	ID                 int64     `json:"id"`
	Athlete            Athlete   `json:"athlete"`
	Name               string    `json:"name"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	Distance           float64   `json:"distance"`             // meters
	MovingTime         int       `json:"moving_time"`          // seconds
	ElapsedTime        int       `json:"elapsed_time"`         // seconds
	TotalElevationGain float64   `json:"total_elevation_gain"` // meters
	AverageSpeed       float64   `json:"average_speed"`        // m/s
	AverageHeartrate   float64   `json:"average_heartrate"`    // bpm
	MaxHeartrate       float64   `json:"max_heartrate"`        // bpm
	HasHeartrate       bool      `json:"has_heartrate"`
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// AvgHR returns the average heartrate, or nil when the activity
// has no heartrate data.
func (a *Activity) AvgHR() *float64 {
	if !a.HasHeartrate || a.AverageHeartrate <= 0 {
		return nil
	}
	hr := a.AverageHeartrate
	return &hr
}

// MaxHR returns the max heartrate, or nil when absent.
func (a *Activity) MaxHR() *float64 {
	if !a.HasHeartrate || a.MaxHeartrate <= 0 {
		return nil
	}
	hr := a.MaxHeartrate
	return &hr
}
