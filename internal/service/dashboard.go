package service

import (
	"time"

	"runload/internal/analysis"
	"runload/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store      *store.Store
	thresholds analysis.Thresholds
}

// NewQueryService creates a new query service
func NewQueryService(st *store.Store, thresholds analysis.Thresholds) *QueryService {
	return &QueryService{store: st, thresholds: thresholds}
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Current fitness state
	HasState  bool
	CTL       float64
	ATL       float64
	TSB       float64
	ACRatio   analysis.Ratio
	FormBand  analysis.TSBBand
	FormLabel string
	LoadBand  analysis.ACBand
	LoadLabel string
	Findings  []analysis.RiskFinding

	// Gauges (0-100)
	CTLPercent     float64
	ATLPercent     float64
	ACGaugePercent float64
	ACGaugeKnown   bool

	// This week
	WeekActivityCount int
	WeekLoad          float64
	WeekTime          int // seconds

	// Charts
	CTLHistory   []float64
	ATLHistory   []float64
	TrendDates   []time.Time
	WeeklyLoad   []float64 // Last 12 weeks of total TRIMP
	WeeklyLabels []string  // Week labels (e.g., "Jan 06")

	// Recent activities
	RecentActivities []store.ActivityWithLoad
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData() (*DashboardData, error) {
	data := &DashboardData{}

	daily, err := q.store.GetDailyLoads()
	if err != nil {
		return nil, err
	}

	samples := ExtendToToday(BuildDailySeries(daily), time.Now())
	trend, err := q.thresholds.FitnessTrend(samples)
	if err != nil {
		return nil, err
	}

	q.fillFitness(data, trend)
	q.fillWeekStats(data, daily)
	q.fillWeeklyChart(data, daily)

	recent, err := q.store.GetActivitiesWithLoads(RecentActivitiesLimit, 0)
	if err != nil {
		return nil, err
	}
	data.RecentActivities = recent

	return data, nil
}

// fillFitness populates current state, bands, findings, gauges, and
// the trend chart from the computed series.
func (q *QueryService) fillFitness(data *DashboardData, trend []analysis.FitnessState) {
	if len(trend) == 0 {
		data.FormBand = analysis.TSBUnknown
		data.FormLabel = data.FormBand.Label()
		data.LoadBand = analysis.ACUnknown
		data.LoadLabel = data.LoadBand.Label()
		return
	}

	current := trend[len(trend)-1]
	data.HasState = true
	data.CTL = current.CTL
	data.ATL = current.ATL
	data.TSB = current.TSB
	data.ACRatio = current.ACRatio

	data.FormBand = q.thresholds.ClassifyTSBState(&current)
	data.FormLabel = data.FormBand.Label()
	data.LoadBand = q.thresholds.ClassifyAC(current.ACRatio)
	data.LoadLabel = data.LoadBand.Label()
	data.Findings = q.thresholds.AnalyzeRisk(current)

	// Gauges are scaled against the historical peak so a long-time
	// athlete's current fitness reads relative to their own best.
	bounds := analysis.DisplayBounds{Max: historicalMax(trend)}
	data.CTLPercent = analysis.PercentOfMax(current.CTL, bounds)
	data.ATLPercent = analysis.PercentOfMax(current.ATL, bounds)
	data.ACGaugePercent, data.ACGaugeKnown = q.thresholds.GaugePercent(current.ACRatio)

	cutoff := time.Now().AddDate(0, 0, -TrendHistoryDays)
	for _, state := range trend {
		if state.Date.Before(cutoff) {
			continue
		}
		data.CTLHistory = append(data.CTLHistory, state.CTL)
		data.ATLHistory = append(data.ATLHistory, state.ATL)
		data.TrendDates = append(data.TrendDates, state.Date)
	}
}

// historicalMax returns the largest CTL or ATL value ever reached.
func historicalMax(trend []analysis.FitnessState) float64 {
	var max float64
	for _, state := range trend {
		if state.CTL > max {
			max = state.CTL
		}
		if state.ATL > max {
			max = state.ATL
		}
	}
	return max
}

// fillWeekStats calculates stats for the current week (Monday start)
func (q *QueryService) fillWeekStats(data *DashboardData, daily []store.DailyLoad) {
	weekStart := getMonday(time.Now())

	for _, dl := range daily {
		if !dl.Date.Before(weekStart) {
			data.WeekLoad += dl.TRIMP
		}
	}

	activities, err := q.store.ListActivities(ActivityPageSize, 0)
	if err != nil {
		return
	}
	for _, a := range activities {
		if !a.StartDateLocal.Before(weekStart) {
			data.WeekActivityCount++
			data.WeekTime += a.MovingTime
		}
	}
}

// fillWeeklyChart builds the 12-week load chart data
func (q *QueryService) fillWeeklyChart(data *DashboardData, daily []store.DailyLoad) {
	numWeeks := ChartWeeks
	currentWeekStart := getMonday(time.Now())

	data.WeeklyLoad = make([]float64, numWeeks)
	data.WeeklyLabels = make([]string, numWeeks)

	for i := 0; i < numWeeks; i++ {
		weekStart := currentWeekStart.AddDate(0, 0, -7*(numWeeks-1-i))
		data.WeeklyLabels[i] = weekStart.Format("Jan 02")
	}

	oldest := currentWeekStart.AddDate(0, 0, -7*(numWeeks-1))
	for _, dl := range daily {
		if dl.Date.Before(oldest) {
			continue
		}
		idx := int(dl.Date.Sub(oldest).Hours() / 24 / 7)
		if idx >= 0 && idx < numWeeks {
			data.WeeklyLoad[idx] += dl.TRIMP
		}
	}
}

// GetActivitiesList returns paginated activities with their loads
func (q *QueryService) GetActivitiesList(limit, offset int) ([]store.ActivityWithLoad, error) {
	return q.store.GetActivitiesWithLoads(limit, offset)
}

// GetTotalActivityCount returns the total number of activities
func (q *QueryService) GetTotalActivityCount() (int, error) {
	return q.store.CountActivities()
}

// TrendData contains the full fitness history for the trend screen
type TrendData struct {
	States []analysis.FitnessState
	Bands  []analysis.TSBBand
}

// GetTrendData computes the fitness series over all stored activity.
func (q *QueryService) GetTrendData() (*TrendData, error) {
	daily, err := q.store.GetDailyLoads()
	if err != nil {
		return nil, err
	}

	samples := ExtendToToday(BuildDailySeries(daily), time.Now())
	trend, err := q.thresholds.FitnessTrend(samples)
	if err != nil {
		return nil, err
	}

	bands := make([]analysis.TSBBand, len(trend))
	for i := range trend {
		bands[i] = q.thresholds.ClassifyTSBState(&trend[i])
	}

	return &TrendData{States: trend, Bands: bands}, nil
}

// getMonday returns the start of the week (Monday, midnight) for t.
func getMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday wraps to end of week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
