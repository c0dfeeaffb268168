package service

const (
	// Unit conversions
	MetersPerMile = 1609.34

	// Pagination limits
	RecentActivitiesLimit = 10
	ActivityPageSize      = 50

	// Chart windows
	TrendHistoryDays = 90
	ChartWeeks       = 12

	// Sync state keys
	LastSyncKey = "last_activity_sync"
)
