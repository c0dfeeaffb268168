package service

import (
	"context"
	"fmt"
	"time"

	"runload/internal/analysis"
	"runload/internal/config"
	"runload/internal/store"
	"runload/internal/strava"
)

// SyncService orchestrates syncing data from Strava
type SyncService struct {
	client  *strava.Client
	store   *store.Store
	hrZones analysis.HRZones
}

// NewSyncService creates a new sync service with athlete config for HR calculations
func NewSyncService(client *strava.Client, st *store.Store, athleteCfg config.AthleteConfig) *SyncService {
	return &SyncService{
		client:  client,
		store:   st,
		hrZones: analysis.NewHRZones(athleteCfg.RestingHR, athleteCfg.MaxHR),
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase           string // "activities", "loads"
	Total           int
	Completed       int
	CurrentActivity string
	Error           error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	ActivitiesStored  int
	LoadsComputed     int
	Errors            []error
}

// SyncAll performs a full sync: activity summaries, then load computation.
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	if err := s.syncActivities(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing activities: %w", err)
	}

	if err := s.computeLoads(ctx, progress, result); err != nil {
		return result, fmt.Errorf("computing loads: %w", err)
	}

	return result, nil
}

// syncActivities fetches all activities from Strava and stores them
func (s *SyncService) syncActivities(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	// Get last sync time
	lastSyncStr, _ := s.store.GetSyncState(LastSyncKey)
	var after time.Time
	if lastSyncStr != "" {
		after, _ = time.Parse(time.RFC3339, lastSyncStr)
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "activities", Total: 0, Completed: 0}
	}

	activities, err := s.client.GetAllActivities(ctx, after, func(fetched int) {
		if progress != nil {
			progress <- SyncProgress{Phase: "activities", Total: fetched}
		}
	})
	if err != nil {
		return fmt.Errorf("fetching activities: %w", err)
	}

	result.ActivitiesFetched = len(activities)

	for _, a := range activities {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.store.UpsertActivity(convertActivity(a)); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing activity %d: %w", a.ID, err))
			continue
		}
		result.ActivitiesStored++
	}

	if progress != nil {
		progress <- SyncProgress{
			Phase:     "activities",
			Total:     result.ActivitiesFetched,
			Completed: result.ActivitiesStored,
		}
	}

	// Update last sync time
	s.store.SetSyncState(LastSyncKey, time.Now().Format(time.RFC3339))

	return nil
}

// computeLoads calculates TRIMP/HRSS for activities that need it
func (s *SyncService) computeLoads(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	activities, err := s.store.GetActivitiesNeedingLoad()
	if err != nil {
		return fmt.Errorf("getting activities needing loads: %w", err)
	}

	if len(activities) == 0 {
		return nil
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "loads", Total: len(activities), Completed: 0}
	}

	for i, activity := range activities {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:           "loads",
				Total:           len(activities),
				Completed:       i,
				CurrentActivity: activity.Name,
			}
		}

		load := &store.ActivityLoad{
			ActivityID: activity.ID,
			TRIMP:      analysis.TRIMP(activity.MovingTime, activity.AverageHeartrate, s.hrZones),
			HRSS:       analysis.HRSS(activity.MovingTime, activity.AverageHeartrate, s.hrZones),
			ComputedAt: time.Now(),
		}
		if err := s.store.SaveActivityLoad(load); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving load for %d: %w", activity.ID, err))
			continue
		}

		result.LoadsComputed++
	}

	if progress != nil {
		progress <- SyncProgress{
			Phase:     "loads",
			Total:     len(activities),
			Completed: len(activities),
		}
	}

	return nil
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}

// convertActivity converts a Strava API activity to a store activity
func convertActivity(a strava.Activity) *store.Activity {
	return &store.Activity{
		ID:                 a.ID,
		Name:               a.Name,
		SportType:          a.SportType,
		StartDate:          a.StartDate,
		StartDateLocal:     a.StartDateLocal,
		Distance:           a.Distance,
		MovingTime:         a.MovingTime,
		ElapsedTime:        a.ElapsedTime,
		TotalElevationGain: a.TotalElevationGain,
		AverageHeartrate:   a.AvgHR(),
		MaxHeartrate:       a.MaxHR(),
		AverageSpeed:       a.AverageSpeed,
		SyncedAt:           time.Now(),
	}
}
