package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		httpClient:  srv.Client(),
		rateLimiter: NewRateLimiter(),
		baseURL:     srv.URL,
	}
}

func TestGetAllActivitiesPaginates(t *testing.T) {
	after := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("path = %q, want /athlete/activities", r.URL.Path)
		}
		if got := r.URL.Query().Get("after"); got != strconv.FormatInt(after.Unix(), 10) {
			t.Errorf("after = %q, want %d", got, after.Unix())
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

		w.Header().Set("X-RateLimit-Limit", "100,1000")
		w.Header().Set("X-RateLimit-Usage", fmt.Sprintf("%d,%d", page, page))

		// Full first page, short second page ends pagination
		n := perPage
		if page > 1 {
			n = 2
		}
		activities := make([]Activity, n)
		for i := range activities {
			activities[i].ID = int64((page-1)*perPage + i + 1)
			activities[i].Name = "Run"
		}
		json.NewEncoder(w).Encode(activities)
	})

	c := newTestClient(t, handler)

	var progress []int
	got, err := c.GetAllActivities(context.Background(), after, func(fetched int) {
		progress = append(progress, fetched)
	})
	if err != nil {
		t.Fatalf("GetAllActivities: %v", err)
	}

	if len(got) != 102 {
		t.Fatalf("got %d activities, want 102", len(got))
	}
	if got[0].ID != 1 || got[101].ID != 102 {
		t.Errorf("IDs span %d..%d, want 1..102", got[0].ID, got[101].ID)
	}
	if len(progress) != 2 || progress[0] != 100 || progress[1] != 102 {
		t.Errorf("progress = %v, want [100 102]", progress)
	}

	// Limiter state should track the response headers, not local counting
	short, _ := c.RateLimitStatus()
	if short != 98 {
		t.Errorf("short window remaining = %d, want 98", short)
	}
}

func TestGetAthlete(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete" {
			t.Errorf("path = %q, want /athlete", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 42, "firstname": "Jo", "lastname": "Runner"}`)
	})

	c := newTestClient(t, handler)

	athlete, err := c.GetAthlete(context.Background())
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if athlete.ID != 42 || athlete.FirstName != "Jo" || athlete.LastName != "Runner" {
		t.Errorf("athlete = %+v, want id 42 Jo Runner", athlete)
	}
}

func TestGetAthleteAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Authorization Error"}`, http.StatusUnauthorized)
	})

	c := newTestClient(t, handler)

	if _, err := c.GetAthlete(context.Background()); err == nil {
		t.Fatal("want error for 401 response")
	}
}
