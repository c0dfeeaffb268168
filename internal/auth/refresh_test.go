package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func tokenEndpoint(t *testing.T) *oauth2.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"new-access","refresh_token":"new-refresh","expires_in":21600,"token_type":"Bearer"}`)
	}))
	t.Cleanup(srv.Close)
	return &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: srv.URL + "/token"},
	}
}

func TestTokenSourceFreshTokenNoRefresh(t *testing.T) {
	live := &oauth2.Token{AccessToken: "live", Expiry: time.Now().Add(2 * time.Hour)}
	ts := NewTokenSource(&oauth2.Config{}, live, func(*oauth2.Token) error {
		t.Error("persist called for a token nowhere near expiry")
		return nil
	})

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got.AccessToken != "live" {
		t.Errorf("access token = %q, want the stored one", got.AccessToken)
	}
}

func TestTokenSourceRefreshPersists(t *testing.T) {
	stale := &oauth2.Token{
		AccessToken:  "old",
		RefreshToken: "old-refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}

	var saved *oauth2.Token
	ts := NewTokenSource(tokenEndpoint(t), stale, func(tok *oauth2.Token) error {
		saved = tok
		return nil
	})

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got.AccessToken != "new-access" || got.RefreshToken != "new-refresh" {
		t.Errorf("refreshed token = %q/%q", got.AccessToken, got.RefreshToken)
	}
	if saved == nil || saved.AccessToken != "new-access" {
		t.Errorf("persisted token = %+v, want the refreshed one", saved)
	}

	// Second call reuses the refreshed token without another round trip
	saved = nil
	if _, err := ts.Token(); err != nil {
		t.Fatalf("second Token: %v", err)
	}
	if saved != nil {
		t.Error("persist called again for a fresh token")
	}
}

func TestTokenSourcePersistFailureSurfaces(t *testing.T) {
	stale := &oauth2.Token{
		AccessToken:  "old",
		RefreshToken: "old-refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}

	ts := NewTokenSource(tokenEndpoint(t), stale, func(*oauth2.Token) error {
		return errors.New("disk full")
	})

	if _, err := ts.Token(); err == nil {
		t.Fatal("want error when persisting the refreshed token fails")
	}
}
