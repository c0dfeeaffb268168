package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshBuffer is how close to expiry a token may get before it is
// refreshed. Strava access tokens live 6 hours; refreshing a minute
// early avoids racing the deadline mid-request.
const refreshBuffer = 60 * time.Second

// TokenSource yields valid Strava access tokens, refreshing through the
// OAuth config when the stored token nears expiry. Every refreshed token
// is handed to the persist callback before use, so credentials survive a
// crash between refresh and next run.
type TokenSource struct {
	config  *oauth2.Config
	persist func(*oauth2.Token) error

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTokenSource wraps a stored token. persist may be nil when the
// caller doesn't need refreshed tokens written anywhere.
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, persist func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:  cfg,
		token:   token,
		persist: persist,
	}
}

// Token implements oauth2.TokenSource.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshBuffer {
		return ts.token, nil
	}

	fresh, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	if ts.persist != nil {
		if err := ts.persist(fresh); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
	}

	ts.token = fresh
	return fresh, nil
}
