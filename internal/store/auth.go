package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetAuth returns the stored credentials, or ErrNoAuth if the user
// hasn't authenticated yet.
func (s *Store) GetAuth() (*Auth, error) {
	var a Auth
	var expiresAt int64
	err := s.db.QueryRow(`
		SELECT access_token, refresh_token, expires_at, athlete_id, athlete_name
		FROM auth WHERE id = 1
	`).Scan(&a.AccessToken, &a.RefreshToken, &expiresAt, &a.AthleteID, &a.AthleteName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, fmt.Errorf("querying auth: %w", err)
	}
	a.ExpiresAt = time.Unix(expiresAt, 0)
	return &a, nil
}

// SaveAuth stores or replaces the credentials.
func (s *Store) SaveAuth(a *Auth) error {
	_, err := s.db.Exec(`
		INSERT INTO auth (id, access_token, refresh_token, expires_at, athlete_id, athlete_name)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			athlete_id = excluded.athlete_id,
			athlete_name = excluded.athlete_name
	`, a.AccessToken, a.RefreshToken, a.ExpiresAt.Unix(), a.AthleteID, a.AthleteName)
	if err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

// UpdateTokens refreshes the stored access and refresh tokens.
func (s *Store) UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error {
	res, err := s.db.Exec(`
		UPDATE auth SET access_token = ?, refresh_token = ?, expires_at = ? WHERE id = 1
	`, accessToken, refreshToken, expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("updating tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking token update: %w", err)
	}
	if n == 0 {
		return ErrNoAuth
	}
	return nil
}

// DeleteAuth removes the stored credentials.
func (s *Store) DeleteAuth() error {
	if _, err := s.db.Exec(`DELETE FROM auth WHERE id = 1`); err != nil {
		return fmt.Errorf("deleting auth: %w", err)
	}
	return nil
}

// GetSyncState returns the value for a sync-state key, or "" if unset.
func (s *Store) GetSyncState(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM sync_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying sync state: %w", err)
	}
	return value, nil
}

// SetSyncState stores a sync-state key/value pair.
func (s *Store) SetSyncState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}
