package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"

	tea "github.com/charmbracelet/bubbletea"

	"runload/internal/analysis"
	"runload/internal/auth"
	"runload/internal/config"
	"runload/internal/service"
	"runload/internal/store"
	"runload/internal/strava"
	"runload/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "logout" {
		return logout()
	}

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("You need to add your Strava API credentials.")
		fmt.Println("Get them from: https://www.strava.com/settings/api")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	// Check for existing auth
	storedAuth, err := st.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		// No auth stored, need to authenticate
		fmt.Println("No authentication found. Starting OAuth flow...")
		if err := authenticate(ctx, st, cfg); err != nil {
			return fmt.Errorf("authentication: %w", err)
		}
		// Re-fetch auth after successful authentication
		storedAuth, err = st.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after login: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("checking auth: %w", err)
	}

	// Create token source for API calls (with auto-refresh)
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})

	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}

	tokenSource := auth.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return st.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})

	// Test token is valid by getting a fresh one
	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored token is invalid or expired. Re-authenticating...")
		if err := st.DeleteAuth(); err != nil {
			return fmt.Errorf("clearing stale auth: %w", err)
		}
		if err := authenticate(ctx, st, cfg); err != nil {
			return fmt.Errorf("re-authentication: %w", err)
		}
		storedAuth, err = st.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after login: %w", err)
		}
		token = &oauth2.Token{
			AccessToken:  storedAuth.AccessToken,
			RefreshToken: storedAuth.RefreshToken,
			Expiry:       storedAuth.ExpiresAt,
		}
		tokenSource = auth.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
			return st.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
		})
	}

	// Create services
	stravaClient := strava.NewClient(tokenSource)

	// Tokens from older grants may be missing the athlete profile
	if storedAuth.AthleteName == "" {
		if athlete, err := stravaClient.GetAthlete(ctx); err == nil {
			storedAuth.AthleteName = strings.TrimSpace(athlete.FirstName + " " + athlete.LastName)
			if storedAuth.AthleteID == 0 {
				storedAuth.AthleteID = athlete.ID
			}
			if err := st.SaveAuth(storedAuth); err != nil {
				return fmt.Errorf("updating athlete profile: %w", err)
			}
		}
	}
	syncSvc := service.NewSyncService(stravaClient, st, cfg.Athlete)
	querySvc := service.NewQueryService(st, trendThresholds(cfg))

	// Launch TUI
	app := tui.NewApp(st, stravaClient, syncSvc, querySvc, tui.NewUnits(cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// trendThresholds applies any configured window overrides to the
// standard fitness model.
func trendThresholds(cfg *config.Config) analysis.Thresholds {
	th := analysis.DefaultThresholds()
	th.ChronicDays, th.AcuteDays = cfg.EffectiveTrendWindows()
	return th
}

// logout removes the stored Strava credentials so the next run starts a
// fresh OAuth flow. Activity data is left intact.
func logout() error {
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	if err := st.DeleteAuth(); err != nil {
		return fmt.Errorf("removing credentials: %w", err)
	}

	fmt.Println("Logged out. Stored Strava credentials removed.")
	return nil
}

func authenticate(ctx context.Context, st *store.Store, cfg *config.Config) error {
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})

	result, err := auth.Authenticate(ctx, oauthCfg)
	if err != nil {
		return err
	}

	// Store the tokens
	storedAuth := &store.Auth{
		AthleteID:    result.AthleteID,
		AthleteName:  result.AthleteName,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}

	if err := st.SaveAuth(storedAuth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	if result.AthleteName != "" {
		fmt.Printf("Successfully authenticated as %s!\n", result.AthleteName)
	} else {
		fmt.Printf("Successfully authenticated as athlete %d!\n", result.AthleteID)
	}
	return nil
}
