package auth

import (
	"golang.org/x/oauth2"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes required for our app (Strava uses comma-separated scopes)
var Scopes = []string{
	"read,activity:read_all",
}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8089/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// AuthResult contains the token and athlete info from successful auth
type AuthResult struct {
	Token       *oauth2.Token
	AthleteID   int64
	AthleteName string
}

// ExtractAthlete pulls the athlete ID and name from the token extras.
// Strava includes a summary athlete object in the token response.
func ExtractAthlete(token *oauth2.Token) (id int64, name string) {
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return 0, ""
	}
	if v, ok := athlete["id"].(float64); ok {
		id = int64(v)
	}
	first, _ := athlete["firstname"].(string)
	last, _ := athlete["lastname"].(string)
	name = first
	if last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	return id, name
}
