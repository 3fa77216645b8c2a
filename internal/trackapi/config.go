// Package trackapi provides a client for the Catstronauts track REST API.
package trackapi

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// DefaultBaseURL is the public Catstronauts REST API.
const DefaultBaseURL = "https://odyssey-lift-off-rest-api.herokuapp.com/"

// ErrInvalidBaseURL is returned when TRACK_API_URL is not an absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("invalid TRACK_API_URL")

// Config holds track API configuration.
type Config struct {
	BaseURL string
}

// LoadConfig reads track API configuration from environment variables.
// TRACK_API_URL is optional and defaults to DefaultBaseURL.
func LoadConfig() (*Config, error) {
	raw := os.Getenv("TRACK_API_URL")
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := normalizeBaseURL(raw)
	if err != nil {
		return nil, err
	}
	return &Config{BaseURL: base}, nil
}

// normalizeBaseURL validates raw and guarantees a trailing slash so that
// relative paths like "tracks" resolve under it.
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}
