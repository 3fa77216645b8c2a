package trackapi

import (
	"errors"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		wantURL  string
		wantErr  error
	}{
		{
			name:     "default base URL",
			envValue: "",
			wantURL:  DefaultBaseURL,
		},
		{
			name:     "adds trailing slash",
			envValue: "http://localhost:3001/api",
			wantURL:  "http://localhost:3001/api/",
		},
		{
			name:     "keeps trailing slash",
			envValue: "https://tracks.example.com/",
			wantURL:  "https://tracks.example.com/",
		},
		{
			name:     "relative URL",
			envValue: "/just/a/path",
			wantErr:  ErrInvalidBaseURL,
		},
		{
			name:     "unsupported scheme",
			envValue: "ftp://tracks.example.com/",
			wantErr:  ErrInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRACK_API_URL", tt.envValue)

			cfg, err := LoadConfig()

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr == nil {
				if cfg == nil {
					t.Fatal("LoadConfig() returned nil config with no error")
				}
				if cfg.BaseURL != tt.wantURL {
					t.Errorf("LoadConfig() BaseURL = %v, want %v", cfg.BaseURL, tt.wantURL)
				}
			} else if cfg != nil {
				t.Errorf("LoadConfig() returned non-nil config with error")
			}
		})
	}
}
