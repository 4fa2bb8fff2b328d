package handlers

import (
	"errors"
	"testing"

	"github.com/encoregame/server/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateConstraints(t *testing.T) {
	tests := []struct {
		name        string
		constraints models.ThemeConstraints
		wantErr     bool
	}{
		{
			name:        "empty constraints are valid",
			constraints: models.ThemeConstraints{},
			wantErr:     false,
		},
		{
			name: "valid bpm range",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(100), Max: floatPtr(150)},
			},
			wantErr: false,
		},
		{
			name: "inverted bpm range",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(150), Max: floatPtr(100)},
			},
			wantErr: true,
		},
		{
			name: "negative bpm",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(-10), Max: floatPtr(100)},
			},
			wantErr: true,
		},
		{
			name: "bpm range missing max",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(100)},
			},
			wantErr: true,
		},
		{
			name: "equal min and max is valid",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(120), Max: floatPtr(120)},
			},
			wantErr: false,
		},
		{
			name: "blank genre entry",
			constraints: models.ThemeConstraints{
				Genres: []string{"synthpop", "  "},
			},
			wantErr: true,
		},
		{
			name: "full valid set",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(90), Max: floatPtr(120)},
				Genres:   []string{"disco", "funk"},
				Decades:  []string{"1970s"},
				Moods:    []string{"upbeat"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConstraints(tt.constraints)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConstraints) {
					t.Fatalf("expected ErrInvalidConstraints, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDeriveThemeName(t *testing.T) {
	tests := []struct {
		name        string
		constraints models.ThemeConstraints
		expected    string
	}{
		{
			name:        "no fields falls back",
			constraints: models.ThemeConstraints{},
			expected:    "Custom Theme",
		},
		{
			name: "first two genres only",
			constraints: models.ThemeConstraints{
				Genres: []string{"disco", "funk", "soul"},
			},
			expected: "disco + funk",
		},
		{
			name: "all fields in priority order",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(90), Max: floatPtr(120)},
				Genres:   []string{"disco"},
				Decades:  []string{"1970s", "1980s"},
				Moods:    []string{"upbeat", "moody"},
			},
			expected: "disco · 1970s · upbeat · 90-120 BPM",
		},
		{
			name: "bpm only",
			constraints: models.ThemeConstraints{
				BpmRange: &models.BpmRange{Min: floatPtr(100), Max: floatPtr(150)},
			},
			expected: "100-150 BPM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveThemeName(tt.constraints)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}

			// Order-stable: repeated derivation yields the same name
			if again := DeriveThemeName(tt.constraints); again != got {
				t.Errorf("derivation unstable: %q then %q", got, again)
			}
		})
	}
}
