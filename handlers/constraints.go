// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"

	"github.com/encoregame/server/models"
)

// fallbackThemeName is used when a constraint set has no nameable fields.
const fallbackThemeName = "Custom Theme"

// ValidateConstraints checks a custom theme's constraint set before it is
// stored. Every violation fails with ErrInvalidConstraints; a fully empty
// constraint set is valid (the theme is just unconstrained).
func ValidateConstraints(c models.ThemeConstraints) error {
	if c.BpmRange != nil {
		if c.BpmRange.Min == nil || c.BpmRange.Max == nil {
			return fmt.Errorf("bpm_range requires both min and max: %w", ErrInvalidConstraints)
		}
		min, max := *c.BpmRange.Min, *c.BpmRange.Max
		if min < 0 || max < 0 {
			return fmt.Errorf("bpm values must be non-negative: %w", ErrInvalidConstraints)
		}
		if min > max {
			return fmt.Errorf("bpm min %g exceeds max %g: %w", min, max, ErrInvalidConstraints)
		}
	}

	// Genres, decades, and moods arrive as JSON arrays; a scalar where an
	// array is expected already fails the typed decode in the handler. Here
	// we only reject blank entries.
	for _, field := range []struct {
		name   string
		values []string
	}{
		{"genres", c.Genres},
		{"decades", c.Decades},
		{"moods", c.Moods},
	} {
		for _, v := range field.values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s contains an empty entry: %w", field.name, ErrInvalidConstraints)
			}
		}
	}

	return nil
}

// DeriveThemeName builds a human-readable name from the present constraint
// fields in fixed priority order: genres (first two), first decade, first
// mood, then the BPM range. Pure and order-stable.
func DeriveThemeName(c models.ThemeConstraints) string {
	var parts []string

	if len(c.Genres) > 0 {
		genres := c.Genres
		if len(genres) > 2 {
			genres = genres[:2]
		}
		parts = append(parts, strings.Join(genres, " + "))
	}
	if len(c.Decades) > 0 {
		parts = append(parts, c.Decades[0])
	}
	if len(c.Moods) > 0 {
		parts = append(parts, c.Moods[0])
	}
	if c.BpmRange != nil && c.BpmRange.Min != nil && c.BpmRange.Max != nil {
		parts = append(parts, fmt.Sprintf("%g-%g BPM", *c.BpmRange.Min, *c.BpmRange.Max))
	}

	if len(parts) == 0 {
		return fallbackThemeName
	}
	return strings.Join(parts, " · ")
}
