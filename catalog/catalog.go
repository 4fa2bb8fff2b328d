// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"

	"github.com/encoregame/server/models"
)

// Track is a curated demo track. ExpectedScore is the rough crowd score the
// demo was tuned around; it is informational only and never fed into scoring.
type Track struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Artist        string  `json:"artist"`
	ExpectedScore float64 `json:"expected_score"`
}

// Identity is the anonymous presentation assigned to a player.
type Identity struct {
	Alias      string `json:"alias"`
	Silhouette string `json:"silhouette"`
	Color      string `json:"color"`
}

// PredefinedRoundThemes returns the built-in themes. These never hit the
// database; theme resolution checks this list before falling back to the
// round_theme table.
func PredefinedRoundThemes() []models.RoundTheme {
	return []models.RoundTheme{
		{ID: "theme-guilty-pleasures", Name: "Guilty Pleasures", BonusMultiplier: 1.0},
		{ID: "theme-one-hit-wonders", Name: "One-Hit Wonders", BonusMultiplier: 1.0},
		{ID: "theme-songs-to-cry-to", Name: "Songs to Cry To", BonusMultiplier: 1.5},
		{ID: "theme-road-trip", Name: "Road Trip", BonusMultiplier: 1.0},
		{ID: "theme-before-2000", Name: "Before the Millennium", BonusMultiplier: 1.2},
		{ID: "theme-hidden-gems", Name: "Hidden Gems", BonusMultiplier: 2.0},
	}
}

// CuratedDemoTracks returns the fixed pool the demo orchestrator draws
// submissions from.
func CuratedDemoTracks() []Track {
	return []Track{
		{ID: "demo-track-01", Title: "Midnight City", Artist: "M83", ExpectedScore: 8.2},
		{ID: "demo-track-02", Title: "Dancing On My Own", Artist: "Robyn", ExpectedScore: 8.5},
		{ID: "demo-track-03", Title: "Mr. Brightside", Artist: "The Killers", ExpectedScore: 7.9},
		{ID: "demo-track-04", Title: "Dreams", Artist: "Fleetwood Mac", ExpectedScore: 8.8},
		{ID: "demo-track-05", Title: "Hey Ya!", Artist: "OutKast", ExpectedScore: 8.0},
		{ID: "demo-track-06", Title: "Running Up That Hill", Artist: "Kate Bush", ExpectedScore: 8.4},
		{ID: "demo-track-07", Title: "Take On Me", Artist: "a-ha", ExpectedScore: 7.6},
		{ID: "demo-track-08", Title: "Electric Feel", Artist: "MGMT", ExpectedScore: 7.3},
		{ID: "demo-track-09", Title: "Tiny Dancer", Artist: "Elton John", ExpectedScore: 8.1},
		{ID: "demo-track-10", Title: "Heart of Glass", Artist: "Blondie", ExpectedScore: 7.7},
		{ID: "demo-track-11", Title: "Pump Up the Jam", Artist: "Technotronic", ExpectedScore: 6.4},
		{ID: "demo-track-12", Title: "Africa", Artist: "Toto", ExpectedScore: 8.6},
	}
}

// Identity pools. Sized so a full party (up to 12 players) never repeats.
var (
	aliases = []string{
		"Neon Fox", "Velvet Ghost", "Disco Falcon", "Midnight Otter",
		"Static Wolf", "Golden Heron", "Cosmic Badger", "Lazer Lynx",
		"Echo Raven", "Turbo Mole", "Silver Ibis", "Mellow Yeti",
	}
	silhouettes = []string{
		"sil-01", "sil-02", "sil-03", "sil-04", "sil-05", "sil-06",
		"sil-07", "sil-08", "sil-09", "sil-10", "sil-11", "sil-12",
	}
	colors = []string{
		"#FF5D73", "#41EAD4", "#FBFF12", "#B388EB", "#FF9F1C", "#3A86FF",
		"#8AC926", "#FF70A6", "#00F5D4", "#F15BB5", "#FEE440", "#9B5DE5",
	}
)

// AssignUnique maps each player to a distinct identity. No two players in the
// same party share an alias, silhouette, or color. Assignment is deterministic
// given player order, keyed off the party ID so different parties get
// different-looking rosters.
func AssignUnique(partyID string, playerIDs []string) (map[string]Identity, error) {
	if len(playerIDs) > len(aliases) {
		return nil, fmt.Errorf("identity pool exhausted: %d players, %d identities", len(playerIDs), len(aliases))
	}

	offset := 0
	for _, c := range partyID {
		offset += int(c)
	}

	assigned := make(map[string]Identity, len(playerIDs))
	for i, playerID := range playerIDs {
		idx := (offset + i) % len(aliases)
		assigned[playerID] = Identity{
			Alias:      aliases[idx],
			Silhouette: silhouettes[idx],
			Color:      colors[idx],
		}
	}

	return assigned, nil
}
