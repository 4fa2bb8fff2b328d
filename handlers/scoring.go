// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/encoregame/server/models"
)

// Theme bonus thresholds. A song whose average theme-adherence rating reaches
// the threshold earns the base bonus scaled by the round theme's multiplier.
const (
	themeBonusThreshold = 4.0
	themeBonusBase      = 0.5
)

// Confidence betting payoffs. A submitter who wagered high confidence gains
// more when the crowd agrees and loses a smaller amount when it does not.
const (
	confidenceWinThreshold = 7.0
	confidenceWinRate      = 0.2
	confidenceLossRate     = 0.1
)

// ComputeThemeBonus calculates a song's theme-adherence bonus from its votes
// and the round theme's multiplier. Votes without a theme-adherence rating
// are ignored; when none carry one, the bonus is exactly 0. Pure and
// order-independent: the same vote set always yields the same bonus.
func ComputeThemeBonus(votes []models.Vote, multiplier float64) float64 {
	var sum, count float64
	for _, v := range votes {
		if v.ThemeAdherence == nil {
			continue
		}
		sum += float64(*v.ThemeAdherence)
		count++
	}

	if count == 0 {
		return 0
	}
	if sum/count >= themeBonusThreshold {
		return themeBonusBase * multiplier
	}
	return 0
}

// ConfidenceDelta is the score adjustment from the submitter's confidence
// wager. Returns 0 when confidence betting is disabled.
func ConfidenceDelta(meanRating float64, confidence int, enabled bool) float64 {
	if !enabled {
		return 0
	}
	if meanRating >= confidenceWinThreshold {
		return confidenceWinRate * float64(confidence)
	}
	return -confidenceLossRate * float64(confidence)
}

// ComputeSongResults builds the finale scoreboard for a party: per song, the
// mean quality rating plus the confidence adjustment plus the theme bonus,
// ranked descending with a stable tiebreak on song ID.
func ComputeSongResults(db *sql.DB, party models.Party) ([]models.SongResult, error) {
	songs, err := listPartySongs(db, party.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	results := make([]models.SongResult, 0, len(songs))
	for _, song := range songs {
		votes, err := ListVotesForSong(db, song.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list votes for song %s: %w", song.ID, err)
		}

		multiplier, err := songThemeMultiplier(db, song)
		if err != nil {
			return nil, err
		}

		meanRating := meanVoteRating(votes)
		confidenceDelta := 0.0
		if len(votes) > 0 {
			confidenceDelta = ConfidenceDelta(meanRating, song.Confidence, party.Settings.EnableConfidenceBetting)
		}
		themeBonus := ComputeThemeBonus(votes, multiplier)

		results = append(results, models.SongResult{
			SongID:          song.ID,
			Title:           song.Title,
			Artist:          song.Artist,
			SubmitterID:     song.SubmitterID,
			VoteCount:       len(votes),
			MeanRating:      meanRating,
			ConfidenceDelta: confidenceDelta,
			ThemeBonus:      themeBonus,
			FinalScore:      meanRating + confidenceDelta + themeBonus,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		// Stable tie-breaking by song ID (ascending)
		return a.SongID < b.SongID
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// songThemeMultiplier resolves the bonus multiplier for the song's round
// theme, defaulting to 1.0 when the song has no round or the round no theme.
func songThemeMultiplier(db *sql.DB, song models.Song) (float64, error) {
	if song.RoundID == nil {
		return 1.0, nil
	}

	var themeID sql.NullString
	err := db.QueryRow(`SELECT theme_id FROM round WHERE id = $1`, *song.RoundID).Scan(&themeID)
	if err == sql.ErrNoRows {
		return 1.0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load round: %w", err)
	}
	if !themeID.Valid {
		return 1.0, nil
	}

	theme, err := ResolveTheme(db, themeID.String)
	if errors.Is(err, ErrNotFound) {
		// Dangling theme reference; score as if no theme were set
		return 1.0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve theme: %w", err)
	}
	return theme.BonusMultiplier, nil
}

func meanVoteRating(votes []models.Vote) float64 {
	if len(votes) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range votes {
		sum += float64(v.Rating)
	}
	return sum / float64(len(votes))
}
