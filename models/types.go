// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Party status constants, in lifecycle order
const (
	StatusLobby      = "lobby"
	StatusSubmitting = "submitting"
	StatusPlaying    = "playing"
	StatusFinale     = "finale"
	StatusComplete   = "complete"
)

// Player connection status constants
const (
	PlayerConnected    = "connected"
	PlayerDisconnected = "disconnected"
)

// Personality bias constants
const (
	BiasGenerous = "generous"
	BiasHarsh    = "harsh"
	BiasBalanced = "balanced"
)

// Request types

type CreatePartyRequest struct {
	HostName string         `json:"host_name"`
	Settings *PartySettings `json:"settings,omitempty"`
}

type JoinPartyRequest struct {
	Name string `json:"name"`
}

type SubmitSongRequest struct {
	TrackID         string `json:"track_id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	DurationSeconds int    `json:"duration_seconds"`
	Confidence      int    `json:"confidence"`
}

type CastVoteRequest struct {
	Rating int `json:"rating"`
}

type ThemeAdherenceRequest struct {
	Rating float64 `json:"rating"`
}

type CreateThemeRequest struct {
	Constraints     ThemeConstraints `json:"constraints"`
	BonusMultiplier *float64         `json:"bonus_multiplier,omitempty"`
}

type SimulateVotesRequest struct {
	VoterIDs []string `json:"voter_ids"`
}

// Response types

type CreatePartyResponse struct {
	Party   Party  `json:"party"`
	HostKey string `json:"host_key"`
}

type JoinPartyResponse struct {
	Player Player `json:"player"`
}

type AdvancePartyResponse struct {
	Status string `json:"status"`
}

type SubmitSongResponse struct {
	SongID string `json:"song_id"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type ThemeBonusResponse struct {
	SongID string  `json:"song_id"`
	Bonus  float64 `json:"bonus"`
}

type TimingResponse struct {
	PlayDurationSeconds int     `json:"play_duration_seconds"`
	FinaleSpeed         float64 `json:"finale_speed"`
}

type DemoPartyResponse struct {
	Party   Party    `json:"party"`
	Players []Player `json:"players"`
}

type PopulateSongsResponse struct {
	Songs  []Song `json:"songs"`
	Status string `json:"status"`
}

type SimulateVotesResponse struct {
	Votes []Vote `json:"votes"`
}

// Domain types

// PartySettings is the typed configuration for a party. It is serialized to
// JSON only at the database boundary; everything else works with this struct.
type PartySettings struct {
	SongsPerPlayer             int  `json:"songs_per_player"`
	PlayDurationSeconds        int  `json:"play_duration_seconds"`
	SubmissionTimerMinutes     int  `json:"submission_timer_minutes"`
	EnableConfidenceBetting    bool `json:"enable_confidence_betting"`
	EnableProgressiveWeighting bool `json:"enable_progressive_weighting"`
	BonusCategoryCount         int  `json:"bonus_category_count"`
}

// DefaultSettings returns the settings applied when a host omits them.
func DefaultSettings() PartySettings {
	return PartySettings{
		SongsPerPlayer:          2,
		PlayDurationSeconds:     30,
		SubmissionTimerMinutes:  5,
		EnableConfidenceBetting: true,
		BonusCategoryCount:      3,
	}
}

type Party struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	Status      string        `json:"status"`
	IsDemoMode  bool          `json:"is_demo_mode"`
	HostID      string        `json:"host_id"`
	Settings    PartySettings `json:"settings"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Player struct {
	ID         string    `json:"id"`
	PartyID    string    `json:"party_id"`
	Name       string    `json:"name"`
	IsHost     bool      `json:"is_host"`
	Status     string    `json:"status"`
	Alias      string    `json:"alias"`
	Silhouette string    `json:"silhouette"`
	Color      string    `json:"color"`
	JoinedAt   time.Time `json:"joined_at"`
}

type PartyWithPlayers struct {
	Party   Party    `json:"party"`
	Players []Player `json:"players"`
}

type Song struct {
	ID              string    `json:"id"`
	PartyID         string    `json:"party_id"`
	RoundID         *string   `json:"round_id,omitempty"`
	SubmitterID     string    `json:"submitter_id"`
	TrackID         string    `json:"track_id"`
	Title           string    `json:"title"`
	Artist          string    `json:"artist"`
	DurationSeconds int       `json:"duration_seconds"`
	Confidence      int       `json:"confidence"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type Vote struct {
	ID             string    `json:"id"`
	SongID         string    `json:"song_id"`
	VoterID        string    `json:"voter_id"`
	Rating         int       `json:"rating"`
	ThemeAdherence *int      `json:"theme_adherence,omitempty"`
	IsLocked       bool      `json:"is_locked"`
	CreatedAt      time.Time `json:"created_at"`
}

// RoundTheme is either one of the predefined catalog themes or a custom theme
// created by a host. PartyID is nil for predefined themes.
type RoundTheme struct {
	ID              string            `json:"id"`
	PartyID         *string           `json:"party_id,omitempty"`
	Name            string            `json:"name"`
	BonusMultiplier float64           `json:"bonus_multiplier"`
	Constraints     *ThemeConstraints `json:"constraints,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// BpmRange bounds a theme's tempo. Pointers distinguish "absent" from zero.
type BpmRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type ThemeConstraints struct {
	BpmRange *BpmRange `json:"bpm_range,omitempty"`
	Genres   []string  `json:"genres,omitempty"`
	Decades  []string  `json:"decades,omitempty"`
	Moods    []string  `json:"moods,omitempty"`
	Explicit *bool     `json:"explicit,omitempty"`
}

// VoterPersonality drives simulated voting. Not persisted.
type VoterPersonality struct {
	Name       string  `json:"name"`
	Bias       string  `json:"bias"`
	MeanRating float64 `json:"mean_rating"`
	Variance   float64 `json:"variance"`
}

// Result types

type SongResult struct {
	SongID          string  `json:"song_id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	SubmitterID     string  `json:"submitter_id"`
	VoteCount       int     `json:"vote_count"`
	MeanRating      float64 `json:"mean_rating"`
	ConfidenceDelta float64 `json:"confidence_delta"`
	ThemeBonus      float64 `json:"theme_bonus"`
	FinalScore      float64 `json:"final_score"`
	Rank            int     `json:"rank"` // 1-indexed ranking
}

type ResultsResponse struct {
	PartyID  string       `json:"party_id"`
	Rankings []SongResult `json:"rankings"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
