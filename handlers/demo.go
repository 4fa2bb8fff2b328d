// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/encoregame/server/auth"
	"github.com/encoregame/server/catalog"
	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
)

// Demo timing overrides. Unattended playthroughs run fast so a bystander sees
// a full party inside a minute or two.
const (
	demoPlayDurationSeconds = 15
	demoFinaleSpeed         = 2.0
	defaultFinaleSpeed      = 1.0
)

// demoPlayerNames are the fixed roster for demo parties. The first entry
// hosts.
var demoPlayerNames = []string{"Sam", "Riley", "Jordan", "Casey"}

// confidenceCycle spreads demo wagers across the full [1,5] range so the
// confidence column never degenerates to a constant.
var confidenceCycle = []int{4, 2, 5, 3, 1}

type DemoHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	// mu serializes rng: rand.Rand is not safe for concurrent use and
	// simulate-votes requests for different songs can arrive in parallel.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDemoHandler(db *sql.DB, cfg cliparse.Config) *DemoHandler {
	return &DemoHandler{db: db, cfg: cfg, rng: NewSeededRNG(cfg.DemoSeed)}
}

// CreateParty handles POST /demo
// Creates a demo-mode party in the lobby with four synthetic players, one of
// them host, each with a unique anonymous identity.
func (h *DemoHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	partyID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate party ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create demo party")
		return
	}
	code := auth.GeneratePartyCode(partyID, h.cfg.PartyCodeSalt)

	party, host, err := insertPartyWithHost(h.db, partyID, code, demoPlayerNames[0], models.DefaultSettings(), true)
	if err != nil {
		slog.Error("failed to insert demo party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create demo party")
		return
	}

	players := []models.Player{host}
	for _, name := range demoPlayerNames[1:] {
		player, err := insertPlayer(h.db, partyID, name, false)
		if err != nil {
			slog.Error("failed to insert demo player", "error", err, "party_id", partyID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create demo party")
			return
		}
		players = append(players, player)
	}

	slog.Info("demo party created", "party_id", partyID, "code", code, "players", len(players))

	middleware.JSONResponse(w, http.StatusCreated, models.DemoPartyResponse{
		Party:   party,
		Players: players,
	})
}

// PopulateSongs handles POST /demo/{id}/songs
// Submits settings.songsPerPlayer curated tracks for every player, then
// advances the party from lobby to submitting.
func (h *DemoHandler) PopulateSongs(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")

	party, err := h.loadDemoParty(w, partyID)
	if err != nil {
		return
	}
	if party.Status != models.StatusLobby {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindInvalidTransition, "Demo songs can only be populated from the lobby")
		return
	}

	players, err := listPartyPlayers(h.db, party.ID)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	tracks := catalog.CuratedDemoTracks()
	h.mu.Lock()
	h.rng.Shuffle(len(tracks), func(i, j int) { tracks[i], tracks[j] = tracks[j], tracks[i] })
	h.mu.Unlock()

	songs := []models.Song{}
	for pi, player := range players {
		for k := 0; k < party.Settings.SongsPerPlayer; k++ {
			n := pi*party.Settings.SongsPerPlayer + k
			track := tracks[n%len(tracks)]

			song := models.Song{
				ID:          uuid.NewString(),
				PartyID:     party.ID,
				SubmitterID: player.ID,
				TrackID:     track.ID,
				Title:       track.Title,
				Artist:      track.Artist,
				Confidence:  confidenceCycle[n%len(confidenceCycle)],
				SubmittedAt: time.Now(),
			}

			_, err := h.db.Exec(`
				INSERT INTO song (id, party_id, submitter_id, track_id, title, artist, duration_seconds, confidence, submitted_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, song.ID, song.PartyID, song.SubmitterID, song.TrackID, song.Title, song.Artist, 0, song.Confidence, song.SubmittedAt)
			if err != nil {
				slog.Error("failed to insert demo song", "error", err, "party_id", party.ID)
				middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to populate songs")
				return
			}
			songs = append(songs, song)
		}
	}

	newStatus, err := AdvanceParty(h.db, party.ID)
	if err != nil {
		writeAdvanceError(w, err)
		return
	}

	slog.Info("demo songs populated", "party_id", party.ID, "songs", len(songs), "status", newStatus)

	middleware.JSONResponse(w, http.StatusCreated, models.PopulateSongsResponse{
		Songs:  songs,
		Status: newStatus,
	})
}

// SimulateVotes handles POST /songs/{id}/simulate-votes
// Produces one locked, personality-driven vote per eligible voter. The song's
// submitter is skipped silently.
func (h *DemoHandler) SimulateVotes(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("id")
	if songID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "song_id is required")
		return
	}

	var req models.SimulateVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}

	h.mu.Lock()
	votes, err := SimulateVotesForSong(h.db, h.rng, songID, req.VoterIDs)
	h.mu.Unlock()
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Song not found")
		return
	}
	if err != nil {
		slog.Error("failed to simulate votes", "error", err, "song_id", songID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to simulate votes")
		return
	}

	slog.Info("votes simulated", "song_id", songID, "votes", len(votes))

	middleware.JSONResponse(w, http.StatusCreated, models.SimulateVotesResponse{Votes: votes})
}

// Timing handles GET /parties/{id}/timing
// Demo parties run a fixed 15-second playback and a doubled finale animation.
func (h *DemoHandler) Timing(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")

	party, err := loadParty(h.db, partyID)
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Party not found")
		return
	}
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TimingResponse{
		PlayDurationSeconds: EffectivePlayDuration(party),
		FinaleSpeed:         EffectiveFinaleSpeed(party),
	})
}

// Advance handles POST /demo/{id}/advance
// Drives one lifecycle step; callers invoke it repeatedly to reach complete.
func (h *DemoHandler) Advance(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")

	if _, err := h.loadDemoParty(w, partyID); err != nil {
		return
	}

	newStatus, err := AdvanceParty(h.db, partyID)
	if err != nil {
		writeAdvanceError(w, err)
		return
	}

	slog.Info("demo advanced", "party_id", partyID, "status", newStatus)

	middleware.JSONResponse(w, http.StatusOK, models.AdvancePartyResponse{Status: newStatus})
}

// loadDemoParty fetches the party and writes the error response itself when
// the party is missing or not in demo mode.
func (h *DemoHandler) loadDemoParty(w http.ResponseWriter, partyID string) (models.Party, error) {
	if partyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "party_id is required")
		return models.Party{}, ErrNotFound
	}

	party, err := loadParty(h.db, partyID)
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Party not found")
		return models.Party{}, err
	}
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return models.Party{}, err
	}
	if !party.IsDemoMode {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Party is not in demo mode")
		return models.Party{}, fmt.Errorf("party %s is not a demo party", partyID)
	}
	return party, nil
}

// EffectivePlayDuration returns the playback window for a party, with the
// demo override applied.
func EffectivePlayDuration(party models.Party) int {
	if party.IsDemoMode {
		return demoPlayDurationSeconds
	}
	return party.Settings.PlayDurationSeconds
}

// EffectiveFinaleSpeed returns the finale animation speed multiplier.
func EffectiveFinaleSpeed(party models.Party) float64 {
	if party.IsDemoMode {
		return demoFinaleSpeed
	}
	return defaultFinaleSpeed
}

// SimulateVotesForSong creates one locked vote per eligible voter using the
// fixed personality archetypes. Voter i uses personality i mod 4. Voters who
// already voted, and the song's submitter, are skipped without error.
func SimulateVotesForSong(db *sql.DB, rng *rand.Rand, songID string, voterIDs []string) ([]models.Vote, error) {
	song, err := loadSong(db, songID)
	if err != nil {
		return nil, err
	}

	existing, err := ListVotesForSong(db, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	alreadyVoted := make(map[string]bool, len(existing))
	for _, v := range existing {
		alreadyVoted[v.VoterID] = true
	}

	personalities := DemoPersonalities()

	votes := []models.Vote{}
	for i, voterID := range voterIDs {
		if voterID == song.SubmitterID || alreadyVoted[voterID] {
			continue
		}

		vote := models.Vote{
			ID:        uuid.NewString(),
			SongID:    songID,
			VoterID:   voterID,
			Rating:    SimulateRating(rng, personalities[i%len(personalities)]),
			IsLocked:  true,
			CreatedAt: time.Now(),
		}

		_, err := db.Exec(`
			INSERT INTO vote (id, song_id, voter_id, rating, is_locked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, vote.ID, vote.SongID, vote.VoterID, vote.Rating, true, vote.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert simulated vote: %w", err)
		}

		votes = append(votes, vote)
	}

	return votes, nil
}
