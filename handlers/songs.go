// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
)

type SongHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSongHandler(db *sql.DB, cfg cliparse.Config) *SongHandler {
	return &SongHandler{db: db, cfg: cfg}
}

// Submit handles POST /parties/{code}/songs
// The submitting player identifies via the X-Player-ID header; the submission
// itself stays anonymous to the rest of the party.
func (h *SongHandler) Submit(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "code is required")
		return
	}

	playerID := r.Header.Get("X-Player-ID")
	if playerID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.KindUnauthorized, "X-Player-ID header required")
		return
	}

	var req models.SubmitSongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}

	if req.TrackID == "" || req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "track_id and title are required")
		return
	}
	if req.Confidence < 1 || req.Confidence > 5 {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "confidence must be between 1 and 5")
		return
	}

	party, err := loadPartyByCode(h.db, code)
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Party not found")
		return
	}
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	if party.Status != models.StatusSubmitting {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Party is not accepting submissions")
		return
	}

	// Player must belong to this party
	var belongs bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM player WHERE id = $1 AND party_id = $2)
	`, playerID, party.ID).Scan(&belongs)
	if err != nil {
		slog.Error("failed to verify player", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}
	if !belongs {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.KindUnauthorized, "Player is not in this party")
		return
	}

	// Enforce the per-player submission budget
	var submitted int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM song WHERE party_id = $1 AND submitter_id = $2
	`, party.ID, playerID).Scan(&submitted)
	if err != nil {
		slog.Error("failed to count songs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}
	if submitted >= party.Settings.SongsPerPlayer {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict,
			fmt.Sprintf("Submission limit of %d songs reached", party.Settings.SongsPerPlayer))
		return
	}

	songID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO song (id, party_id, submitter_id, track_id, title, artist, duration_seconds, confidence, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, songID, party.ID, playerID, req.TrackID, req.Title, req.Artist, req.DurationSeconds, req.Confidence, time.Now())
	if err != nil {
		slog.Error("failed to insert song", "error", err, "party_id", party.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to submit song")
		return
	}

	slog.Info("song submitted", "party_id", party.ID, "song_id", songID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitSongResponse{SongID: songID})
}

const songColumns = `id, party_id, round_id, submitter_id, track_id, title, artist, duration_seconds, confidence, submitted_at`

func scanSong(row *sql.Row) (models.Song, error) {
	var song models.Song
	err := row.Scan(&song.ID, &song.PartyID, &song.RoundID, &song.SubmitterID,
		&song.TrackID, &song.Title, &song.Artist, &song.DurationSeconds,
		&song.Confidence, &song.SubmittedAt)
	if err == sql.ErrNoRows {
		return models.Song{}, fmt.Errorf("song does not exist: %w", ErrNotFound)
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to scan song: %w", err)
	}
	return song, nil
}

func loadSong(db *sql.DB, songID string) (models.Song, error) {
	return scanSong(db.QueryRow(`SELECT `+songColumns+` FROM song WHERE id = $1`, songID))
}

func listPartySongs(db *sql.DB, partyID string) ([]models.Song, error) {
	rows, err := db.Query(`SELECT `+songColumns+` FROM song WHERE party_id = $1 ORDER BY submitted_at, id`, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var s models.Song
		if err := rows.Scan(&s.ID, &s.PartyID, &s.RoundID, &s.SubmitterID,
			&s.TrackID, &s.Title, &s.Artist, &s.DurationSeconds,
			&s.Confidence, &s.SubmittedAt); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}

	return songs, rows.Err()
}
