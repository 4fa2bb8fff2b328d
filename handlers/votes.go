// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// Cast handles POST /songs/{id}/votes
// Creates or updates the caller's vote on a song. Votes are mutable until
// locked; simulated votes are created locked and never change.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("id")
	if songID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "song_id is required")
		return
	}

	voterID := r.Header.Get("X-Player-ID")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.KindUnauthorized, "X-Player-ID header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}
	if req.Rating < minRating || req.Rating > maxRating {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "rating must be between 1 and 10")
		return
	}

	song, err := loadSong(h.db, songID)
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Song not found")
		return
	}
	if err != nil {
		slog.Error("failed to query song", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	if song.SubmitterID == voterID {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Cannot vote on your own song")
		return
	}

	party, err := loadParty(h.db, song.PartyID)
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}
	if party.Status != models.StatusPlaying {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Party is not in the voting stage")
		return
	}

	// Upsert: update the existing unlocked vote, otherwise insert
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}
	defer tx.Rollback()

	var voteID string
	var isLocked bool
	err = tx.QueryRow(`
		SELECT id, is_locked FROM vote WHERE song_id = $1 AND voter_id = $2
	`, songID, voterID).Scan(&voteID, &isLocked)

	isUpdate := err != sql.ErrNoRows
	if isUpdate && err != nil {
		slog.Error("failed to query vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	if isUpdate {
		if isLocked {
			middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Vote is locked")
			return
		}
		_, err = tx.Exec(`
			UPDATE vote SET rating = $1, created_at = $2 WHERE id = $3
		`, req.Rating, time.Now(), voteID)
		if err != nil {
			slog.Error("failed to update vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to update vote")
			return
		}
	} else {
		voteID = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO vote (id, song_id, voter_id, rating, is_locked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, voteID, songID, voterID, req.Rating, false, time.Now())
		if err != nil {
			slog.Error("failed to insert vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to submit vote")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to submit vote")
		return
	}

	message := "Vote submitted"
	if isUpdate {
		message = "Vote updated"
	}

	slog.Info("vote cast", "song_id", songID, "vote_id", voteID, "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: message,
	})
}

// ThemeAdherence handles POST /votes/{id}/theme-adherence
// Records how well the voter thinks the song matched the round's theme.
func (h *VoteHandler) ThemeAdherence(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "vote_id is required")
		return
	}

	var req models.ThemeAdherenceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}

	err := RecordThemeAdherence(h.db, voteID, req.Rating)
	switch {
	case errors.Is(err, ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Vote not found")
		return
	case errors.Is(err, ErrInvalidRating):
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindInvalidRating, err.Error())
		return
	case err != nil:
		slog.Error("failed to record theme adherence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to record rating")
		return
	}

	slog.Info("theme adherence recorded", "vote_id", voteID, "rating", int(req.Rating))

	w.WriteHeader(http.StatusNoContent)
}

// RecordThemeAdherence validates and stores a theme-adherence rating on a
// vote. The rating must be an integer in [1,5]; the JSON layer delivers
// numbers as float64, so integrality is checked here rather than at decode.
// Locked votes accept adherence: the lock freezes the quality rating, not the
// adherence judgment recorded later in the round.
func RecordThemeAdherence(db *sql.DB, voteID string, rating float64) error {
	if rating != math.Trunc(rating) {
		return fmt.Errorf("rating %v is not an integer: %w", rating, ErrInvalidRating)
	}
	value := int(rating)
	if value < 1 || value > 5 {
		return fmt.Errorf("rating %d outside [1,5]: %w", value, ErrInvalidRating)
	}

	res, err := db.Exec(`UPDATE vote SET theme_adherence = $1 WHERE id = $2`, value, voteID)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("vote does not exist: %w", ErrNotFound)
	}
	return nil
}

// ListVotesForSong returns every vote cast against a song.
func ListVotesForSong(db *sql.DB, songID string) ([]models.Vote, error) {
	rows, err := db.Query(`
		SELECT id, song_id, voter_id, rating, theme_adherence, is_locked, created_at
		FROM vote
		WHERE song_id = $1
		ORDER BY created_at, id
	`, songID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.SongID, &v.VoterID, &v.Rating,
			&v.ThemeAdherence, &v.IsLocked, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}
