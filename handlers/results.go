// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /parties/{id}/results
// The scoreboard stays sealed until the party reaches the finale.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")
	if partyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "party_id is required")
		return
	}

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

	if party.Status != models.StatusFinale && party.Status != models.StatusComplete {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Results are sealed until the finale")
		return
	}

	rankings, err := ComputeSongResults(h.db, party)
	if err != nil {
		slog.Error("failed to compute results", "error", err, "party_id", partyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PartyID:  partyID,
		Rankings: rankings,
	})
}

// GetThemeBonus handles GET /songs/{id}/theme-bonus
// Computes the bonus on demand; nothing is persisted.
func (h *ResultsHandler) GetThemeBonus(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("id")
	if songID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "song_id is required")
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

	votes, err := ListVotesForSong(h.db, songID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	multiplier, err := songThemeMultiplier(h.db, song)
	if err != nil {
		slog.Error("failed to resolve theme multiplier", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ThemeBonusResponse{
		SongID: songID,
		Bonus:  ComputeThemeBonus(votes, multiplier),
	})
}
