// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/encoregame/server/auth"
	"github.com/encoregame/server/catalog"
	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
)

type PartyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPartyHandler(db *sql.DB, cfg cliparse.Config) *PartyHandler {
	return &PartyHandler{db: db, cfg: cfg}
}

// CreateParty handles POST /parties
func (h *PartyHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePartyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}

	if req.HostName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "host_name is required")
		return
	}

	settings := models.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if settings.SongsPerPlayer < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "songs_per_player must be at least 1")
		return
	}

	partyID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate party ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create party")
		return
	}
	code := auth.GeneratePartyCode(partyID, h.cfg.PartyCodeSalt)
	hostKey := auth.GenerateHostKey(partyID, h.cfg.HostKeySalt)

	party, host, err := insertPartyWithHost(h.db, partyID, code, req.HostName, settings, false)
	if err != nil {
		slog.Error("failed to insert party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create party")
		return
	}

	slog.Info("party created", "party_id", partyID, "code", code, "host", host.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePartyResponse{
		Party:   party,
		HostKey: hostKey,
	})
}

// GetParty handles GET /parties/{code}
// Returns the party and its roster. Vote tallies stay sealed until the finale.
func (h *PartyHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "code is required")
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

	players, err := listPartyPlayers(h.db, party.ID)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PartyWithPlayers{
		Party:   party,
		Players: players,
	})
}

// JoinParty handles POST /parties/{code}/join
func (h *PartyHandler) JoinParty(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "code is required")
		return
	}

	var req models.JoinPartyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}
	if len(req.Name) < 2 || len(req.Name) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "name must be 2-50 characters")
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

	// Players can join only before songs start flowing
	if party.Status != models.StatusLobby {
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Party is no longer accepting players")
		return
	}

	player, err := insertPlayer(h.db, party.ID, req.Name, false)
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Name already taken in this party")
			return
		}
		slog.Error("failed to insert player", "error", err, "party_id", party.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to join party")
		return
	}

	slog.Info("player joined", "party_id", party.ID, "player_id", player.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinPartyResponse{Player: player})
}

// Advance handles POST /parties/{id}/advance
func (h *PartyHandler) Advance(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")
	if partyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "party_id is required")
		return
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := auth.ValidateHostKey(partyID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.KindUnauthorized, "Invalid host key")
		return
	}

	newStatus, err := AdvanceParty(h.db, partyID)
	if err != nil {
		writeAdvanceError(w, err)
		return
	}

	slog.Info("party advanced", "party_id", partyID, "status", newStatus)

	middleware.JSONResponse(w, http.StatusOK, models.AdvancePartyResponse{Status: newStatus})
}

// writeAdvanceError maps lifecycle errors onto their response kinds.
func writeAdvanceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Party not found")
	case errors.Is(err, ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindInvalidTransition, err.Error())
	case errors.Is(err, ErrStaleStatus):
		middleware.ErrorResponse(w, http.StatusConflict, middleware.KindConflict, "Party advanced concurrently, re-fetch and retry")
	default:
		slog.Error("failed to advance party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to advance party")
	}
}

// Shared row helpers

// insertPartyWithHost creates the party row, its host player, and the host's
// anonymous identity in one transaction.
func insertPartyWithHost(db *sql.DB, partyID, code, hostName string, settings models.PartySettings, demoMode bool) (models.Party, models.Player, error) {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to marshal settings: %w", err)
	}

	now := time.Now()
	hostID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO party (id, code, status, is_demo_mode, host_id, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, partyID, code, models.StatusLobby, demoMode, hostID, string(settingsJSON), now)
	if err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to insert party: %w", err)
	}

	identities, err := catalog.AssignUnique(partyID, []string{hostID})
	if err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to assign identity: %w", err)
	}
	identity := identities[hostID]

	_, err = tx.Exec(`
		INSERT INTO player (id, party_id, name, is_host, status, alias, silhouette, color, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, hostID, partyID, hostName, true, models.PlayerConnected, identity.Alias, identity.Silhouette, identity.Color, now)
	if err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to insert host: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Party{}, models.Player{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	party := models.Party{
		ID:         partyID,
		Code:       code,
		Status:     models.StatusLobby,
		IsDemoMode: demoMode,
		HostID:     hostID,
		Settings:   settings,
		CreatedAt:  now,
	}
	host := models.Player{
		ID:         hostID,
		PartyID:    partyID,
		Name:       hostName,
		IsHost:     true,
		Status:     models.PlayerConnected,
		Alias:      identity.Alias,
		Silhouette: identity.Silhouette,
		Color:      identity.Color,
		JoinedAt:   now,
	}
	return party, host, nil
}

// insertPlayer creates a non-host player and assigns an identity distinct
// from the players already in the party.
func insertPlayer(db *sql.DB, partyID, name string, isHost bool) (models.Player, error) {
	existing, err := listPartyPlayers(db, partyID)
	if err != nil {
		return models.Player{}, err
	}

	playerID := uuid.NewString()
	ids := make([]string, 0, len(existing)+1)
	for _, p := range existing {
		ids = append(ids, p.ID)
	}
	ids = append(ids, playerID)

	identities, err := catalog.AssignUnique(partyID, ids)
	if err != nil {
		return models.Player{}, fmt.Errorf("failed to assign identity: %w", err)
	}
	identity := identities[playerID]

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO player (id, party_id, name, is_host, status, alias, silhouette, color, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, playerID, partyID, name, isHost, models.PlayerConnected, identity.Alias, identity.Silhouette, identity.Color, now)
	if err != nil {
		return models.Player{}, err
	}

	return models.Player{
		ID:         playerID,
		PartyID:    partyID,
		Name:       name,
		IsHost:     isHost,
		Status:     models.PlayerConnected,
		Alias:      identity.Alias,
		Silhouette: identity.Silhouette,
		Color:      identity.Color,
		JoinedAt:   now,
	}, nil
}

const partyColumns = `id, code, status, is_demo_mode, host_id, settings, completed_at, created_at`

func scanParty(row *sql.Row) (models.Party, error) {
	var party models.Party
	var settingsJSON string
	var hostID sql.NullString

	err := row.Scan(&party.ID, &party.Code, &party.Status, &party.IsDemoMode,
		&hostID, &settingsJSON, &party.CompletedAt, &party.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Party{}, fmt.Errorf("party does not exist: %w", ErrNotFound)
	}
	if err != nil {
		return models.Party{}, fmt.Errorf("failed to scan party: %w", err)
	}

	party.HostID = hostID.String
	if err := json.Unmarshal([]byte(settingsJSON), &party.Settings); err != nil {
		return models.Party{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return party, nil
}

func loadParty(db *sql.DB, partyID string) (models.Party, error) {
	return scanParty(db.QueryRow(`SELECT `+partyColumns+` FROM party WHERE id = $1`, partyID))
}

func loadPartyByCode(db *sql.DB, code string) (models.Party, error) {
	return scanParty(db.QueryRow(`SELECT `+partyColumns+` FROM party WHERE code = $1`, code))
}

func listPartyPlayers(db *sql.DB, partyID string) ([]models.Player, error) {
	rows, err := db.Query(`
		SELECT id, party_id, name, is_host, status, alias, silhouette, color, joined_at
		FROM player
		WHERE party_id = $1
		ORDER BY joined_at, id
	`, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.PartyID, &p.Name, &p.IsHost, &p.Status,
			&p.Alias, &p.Silhouette, &p.Color, &p.JoinedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// isUniqueViolation reports whether err is a uniqueness constraint failure
// from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
