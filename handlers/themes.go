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

type ThemeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewThemeHandler(db *sql.DB, cfg cliparse.Config) *ThemeHandler {
	return &ThemeHandler{db: db, cfg: cfg}
}

// Create handles POST /parties/{id}/themes
// Validates the constraint set, derives the theme name, and stores the theme
// as a custom theme scoped to the party.
func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateThemeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		// A scalar where a list is expected (or a non-boolean explicit) is a
		// constraint-shape violation, not a malformed request
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasPrefix(typeErr.Field, "constraints") {
			middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindInvalidConstraints,
				fmt.Sprintf("constraint field %s has the wrong type", typeErr.Field))
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "Invalid JSON")
		return
	}

	if err := ValidateConstraints(req.Constraints); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindInvalidConstraints, err.Error())
		return
	}

	// Party must exist before any write
	if _, err := loadParty(h.db, partyID); err != nil {
		if errors.Is(err, ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Party not found")
			return
		}
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	multiplier := 1.0
	if req.BonusMultiplier != nil {
		if *req.BonusMultiplier <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindInvalidConstraints, "bonus_multiplier must be positive")
			return
		}
		multiplier = *req.BonusMultiplier
	}

	constraintsJSON, err := json.Marshal(req.Constraints)
	if err != nil {
		slog.Error("failed to marshal constraints", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create theme")
		return
	}

	theme := models.RoundTheme{
		ID:              uuid.NewString(),
		PartyID:         &partyID,
		Name:            DeriveThemeName(req.Constraints),
		BonusMultiplier: multiplier,
		Constraints:     &req.Constraints,
		CreatedAt:       time.Now(),
	}

	_, err = h.db.Exec(`
		INSERT INTO round_theme (id, party_id, name, bonus_multiplier, constraints, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, theme.ID, partyID, theme.Name, theme.BonusMultiplier, string(constraintsJSON), theme.CreatedAt)
	if err != nil {
		slog.Error("failed to insert theme", "error", err, "party_id", partyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Failed to create theme")
		return
	}

	slog.Info("custom theme created", "party_id", partyID, "theme_id", theme.ID, "name", theme.Name)

	middleware.JSONResponse(w, http.StatusCreated, theme)
}

// Get handles GET /themes/{id}
// Resolution order is an implementation detail: predefined catalog first,
// then the round_theme table.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	themeID := r.PathValue("id")
	if themeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.KindBadRequest, "theme_id is required")
		return
	}

	theme, err := ResolveTheme(h.db, themeID)
	if errors.Is(err, ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.KindNotFound, "Theme not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve theme", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.KindInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, theme)
}

// ResolveTheme looks a theme up by ID: the fixed predefined catalog is
// checked first, then the store's custom themes.
func ResolveTheme(db *sql.DB, themeID string) (models.RoundTheme, error) {
	for _, t := range catalog.PredefinedRoundThemes() {
		if t.ID == themeID {
			return t, nil
		}
	}

	var theme models.RoundTheme
	var constraintsJSON sql.NullString
	err := db.QueryRow(`
		SELECT id, party_id, name, bonus_multiplier, constraints, created_at
		FROM round_theme
		WHERE id = $1
	`, themeID).Scan(&theme.ID, &theme.PartyID, &theme.Name,
		&theme.BonusMultiplier, &constraintsJSON, &theme.CreatedAt)
	if err == sql.ErrNoRows {
		return models.RoundTheme{}, fmt.Errorf("theme does not exist: %w", ErrNotFound)
	}
	if err != nil {
		return models.RoundTheme{}, fmt.Errorf("failed to scan theme: %w", err)
	}

	if constraintsJSON.Valid && constraintsJSON.String != "" {
		var constraints models.ThemeConstraints
		if err := json.Unmarshal([]byte(constraintsJSON.String), &constraints); err != nil {
			return models.RoundTheme{}, fmt.Errorf("failed to unmarshal constraints: %w", err)
		}
		theme.Constraints = &constraints
	}

	return theme, nil
}
