// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/encoregame/server/models"
)

// statusOrder is the only legal path through a party's life.
var statusOrder = []string{
	models.StatusLobby,
	models.StatusSubmitting,
	models.StatusPlaying,
	models.StatusFinale,
	models.StatusComplete,
}

// NextStatus returns the state that follows current. There is no external
// input: each state has exactly one successor, and complete has none.
func NextStatus(current string) (string, error) {
	for i, s := range statusOrder {
		if s != current {
			continue
		}
		if i == len(statusOrder)-1 {
			return "", fmt.Errorf("party is already complete: %w", ErrInvalidTransition)
		}
		return statusOrder[i+1], nil
	}
	return "", fmt.Errorf("unknown status %q: %w", current, ErrInvalidTransition)
}

// AdvanceParty moves a party one step forward and returns the new status.
// The UPDATE is conditional on the status read here, so a concurrent
// transition surfaces as ErrStaleStatus instead of silently overwriting.
// completed_at is written exactly once, on the finale → complete step.
func AdvanceParty(db *sql.DB, partyID string) (string, error) {
	var current string
	err := db.QueryRow(`SELECT status FROM party WHERE id = $1`, partyID).Scan(&current)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("party does not exist: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load party: %w", err)
	}

	return advanceFrom(db, partyID, current)
}

// advanceFrom performs the conditional transition from a previously read
// status. A zero-row update means another caller transitioned the party
// between the read and the write.
func advanceFrom(db *sql.DB, partyID, current string) (string, error) {
	next, err := NextStatus(current)
	if err != nil {
		return "", err
	}

	var res sql.Result
	if next == models.StatusComplete {
		res, err = db.Exec(`
			UPDATE party
			SET status = $1, completed_at = $2
			WHERE id = $3 AND status = $4
		`, next, time.Now(), partyID, current)
	} else {
		res, err = db.Exec(`
			UPDATE party
			SET status = $1
			WHERE id = $2 AND status = $3
		`, next, partyID, current)
	}
	if err != nil {
		return "", fmt.Errorf("failed to update party status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return "", ErrStaleStatus
	}

	return next, nil
}
