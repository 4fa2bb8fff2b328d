// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/encoregame/server/auth"
	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/db"
	"github.com/encoregame/server/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// MaxOpenConns(1) keeps every statement on the single in-memory connection.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3519,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		HostKeySalt:   "test-host-salt",
		PartyCodeSalt: "test-code-salt",
		DemoSeed:      42,
	}
}

// CreateTestParty creates a party in the database and returns its ID, host
// key, and join code. status should be one of the models.Status* constants.
func CreateTestParty(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, demoMode bool) (partyID, hostKey, code string) {
	t.Helper()

	partyID, _ = auth.GenerateID(16)
	hostKey = auth.GenerateHostKey(partyID, cfg.HostKeySalt)
	code = auth.GeneratePartyCode(partyID, cfg.PartyCodeSalt)

	settingsJSON, err := json.Marshal(models.DefaultSettings())
	if err != nil {
		t.Fatalf("Failed to marshal settings: %v", err)
	}

	var completedAt *time.Time
	if status == models.StatusComplete {
		now := time.Now()
		completedAt = &now
	}

	_, err = conn.Exec(`
		INSERT INTO party (id, code, status, is_demo_mode, settings, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, partyID, code, status, demoMode, string(settingsJSON), completedAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test party: %v", err)
	}

	return partyID, hostKey, code
}

// SetTestSettings overwrites a party's settings column.
func SetTestSettings(t *testing.T, conn *sql.DB, partyID string, settings models.PartySettings) {
	t.Helper()

	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("Failed to marshal settings: %v", err)
	}
	if _, err := conn.Exec(`UPDATE party SET settings = $1 WHERE id = $2`, string(settingsJSON), partyID); err != nil {
		t.Fatalf("Failed to update settings: %v", err)
	}
}

// AddTestPlayer adds a player to a party and returns the player ID.
func AddTestPlayer(t *testing.T, conn *sql.DB, partyID, name string, isHost bool) string {
	t.Helper()

	playerID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO player (id, party_id, name, is_host, status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, playerID, partyID, name, isHost, models.PlayerConnected, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test player: %v", err)
	}

	if isHost {
		if _, err := conn.Exec(`UPDATE party SET host_id = $1 WHERE id = $2`, playerID, partyID); err != nil {
			t.Fatalf("Failed to set host: %v", err)
		}
	}

	return playerID
}

// AddTestSong submits a song for a player and returns the song ID.
func AddTestSong(t *testing.T, conn *sql.DB, partyID, submitterID string, confidence int) string {
	t.Helper()

	songID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO song (id, party_id, submitter_id, track_id, title, artist, duration_seconds, confidence, submitted_at)
		VALUES ($1, $2, $3, $4, 'Test Song', 'Test Artist', 180, $5, $6)
	`, songID, partyID, submitterID, "track-"+songID[:8], confidence, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test song: %v", err)
	}

	return songID
}

// CastTestVote records a vote and returns the vote ID. adherence may be nil.
func CastTestVote(t *testing.T, conn *sql.DB, songID, voterID string, rating int, adherence *int, locked bool) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, song_id, voter_id, rating, theme_adherence, is_locked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, voteID, songID, voterID, rating, adherence, locked, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// AddTestRoundTheme stores a custom theme row and returns its ID.
func AddTestRoundTheme(t *testing.T, conn *sql.DB, partyID, name string, multiplier float64) string {
	t.Helper()

	themeID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO round_theme (id, party_id, name, bonus_multiplier, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, themeID, partyID, name, multiplier, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test theme: %v", err)
	}

	return themeID
}

// AddTestRound creates a round referencing a theme and attaches a song to it.
func AddTestRound(t *testing.T, conn *sql.DB, partyID, themeID, songID string, number int) string {
	t.Helper()

	roundID := uuid.NewString()
	var theme *string
	if themeID != "" {
		theme = &themeID
	}
	_, err := conn.Exec(`
		INSERT INTO round (id, party_id, number, theme_id)
		VALUES ($1, $2, $3, $4)
	`, roundID, partyID, number, theme)
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	if songID != "" {
		if _, err := conn.Exec(`UPDATE song SET round_id = $1 WHERE id = $2`, roundID, songID); err != nil {
			t.Fatalf("Failed to attach song to round: %v", err)
		}
	}

	return roundID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorKind checks the stable error kind in the response body.
func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, kind string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != kind {
		t.Errorf("Expected error kind %q, got %q (message: %s)", kind, resp.Error, resp.Message)
	}
}
