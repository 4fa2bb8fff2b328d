package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
	"github.com/encoregame/server/testutil"
)

func TestCastVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, cfg)

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusPlaying, false)
	alice := testutil.AddTestPlayer(t, conn, partyID, "Alice", true)
	bob := testutil.AddTestPlayer(t, conn, partyID, "Bob", false)
	songID := testutil.AddTestSong(t, conn, partyID, alice, 3)

	lobbyParty, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusLobby, false)
	lobbyHost := testutil.AddTestPlayer(t, conn, lobbyParty, "Eve", true)
	lobbySong := testutil.AddTestSong(t, conn, lobbyParty, lobbyHost, 3)

	tests := []struct {
		name           string
		songID         string
		voterID        string
		rating         int
		expectedStatus int
	}{
		{"valid vote", songID, bob, 8, http.StatusCreated},
		{"update own vote", songID, bob, 6, http.StatusCreated},
		{"self vote rejected", songID, alice, 9, http.StatusConflict},
		{"rating too high", songID, bob, 11, http.StatusBadRequest},
		{"rating too low", songID, bob, 0, http.StatusBadRequest},
		{"song not found", "missing-song", bob, 5, http.StatusNotFound},
		{"party not in playing stage", lobbySong, bob, 5, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/songs/"+tt.songID+"/votes",
				models.CastVoteRequest{Rating: tt.rating},
				map[string]string{"X-Player-ID": tt.voterID})
			req.SetPathValue("id", tt.songID)
			w := httptest.NewRecorder()
			handler.Cast(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// The update replaced the rating rather than adding a second vote
	var rating, count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE song_id = $1 AND voter_id = $2`, songID, bob).Scan(&count); err != nil {
		t.Fatalf("failed to count votes: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 vote, got %d", count)
	}
	if err := conn.QueryRow(`SELECT rating FROM vote WHERE song_id = $1 AND voter_id = $2`, songID, bob).Scan(&rating); err != nil {
		t.Fatalf("failed to query rating: %v", err)
	}
	if rating != 6 {
		t.Errorf("expected updated rating 6, got %d", rating)
	}
}

func TestCastVote_LockedVoteImmutable(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, cfg)

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusPlaying, false)
	alice := testutil.AddTestPlayer(t, conn, partyID, "Alice", true)
	bob := testutil.AddTestPlayer(t, conn, partyID, "Bob", false)
	songID := testutil.AddTestSong(t, conn, partyID, alice, 3)

	testutil.CastTestVote(t, conn, songID, bob, 7, nil, true)

	req := testutil.MakeRequest("POST", "/songs/"+songID+"/votes",
		models.CastVoteRequest{Rating: 2},
		map[string]string{"X-Player-ID": bob})
	req.SetPathValue("id", songID)
	w := httptest.NewRecorder()
	handler.Cast(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestRecordThemeAdherence(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusPlaying, false)
	alice := testutil.AddTestPlayer(t, conn, partyID, "Alice", true)
	bob := testutil.AddTestPlayer(t, conn, partyID, "Bob", false)
	songID := testutil.AddTestSong(t, conn, partyID, alice, 3)
	voteID := testutil.CastTestVote(t, conn, songID, bob, 7, nil, false)

	tests := []struct {
		name    string
		voteID  string
		rating  float64
		wantErr error
	}{
		{"lower bound accepted", voteID, 1, nil},
		{"upper bound accepted", voteID, 5, nil},
		{"zero rejected", voteID, 0, ErrInvalidRating},
		{"six rejected", voteID, 6, ErrInvalidRating},
		{"non-integer rejected", voteID, 3.5, ErrInvalidRating},
		{"missing vote", "missing-vote", 3, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RecordThemeAdherence(conn, tt.voteID, tt.rating)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	// The last accepted write sticks
	var adherence int
	if err := conn.QueryRow(`SELECT theme_adherence FROM vote WHERE id = $1`, voteID).Scan(&adherence); err != nil {
		t.Fatalf("failed to query adherence: %v", err)
	}
	if adherence != 5 {
		t.Errorf("expected adherence 5, got %d", adherence)
	}
}

func TestRecordThemeAdherence_LockedVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusPlaying, false)
	alice := testutil.AddTestPlayer(t, conn, partyID, "Alice", true)
	bob := testutil.AddTestPlayer(t, conn, partyID, "Bob", false)
	songID := testutil.AddTestSong(t, conn, partyID, alice, 3)

	// Simulated votes arrive locked; the lock freezes the quality rating but
	// adherence is a separate judgment recorded afterward
	voteID := testutil.CastTestVote(t, conn, songID, bob, 7, nil, true)

	if err := RecordThemeAdherence(conn, voteID, 4); err != nil {
		t.Fatalf("adherence on locked vote should succeed, got %v", err)
	}

	var adherence int
	var isLocked bool
	var rating int
	if err := conn.QueryRow(`SELECT theme_adherence, is_locked, rating FROM vote WHERE id = $1`, voteID).
		Scan(&adherence, &isLocked, &rating); err != nil {
		t.Fatalf("failed to query vote: %v", err)
	}
	if adherence != 4 {
		t.Errorf("expected adherence 4, got %d", adherence)
	}
	// The lock and the quality rating are untouched
	if !isLocked || rating != 7 {
		t.Errorf("expected locked vote with rating 7 preserved, got locked=%v rating=%d", isLocked, rating)
	}
}

func TestThemeAdherenceEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(conn, cfg)

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusPlaying, false)
	alice := testutil.AddTestPlayer(t, conn, partyID, "Alice", true)
	bob := testutil.AddTestPlayer(t, conn, partyID, "Bob", false)
	songID := testutil.AddTestSong(t, conn, partyID, alice, 3)
	voteID := testutil.CastTestVote(t, conn, songID, bob, 7, nil, false)

	tests := []struct {
		name           string
		voteID         string
		body           interface{}
		expectedStatus int
		expectedKind   string
	}{
		{"valid rating", voteID, models.ThemeAdherenceRequest{Rating: 4}, http.StatusNoContent, ""},
		{"out of range", voteID, models.ThemeAdherenceRequest{Rating: 6}, http.StatusBadRequest, middleware.KindInvalidRating},
		{"non-integer", voteID, models.ThemeAdherenceRequest{Rating: 2.5}, http.StatusBadRequest, middleware.KindInvalidRating},
		{"vote not found", "nope", models.ThemeAdherenceRequest{Rating: 3}, http.StatusNotFound, middleware.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/votes/"+tt.voteID+"/theme-adherence", tt.body, nil)
			req.SetPathValue("id", tt.voteID)
			w := httptest.NewRecorder()
			handler.ThemeAdherence(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedKind != "" {
				testutil.AssertErrorKind(t, w, tt.expectedKind)
			}
		})
	}
}
