package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/encoregame/server/models"
	"github.com/encoregame/server/testutil"
)

func TestHealthCheck(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(conn, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(conn, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

// TestDemoPlaythrough drives a full party through the mux: create a demo
// party, populate songs, simulate votes, advance to the finale, and read the
// scoreboard.
func TestDemoPlaythrough(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(conn, cfg)

	// Create the demo party
	req := httptest.NewRequest("POST", "/demo", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var demo models.DemoPartyResponse
	testutil.AssertJSON(t, w, &demo)
	partyID := demo.Party.ID
	voterIDs := make([]string, 0, len(demo.Players))
	for _, p := range demo.Players {
		voterIDs = append(voterIDs, p.ID)
	}

	// Populate songs (lobby -> submitting)
	req = httptest.NewRequest("POST", "/demo/"+partyID+"/songs", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var populated models.PopulateSongsResponse
	testutil.AssertJSON(t, w, &populated)
	if populated.Status != models.StatusSubmitting {
		t.Fatalf("Expected submitting, got %s", populated.Status)
	}

	// submitting -> playing
	req = httptest.NewRequest("POST", "/demo/"+partyID+"/advance", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Simulate votes on every song
	for _, song := range populated.Songs {
		req = testutil.MakeRequest("POST", "/songs/"+song.ID+"/simulate-votes",
			models.SimulateVotesRequest{VoterIDs: voterIDs}, nil)
		w = httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	// playing -> finale
	req = httptest.NewRequest("POST", "/demo/"+partyID+"/advance", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Scoreboard opens at the finale
	req = httptest.NewRequest("GET", "/parties/"+partyID+"/results", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if len(results.Rankings) != len(populated.Songs) {
		t.Errorf("Expected %d ranked songs, got %d", len(populated.Songs), len(results.Rankings))
	}
	for i, r := range results.Rankings {
		if r.Rank != i+1 {
			t.Errorf("Expected rank %d at position %d, got %d", i+1, i, r.Rank)
		}
		if i > 0 && r.FinalScore > results.Rankings[i-1].FinalScore {
			t.Errorf("Rankings not sorted: %v after %v", r.FinalScore, results.Rankings[i-1].FinalScore)
		}
	}

	// finale -> complete, then the party is terminal
	req = httptest.NewRequest("POST", "/demo/"+partyID+"/advance", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("POST", "/demo/"+partyID+"/advance", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestUnknownRoute(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(conn, cfg)

	req := httptest.NewRequest("DELETE", "/parties/abc", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 or 405, got %d", w.Code)
	}
}
