package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignUnique(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4"}

	assigned, err := AssignUnique("party-abc", players)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(assigned) != len(players) {
		t.Fatalf("Expected %d identities, got %d", len(players), len(assigned))
	}

	seenAlias := map[string]bool{}
	seenColor := map[string]bool{}
	for _, id := range assigned {
		if id.Alias == "" || id.Silhouette == "" || id.Color == "" {
			t.Errorf("Incomplete identity: %+v", id)
		}
		if seenAlias[id.Alias] {
			t.Errorf("Duplicate alias %q", id.Alias)
		}
		if seenColor[id.Color] {
			t.Errorf("Duplicate color %q", id.Color)
		}
		seenAlias[id.Alias] = true
		seenColor[id.Color] = true
	}
}

func TestAssignUniqueDeterministic(t *testing.T) {
	players := []string{"p1", "p2", "p3"}

	a, err := AssignUnique("party-abc", players)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := AssignUnique("party-abc", players)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Assignment not deterministic (-first +second):\n%s", diff)
	}
}

func TestAssignUniquePoolExhausted(t *testing.T) {
	players := make([]string, 13)
	for i := range players {
		players[i] = string(rune('a' + i))
	}

	if _, err := AssignUnique("party-abc", players); err == nil {
		t.Error("Expected error when players exceed the identity pool")
	}
}

func TestCuratedDemoTracksDistinct(t *testing.T) {
	tracks := CuratedDemoTracks()
	if len(tracks) != 12 {
		t.Fatalf("Expected 12 tracks, got %d", len(tracks))
	}

	seen := map[string]bool{}
	for _, tr := range tracks {
		if seen[tr.ID] {
			t.Errorf("Duplicate track ID %q", tr.ID)
		}
		seen[tr.ID] = true
		if tr.Title == "" || tr.Artist == "" {
			t.Errorf("Track %s missing metadata", tr.ID)
		}
	}
}

func TestPredefinedRoundThemes(t *testing.T) {
	themes := PredefinedRoundThemes()
	if len(themes) == 0 {
		t.Fatal("Expected predefined themes")
	}

	seen := map[string]bool{}
	for _, th := range themes {
		if seen[th.ID] {
			t.Errorf("Duplicate theme ID %q", th.ID)
		}
		seen[th.ID] = true
		if th.BonusMultiplier <= 0 {
			t.Errorf("Theme %s has non-positive multiplier %v", th.ID, th.BonusMultiplier)
		}
	}
}
