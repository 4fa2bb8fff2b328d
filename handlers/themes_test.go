package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/encoregame/server/auth"
	"github.com/encoregame/server/middleware"
	"github.com/encoregame/server/models"
	"github.com/encoregame/server/testutil"
)

func TestCreateTheme(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewThemeHandler(conn, cfg)

	partyID, hostKey, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusLobby, false)

	tests := []struct {
		name           string
		partyID        string
		hostKey        string
		body           string
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "valid constraints",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"genres":["jazz","funk"],"bpm_range":{"min":90,"max":130}},"bonus_multiplier":1.5}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "inverted bpm range",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"bpm_range":{"min":150,"max":100}}}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   middleware.KindInvalidConstraints,
		},
		{
			name:           "half-open bpm range",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"bpm_range":{"min":90}}}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   middleware.KindInvalidConstraints,
		},
		{
			name:           "scalar where list expected",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"genres":"jazz"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   middleware.KindInvalidConstraints,
		},
		{
			name:           "blank genre entry",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"genres":["jazz",""]}}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   middleware.KindInvalidConstraints,
		},
		{
			name:           "zero multiplier",
			partyID:        partyID,
			hostKey:        hostKey,
			body:           `{"constraints":{"genres":["jazz"]},"bonus_multiplier":0}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   middleware.KindInvalidConstraints,
		},
		{
			name:           "invalid host key",
			partyID:        partyID,
			hostKey:        "wrong-key",
			body:           `{"constraints":{"genres":["jazz"]}}`,
			expectedStatus: http.StatusUnauthorized,
			expectedKind:   middleware.KindUnauthorized,
		},
		{
			name:           "party not found",
			partyID:        "missing-party",
			hostKey:        auth.GenerateHostKey("missing-party", cfg.HostKeySalt),
			body:           `{"constraints":{"genres":["jazz"]}}`,
			expectedStatus: http.StatusNotFound,
			expectedKind:   middleware.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/parties/"+tt.partyID+"/themes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Host-Key", tt.hostKey)
			req.SetPathValue("id", tt.partyID)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedKind != "" {
				testutil.AssertErrorKind(t, w, tt.expectedKind)
			}
		})
	}
}

func TestCreateThemeDerivedName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewThemeHandler(conn, cfg)

	partyID, hostKey, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusLobby, false)

	body := `{"constraints":{"genres":["disco","house"],"decades":["80s"],"bpm_range":{"min":100,"max":120}}}`
	req := httptest.NewRequest("POST", "/parties/"+partyID+"/themes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Host-Key", hostKey)
	req.SetPathValue("id", partyID)
	w := httptest.NewRecorder()
	handler.Create(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var theme models.RoundTheme
	if err := json.NewDecoder(w.Body).Decode(&theme); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := "disco + house · 80s · 100-120 BPM"
	if theme.Name != want {
		t.Errorf("expected name %q, got %q", want, theme.Name)
	}
	if theme.BonusMultiplier != 1.0 {
		t.Errorf("expected default multiplier 1.0, got %v", theme.BonusMultiplier)
	}
	if theme.PartyID == nil || *theme.PartyID != partyID {
		t.Errorf("expected theme scoped to party %s", partyID)
	}
}

func TestGetTheme(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewThemeHandler(conn, cfg)

	partyID, _, _ := testutil.CreateTestParty(t, conn, cfg, models.StatusLobby, false)
	customID := testutil.AddTestRoundTheme(t, conn, partyID, "Slow Burn", 1.5)

	tests := []struct {
		name           string
		themeID        string
		expectedStatus int
		expectedName   string
	}{
		{"predefined theme", "theme-hidden-gems", http.StatusOK, "Hidden Gems"},
		{"custom theme", customID, http.StatusOK, "Slow Burn"},
		{"unknown theme", "theme-does-not-exist", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/themes/"+tt.themeID, nil, nil)
			req.SetPathValue("id", tt.themeID)
			w := httptest.NewRecorder()
			handler.Get(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedName != "" {
				var theme models.RoundTheme
				if err := json.NewDecoder(w.Body).Decode(&theme); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if theme.Name != tt.expectedName {
					t.Errorf("expected name %q, got %q", tt.expectedName, theme.Name)
				}
			}
		})
	}
}
