// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/encoregame/server/cliparse"
	"github.com/encoregame/server/handlers"
	"github.com/encoregame/server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	partyHandler := handlers.NewPartyHandler(db, cfg)
	songHandler := handlers.NewSongHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	themeHandler := handlers.NewThemeHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	demoHandler := handlers.NewDemoHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Party management
	mux.HandleFunc("POST /parties", middleware.WithLogging(partyHandler.CreateParty))
	mux.HandleFunc("GET /parties/{code}", middleware.WithLogging(partyHandler.GetParty))
	mux.HandleFunc("POST /parties/{code}/join", middleware.WithLogging(partyHandler.JoinParty))
	mux.HandleFunc("POST /parties/{id}/advance", middleware.WithLogging(partyHandler.Advance))

	// Custom themes (host operations)
	mux.HandleFunc("POST /parties/{id}/themes", middleware.WithLogging(themeHandler.Create))
	mux.HandleFunc("GET /themes/{id}", middleware.WithLogging(themeHandler.Get))

	// Songs and voting
	mux.HandleFunc("POST /parties/{code}/songs", middleware.WithLogging(songHandler.Submit))
	mux.HandleFunc("POST /songs/{id}/votes", middleware.WithLogging(voteHandler.Cast))
	mux.HandleFunc("POST /votes/{id}/theme-adherence", middleware.WithLogging(voteHandler.ThemeAdherence))

	// Results
	mux.HandleFunc("GET /parties/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /songs/{id}/theme-bonus", middleware.WithLogging(resultsHandler.GetThemeBonus))

	// Demo mode
	mux.HandleFunc("POST /demo", middleware.WithLogging(demoHandler.CreateParty))
	mux.HandleFunc("POST /demo/{id}/songs", middleware.WithLogging(demoHandler.PopulateSongs))
	mux.HandleFunc("POST /demo/{id}/advance", middleware.WithLogging(demoHandler.Advance))
	mux.HandleFunc("POST /songs/{id}/simulate-votes", middleware.WithLogging(demoHandler.SimulateVotes))
	mux.HandleFunc("GET /parties/{id}/timing", middleware.WithLogging(demoHandler.Timing))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("encore API v1"))
	})

	return mux
}
