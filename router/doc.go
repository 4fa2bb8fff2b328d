// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Encore API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Party management (advance requires X-Host-Key):

	POST /parties               - Create party
	GET  /parties/{code}        - Party info and roster
	POST /parties/{code}/join   - Join during lobby
	POST /parties/{id}/advance  - One lifecycle step forward

Custom themes (create requires X-Host-Key):

	POST /parties/{id}/themes - Validate constraints, derive name, store
	GET  /themes/{id}         - Resolve predefined-then-custom

Songs and voting (require X-Player-ID):

	POST /parties/{code}/songs       - Submit song with confidence wager
	POST /songs/{id}/votes           - Cast/update a 1-10 vote
	POST /votes/{id}/theme-adherence - Record a 1-5 adherence rating

Results:

	GET /parties/{id}/results  - Finale scoreboard (sealed earlier)
	GET /songs/{id}/theme-bonus - Computed theme bonus

Demo mode:

	POST /demo                      - Create demo party (4 players)
	POST /demo/{id}/songs           - Populate curated submissions
	POST /demo/{id}/advance         - One lifecycle step
	POST /songs/{id}/simulate-votes - Personality-driven votes
	GET  /parties/{id}/timing       - Effective durations/speeds

# Handler Initialization

The router creates handler instances with dependency injection:

	partyHandler := handlers.NewPartyHandler(db, cfg)
	demoHandler := handlers.NewDemoHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
