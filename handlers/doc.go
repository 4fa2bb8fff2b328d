// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers and the game's scoring and
lifecycle core.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PartyHandler: party creation, joining, roster, lifecycle advance
  - SongHandler: anonymous song submission with confidence wagers
  - VoteHandler: quality votes and theme-adherence ratings
  - ThemeHandler: custom theme creation and theme resolution
  - ResultsHandler: finale scoreboard and theme bonuses
  - DemoHandler: unattended demo playthroughs

Handlers are created via constructor functions that accept *sql.DB and Config:

	partyHandler := handlers.NewPartyHandler(db, cfg)

There is no shared global service object; the router constructs each handler
once and every dependency is passed in explicitly.

# Party Lifecycle

Parties progress through five states, forward only:

	lobby → submitting → playing → finale → complete

AdvanceParty performs one step per call with a conditional UPDATE keyed on
the status it read, so concurrent transitions fail loudly instead of losing
an update. Advancing a complete party fails with ErrInvalidTransition, and
completed_at is written exactly once.

# Scoring

The scoring core lives in scoring.go as pure functions over vote sets:

	bonus := handlers.ComputeThemeBonus(votes, multiplier)

A song earns 0.5 × multiplier when the mean theme-adherence rating of the
votes that carry one is at least 4.0; otherwise 0, and 0 when no vote carries
one. ComputeSongResults assembles the finale scoreboard: mean quality rating
plus confidence adjustment plus theme bonus, ranked descending.

# Demo Mode

DemoHandler scripts a full unattended run: four synthetic players, curated
track submissions with varied confidence, and personality-driven simulated
voting (personality.go). The random source is seeded from config so demo runs
can be made reproducible. Simulated votes are created locked.

# Error Kinds

The core returns sentinel errors (ErrNotFound, ErrInvalidTransition,
ErrInvalidRating, ErrInvalidConstraints, ErrStaleStatus) which handlers map
to HTTP statuses and stable kind strings in the error body.
*/
package handlers
