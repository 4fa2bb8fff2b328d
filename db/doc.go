// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Drivers

Open selects a driver from the configured database type:

  - "postgres": github.com/lib/pq, for production deployments
  - "sqlite": modernc.org/sqlite (pure Go, no cgo), for development and tests

Both drivers accept the $1-style placeholders used throughout the handlers, so
query text is shared.

# Schema

CreateSchema creates all tables with IF NOT EXISTS, so it is safe to run at
every startup:

	party → player, round, song, round_theme
	song → vote

Votes are UNIQUE on (song_id, voter_id): one ballot per voter per song, with
updates handled at the application layer. Timestamps are written by the
application rather than column defaults to keep the DDL portable across both
drivers.
*/
package db
