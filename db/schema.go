// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite).
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always written by the application so the schema stays valid
// on both postgres and sqlite.
const schema = `
-- Parties
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL DEFAULT 'lobby' CHECK (status IN ('lobby', 'submitting', 'playing', 'finale', 'complete')),
    is_demo_mode BOOLEAN NOT NULL DEFAULT FALSE,
    host_id TEXT,
    settings TEXT NOT NULL,
    completed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_party_code ON party(code);
CREATE INDEX IF NOT EXISTS idx_party_status ON party(status);

-- Players
CREATE TABLE IF NOT EXISTS player (
    id TEXT PRIMARY KEY,
    party_id TEXT NOT NULL REFERENCES party(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    is_host BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL DEFAULT 'connected' CHECK (status IN ('connected', 'disconnected')),
    alias TEXT NOT NULL DEFAULT '',
    silhouette TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    joined_at TIMESTAMP NOT NULL,
    UNIQUE (party_id, name)
);

CREATE INDEX IF NOT EXISTS idx_player_party_id ON player(party_id);

-- Rounds
CREATE TABLE IF NOT EXISTS round (
    id TEXT PRIMARY KEY,
    party_id TEXT NOT NULL REFERENCES party(id) ON DELETE CASCADE,
    number INTEGER NOT NULL,
    theme_id TEXT,
    UNIQUE (party_id, number)
);

CREATE INDEX IF NOT EXISTS idx_round_party_id ON round(party_id);

-- Songs
CREATE TABLE IF NOT EXISTS song (
    id TEXT PRIMARY KEY,
    party_id TEXT NOT NULL REFERENCES party(id) ON DELETE CASCADE,
    round_id TEXT REFERENCES round(id) ON DELETE SET NULL,
    submitter_id TEXT NOT NULL REFERENCES player(id) ON DELETE CASCADE,
    track_id TEXT NOT NULL,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL DEFAULT 0,
    confidence INTEGER NOT NULL CHECK (confidence >= 1 AND confidence <= 5),
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_song_party_id ON song(party_id);
CREATE INDEX IF NOT EXISTS idx_song_submitter_id ON song(submitter_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    song_id TEXT NOT NULL REFERENCES song(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL REFERENCES player(id) ON DELETE CASCADE,
    rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 10),
    theme_adherence INTEGER CHECK (theme_adherence >= 1 AND theme_adherence <= 5),
    is_locked BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (song_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_song_id ON vote(song_id);

-- Round themes (custom themes have a party_id; predefined themes live in the
-- in-memory catalog and are never stored here)
CREATE TABLE IF NOT EXISTS round_theme (
    id TEXT PRIMARY KEY,
    party_id TEXT REFERENCES party(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    bonus_multiplier REAL NOT NULL DEFAULT 1.0,
    constraints TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_round_theme_party_id ON round_theme(party_id);
`
