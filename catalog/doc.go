// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the fixed in-memory data the game draws from: predefined
round themes, the curated demo track pool, and the anonymous identity pools
(aliases, silhouettes, colors).

Predefined themes are resolved before the database is consulted, so a theme
lookup is a single call for callers regardless of where the theme lives.

AssignUnique hands each player in a party a distinct (alias, silhouette,
color) triple. The starting offset is derived from the party ID so rosters
differ between parties while staying deterministic for tests.
*/
package catalog
