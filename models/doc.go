// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types for the Encore
API.

# Domain Types

The core entities mirror the database schema:

  - Party: one game instance, identified by a short join code, moving through
    the lifecycle lobby → submitting → playing → finale → complete
  - Player: a participant in exactly one party, with an anonymous identity
    (alias, silhouette, color)
  - Song: an anonymous submission with a confidence wager in [1,5]
  - Vote: a 1–10 quality rating plus an optional 1–5 theme-adherence rating
  - RoundTheme: a predefined or custom theme carrying a bonus multiplier

# Status Constants

Party status uses string constants in strict forward order:

	StatusLobby → StatusSubmitting → StatusPlaying → StatusFinale → StatusComplete

No backward transitions exist; StatusComplete is terminal.

# Settings

PartySettings is a typed struct. It is marshaled to JSON only when written to
the party row and unmarshaled when read back; handlers never pass settings
around as raw text. DefaultSettings supplies the values used when the host
omits settings at creation.

# Request/Response Types

Request and response structs use snake_case JSON tags and are shared by the
handlers and the test suite. ErrorResponse carries a stable machine-readable
kind in its Error field (for example "not_found" or "invalid_transition") so
clients can render precise messages.
*/
package models
