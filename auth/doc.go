// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and host-key validation.

# Host Keys

Host keys are HMAC-SHA256 of the party ID with a server-side salt, so they can
be validated without a lookup:

	hostKey := auth.GenerateHostKey(partyID, cfg.HostKeySalt)
	err := auth.ValidateHostKey(partyID, providedKey, cfg.HostKeySalt)

The host receives the key once at party creation and sends it back in the
X-Host-Key header for privileged operations (advancing the lifecycle, creating
custom themes).

# Party Codes

Join codes are derived deterministically from the party ID via HMAC with a
separate salt, rendered in a 31-character alphabet that omits look-alike
glyphs (0/O, 1/I/L). Codes are 6 characters and unique per party in practice;
the party table enforces uniqueness with a UNIQUE constraint.

# IDs

GenerateID returns crypto/rand hex strings and is used for party IDs; song and
vote rows use github.com/google/uuid.
*/
package auth
