// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidHostKey = errors.New("invalid host key")

// PartyCodeLength is the length of the join code shown to players.
const PartyCodeLength = 6

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateHostKey creates an HMAC-based host key for a party
// This is deterministic and verifiable
func GenerateHostKey(partyID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(partyID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateHostKey checks if the provided host key is valid for the party
func ValidateHostKey(partyID, hostKey, salt string) error {
	expected := GenerateHostKey(partyID, salt)
	if !hmac.Equal([]byte(hostKey), []byte(expected)) {
		return ErrInvalidHostKey
	}
	return nil
}

// GeneratePartyCode creates a short, deterministic join code for a party.
// Uses HMAC for determinism; the alphabet omits look-alike characters so
// codes can be read out loud across the room.
func GeneratePartyCode(partyID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(partyID))
	sum := h.Sum(nil)

	// Crockford-style alphabet: no 0/O, 1/I/L ambiguity
	const codeChars = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

	code := make([]byte, PartyCodeLength)
	for i := 0; i < PartyCodeLength; i++ {
		code[i] = codeChars[int(sum[i])%len(codeChars)]
	}
	return string(code)
}
