// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"math/rand"
	"time"

	"github.com/encoregame/server/models"
)

// Rating bounds for the main quality vote.
const (
	minRating = 1
	maxRating = 10
)

// DemoPersonalities are the four fixed archetypes that drive simulated
// voting. Index i votes on behalf of demo player i (mod 4).
func DemoPersonalities() []models.VoterPersonality {
	return []models.VoterPersonality{
		{Name: "Harsh Critic", Bias: models.BiasHarsh, MeanRating: 4.0, Variance: 1.5},
		{Name: "Generous Fan", Bias: models.BiasGenerous, MeanRating: 8.0, Variance: 1.2},
		{Name: "Balanced Voter", Bias: models.BiasBalanced, MeanRating: 6.0, Variance: 1.0},
		{Name: "Wildcard", Bias: models.BiasBalanced, MeanRating: 5.5, Variance: 3.0},
	}
}

// SimulateRating draws one rating for a personality: a normal sample centered
// on the personality's mean with spread proportional to its variance, rounded
// and clamped into [1,10]. The rand source is injected so tests can assert
// deterministic sequences.
func SimulateRating(rng *rand.Rand, p models.VoterPersonality) int {
	raw := p.MeanRating + rng.NormFloat64()*math.Sqrt(p.Variance)
	rating := int(math.Round(raw))

	if rating < minRating {
		rating = minRating
	}
	if rating > maxRating {
		rating = maxRating
	}
	return rating
}

// NewSeededRNG creates the random source for demo simulation. A zero seed
// falls back to a time-based seed so unattended runs still vary.
func NewSeededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
