// Package scoring ranks candidate voice patterns for one utterance.
package scoring

import (
	"fmt"
	"math"

	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// Dimension weights. Sum to 1.0; emotion dominates because it is the
// strongest behavioral signal. Tuned empirically, kept verbatim.
const (
	weightTimeSlot = 0.25
	weightEmotion  = 0.35
	weightContext  = 0.30
	weightBase     = 0.10
)

// tieEpsilon treats float accumulations this close as an exact tie.
const tieEpsilon = 1e-9

// Decision is the scored winner with a human-readable justification.
type Decision struct {
	Pattern    types.Pattern
	Confidence float64
	Reason     string
}

// Score combines the four input dimensions into a weighted score per
// candidate pattern and returns the arg-max.
//
// Each dimension contributes by linear rank decay over the profile's ordered
// preference list: the first entry receives the dimension's full weight,
// later entries proportionally less, entries beyond the list nothing. Exact
// ties break toward the pattern appearing earlier in the character's
// preferred list, never randomly.
func Score(p *profile.Profile, slot timeslot.Slot, category emotion.Category, context types.Context) Decision {
	var order []types.Pattern
	scores := make(map[types.Pattern]float64)

	add := func(list []types.Pattern, weight float64) {
		n := len(list)
		for i, pattern := range list {
			if _, seen := scores[pattern]; !seen {
				order = append(order, pattern)
			}
			scores[pattern] += weight * float64(n-i) / float64(n)
		}
	}

	add(p.TimeSlotPreferences[slot], weightTimeSlot)
	add(p.EmotionMappings[category], weightEmotion)
	add(p.ContextMappings[context], weightContext)
	// The persona's overall voice bias scales only its base-preference
	// contribution.
	add(p.PreferredPatterns, weightBase*p.VoicePreferenceWeight)

	best := order[0]
	for _, candidate := range order[1:] {
		diff := scores[candidate] - scores[best]
		switch {
		case diff > tieEpsilon:
			best = candidate
		case math.Abs(diff) <= tieEpsilon && preferredRank(p, candidate) < preferredRank(p, best):
			best = candidate
		}
	}

	confidence := scores[best]
	if confidence > 1 {
		confidence = 1
	}

	return Decision{
		Pattern:    best,
		Confidence: confidence,
		Reason: fmt.Sprintf("slot=%s emotion=%s context=%s -> pattern=%s score=%.3f",
			slot, category, context, best, scores[best]),
	}
}

// preferredRank is the pattern's position in the preferred list, or the list
// length when absent.
func preferredRank(p *profile.Profile, pattern types.Pattern) int {
	for i, candidate := range p.PreferredPatterns {
		if candidate == pattern {
			return i
		}
	}
	return len(p.PreferredPatterns)
}
