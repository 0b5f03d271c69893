// Package gate decides whether a resolved pattern results in audio at all.
//
// The category policy is intentionally conservative: voice is reserved for
// moments of emotional connection, so technical nutrition content and casual
// chatter stay text-only even when they are the most substantive replies.
package gate

import (
	"fmt"

	"github.com/mealtone/nutrivoice/internal/asset"
	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// Decision is the gate outcome. AssetKey is empty when ShouldPlay is false.
type Decision struct {
	ShouldPlay bool
	AssetKey   string
	Reason     string
}

// playable is the closed category→policy table. Anything not listed is
// silent: an unrecognized category fails toward silence, never toward
// unexpected audio.
var playable = map[emotion.Category]bool{
	emotion.Encouragement:    true,
	emotion.AgreementDeep:    true,
	emotion.AgreementLight:   true,
	emotion.EmotionalSupport: true,
	emotion.Thinking:         true,
	emotion.Greeting:         true,
	emotion.NutritionAdvice:  false,
	emotion.FoodDiscussion:   false,
	emotion.General:          false,
}

// Decide applies the voice-enable policy.
//
// An initial greeting always plays, keyed by the time slot. Otherwise the
// category table decides; playable categories key by the scored pattern.
func Decide(isInitialGreeting bool, category emotion.Category, pattern types.Pattern, characterID string, slot timeslot.Slot) Decision {
	if isInitialGreeting {
		return Decision{
			ShouldPlay: true,
			AssetKey:   asset.GreetingKey(characterID, slot),
			Reason:     fmt.Sprintf("initial greeting always plays (slot=%s)", slot),
		}
	}

	allowed, known := playable[category]
	if !known {
		return Decision{Reason: fmt.Sprintf("unrecognized category %q stays silent", category)}
	}
	if !allowed {
		return Decision{Reason: fmt.Sprintf("category %s is text-only", category)}
	}
	return Decision{
		ShouldPlay: true,
		AssetKey:   asset.Key(characterID, pattern),
		Reason:     fmt.Sprintf("category %s plays pattern %s", category, pattern),
	}
}
