// Package profile holds per-character voice configuration. Profiles are
// static data loaded at process start; adding a persona means adding a
// profile entry, not code.
package profile

import (
	"errors"
	"fmt"

	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// ErrUnknownCharacter marks a profile lookup miss. Callers decide whether to
// refuse playback; the store never substitutes a silent default.
var ErrUnknownCharacter = errors.New("unknown character")

// Profile is one persona's static voice configuration. Read-only after load.
type Profile struct {
	CharacterID         string                               `json:"character_id"`
	DisplayName         string                               `json:"display_name"`
	PreferredPatterns   []types.Pattern                      `json:"preferred_patterns"`
	TimeSlotPreferences map[timeslot.Slot][]types.Pattern    `json:"time_slot_preferences"`
	EmotionMappings     map[emotion.Category][]types.Pattern `json:"emotion_mappings"`
	ContextMappings     map[types.Context][]types.Pattern    `json:"context_mappings"`
	// VoicePreferenceWeight is the persona's overall bias toward playing
	// audio, in [0,1].
	VoicePreferenceWeight float64 `json:"voice_preference_weight"`
}

// Validate checks the profile invariants: a non-empty id, a non-empty
// preferred list, no empty mapped list, and a bounded weight.
func (p *Profile) Validate() error {
	if p.CharacterID == "" {
		return fmt.Errorf("profile missing character id")
	}
	if len(p.PreferredPatterns) == 0 {
		return fmt.Errorf("profile %s: preferred patterns must not be empty", p.CharacterID)
	}
	for slot, patterns := range p.TimeSlotPreferences {
		if len(patterns) == 0 {
			return fmt.Errorf("profile %s: empty pattern list for time slot %s", p.CharacterID, slot)
		}
	}
	for cat, patterns := range p.EmotionMappings {
		if len(patterns) == 0 {
			return fmt.Errorf("profile %s: empty pattern list for emotion %s", p.CharacterID, cat)
		}
	}
	for ctx, patterns := range p.ContextMappings {
		if len(patterns) == 0 {
			return fmt.Errorf("profile %s: empty pattern list for context %s", p.CharacterID, ctx)
		}
	}
	if p.VoicePreferenceWeight < 0 || p.VoicePreferenceWeight > 1 {
		return fmt.Errorf("profile %s: voice preference weight %v out of [0,1]", p.CharacterID, p.VoicePreferenceWeight)
	}
	return nil
}

// Store looks up character profiles.
type Store interface {
	Get(characterID string) (*Profile, error)
}

// StaticStore is an in-memory Store over validated profiles.
type StaticStore struct {
	profiles map[string]*Profile
}

// NewStaticStore validates every profile and returns a store over them.
func NewStaticStore(profiles ...*Profile) (*StaticStore, error) {
	m := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		if _, dup := m[p.CharacterID]; dup {
			return nil, fmt.Errorf("duplicate profile for character %s", p.CharacterID)
		}
		m[p.CharacterID] = p
	}
	return &StaticStore{profiles: m}, nil
}

// Get implements Store.
func (s *StaticStore) Get(characterID string) (*Profile, error) {
	p, ok := s.profiles[characterID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharacter, characterID)
	}
	return p, nil
}

// CharacterIDs returns the ids of every loaded profile.
func (s *StaticStore) CharacterIDs() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	return ids
}
