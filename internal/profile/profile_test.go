package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

func TestBuiltinProfilesValidate(t *testing.T) {
	store, err := NewStaticStore(Builtin()...)
	if err != nil {
		t.Fatalf("builtin profiles must validate: %v", err)
	}
	for _, id := range []string{"akari", "minato", "yuzu"} {
		p, err := store.Get(id)
		if err != nil {
			t.Fatalf("expected profile for %s, got %v", id, err)
		}
		if len(p.PreferredPatterns) == 0 {
			t.Fatalf("profile %s has empty preferred patterns", id)
		}
	}
}

func TestBuiltinProfilesCoverAllSlotsAndCategories(t *testing.T) {
	for _, p := range Builtin() {
		for _, slot := range timeslot.All() {
			if len(p.TimeSlotPreferences[slot]) == 0 {
				t.Errorf("profile %s missing time slot %s", p.CharacterID, slot)
			}
		}
		for _, cat := range []emotion.Category{
			emotion.Encouragement, emotion.AgreementDeep, emotion.AgreementLight,
			emotion.EmotionalSupport, emotion.NutritionAdvice, emotion.FoodDiscussion,
			emotion.Thinking, emotion.General, emotion.Greeting,
		} {
			if len(p.EmotionMappings[cat]) == 0 {
				t.Errorf("profile %s missing emotion mapping %s", p.CharacterID, cat)
			}
		}
	}
}

func TestGetUnknownCharacter(t *testing.T) {
	store, err := NewStaticStore(Builtin()...)
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.Get("nobody")
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("expected ErrUnknownCharacter, got %v", err)
	}
}

func TestValidateRejectsEmptyLists(t *testing.T) {
	p := &Profile{
		CharacterID:       "broken",
		PreferredPatterns: []types.Pattern{types.PatternCalm},
		EmotionMappings: map[emotion.Category][]types.Pattern{
			emotion.General: {},
		},
		VoicePreferenceWeight: 0.5,
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for empty mapped list")
	}

	p = &Profile{CharacterID: "broken", VoicePreferenceWeight: 0.5}
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for empty preferred patterns")
	}

	p = &Profile{
		CharacterID:           "broken",
		PreferredPatterns:     []types.Pattern{types.PatternCalm},
		VoicePreferenceWeight: 1.5,
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for out-of-range weight")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	config := `{
		"profiles": [
			{
				"character_id": "hinata",
				"display_name": "ひなた",
				"preferred_patterns": ["cheerful", "warm"],
				"time_slot_preferences": {"morning": ["cheerful"]},
				"emotion_mappings": {"encouragement": ["cheerful"]},
				"context_mappings": {"greeting": ["cheerful"]},
				"voice_preference_weight": 0.8
			}
		]
	}`
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}

	profiles, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected valid config to load, got %v", err)
	}
	if len(profiles) != 1 || profiles[0].CharacterID != "hinata" {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
	if got := profiles[0].TimeSlotPreferences[timeslot.Morning]; len(got) != 1 || got[0] != types.PatternCheerful {
		t.Fatalf("unexpected time slot preferences: %v", got)
	}
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	// preferred_patterns has the wrong type.
	config := `{"profiles": [{"character_id": "x", "preferred_patterns": "cheerful", "voice_preference_weight": 0.5}]}`
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected schema validation error")
	}
}
