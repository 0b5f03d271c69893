package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
)

// configFile is the on-disk shape of a profile configuration.
type configFile struct {
	Profiles []*Profile `json:"profiles"`
}

// LoadFile reads a JSON profile configuration, validates it against the
// config schema, and returns the decoded profiles. Invalid configuration is
// a startup error; profiles are never patched up silently.
func LoadFile(path string) ([]*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile config: %w", err)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}

	resolved, err := configSchema().Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile schema: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return nil, fmt.Errorf("profile config %s is invalid: %w", path, err)
	}

	var cfg configFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode profile config: %w", err)
	}
	for _, p := range cfg.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg.Profiles, nil
}

func configSchema() *jsonschema.Schema {
	// The jsonschema library requires the schema to form a tree, so every
	// position needs its own node; build fresh copies instead of sharing
	// pointers.
	patternList := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:  "array",
			Items: &jsonschema.Schema{Type: "string"},
		}
	}
	patternMap := func() *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:                 "object",
			AdditionalProperties: patternList(),
		}
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"profiles": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"character_id":            {Type: "string"},
						"display_name":            {Type: "string"},
						"preferred_patterns":      patternList(),
						"time_slot_preferences":   patternMap(),
						"emotion_mappings":        patternMap(),
						"context_mappings":        patternMap(),
						"voice_preference_weight": {Type: "number"},
					},
					Required: []string{"character_id", "preferred_patterns", "voice_preference_weight"},
				},
			},
		},
		Required: []string{"profiles"},
	}
}
