// Package types holds the shared records of the voice selection engine.
package types

// Pattern is a named voice-style bucket an asset file represents for a
// character, e.g. "cheerful" or "gentle".
type Pattern string

const (
	PatternCheerful      Pattern = "cheerful"
	PatternGentle        Pattern = "gentle"
	PatternEncouragement Pattern = "encouragement"
	PatternCalm          Pattern = "calm"
	PatternThinking      Pattern = "thinking"
	PatternWarm          Pattern = "warm"
	PatternSerious       Pattern = "serious"
)

// Context is the conversational role of the current turn.
type Context string

const (
	ContextGreeting      Context = "greeting"
	ContextResponse      Context = "response"
	ContextEncouragement Context = "encouragement"
	ContextExplanation   Context = "explanation"
	ContextGoodbye       Context = "goodbye"
)

// Result is the outcome of one voice selection. It is produced fresh per
// decision and is immutable once returned.
type Result struct {
	Pattern       Pattern  `json:"pattern"`
	Category      string   `json:"category"`
	AssetKey      string   `json:"asset_key"`
	Confidence    float64  `json:"confidence"`
	ShouldPlay    bool     `json:"should_play"`
	Reason        string   `json:"reason"`
	FallbackChain []string `json:"fallback_chain,omitempty"`
}
