// Package session tracks per-conversation progress: whether the character
// has greeted, and how far the coaching conversation has advanced.
package session

import (
	"errors"
	"time"
)

var (
	// ErrNotFound marks a lookup for an expired or unknown session.
	ErrNotFound = errors.New("session not found")
	// ErrVersionConflict marks a concurrent update against a stale read.
	ErrVersionConflict = errors.New("session version conflict")
)

// DefaultTTL is the idle timeout after which a session is evicted.
const DefaultTTL = 30 * time.Minute

// Stage is the coaching conversation stage. Transitions are monotonic; a
// session never regresses to an earlier stage.
type Stage int

const (
	StageNoGreeting Stage = iota
	StageGreeted
	StageBasicInfoCollected
	StageMotivationUnderstood
	StageConstraintsIdentified
	StageAdviceGiven
	StageOngoingSupport
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageNoGreeting:
		return "no_greeting"
	case StageGreeted:
		return "greeted"
	case StageBasicInfoCollected:
		return "basic_info_collected"
	case StageMotivationUnderstood:
		return "motivation_understood"
	case StageConstraintsIdentified:
		return "constraints_identified"
	case StageAdviceGiven:
		return "advice_given"
	case StageOngoingSupport:
		return "ongoing_support"
	default:
		return "unknown"
	}
}

// Progress is the per-session mutable record. Owned exclusively by one
// session; it is never shared across sessions.
type Progress struct {
	SessionID    string    `json:"session_id"`
	CharacterID  string    `json:"character_id"`
	HasGreeted   bool      `json:"has_greeted"`
	MessageCount int       `json:"message_count"`
	Stage        Stage     `json:"stage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Version increases on every update, for optimistic locking.
	Version int64 `json:"version"`
}
