package types

import "time"

// Turn is one logged conversation turn, the raw material for daily letters.
type Turn struct {
	ID          int       `json:"id"`
	SessionID   string    `json:"session_id"`
	CharacterID string    `json:"character_id"`
	Role        string    `json:"role"` // "user" or "character"
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Letter is a persisted daily letter written by a character.
type Letter struct {
	ID          int       `json:"id"`
	CharacterID string    `json:"character_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Body        string    `json:"body"`
	Highlights  []string  `json:"highlights"`
	Mood        string    `json:"mood"`
	CreatedAt   time.Time `json:"created_at"`
}
