// Package letter composes the nightly letters each character writes about
// the day's conversations.
package letter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mealtone/nutrivoice/internal/models"
	"github.com/mealtone/nutrivoice/internal/profile"
	"github.com/mealtone/nutrivoice/internal/types"
)

// TurnSource yields the turns a letter is written from.
type TurnSource interface {
	ListForDay(ctx context.Context, characterID string, day time.Time) ([]types.Turn, error)
}

// LetterSink persists composed letters.
type LetterSink interface {
	Save(ctx context.Context, letter types.Letter) error
}

// Writer turns one day of conversation into a letter in the character's
// voice.
type Writer struct {
	generator models.Generator
	profiles  profile.Store
	turns     TurnSource
	letters   LetterSink
}

// NewWriter returns a Writer.
func NewWriter(generator models.Generator, profiles profile.Store, turns TurnSource, letters LetterSink) *Writer {
	return &Writer{
		generator: generator,
		profiles:  profiles,
		turns:     turns,
		letters:   letters,
	}
}

const letterInstruction = `あなたは栄養コーチングアプリのキャラクター「%s」です。
今日ユーザーと交わした会話を振り返り、ユーザーへの短い手紙を書いてください。
会話で実際に出た話題だけに触れ、事実を創作しないでください。
出力は次のJSONのみ:
{"body": "手紙の本文", "highlights": ["今日の要点"], "mood": "手紙の気分をひとことで"}`

// Compose writes and persists the letter for one character and day. A day
// with no conversations yields no letter and no error.
func (w *Writer) Compose(ctx context.Context, characterID string, day time.Time) (*types.Letter, error) {
	prof, err := w.profiles.Get(characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	turns, err := w.turns.ListForDay(ctx, characterID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	if len(turns) == 0 {
		slog.Info("no turns for letter", "character_id", characterID, "date", day.Format("2006-01-02"))
		return nil, nil
	}

	system := fmt.Sprintf(letterInstruction, prof.DisplayName)
	raw, err := w.generator.Generate(ctx, system, buildTranscript(turns))
	if err != nil {
		return nil, fmt.Errorf("failed to generate letter: %w", err)
	}

	body, highlights, mood, err := parseLetterJSON(raw)
	if err != nil {
		return nil, err
	}

	letter := types.Letter{
		CharacterID: characterID,
		Date:        day.Format("2006-01-02"),
		Body:        body,
		Highlights:  highlights,
		Mood:        mood,
	}
	if err := w.letters.Save(ctx, letter); err != nil {
		return nil, fmt.Errorf("failed to save letter: %w", err)
	}
	return &letter, nil
}

func buildTranscript(turns []types.Turn) string {
	var sb strings.Builder
	for _, turn := range turns {
		role := "user"
		if turn.Role != "user" {
			role = "character"
		}
		sb.WriteString(role)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(turn.Content))
		sb.WriteString("\n")
	}
	return sb.String()
}

// parseLetterJSON extracts JSON from model output and decodes it.
func parseLetterJSON(raw string) (string, []string, string, error) {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	var envelope struct {
		Body       string   `json:"body"`
		Highlights []string `json:"highlights"`
		Mood       string   `json:"mood"`
	}
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return "", nil, "", fmt.Errorf("failed to parse letter json: %w", err)
	}
	if strings.TrimSpace(envelope.Body) == "" {
		return "", nil, "", fmt.Errorf("letter body is empty")
	}
	return envelope.Body, envelope.Highlights, envelope.Mood, nil
}
