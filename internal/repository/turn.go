package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mealtone/nutrivoice/internal/types"
)

type turnModel struct {
	ID          int
	SessionID   string
	CharacterID string
	Role        string
	Content     string
	Category    string
	CreatedAt   time.Time
}

func (turnModel) TableName() string {
	return "conversation_turns"
}

// TurnRepo accesses logged conversation turns.
type TurnRepo struct {
	db *gorm.DB
}

// NewTurnRepo returns a TurnRepo.
func NewTurnRepo(db *gorm.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

func (r *TurnRepo) Add(ctx context.Context, turn types.Turn) error {
	record := turnModel{
		SessionID:   turn.SessionID,
		CharacterID: turn.CharacterID,
		Role:        turn.Role,
		Content:     turn.Content,
		Category:    turn.Category,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentBySession returns the latest turns for a session, oldest first.
func (r *TurnRepo) RecentBySession(ctx context.Context, sessionID string, limit int) ([]types.Turn, error) {
	var records []turnModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}

	results := make([]types.Turn, 0, len(records))
	for _, record := range records {
		results = append(results, turnFromModel(record))
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// ListForDay returns all turns a character took part in on the given day,
// oldest first.
func (r *TurnRepo) ListForDay(ctx context.Context, characterID string, day time.Time) ([]types.Turn, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var records []turnModel
	if err := r.db.WithContext(ctx).
		Where("character_id = ? AND created_at >= ? AND created_at < ?", characterID, start, end).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query turns for day: %w", err)
	}

	results := make([]types.Turn, 0, len(records))
	for _, record := range records {
		results = append(results, turnFromModel(record))
	}
	return results, nil
}

func turnFromModel(model turnModel) types.Turn {
	return types.Turn{
		ID:          model.ID,
		SessionID:   model.SessionID,
		CharacterID: model.CharacterID,
		Role:        model.Role,
		Content:     model.Content,
		Category:    model.Category,
		CreatedAt:   model.CreatedAt,
	}
}
