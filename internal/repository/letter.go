package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mealtone/nutrivoice/internal/types"
)

// ErrLetterNotFound reports a missing letter for a character/date pair.
var ErrLetterNotFound = errors.New("letter not found")

type letterModel struct {
	ID          int
	CharacterID string
	Date        string
	Body        string
	Highlights  string `gorm:"type:jsonb"`
	Mood        string
	CreatedAt   time.Time
}

func (letterModel) TableName() string {
	return "daily_letters"
}

// LetterRepo accesses persisted daily letters.
type LetterRepo struct {
	db *gorm.DB
}

// NewLetterRepo returns a LetterRepo.
func NewLetterRepo(db *gorm.DB) *LetterRepo {
	return &LetterRepo{db: db}
}

func (r *LetterRepo) Save(ctx context.Context, letter types.Letter) error {
	highlights, err := json.Marshal(letter.Highlights)
	if err != nil {
		return fmt.Errorf("failed to encode highlights: %w", err)
	}
	record := letterModel{
		CharacterID: letter.CharacterID,
		Date:        letter.Date,
		Body:        letter.Body,
		Highlights:  string(highlights),
		Mood:        letter.Mood,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert letter: %w", err)
	}
	return nil
}

// GetByDate returns the letter a character wrote on the given date
// (YYYY-MM-DD).
func (r *LetterRepo) GetByDate(ctx context.Context, characterID, date string) (types.Letter, error) {
	var record letterModel
	err := r.db.WithContext(ctx).
		Where("character_id = ? AND date = ?", characterID, date).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Letter{}, ErrLetterNotFound
	}
	if err != nil {
		return types.Letter{}, fmt.Errorf("failed to query letter: %w", err)
	}
	return letterFromModel(record)
}

// ListRecent returns a character's latest letters, newest first.
func (r *LetterRepo) ListRecent(ctx context.Context, characterID string, limit int) ([]types.Letter, error) {
	var records []letterModel
	if err := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query letters: %w", err)
	}

	results := make([]types.Letter, 0, len(records))
	for _, record := range records {
		letter, err := letterFromModel(record)
		if err != nil {
			return nil, err
		}
		results = append(results, letter)
	}
	return results, nil
}

func letterFromModel(model letterModel) (types.Letter, error) {
	letter := types.Letter{
		ID:          model.ID,
		CharacterID: model.CharacterID,
		Date:        model.Date,
		Body:        model.Body,
		Mood:        model.Mood,
		CreatedAt:   model.CreatedAt,
	}
	if model.Highlights != "" {
		if err := json.Unmarshal([]byte(model.Highlights), &letter.Highlights); err != nil {
			return types.Letter{}, fmt.Errorf("failed to decode highlights: %w", err)
		}
	}
	return letter, nil
}
