package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mealtone/nutrivoice/internal/profile"
)

type profileModel struct {
	ID          int
	CharacterID string
	Document    string `gorm:"type:jsonb"`
	UpdatedAt   time.Time
}

func (profileModel) TableName() string {
	return "voice_profiles"
}

// ProfileRepo loads character voice profiles from the database. Each row
// holds one profile as a JSON document in the same shape the file loader
// accepts.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo returns a ProfileRepo.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// List returns every stored profile, validated. An invalid row is a
// startup error, matching the file loader's no-silent-patching policy.
func (r *ProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	var records []profileModel
	if err := r.db.WithContext(ctx).Order("character_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}

	profiles := make([]*profile.Profile, 0, len(records))
	for _, record := range records {
		var p profile.Profile
		if err := json.Unmarshal([]byte(record.Document), &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", record.CharacterID, err)
		}
		if p.CharacterID == "" {
			p.CharacterID = record.CharacterID
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}
