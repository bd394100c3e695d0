package assist

import (
	"context"

	"gorm.io/gorm"
)

// Repository stores the generation history.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rec *GenerationRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// History returns past generations for one form, newest first.
func (r *Repository) History(ctx context.Context, formID int64, limit int) ([]GenerationRecord, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var recs []GenerationRecord
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
