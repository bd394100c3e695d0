package submission

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles submission persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// UpdateOutcomes persists the delivery columns written by the dispatcher.
func (r *Repository) UpdateOutcomes(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Model(s).Select(
		"webhook_primary_status", "webhook_primary_code", "webhook_primary_response",
		"webhook_secondary_status", "webhook_secondary_code", "webhook_secondary_response",
		"chatwoot_status", "chatwoot_contact_id", "chatwoot_conversation_id", "chatwoot_response",
		"whats_app_generated",
	).Updates(s).Error
}

func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*Submission, error) {
	var s Submission
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns submissions newest first, optionally scoped to one form.
func (r *Repository) List(ctx context.Context, formID int64, limit, offset int) ([]Submission, int64, error) {
	q := r.db.WithContext(ctx).Model(&Submission{})
	if formID > 0 {
		q = q.Where("form_id = ?", formID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []Submission
	err := q.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&subs).Error
	return subs, total, err
}

func (r *Repository) Delete(ctx context.Context, publicID string) error {
	tx := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&Submission{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// DeleteBatch removes the given submissions, reporting how many existed.
func (r *Repository) DeleteBatch(ctx context.Context, publicIDs []string) (int64, error) {
	if len(publicIDs) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Where("public_id IN ?", publicIDs).Delete(&Submission{})
	return tx.RowsAffected, tx.Error
}
