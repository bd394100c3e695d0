package form

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository handles form persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, f *FormDefinition) error {
	err := r.db.WithContext(ctx).Create(f).Error
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*FormDefinition, error) {
	var f FormDefinition
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*FormDefinition, error) {
	var f FormDefinition
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) Update(ctx context.Context, f *FormDefinition) error {
	err := r.db.WithContext(ctx).Save(f).Error
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&FormDefinition{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrFormNotFound
	}
	return nil
}

// List returns forms newest first. activeOnly nil means all forms.
func (r *Repository) List(ctx context.Context, activeOnly *bool, limit, offset int) ([]FormDefinition, int64, error) {
	q := r.db.WithContext(ctx).Model(&FormDefinition{})
	if activeOnly != nil {
		q = q.Where("active = ?", *activeOnly)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []FormDefinition
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&forms).Error
	return forms, total, err
}

func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FormDefinition{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// isUniqueViolation recognizes the postgres duplicate-key error so races on
// slug generation surface as ErrSlugTaken instead of a raw driver error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
