package file

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*File, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByOwner returns the owner's full collection, newest first. Ordering is
// the repository's job; the view filter preserves it.
func (r *repository) ListByOwner(ctx context.Context, ownerID int64) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *repository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&File{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&File{}).Error
}
