package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"premam/internal/model"
)

// CreatorRepository defines creator persistence operations.
type CreatorRepository interface {
	Create(ctx context.Context, creator *model.Creator) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Creator, error)
	FindBySlug(ctx context.Context, slug string) (*model.Creator, error)
	FindBySlugOrCreate(ctx context.Context, creator *model.Creator) (*model.Creator, error)
}

type creatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository creates a new creator repository.
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

// Create creates a new creator.
func (r *creatorRepository) Create(ctx context.Context, creator *model.Creator) error {
	return r.db.WithContext(ctx).Create(creator).Error
}

// FindByID finds a creator by ID.
func (r *creatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Creator, error) {
	var creator model.Creator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// FindBySlug finds a creator by its public handle.
func (r *creatorRepository) FindBySlug(ctx context.Context, slug string) (*model.Creator, error) {
	var creator model.Creator
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// FindBySlugOrCreate finds a creator by slug or creates it if it doesn't
// exist. Used at boot in single-admin mode to provision the admin inbox.
func (r *creatorRepository) FindBySlugOrCreate(ctx context.Context, creator *model.Creator) (*model.Creator, error) {
	var existing model.Creator
	err := r.db.WithContext(ctx).Where("slug = ?", creator.Slug).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(creator).Error; err != nil {
		return nil, err
	}
	return creator, nil
}
