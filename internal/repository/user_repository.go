package repository

import (
	"context"

	"gorm.io/gorm"

	"premam/internal/model"
)

// UserRepository defines persistence operations for sender accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByCollegeUID(ctx context.Context, uid string) (*model.User, error)
	FindByCollegeUIDAndMobile(ctx context.Context, uid, mobile string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCollegeUID(ctx context.Context, uid string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("college_uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCollegeUIDAndMobile(ctx context.Context, uid, mobile string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("college_uid = ? AND mobile_number = ?", uid, mobile).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
