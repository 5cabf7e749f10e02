package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// translateErr maps GORM errors onto the repository sentinel errors.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository backed by GORM.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return translateErr(dbFrom(ctx, r.db).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	res := dbFrom(ctx, r.db).Save(user)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := dbFrom(ctx, r.db).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := dbFrom(ctx, r.db).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&users).Error
	return users, translateErr(err)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Delete(&domain.User{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
