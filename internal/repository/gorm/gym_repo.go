package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type gymRepository struct {
	db *gorm.DB
}

// NewGymRepository creates a GymRepository backed by GORM.
func NewGymRepository(db *gorm.DB) repository.GymRepository {
	return &gymRepository{db: db}
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	return translateErr(dbFrom(ctx, r.db).Create(gym).Error)
}

func (r *gymRepository) Update(ctx context.Context, gym *domain.Gym) error {
	return translateErr(dbFrom(ctx, r.db).Save(gym).Error)
}

func (r *gymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	var gym domain.Gym
	err := dbFrom(ctx, r.db).First(&gym, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &gym, nil
}

func (r *gymRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.Gym, error) {
	var gym domain.Gym
	err := dbFrom(ctx, r.db).First(&gym, "tax_id = ?", taxID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &gym, nil
}

func (r *gymRepository) List(ctx context.Context, f access.Filter) ([]domain.Gym, error) {
	var gyms []domain.Gym
	q := scopeGyms(dbFrom(ctx, r.db).Model(&domain.Gym{}), f)
	err := q.Order("gyms.name ASC").Find(&gyms).Error
	return gyms, translateErr(err)
}

func (r *gymRepository) GetScoped(ctx context.Context, f access.Filter, id uuid.UUID) (*domain.Gym, error) {
	var gym domain.Gym
	q := scopeGyms(dbFrom(ctx, r.db).Model(&domain.Gym{}), f)
	err := q.First(&gym, "gyms.id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &gym, nil
}

func (r *gymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Delete(&domain.Gym{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
