package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository creates a TrainerRepository backed by GORM.
func NewTrainerRepository(db *gorm.DB) repository.TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) Create(ctx context.Context, profile *domain.TrainerProfile) error {
	return translateErr(dbFrom(ctx, r.db).Create(profile).Error)
}

func (r *trainerRepository) Update(ctx context.Context, profile *domain.TrainerProfile) error {
	return translateErr(dbFrom(ctx, r.db).Save(profile).Error)
}

func (r *trainerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	err := dbFrom(ctx, r.db).Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *trainerRepository) GetByLicense(ctx context.Context, license string) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	err := dbFrom(ctx, r.db).First(&profile, "license = ?", license).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *trainerRepository) List(ctx context.Context, f access.Filter) ([]domain.TrainerProfile, error) {
	var profiles []domain.TrainerProfile
	q := scopeTrainers(dbFrom(ctx, r.db).Model(&domain.TrainerProfile{}), f)
	err := q.Preload("User").Order("trainer_profiles.created_at DESC").Find(&profiles).Error
	return profiles, translateErr(err)
}

func (r *trainerRepository) GetScoped(ctx context.Context, f access.Filter, userID uuid.UUID) (*domain.TrainerProfile, error) {
	var profile domain.TrainerProfile
	q := scopeTrainers(dbFrom(ctx, r.db).Model(&domain.TrainerProfile{}), f)
	err := q.Preload("User").First(&profile, "trainer_profiles.user_id = ?", userID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *trainerRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	res := dbFrom(ctx, r.db).Delete(&domain.TrainerProfile{}, "user_id = ?", userID)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
