package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a StudentRepository backed by GORM.
func NewStudentRepository(db *gorm.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, profile *domain.StudentProfile) error {
	return translateErr(dbFrom(ctx, r.db).Create(profile).Error)
}

func (r *studentRepository) Update(ctx context.Context, profile *domain.StudentProfile) error {
	return translateErr(dbFrom(ctx, r.db).Save(profile).Error)
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error) {
	var profile domain.StudentProfile
	err := dbFrom(ctx, r.db).Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *studentRepository) List(ctx context.Context, f access.Filter) ([]domain.StudentProfile, error) {
	var profiles []domain.StudentProfile
	q := scopeStudents(dbFrom(ctx, r.db).Model(&domain.StudentProfile{}), f)
	err := q.Preload("User").Order("student_profiles.created_at DESC").Find(&profiles).Error
	return profiles, translateErr(err)
}

func (r *studentRepository) GetScoped(ctx context.Context, f access.Filter, userID uuid.UUID) (*domain.StudentProfile, error) {
	var profile domain.StudentProfile
	q := scopeStudents(dbFrom(ctx, r.db).Model(&domain.StudentProfile{}), f)
	err := q.Preload("User").First(&profile, "student_profiles.user_id = ?", userID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

func (r *studentRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	res := dbFrom(ctx, r.db).Delete(&domain.StudentProfile{}, "user_id = ?", userID)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
