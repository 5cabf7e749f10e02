package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates an ExerciseRepository backed by GORM.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	return translateErr(dbFrom(ctx, r.db).Create(exercise).Error)
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	return translateErr(dbFrom(ctx, r.db).Save(exercise).Error)
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := dbFrom(ctx, r.db).First(&exercise, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &exercise, nil
}

func (r *exerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := dbFrom(ctx, r.db).First(&exercise, "name = ?", name).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context, category string) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	q := dbFrom(ctx, r.db).Model(&domain.Exercise{})
	if category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}
	err := q.Order("name ASC").Find(&exercises).Error
	return exercises, translateErr(err)
}

func (r *exerciseRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := dbFrom(ctx, r.db).
		Model(&domain.Exercise{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, translateErr(err)
}

func (r *exerciseRepository) Upsert(ctx context.Context, exercise *domain.Exercise) (bool, error) {
	db := dbFrom(ctx, r.db)

	var existing domain.Exercise
	err := db.First(&existing, "name = ?", exercise.Name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, translateErr(db.Create(exercise).Error)
	}
	if err != nil {
		return false, translateErr(err)
	}

	exercise.ID = existing.ID
	exercise.CreatedAt = existing.CreatedAt
	return false, translateErr(db.Save(exercise).Error)
}
