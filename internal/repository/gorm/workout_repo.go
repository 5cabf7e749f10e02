package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a WorkoutRepository backed by GORM.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	// Items are inserted one by one via CreateItem so a duplicate exercise
	// fails on its own row instead of discarding the whole workout.
	return translateErr(dbFrom(ctx, r.db).Omit("Items").Create(workout).Error)
}

func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	return translateErr(dbFrom(ctx, r.db).Omit("Items").Save(workout).Error)
}

func (r *workoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	var workout domain.Workout
	err := dbFrom(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("workout_items.created_at ASC") }).
		Preload("Items.Exercise").
		First(&workout, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &workout, nil
}

func (r *workoutRepository) GetScoped(ctx context.Context, f access.Filter, id uuid.UUID) (*domain.Workout, error) {
	var workout domain.Workout
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("workout_items.created_at ASC") }).
		Preload("Items.Exercise").
		First(&workout, "workouts.id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &workout, nil
}

func (r *workoutRepository) List(ctx context.Context, f access.Filter) ([]domain.Workout, error) {
	var workouts []domain.Workout
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	err := q.Order("workouts.created_at DESC").Find(&workouts).Error
	return workouts, translateErr(err)
}

func (r *workoutRepository) ListDetailed(ctx context.Context, f access.Filter, since time.Time, limit int) ([]domain.Workout, error) {
	var workouts []domain.Workout
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	if !since.IsZero() {
		q = q.Where("workouts.created_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("workout_items.created_at ASC") }).
		Preload("Items.Exercise").
		Order("workouts.created_at DESC").
		Find(&workouts).Error
	return workouts, translateErr(err)
}

func (r *workoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Delete(&domain.Workout{}, "id = ?", id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) CreateItem(ctx context.Context, item *domain.WorkoutItem) error {
	return translateErr(dbFrom(ctx, r.db).Create(item).Error)
}

func (r *workoutRepository) ReplaceItems(ctx context.Context, workoutID uuid.UUID, items []domain.WorkoutItem) error {
	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.WorkoutItem{}, "workout_id = ?", workoutID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].WorkoutID = workoutID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateErr(err)
}
