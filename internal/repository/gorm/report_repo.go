package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a ReportRepository backed by GORM.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// createdBetween bounds a created_at column half-open on [start, end).
// Zero times leave the corresponding side unbounded.
func createdBetween(q *gorm.DB, column string, start, end time.Time) *gorm.DB {
	if !start.IsZero() {
		q = q.Where(column+" >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where(column+" < ?", end)
	}
	return q
}

// --- Counts ---

func (r *reportRepository) CountWorkouts(ctx context.Context, f access.Filter, start, end time.Time) (int64, error) {
	var n int64
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	err := createdBetween(q, "workouts.created_at", start, end).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountActiveWorkouts(ctx context.Context, f access.Filter) (int64, error) {
	var n int64
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	err := q.Where("workouts.active = ?", true).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountStudents(ctx context.Context, f access.Filter, start, end time.Time) (int64, error) {
	var n int64
	q := scopeStudents(dbFrom(ctx, r.db).Model(&domain.StudentProfile{}), f)
	err := createdBetween(q, "student_profiles.created_at", start, end).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountTrainers(ctx context.Context, f access.Filter, start, end time.Time) (int64, error) {
	var n int64
	q := scopeTrainers(dbFrom(ctx, r.db).Model(&domain.TrainerProfile{}), f)
	err := createdBetween(q, "trainer_profiles.created_at", start, end).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountGyms(ctx context.Context, f access.Filter, start, end time.Time) (int64, error) {
	var n int64
	q := scopeGyms(dbFrom(ctx, r.db).Model(&domain.Gym{}), f)
	err := createdBetween(q, "gyms.created_at", start, end).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&domain.User{}).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&domain.User{}).Where("active = ?", true).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountUsersByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&domain.User{}).Where("role = ?", role).Count(&n).Error
	return n, translateErr(err)
}

func (r *reportRepository) CountExercises(ctx context.Context) (int64, error) {
	var n int64
	err := dbFrom(ctx, r.db).Model(&domain.Exercise{}).Count(&n).Error
	return n, translateErr(err)
}

// --- Rankings ---

func (r *reportRepository) TopExercises(ctx context.Context, f access.Filter, start time.Time, limit int) ([]repository.ExerciseUsage, error) {
	var rows []repository.ExerciseUsage
	q := dbFrom(ctx, r.db).
		Model(&domain.WorkoutItem{}).
		Select("exercises.name AS name, exercises.category AS category, COUNT(*) AS total").
		Joins("JOIN workouts ON workouts.id = workout_items.workout_id").
		Joins("JOIN exercises ON exercises.id = workout_items.exercise_id")
	q = scopeWorkouts(q, f)
	q = createdBetween(q, "workouts.created_at", start, time.Time{})
	err := q.
		Group("exercises.name, exercises.category").
		Order("total DESC, exercises.name ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) CategoryDistribution(ctx context.Context, f access.Filter, start time.Time) ([]repository.NameCount, error) {
	var rows []repository.NameCount
	q := dbFrom(ctx, r.db).
		Model(&domain.WorkoutItem{}).
		Select("exercises.category AS name, COUNT(*) AS total").
		Joins("JOIN workouts ON workouts.id = workout_items.workout_id").
		Joins("JOIN exercises ON exercises.id = workout_items.exercise_id")
	q = scopeWorkouts(q, f)
	q = createdBetween(q, "workouts.created_at", start, time.Time{})
	err := q.
		Group("exercises.category").
		Order("total DESC, exercises.category ASC").
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) CategoryProgressByStudent(ctx context.Context, f access.Filter, start time.Time) ([]repository.CategoryProgress, error) {
	var rows []repository.CategoryProgress
	q := dbFrom(ctx, r.db).
		Model(&domain.WorkoutItem{}).
		Select("exercises.category AS category, COUNT(*) AS total, " +
			"COALESCE(AVG(workout_items.load_kg), 0) AS avg_load, " +
			"COALESCE(SUM(workout_items.sets), 0) AS total_sets").
		Joins("JOIN workouts ON workouts.id = workout_items.workout_id").
		Joins("JOIN exercises ON exercises.id = workout_items.exercise_id")
	q = scopeWorkouts(q, f)
	q = createdBetween(q, "workouts.created_at", start, time.Time{})
	err := q.
		Group("exercises.category").
		Order("total DESC, exercises.category ASC").
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) WorkoutNameRanking(ctx context.Context, f access.Filter, limit int) ([]repository.NameCount, error) {
	var rows []repository.NameCount
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	err := q.
		Select("workouts.name AS name, COUNT(*) AS total").
		Group("workouts.name").
		Order("total DESC, workouts.name ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, translateErr(err)
}

// --- Series helpers ---

func (r *reportRepository) WorkoutCreationTimes(ctx context.Context, f access.Filter, start, end time.Time) ([]time.Time, error) {
	var times []time.Time
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	q = createdBetween(q, "workouts.created_at", start, end)
	err := q.Order("workouts.created_at ASC").Pluck("workouts.created_at", &times).Error
	return times, translateErr(err)
}

// --- Per-student rollups ---

func (r *reportRepository) WorkoutCountsByStudent(ctx context.Context, f access.Filter, start time.Time) ([]repository.IDCount, error) {
	var rows []repository.IDCount
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	q = createdBetween(q, "workouts.created_at", start, time.Time{})
	err := q.
		Select("workouts.student_id AS id, COUNT(*) AS total").
		Group("workouts.student_id").
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) LastWorkoutByStudent(ctx context.Context, f access.Filter, start time.Time) ([]repository.IDTime, error) {
	var rows []repository.IDTime
	q := scopeWorkouts(dbFrom(ctx, r.db).Model(&domain.Workout{}), f)
	q = createdBetween(q, "workouts.created_at", start, time.Time{})
	err := q.
		Select("workouts.student_id AS id, MAX(workouts.created_at) AS last").
		Group("workouts.student_id").
		Find(&rows).Error
	return rows, translateErr(err)
}

// --- Per-trainer rollups ---

func (r *reportRepository) WorkoutCountsByTrainer(ctx context.Context, f access.Filter) ([]repository.IDCount, error) {
	var rows []repository.IDCount
	q := scopeTrainers(dbFrom(ctx, r.db).Model(&domain.TrainerProfile{}), f)
	err := q.
		Select("trainer_profiles.user_id AS id, COUNT(workouts.id) AS total").
		Joins("JOIN workouts ON workouts.trainer_id = trainer_profiles.user_id").
		Group("trainer_profiles.user_id").
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) StudentCountsByTrainer(ctx context.Context, f access.Filter) ([]repository.IDCount, error) {
	var rows []repository.IDCount
	q := scopeTrainers(dbFrom(ctx, r.db).Model(&domain.TrainerProfile{}), f)
	err := q.
		Select("trainer_profiles.user_id AS id, COUNT(student_profiles.user_id) AS total").
		Joins("JOIN student_profiles ON student_profiles.trainer_id = trainer_profiles.user_id").
		Group("trainer_profiles.user_id").
		Find(&rows).Error
	return rows, translateErr(err)
}

// --- Per-gym rollups ---

func (r *reportRepository) StudentCountsByGym(ctx context.Context) ([]repository.IDCount, error) {
	var rows []repository.IDCount
	err := dbFrom(ctx, r.db).
		Model(&domain.StudentProfile{}).
		Select("student_profiles.gym_id AS id, COUNT(*) AS total").
		Where("student_profiles.gym_id IS NOT NULL").
		Group("student_profiles.gym_id").
		Find(&rows).Error
	return rows, translateErr(err)
}

func (r *reportRepository) RecentStudents(ctx context.Context, f access.Filter, limit int) ([]domain.StudentProfile, error) {
	var profiles []domain.StudentProfile
	q := scopeStudents(dbFrom(ctx, r.db).Model(&domain.StudentProfile{}), f)
	err := q.
		Preload("User").
		Order("student_profiles.created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, translateErr(err)
}
