package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxManager runs a function inside one storage transaction. Repositories
// called with the context passed to fn join that transaction. Identity writes
// and their profile reconciliation use this so a reconcile failure rolls the
// whole write back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GymRepository defines the interface for interacting with gyms.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) error
	Update(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)
	GetByTaxID(ctx context.Context, taxID string) (*domain.Gym, error)
	// List returns the gyms visible under the filter. For a trainer filter
	// that means gyms containing any of the trainer's students.
	List(ctx context.Context, f access.Filter) ([]domain.Gym, error)
	// GetScoped fetches one gym only if the filter permits seeing it.
	GetScoped(ctx context.Context, f access.Filter, id uuid.UUID) (*domain.Gym, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrainerRepository manages trainer profiles (keyed by user id).
type TrainerRepository interface {
	Create(ctx context.Context, profile *domain.TrainerProfile) error
	Update(ctx context.Context, profile *domain.TrainerProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.TrainerProfile, error)
	GetByLicense(ctx context.Context, license string) (*domain.TrainerProfile, error)
	List(ctx context.Context, f access.Filter) ([]domain.TrainerProfile, error)
	GetScoped(ctx context.Context, f access.Filter, userID uuid.UUID) (*domain.TrainerProfile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// StudentRepository manages student profiles (keyed by user id).
type StudentRepository interface {
	Create(ctx context.Context, profile *domain.StudentProfile) error
	Update(ctx context.Context, profile *domain.StudentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error)
	List(ctx context.Context, f access.Filter) ([]domain.StudentProfile, error)
	GetScoped(ctx context.Context, f access.Filter, userID uuid.UUID) (*domain.StudentProfile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ExerciseRepository defines the interface for the shared exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	Update(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// List returns the catalog, optionally restricted to one category
	// (case-insensitive). An empty category means no restriction.
	List(ctx context.Context, category string) ([]domain.Exercise, error)
	Categories(ctx context.Context) ([]string, error)
	// Upsert creates the exercise or, when one with the same name exists,
	// updates it in place. Reports whether a new row was created.
	Upsert(ctx context.Context, exercise *domain.Exercise) (created bool, err error)
}

// WorkoutRepository defines the interface for workouts and their items.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	Update(ctx context.Context, workout *domain.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	// GetScoped fetches one workout, items preloaded, only if the filter
	// permits seeing it.
	GetScoped(ctx context.Context, f access.Filter, id uuid.UUID) (*domain.Workout, error)
	List(ctx context.Context, f access.Filter) ([]domain.Workout, error)
	// ListDetailed returns scoped workouts created at or after since (zero
	// means unbounded), newest first, items and exercises preloaded, at most
	// limit rows (0 means no limit).
	ListDetailed(ctx context.Context, f access.Filter, since time.Time, limit int) ([]domain.Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *domain.WorkoutItem) error
	// ReplaceItems deletes every item of the workout and inserts the given
	// ones, all in a single transaction.
	ReplaceItems(ctx context.Context, workoutID uuid.UUID, items []domain.WorkoutItem) error
}

// --- Aggregation rows ---

// NameCount is a generic (label, count) ranking row.
type NameCount struct {
	Name  string `gorm:"column:name"`
	Count int64  `gorm:"column:total"`
}

// ExerciseUsage counts how often an exercise appears in workout items.
type ExerciseUsage struct {
	Name     string `gorm:"column:name"`
	Category string `gorm:"column:category"`
	Count    int64  `gorm:"column:total"`
}

// CategoryProgress aggregates workout items per exercise category.
type CategoryProgress struct {
	Category  string  `gorm:"column:category"`
	Exercises int64   `gorm:"column:total"`
	AvgLoadKg float64 `gorm:"column:avg_load"`
	TotalSets int64   `gorm:"column:total_sets"`
}

// IDCount is a per-entity count keyed by uuid.
type IDCount struct {
	ID    uuid.UUID `gorm:"column:id"`
	Count int64     `gorm:"column:total"`
}

// IDTime is a per-entity latest timestamp keyed by uuid.
type IDTime struct {
	ID   uuid.UUID `gorm:"column:id"`
	Last time.Time `gorm:"column:last"`
}

// ReportRepository exposes the aggregate queries every dashboard and report
// is assembled from. All methods honor an access.Filter so scoped and global
// reports share one code path; start/end bound created-at half-open
// [start, end), a zero time meaning unbounded on that side.
type ReportRepository interface {
	CountWorkouts(ctx context.Context, f access.Filter, start, end time.Time) (int64, error)
	CountActiveWorkouts(ctx context.Context, f access.Filter) (int64, error)
	CountStudents(ctx context.Context, f access.Filter, start, end time.Time) (int64, error)
	CountTrainers(ctx context.Context, f access.Filter, start, end time.Time) (int64, error)
	CountGyms(ctx context.Context, f access.Filter, start, end time.Time) (int64, error)

	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role domain.Role) (int64, error)
	CountExercises(ctx context.Context) (int64, error)

	// TopExercises ranks exercises by item usage, count desc then name asc.
	TopExercises(ctx context.Context, f access.Filter, start time.Time, limit int) ([]ExerciseUsage, error)
	// CategoryDistribution ranks exercise categories by item usage.
	CategoryDistribution(ctx context.Context, f access.Filter, start time.Time) ([]NameCount, error)
	// CategoryProgressByStudent aggregates load/sets per category.
	CategoryProgressByStudent(ctx context.Context, f access.Filter, start time.Time) ([]CategoryProgress, error)
	// WorkoutNameRanking ranks workout names by occurrence.
	WorkoutNameRanking(ctx context.Context, f access.Filter, limit int) ([]NameCount, error)

	// WorkoutCreationTimes lists creation instants of scoped workouts within
	// [start, end); callers bucket them (weekday frequency).
	WorkoutCreationTimes(ctx context.Context, f access.Filter, start, end time.Time) ([]time.Time, error)

	WorkoutCountsByStudent(ctx context.Context, f access.Filter, start time.Time) ([]IDCount, error)
	LastWorkoutByStudent(ctx context.Context, f access.Filter, start time.Time) ([]IDTime, error)

	WorkoutCountsByTrainer(ctx context.Context, f access.Filter) ([]IDCount, error)
	StudentCountsByTrainer(ctx context.Context, f access.Filter) ([]IDCount, error)

	StudentCountsByGym(ctx context.Context) ([]IDCount, error)

	// RecentStudents returns scoped students newest first.
	RecentStudents(ctx context.Context, f access.Filter, limit int) ([]domain.StudentProfile, error)
}
