package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrDuplicateExercise  = errors.New("exercise already present in workout")
	ErrWorkoutItemInvalid = errors.New("workout item references unknown exercise")
)

// WorkoutItemInput describes one prescribed exercise within a workout.
type WorkoutItemInput struct {
	ExerciseID uuid.UUID
	Sets       uint
	Reps       string
	LoadKg     *uint
	Notes      string
}

// WorkoutCreateInput carries the fields for creating a workout.
type WorkoutCreateInput struct {
	StudentID uuid.UUID
	Name      string
	Active    *bool
	Items     []WorkoutItemInput
}

// WorkoutUpdateInput carries the optional fields for updating a workout.
// A non-nil Items replaces the full item list.
type WorkoutUpdateInput struct {
	Name   *string
	Active *bool
	Items  []WorkoutItemInput
}

type WorkoutService interface {
	// Create inserts the workout and then its items one by one. A repeated
	// exercise stops the insert at that item and reports
	// ErrDuplicateExercise; the workout and the items before it remain.
	Create(ctx context.Context, actor access.Actor, input WorkoutCreateInput) (*domain.Workout, error)
	Update(ctx context.Context, actor access.Actor, workoutID uuid.UUID, input WorkoutUpdateInput) (*domain.Workout, error)
	List(ctx context.Context, actor access.Actor) ([]domain.Workout, error)
	GetByID(ctx context.Context, actor access.Actor, workoutID uuid.UUID) (*domain.Workout, error)
	Delete(ctx context.Context, actor access.Actor, workoutID uuid.UUID) error
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	studentRepo  repository.StudentRepository
	exerciseRepo repository.ExerciseRepository
	tx           repository.TxManager
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	studentRepo repository.StudentRepository,
	exerciseRepo repository.ExerciseRepository,
	tx repository.TxManager,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		studentRepo:  studentRepo,
		exerciseRepo: exerciseRepo,
		tx:           tx,
	}
}

func (s *workoutService) Create(ctx context.Context, actor access.Actor, input WorkoutCreateInput) (*domain.Workout, error) {
	if actor.Role == domain.RoleStudent {
		return nil, ErrAccessDenied
	}

	// The student must be visible to the actor's scope.
	student, err := s.studentRepo.GetScoped(ctx, access.Students(actor), input.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	workout := &domain.Workout{
		StudentID: student.UserID,
		Name:      input.Name,
		Active:    true,
	}
	if input.Active != nil {
		workout.Active = *input.Active
	}
	if actor.Role == domain.RoleTrainer {
		id := actor.UserID
		workout.TrainerID = &id
	} else {
		workout.TrainerID = student.TrainerID
	}

	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	// Items insert sequentially; a repeated exercise stops the loop with the
	// workout and earlier items already persisted.
	seen := make(map[uuid.UUID]bool, len(input.Items))
	for i, in := range input.Items {
		if seen[in.ExerciseID] {
			return nil, ErrDuplicateExercise
		}
		seen[in.ExerciseID] = true

		item, err := s.buildItem(ctx, workout.ID, i, in)
		if err != nil {
			return nil, err
		}
		if err := s.workoutRepo.CreateItem(ctx, item); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrDuplicateExercise
			}
			return nil, err
		}
		workout.Items = append(workout.Items, *item)
	}
	return workout, nil
}

func (s *workoutService) buildItem(ctx context.Context, workoutID uuid.UUID, _ int, in WorkoutItemInput) (*domain.WorkoutItem, error) {
	if _, err := s.exerciseRepo.GetByID(ctx, in.ExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutItemInvalid
		}
		return nil, err
	}
	return &domain.WorkoutItem{
		WorkoutID:  workoutID,
		ExerciseID: in.ExerciseID,
		Sets:       in.Sets,
		Reps:       in.Reps,
		LoadKg:     in.LoadKg,
		Notes:      in.Notes,
	}, nil
}

func (s *workoutService) Update(ctx context.Context, actor access.Actor, workoutID uuid.UUID, input WorkoutUpdateInput) (*domain.Workout, error) {
	if actor.Role == domain.RoleStudent {
		return nil, ErrAccessDenied
	}

	workout, err := s.loadVisible(ctx, actor, workoutID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		workout.Name = *input.Name
	}
	if input.Active != nil {
		workout.Active = *input.Active
	}

	var items []domain.WorkoutItem
	if input.Items != nil {
		// Unlike create, a replacement list is validated up front and
		// applied atomically.
		seen := make(map[uuid.UUID]bool, len(input.Items))
		for i, in := range input.Items {
			if seen[in.ExerciseID] {
				return nil, ErrDuplicateExercise
			}
			seen[in.ExerciseID] = true
			item, err := s.buildItem(ctx, workout.ID, i, in)
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
		}
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.workoutRepo.Update(ctx, workout); err != nil {
			return err
		}
		if input.Items != nil {
			return s.workoutRepo.ReplaceItems(ctx, workout.ID, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, workout.ID)
}

func (s *workoutService) List(ctx context.Context, actor access.Actor) ([]domain.Workout, error) {
	return s.workoutRepo.ListDetailed(ctx, access.Workouts(actor), time.Time{}, 0)
}

func (s *workoutService) GetByID(ctx context.Context, actor access.Actor, workoutID uuid.UUID) (*domain.Workout, error) {
	return s.loadVisible(ctx, actor, workoutID)
}

func (s *workoutService) Delete(ctx context.Context, actor access.Actor, workoutID uuid.UUID) error {
	if actor.Role == domain.RoleStudent {
		return ErrAccessDenied
	}
	if _, err := s.loadVisible(ctx, actor, workoutID); err != nil {
		return err
	}
	return s.workoutRepo.Delete(ctx, workoutID)
}

func (s *workoutService) loadVisible(ctx context.Context, actor access.Actor, workoutID uuid.UUID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetScoped(ctx, access.Workouts(actor), workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
