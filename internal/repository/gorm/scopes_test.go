package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormdb "gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
	"athlos/gym-app/internal/testutil"
)

// scopeWorld is a two-gym population exercising every filter translation.
type scopeWorld struct {
	db *gormdb.DB

	gymA, gymB *domain.Gym

	trainerA1, trainerA2, trainerB *domain.User

	// studentA1, studentA2 train with trainerA1 at gym A; studentB with
	// trainerB at gym B; studentFree has no trainer and no gym.
	studentA1, studentA2, studentB, studentFree *domain.User

	workoutA1, workoutA2, workoutB *domain.Workout
}

func buildScopeWorld(t *testing.T) *scopeWorld {
	db := testutil.OpenDB(t)
	w := &scopeWorld{db: db}

	w.gymA = testutil.NewGym(t, db, "Gym A")
	w.gymB = testutil.NewGym(t, db, "Gym B")

	w.trainerA1, _ = testutil.NewTrainer(t, db, &w.gymA.ID)
	w.trainerA2, _ = testutil.NewTrainer(t, db, &w.gymA.ID)
	w.trainerB, _ = testutil.NewTrainer(t, db, &w.gymB.ID)

	w.studentA1, _ = testutil.NewStudent(t, db, &w.trainerA1.ID, &w.gymA.ID)
	w.studentA2, _ = testutil.NewStudent(t, db, &w.trainerA1.ID, &w.gymA.ID)
	w.studentB, _ = testutil.NewStudent(t, db, &w.trainerB.ID, &w.gymB.ID)
	w.studentFree, _ = testutil.NewStudent(t, db, nil, nil)

	w.workoutA1 = testutil.NewWorkout(t, db, w.studentA1.ID, &w.trainerA1.ID, "A1", ts(1))
	w.workoutA2 = testutil.NewWorkout(t, db, w.studentA2.ID, &w.trainerA1.ID, "A2", ts(2))
	w.workoutB = testutil.NewWorkout(t, db, w.studentB.ID, &w.trainerB.ID, "B", ts(3))
	return w
}

func ts(day int) time.Time {
	return time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
}

func studentIDs(profiles []domain.StudentProfile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

func trainerIDs(profiles []domain.TrainerProfile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

func workoutIDs(workouts []domain.Workout) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, w.ID)
	}
	return ids
}

func gymIDs(gyms []domain.Gym) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(gyms))
	for _, g := range gyms {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestScopeAll(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()

	students, err := NewStudentRepository(w.db).List(ctx, access.All())
	require.NoError(t, err)
	assert.Len(t, students, 4)

	trainers, err := NewTrainerRepository(w.db).List(ctx, access.All())
	require.NoError(t, err)
	assert.Len(t, trainers, 3)

	workouts, err := NewWorkoutRepository(w.db).List(ctx, access.All())
	require.NoError(t, err)
	assert.Len(t, workouts, 3)

	gyms, err := NewGymRepository(w.db).List(ctx, access.All())
	require.NoError(t, err)
	assert.Len(t, gyms, 2)
}

func TestScopeByGym(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()
	f := access.ByGym(w.gymA.ID)

	students, err := NewStudentRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.studentA1.ID, w.studentA2.ID}, studentIDs(students))

	trainers, err := NewTrainerRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.trainerA1.ID, w.trainerA2.ID}, trainerIDs(trainers))

	workouts, err := NewWorkoutRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.workoutA1.ID, w.workoutA2.ID}, workoutIDs(workouts))

	gyms, err := NewGymRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.gymA.ID}, gymIDs(gyms))
}

func TestScopeByTrainer(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()
	f := access.ByTrainer(w.trainerA1.ID)

	students, err := NewStudentRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.studentA1.ID, w.studentA2.ID}, studentIDs(students))

	workouts, err := NewWorkoutRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.workoutA1.ID, w.workoutA2.ID}, workoutIDs(workouts))

	// The trainer sees the gyms their students belong to.
	gyms, err := NewGymRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.gymA.ID}, gymIDs(gyms))
}

func TestScopeByStudent(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()
	f := access.ByStudent(w.studentA1.ID)

	students, err := NewStudentRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.studentA1.ID}, studentIDs(students))

	workouts, err := NewWorkoutRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{w.workoutA1.ID}, workoutIDs(workouts))
}

func TestScopeNoneMatchesNothing(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()
	f := access.None()

	students, err := NewStudentRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, students)

	trainers, err := NewTrainerRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, trainers)

	workouts, err := NewWorkoutRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, workouts)

	gyms, err := NewGymRepository(w.db).List(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, gyms)
}

func TestGetScopedHonorsFilter(t *testing.T) {
	w := buildScopeWorld(t)
	ctx := context.Background()
	workouts := NewWorkoutRepository(w.db)

	_, err := workouts.GetScoped(ctx, access.ByTrainer(w.trainerA1.ID), w.workoutB.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := workouts.GetScoped(ctx, access.ByTrainer(w.trainerA1.ID), w.workoutA1.ID)
	require.NoError(t, err)
	assert.Equal(t, w.workoutA1.ID, got.ID)

	students := NewStudentRepository(w.db)
	_, err = students.GetScoped(ctx, access.ByGym(w.gymA.ID), w.studentB.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
