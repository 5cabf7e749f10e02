package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
	"athlos/gym-app/internal/testutil"
)

func TestExerciseUpsertCreatesThenUpdates(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewExerciseRepository(db)
	ctx := context.Background()

	first := &domain.Exercise{
		Name:     "Barbell Squat",
		Slug:     "Barbell_Squat",
		Category: "strength",
		Level:    "beginner",
	}
	created, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := &domain.Exercise{
		Name:         "Barbell Squat",
		Slug:         "Barbell_Squat",
		Category:     "strength",
		Level:        "intermediate",
		Instructions: datatypes.NewJSONSlice([]string{"Brace and descend."}),
	}
	created, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	// The update keeps the original identity and creation time.
	assert.Equal(t, first.ID, second.ID)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Second)

	got, err := repo.GetByName(ctx, "Barbell Squat")
	require.NoError(t, err)
	assert.Equal(t, "intermediate", got.Level)
	require.Len(t, got.Instructions, 1)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExerciseListFiltersByCategoryCaseInsensitive(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewExerciseRepository(db)
	ctx := context.Background()

	testutil.NewExercise(t, db, "Bench Press", "strength")
	testutil.NewExercise(t, db, "Arnold Press", "strength")
	testutil.NewExercise(t, db, "Jumping Jacks", "cardio")

	strength, err := repo.List(ctx, "STRENGTH")
	require.NoError(t, err)
	require.Len(t, strength, 2)
	assert.Equal(t, "Arnold Press", strength[0].Name)
	assert.Equal(t, "Bench Press", strength[1].Name)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExerciseCategoriesDistinctAndSorted(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewExerciseRepository(db)
	ctx := context.Background()

	testutil.NewExercise(t, db, "Bench Press", "strength")
	testutil.NewExercise(t, db, "Deadlift", "strength")
	testutil.NewExercise(t, db, "Jumping Jacks", "cardio")
	testutil.NewExercise(t, db, "Mystery Move", "")

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cardio", "strength"}, categories)
}

func TestExerciseDuplicateNameRejected(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewExerciseRepository(db)
	ctx := context.Background()

	testutil.NewExercise(t, db, "Bench Press", "strength")

	err := repo.Create(ctx, &domain.Exercise{Name: "Bench Press", Slug: "Bench_Press_2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
