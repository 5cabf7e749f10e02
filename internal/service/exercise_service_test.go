package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/testutil"
)

// fakeStorage records presign calls without touching S3.
type fakeStorage struct {
	uploads   []string
	downloads []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	f.uploads = append(f.uploads, key)
	return "https://signed.example.com/put/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.downloads = append(f.downloads, key)
	return "https://signed.example.com/get/" + key, nil
}

func (f *fakeStorage) DeleteObject(context.Context, string) error { return nil }

func TestExerciseImportCountsOutcomes(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewExerciseService(gormrepo.NewExerciseRepository(db), nil)
	ctx := context.Background()

	entries := []ExerciseInput{
		{Name: "Bench Press", Slug: "Bench_Press", Category: "strength", PrimaryMuscles: []string{"chest"}},
		{Name: "Deadlift", Slug: "Deadlift", Category: "strength"},
		{Slug: "nameless"},
	}
	result, err := svc.Import(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 2, Updated: 0, Failed: 1}, result)

	// Re-importing the same entries updates in place instead of duplicating.
	result, err = svc.Import(ctx, entries[:2])
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 0, Updated: 2, Failed: 0}, result)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestExerciseImageUploadRegistersKey(t *testing.T) {
	db := testutil.OpenDB(t)
	store := &fakeStorage{}
	svc := NewExerciseService(gormrepo.NewExerciseRepository(db), store)
	ctx := context.Background()

	exercise := testutil.NewExercise(t, db, "Bench Press", "strength")

	key, url, err := svc.ImageUploadURL(ctx, exercise.ID, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("exercises/%s/0.jpeg", exercise.ID), key)
	assert.Equal(t, "https://signed.example.com/put/"+key, url)

	// A second upload gets the next index.
	key2, _, err := svc.ImageUploadURL(ctx, exercise.ID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("exercises/%s/1.png", exercise.ID), key2)

	urls, err := svc.ImageDownloadURLs(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://signed.example.com/get/" + key,
		"https://signed.example.com/get/" + key2,
	}, urls)
}

func TestExerciseImageUploadUnknownExercise(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewExerciseService(gormrepo.NewExerciseRepository(db), &fakeStorage{})
	ctx := context.Background()

	_, _, err := svc.ImageUploadURL(ctx, uuid.New(), "image/jpeg")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
