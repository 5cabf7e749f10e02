package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
	"athlos/gym-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with this name already exists")
)

// ExerciseInput is one catalog entry in the free-exercise-db JSON shape.
type ExerciseInput struct {
	Name             string   `json:"name"`
	Slug             string   `json:"id"`
	Force            string   `json:"force"`
	Level            string   `json:"level"`
	Mechanic         string   `json:"mechanic"`
	Equipment        string   `json:"equipment"`
	Category         string   `json:"category"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Images           []string `json:"images"`
}

// ImportResult summarizes a catalog import run.
type ImportResult struct {
	Created int
	Updated int
	Failed  int
}

type ExerciseService interface {
	List(ctx context.Context, category string) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	Categories(ctx context.Context) ([]string, error)
	// Import upserts catalog entries by name. Entries without a name are
	// counted as failed and skipped; one bad entry does not stop the run.
	Import(ctx context.Context, entries []ExerciseInput) (ImportResult, error)
	// ImageUploadURL registers a new image key on the exercise and returns a
	// presigned PUT URL for it.
	ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (key, url string, err error)
	// ImageDownloadURLs resolves the exercise's stored image keys into
	// presigned GET URLs.
	ImageDownloadURLs(ctx context.Context, id uuid.UUID) ([]string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo, fileStorage: fileStorage}
}

func (s *exerciseService) List(ctx context.Context, category string) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, category)
}

func (s *exerciseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Categories(ctx context.Context) ([]string, error) {
	return s.exerciseRepo.Categories(ctx)
}

func (s *exerciseService) Import(ctx context.Context, entries []ExerciseInput) (ImportResult, error) {
	var result ImportResult
	for _, entry := range entries {
		if entry.Name == "" {
			result.Failed++
			continue
		}
		exercise := &domain.Exercise{
			Name:             entry.Name,
			Slug:             entry.Slug,
			Force:            entry.Force,
			Level:            entry.Level,
			Mechanic:         entry.Mechanic,
			Equipment:        entry.Equipment,
			Category:         entry.Category,
			PrimaryMuscles:   datatypes.NewJSONSlice(emptyIfNil(entry.PrimaryMuscles)),
			SecondaryMuscles: datatypes.NewJSONSlice(emptyIfNil(entry.SecondaryMuscles)),
			Instructions:     datatypes.NewJSONSlice(emptyIfNil(entry.Instructions)),
			Images:           datatypes.NewJSONSlice(emptyIfNil(entry.Images)),
		}
		created, err := s.exerciseRepo.Upsert(ctx, exercise)
		if err != nil {
			result.Failed++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func (s *exerciseService) ImageUploadURL(ctx context.Context, id uuid.UUID, contentType string) (string, string, error) {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	ext := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}
	key := fmt.Sprintf("exercises/%s/%d.%s", exercise.ID, len(exercise.Images), ext)

	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}

	exercise.Images = append(exercise.Images, key)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return "", "", err
	}
	return key, url, nil
}

func (s *exerciseService) ImageDownloadURLs(ctx context.Context, id uuid.UUID) ([]string, error) {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(exercise.Images))
	for _, key := range exercise.Images {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
