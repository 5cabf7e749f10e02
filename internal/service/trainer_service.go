package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound = errors.New("trainer profile not found")
	ErrLicenseTaken    = errors.New("trainer license already registered")
)

// TrainerUpdateInput carries the mutable trainer profile fields.
type TrainerUpdateInput struct {
	License   string
	Specialty string
}

type TrainerService interface {
	List(ctx context.Context, actor access.Actor) ([]domain.TrainerProfile, error)
	GetByID(ctx context.Context, actor access.Actor, userID uuid.UUID) (*domain.TrainerProfile, error)
	Update(ctx context.Context, actor access.Actor, userID uuid.UUID, input TrainerUpdateInput) (*domain.TrainerProfile, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(trainerRepo repository.TrainerRepository) TrainerService {
	return &trainerService{trainerRepo: trainerRepo}
}

func (s *trainerService) List(ctx context.Context, actor access.Actor) ([]domain.TrainerProfile, error) {
	return s.trainerRepo.List(ctx, access.Trainers(actor))
}

func (s *trainerService) GetByID(ctx context.Context, actor access.Actor, userID uuid.UUID) (*domain.TrainerProfile, error) {
	profile, err := s.loadVisible(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *trainerService) Update(ctx context.Context, actor access.Actor, userID uuid.UUID, input TrainerUpdateInput) (*domain.TrainerProfile, error) {
	profile, err := s.loadVisible(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	if input.License != "" && input.License != profile.License {
		existing, err := s.trainerRepo.GetByLicense(ctx, input.License)
		if err == nil && existing.UserID != profile.UserID {
			return nil, ErrLicenseTaken
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile.License = input.License
	}
	if input.Specialty != "" {
		profile.Specialty = input.Specialty
	}

	if err := s.trainerRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrLicenseTaken
		}
		return nil, err
	}
	return profile, nil
}

// loadVisible fetches the profile through the actor's trainer scope. Trainers
// see no other trainers, but always their own profile.
func (s *trainerService) loadVisible(ctx context.Context, actor access.Actor, userID uuid.UUID) (*domain.TrainerProfile, error) {
	f := access.Trainers(actor)
	if actor.UserID == userID && actor.Role == domain.RoleTrainer {
		f = access.ByTrainer(userID)
	}
	profile, err := s.trainerRepo.GetScoped(ctx, f, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return profile, nil
}
