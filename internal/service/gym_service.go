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
	ErrGymNotFound   = errors.New("gym not found")
	ErrGymTaxIDTaken = errors.New("gym with this tax id already exists")
)

// GymInput carries the gym fields accepted on create and update.
type GymInput struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

type GymService interface {
	Create(ctx context.Context, actor access.Actor, input GymInput) (*domain.Gym, error)
	Update(ctx context.Context, actor access.Actor, id uuid.UUID, input GymInput) (*domain.Gym, error)
	List(ctx context.Context, actor access.Actor) ([]domain.Gym, error)
	GetByID(ctx context.Context, actor access.Actor, id uuid.UUID) (*domain.Gym, error)
	Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type gymService struct {
	gymRepo repository.GymRepository
}

// NewGymService creates a new instance of gymService.
func NewGymService(gymRepo repository.GymRepository) GymService {
	return &gymService{gymRepo: gymRepo}
}

func (s *gymService) Create(ctx context.Context, actor access.Actor, input GymInput) (*domain.Gym, error) {
	if actor.Role != domain.RoleSystemAdmin {
		return nil, ErrAccessDenied
	}
	if input.Name == "" || input.TaxID == "" {
		return nil, errors.New("gym name and tax id are required")
	}

	// Uniqueness is validated before persistence so the caller gets a clean
	// conflict instead of a driver error.
	_, err := s.gymRepo.GetByTaxID(ctx, input.TaxID)
	if err == nil {
		return nil, ErrGymTaxIDTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	gym := &domain.Gym{
		Name:    input.Name,
		TaxID:   input.TaxID,
		Address: input.Address,
		Phone:   input.Phone,
	}
	if err := s.gymRepo.Create(ctx, gym); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrGymTaxIDTaken
		}
		return nil, err
	}
	return gym, nil
}

func (s *gymService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, input GymInput) (*domain.Gym, error) {
	gym, err := s.gymRepo.GetScoped(ctx, access.Gyms(actor), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	if !actor.Role.IsAdmin() {
		return nil, ErrAccessDenied
	}

	if input.TaxID != "" && input.TaxID != gym.TaxID {
		existing, err := s.gymRepo.GetByTaxID(ctx, input.TaxID)
		if err == nil && existing.ID != gym.ID {
			return nil, ErrGymTaxIDTaken
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		gym.TaxID = input.TaxID
	}
	if input.Name != "" {
		gym.Name = input.Name
	}
	if input.Address != "" {
		gym.Address = input.Address
	}
	if input.Phone != "" {
		gym.Phone = input.Phone
	}

	if err := s.gymRepo.Update(ctx, gym); err != nil {
		return nil, err
	}
	return gym, nil
}

func (s *gymService) List(ctx context.Context, actor access.Actor) ([]domain.Gym, error) {
	return s.gymRepo.List(ctx, access.Gyms(actor))
}

func (s *gymService) GetByID(ctx context.Context, actor access.Actor, id uuid.UUID) (*domain.Gym, error) {
	gym, err := s.gymRepo.GetScoped(ctx, access.Gyms(actor), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}

func (s *gymService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if actor.Role != domain.RoleSystemAdmin {
		return ErrAccessDenied
	}
	err := s.gymRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGymNotFound
	}
	return err
}
