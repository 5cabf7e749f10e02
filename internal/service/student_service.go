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
	ErrStudentNotFound = errors.New("student profile not found")
)

// StudentUpdateInput carries the mutable student profile fields. Nil leaves
// a field unchanged; the Clear flags null out the reference.
type StudentUpdateInput struct {
	TrainerID    *uuid.UUID
	ClearTrainer bool
	GymID        *uuid.UUID
	ClearGym     bool
	BirthDate    *time.Time
	Goal         *string
}

type StudentService interface {
	List(ctx context.Context, actor access.Actor) ([]domain.StudentProfile, error)
	GetByID(ctx context.Context, actor access.Actor, userID uuid.UUID) (*domain.StudentProfile, error)
	Update(ctx context.Context, actor access.Actor, userID uuid.UUID, input StudentUpdateInput) (*domain.StudentProfile, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	trainerRepo repository.TrainerRepository
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(studentRepo repository.StudentRepository, trainerRepo repository.TrainerRepository) StudentService {
	return &studentService{studentRepo: studentRepo, trainerRepo: trainerRepo}
}

func (s *studentService) List(ctx context.Context, actor access.Actor) ([]domain.StudentProfile, error) {
	return s.studentRepo.List(ctx, access.Students(actor))
}

func (s *studentService) GetByID(ctx context.Context, actor access.Actor, userID uuid.UUID) (*domain.StudentProfile, error) {
	profile, err := s.studentRepo.GetScoped(ctx, access.Students(actor), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *studentService) Update(ctx context.Context, actor access.Actor, userID uuid.UUID, input StudentUpdateInput) (*domain.StudentProfile, error) {
	// Students may read their own profile but not reassign themselves.
	if actor.Role == domain.RoleStudent {
		return nil, ErrAccessDenied
	}

	profile, err := s.studentRepo.GetScoped(ctx, access.Students(actor), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if input.ClearTrainer {
		profile.TrainerID = nil
	} else if input.TrainerID != nil {
		if _, err := s.trainerRepo.GetByUserID(ctx, *input.TrainerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
		profile.TrainerID = input.TrainerID
	}
	if input.ClearGym {
		profile.GymID = nil
	} else if input.GymID != nil {
		profile.GymID = input.GymID
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Goal != nil {
		profile.Goal = *input.Goal
	}

	if err := s.studentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
