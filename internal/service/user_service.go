package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
	ErrAccessDenied = errors.New("access denied")
)

// UserUpdateInput carries the mutable user fields. Nil pointers leave the
// field unchanged.
type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
	GymID     *uuid.UUID
	ClearGym  bool
	Active    *bool
}

// UserService is the admin-facing identity management surface. Role changes
// go through the same reconcile step as registration so the exactly-one-
// profile invariant holds across every transition.
type UserService interface {
	List(ctx context.Context, actor domain.Role) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo    repository.UserRepository
	provisioner Provisioner
	tx          repository.TxManager
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, provisioner Provisioner, tx repository.TxManager) UserService {
	return &userService{userRepo: userRepo, provisioner: provisioner, tx: tx}
}

func (s *userService) List(ctx context.Context, actor domain.Role) ([]domain.User, error) {
	if actor != domain.RoleSystemAdmin {
		return nil, ErrAccessDenied
	}
	return s.userRepo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.ClearGym {
		user.GymID = nil
	} else if input.GymID != nil {
		user.GymID = input.GymID
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	// Write and reconcile together: a role transition that cannot settle its
	// profile must not leave the new role behind.
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.provisioner.Reconcile(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	// Profiles go with the user via the ON DELETE CASCADE constraints on
	// trainer_profiles and student_profiles, so no reconcile pass is needed.
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
