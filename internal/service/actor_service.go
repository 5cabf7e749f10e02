package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/repository"
)

// ActorService resolves the authenticated user id from a token into the
// access.Actor every scoped operation consumes. Role and gym affiliation are
// read fresh from the store on each request so role changes take effect
// immediately, not at token renewal.
type ActorService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (access.Actor, error)
}

type actorService struct {
	users    repository.UserRepository
	trainers repository.TrainerRepository
	students repository.StudentRepository
}

// NewActorService creates an ActorService.
func NewActorService(
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	students repository.StudentRepository,
) ActorService {
	return &actorService{users: users, trainers: trainers, students: students}
}

func (s *actorService) Resolve(ctx context.Context, userID uuid.UUID) (access.Actor, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return access.Actor{}, ErrUserNotFound
		}
		return access.Actor{}, err
	}
	// A deactivated account loses access on its next request, same as a
	// deleted one. The token staying valid until expiry does not matter here.
	if !user.Active {
		return access.Actor{}, ErrUserNotFound
	}

	actor := access.Actor{
		UserID: user.ID,
		Role:   user.Role,
		GymID:  user.GymID,
	}

	// A role without its provisioned profile scopes to nothing; that is the
	// fail-safe-to-empty policy, so a missing profile is not an error here.
	if _, err := s.trainers.GetByUserID(ctx, userID); err == nil {
		id := userID
		actor.TrainerID = &id
	} else if !errors.Is(err, repository.ErrNotFound) {
		return access.Actor{}, err
	}

	if _, err := s.students.GetByUserID(ctx, userID); err == nil {
		id := userID
		actor.StudentID = &id
	} else if !errors.Is(err, repository.ErrNotFound) {
		return access.Actor{}, err
	}

	return actor, nil
}
