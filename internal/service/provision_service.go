package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// Provisioner keeps the profile tables consistent with a user's role:
// after every identity write exactly one of {trainer profile, student
// profile} exists, matching the role, and admins carry neither.
//
// Reconcile is called synchronously by the identity write paths inside the
// same transaction; a failure here aborts the triggering write.
type Provisioner interface {
	Reconcile(ctx context.Context, user *domain.User) error
}

type provisioner struct {
	trainers repository.TrainerRepository
	students repository.StudentRepository
}

// NewProvisioner creates a Provisioner over the profile repositories.
func NewProvisioner(trainers repository.TrainerRepository, students repository.StudentRepository) Provisioner {
	return &provisioner{trainers: trainers, students: students}
}

// defaultLicense derives the placeholder CREF registry number assigned when
// a trainer profile is provisioned before the real license is known.
func defaultLicense(userID uuid.UUID) string {
	return fmt.Sprintf("CREF-%s", strings.ToUpper(strings.ReplaceAll(userID.String(), "-", "")[:8]))
}

func (p *provisioner) Reconcile(ctx context.Context, user *domain.User) error {
	switch user.Role {
	case domain.RoleStudent:
		if err := p.ensureStudent(ctx, user); err != nil {
			return err
		}
		return p.dropTrainer(ctx, user.ID)

	case domain.RoleTrainer:
		if err := p.ensureTrainer(ctx, user); err != nil {
			return err
		}
		return p.dropStudent(ctx, user.ID)

	case domain.RoleSystemAdmin, domain.RoleGymAdmin:
		if err := p.dropTrainer(ctx, user.ID); err != nil {
			return err
		}
		return p.dropStudent(ctx, user.ID)

	default:
		return fmt.Errorf("cannot provision profile for unknown role %q", user.Role)
	}
}

// ensureStudent is a get-or-create: re-running for an unchanged role is a
// no-op.
func (p *provisioner) ensureStudent(ctx context.Context, user *domain.User) error {
	_, err := p.students.GetByUserID(ctx, user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return p.students.Create(ctx, &domain.StudentProfile{
		UserID: user.ID,
		GymID:  user.GymID,
	})
}

func (p *provisioner) ensureTrainer(ctx context.Context, user *domain.User) error {
	_, err := p.trainers.GetByUserID(ctx, user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return p.trainers.Create(ctx, &domain.TrainerProfile{
		UserID:    user.ID,
		License:   defaultLicense(user.ID),
		Specialty: "General",
	})
}

func (p *provisioner) dropTrainer(ctx context.Context, userID uuid.UUID) error {
	err := p.trainers.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

func (p *provisioner) dropStudent(ctx context.Context, userID uuid.UUID) error {
	err := p.students.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
