package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/testutil"
)

func TestTrainerUpdateOwnProfile(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewTrainerService(gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	user, _ := testutil.NewTrainer(t, db, nil)
	id := user.ID
	actor := access.Actor{UserID: id, Role: domain.RoleTrainer, TrainerID: &id}

	updated, err := svc.Update(ctx, actor, id, TrainerUpdateInput{License: "CREF-OWN001", Specialty: "Strength"})
	require.NoError(t, err)
	assert.Equal(t, "CREF-OWN001", updated.License)
	assert.Equal(t, "Strength", updated.Specialty)
}

func TestTrainerCannotTouchPeer(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewTrainerService(gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	user, _ := testutil.NewTrainer(t, db, nil)
	peer, _ := testutil.NewTrainer(t, db, nil)
	id := user.ID
	actor := access.Actor{UserID: id, Role: domain.RoleTrainer, TrainerID: &id}

	// Trainer visibility excludes other trainers entirely.
	_, err := svc.GetByID(ctx, actor, peer.ID)
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	_, err = svc.Update(ctx, actor, peer.ID, TrainerUpdateInput{License: "CREF-TAKEN1"})
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	// But the own profile stays reachable even though the general trainer
	// scope for a trainer is empty.
	own, err := svc.GetByID(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, id, own.UserID)
}

func TestTrainerLicenseConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewTrainerService(gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	user, _ := testutil.NewTrainer(t, db, nil)
	_, peerProfile := testutil.NewTrainer(t, db, nil)

	_, err := svc.Update(ctx, sysAdminActor(), user.ID, TrainerUpdateInput{License: peerProfile.License})
	assert.ErrorIs(t, err, ErrLicenseTaken)
}

func TestTrainerListScopedToGym(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewTrainerService(gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	gym := testutil.NewGym(t, db, "Gym")
	inside, _ := testutil.NewTrainer(t, db, &gym.ID)
	testutil.NewTrainer(t, db, nil)

	scoped, err := svc.List(ctx, gymAdminActor(gym.ID))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, inside.ID, scoped[0].UserID)

	all, err := svc.List(ctx, sysAdminActor())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStudentUpdateAssignments(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewStudentService(gormrepo.NewStudentRepository(db), gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	gym := testutil.NewGym(t, db, "Gym")
	trainer, _ := testutil.NewTrainer(t, db, &gym.ID)
	student, _ := testutil.NewStudent(t, db, nil, nil)

	updated, err := svc.Update(ctx, sysAdminActor(), student.ID, StudentUpdateInput{
		TrainerID: &trainer.ID,
		GymID:     &gym.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TrainerID)
	assert.Equal(t, trainer.ID, *updated.TrainerID)
	require.NotNil(t, updated.GymID)
	assert.Equal(t, gym.ID, *updated.GymID)

	// Clearing removes the assignment again.
	updated, err = svc.Update(ctx, sysAdminActor(), student.ID, StudentUpdateInput{ClearTrainer: true})
	require.NoError(t, err)
	assert.Nil(t, updated.TrainerID)
	assert.NotNil(t, updated.GymID)
}

func TestStudentUpdateRejectsUnknownTrainer(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewStudentService(gormrepo.NewStudentRepository(db), gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	student, _ := testutil.NewStudent(t, db, nil, nil)
	bogus := uuid.New()

	_, err := svc.Update(ctx, sysAdminActor(), student.ID, StudentUpdateInput{TrainerID: &bogus})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestStudentCannotReassignSelf(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewStudentService(gormrepo.NewStudentRepository(db), gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	student, _ := testutil.NewStudent(t, db, nil, nil)
	id := student.ID
	actor := access.Actor{UserID: id, Role: domain.RoleStudent, StudentID: &id}

	// Reading the own profile is allowed.
	own, err := svc.GetByID(ctx, actor, id)
	require.NoError(t, err)
	assert.Equal(t, id, own.UserID)

	_, err = svc.Update(ctx, actor, id, StudentUpdateInput{ClearTrainer: true})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestStudentListScopedToTrainer(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewStudentService(gormrepo.NewStudentRepository(db), gormrepo.NewTrainerRepository(db))
	ctx := context.Background()

	trainer, _ := testutil.NewTrainer(t, db, nil)
	mine, _ := testutil.NewStudent(t, db, &trainer.ID, nil)
	testutil.NewStudent(t, db, nil, nil)

	id := trainer.ID
	actor := access.Actor{UserID: id, Role: domain.RoleTrainer, TrainerID: &id}

	scoped, err := svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].UserID)
}
