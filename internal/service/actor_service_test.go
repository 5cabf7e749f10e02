package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/testutil"
)

func newActorFixture(t *testing.T) (ActorService, *gorm.DB) {
	db := testutil.OpenDB(t)
	svc := NewActorService(
		gormrepo.NewUserRepository(db),
		gormrepo.NewTrainerRepository(db),
		gormrepo.NewStudentRepository(db),
	)
	return svc, db
}

func TestResolvePicksUpProfileAndGym(t *testing.T) {
	svc, db := newActorFixture(t)
	ctx := context.Background()

	gym := testutil.NewGym(t, db, "Iron Temple")
	trainer, _ := testutil.NewTrainer(t, db, &gym.ID)

	actor, err := svc.Resolve(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTrainer, actor.Role)
	require.NotNil(t, actor.GymID)
	assert.Equal(t, gym.ID, *actor.GymID)
	require.NotNil(t, actor.TrainerID)
	assert.Equal(t, trainer.ID, *actor.TrainerID)
}

func TestResolveRejectsDeactivatedUser(t *testing.T) {
	svc, db := newActorFixture(t)
	ctx := context.Background()

	user := testutil.NewUser(t, db, domain.RoleSystemAdmin, nil)

	_, err := svc.Resolve(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", user.ID).
		UpdateColumn("active", false).Error)

	_, err = svc.Resolve(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
