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

func sysAdminActor() access.Actor {
	return access.Actor{UserID: uuid.New(), Role: domain.RoleSystemAdmin}
}

func gymAdminActor(gymID uuid.UUID) access.Actor {
	return access.Actor{UserID: uuid.New(), Role: domain.RoleGymAdmin, GymID: &gymID}
}

func TestGymCreateRequiresSystemAdmin(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, gymAdminActor(uuid.New()), GymInput{Name: "Gym", TaxID: "11.111.111/0001-11"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	gym, err := svc.Create(ctx, sysAdminActor(), GymInput{Name: "Gym", TaxID: "11.111.111/0001-11", Address: "Main St"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, gym.ID)
	assert.Equal(t, "Main St", gym.Address)
}

func TestGymCreateDuplicateTaxID(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	existing := testutil.NewGym(t, db, "First")

	_, err := svc.Create(ctx, sysAdminActor(), GymInput{Name: "Second", TaxID: existing.TaxID})
	assert.ErrorIs(t, err, ErrGymTaxIDTaken)
}

func TestGymUpdateScopedToOwnGym(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	mine := testutil.NewGym(t, db, "Mine")
	other := testutil.NewGym(t, db, "Other")
	admin := gymAdminActor(mine.ID)

	updated, err := svc.Update(ctx, admin, mine.ID, GymInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, mine.TaxID, updated.TaxID)

	// The other gym is outside the admin's scope, so it reads as missing.
	_, err = svc.Update(ctx, admin, other.ID, GymInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrGymNotFound)
}

func TestGymUpdateTaxIDConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	a := testutil.NewGym(t, db, "A")
	b := testutil.NewGym(t, db, "B")

	_, err := svc.Update(ctx, sysAdminActor(), a.ID, GymInput{TaxID: b.TaxID})
	assert.ErrorIs(t, err, ErrGymTaxIDTaken)
}

func TestGymListScopedByRole(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	mine := testutil.NewGym(t, db, "Mine")
	testutil.NewGym(t, db, "Other")

	all, err := svc.List(ctx, sysAdminActor())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.List(ctx, gymAdminActor(mine.ID))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].ID)

	student := access.Actor{UserID: uuid.New(), Role: domain.RoleStudent}
	none, err := svc.List(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGymDeleteRequiresSystemAdmin(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewGymService(gormrepo.NewGymRepository(db))
	ctx := context.Background()

	gym := testutil.NewGym(t, db, "Doomed")

	err := svc.Delete(ctx, gymAdminActor(gym.ID), gym.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, sysAdminActor(), gym.ID))

	err = svc.Delete(ctx, sysAdminActor(), gym.ID)
	assert.ErrorIs(t, err, ErrGymNotFound)
}
