package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/testutil"
)

func newProvisionerFixture(t *testing.T) (Provisioner, repository.TrainerRepository, repository.StudentRepository, repository.UserRepository) {
	db := testutil.OpenDB(t)
	trainers := gormrepo.NewTrainerRepository(db)
	students := gormrepo.NewStudentRepository(db)
	users := gormrepo.NewUserRepository(db)
	return NewProvisioner(trainers, students), trainers, students, users
}

func createUser(t *testing.T, users repository.UserRepository, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:    "Ana",
		LastName:     "Silva",
		Email:        string(role) + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestReconcileStudentCreatesProfile(t *testing.T) {
	p, trainers, students, users := newProvisionerFixture(t)
	ctx := context.Background()
	user := createUser(t, users, domain.RoleStudent)

	require.NoError(t, p.Reconcile(ctx, user))

	profile, err := students.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)

	_, err = trainers.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReconcileTrainerAssignsDefaultLicense(t *testing.T) {
	p, trainers, _, users := newProvisionerFixture(t)
	ctx := context.Background()
	user := createUser(t, users, domain.RoleTrainer)

	require.NoError(t, p.Reconcile(ctx, user))

	profile, err := trainers.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^CREF-[0-9A-F]{8}$`, profile.License)
	assert.Equal(t, "General", profile.Specialty)
}

func TestReconcileIsIdempotent(t *testing.T) {
	p, trainers, _, users := newProvisionerFixture(t)
	ctx := context.Background()
	user := createUser(t, users, domain.RoleTrainer)

	require.NoError(t, p.Reconcile(ctx, user))
	first, err := trainers.GetByUserID(ctx, user.ID)
	require.NoError(t, err)

	// A later license edit survives re-reconciliation.
	first.License = "CREF-123456"
	require.NoError(t, trainers.Update(ctx, first))
	require.NoError(t, p.Reconcile(ctx, user))

	again, err := trainers.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "CREF-123456", again.License)
}

func TestReconcileRoleTransitionSwapsProfiles(t *testing.T) {
	p, trainers, students, users := newProvisionerFixture(t)
	ctx := context.Background()
	user := createUser(t, users, domain.RoleStudent)
	require.NoError(t, p.Reconcile(ctx, user))

	user.Role = domain.RoleTrainer
	require.NoError(t, users.Update(ctx, user))
	require.NoError(t, p.Reconcile(ctx, user))

	_, err := students.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = trainers.GetByUserID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestReconcileAdminDropsBothProfiles(t *testing.T) {
	p, trainers, students, users := newProvisionerFixture(t)
	ctx := context.Background()
	user := createUser(t, users, domain.RoleTrainer)
	require.NoError(t, p.Reconcile(ctx, user))

	user.Role = domain.RoleGymAdmin
	require.NoError(t, users.Update(ctx, user))
	require.NoError(t, p.Reconcile(ctx, user))

	_, err := trainers.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = students.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReconcileUnknownRoleFails(t *testing.T) {
	p, _, _, users := newProvisionerFixture(t)
	user := createUser(t, users, domain.RoleStudent)
	user.Role = domain.Role("auditor")

	assert.Error(t, p.Reconcile(context.Background(), user))
}
