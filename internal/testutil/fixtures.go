package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
)

var seq int

func nextEmail(prefix string) string {
	seq++
	return fmt.Sprintf("%s%d@example.com", prefix, seq)
}

// NewGym inserts a gym with a unique tax id.
func NewGym(t *testing.T, db *gorm.DB, name string) *domain.Gym {
	t.Helper()
	seq++
	gym := &domain.Gym{Name: name, TaxID: fmt.Sprintf("12.345.678/%04d-90", seq)}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("create gym: %v", err)
	}
	return gym
}

// NewUser inserts a user with the given role and optional gym affiliation.
func NewUser(t *testing.T, db *gorm.DB, role domain.Role, gymID *uuid.UUID) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        nextEmail(string(role)),
		PasswordHash: "x",
		Role:         role,
		GymID:        gymID,
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// NewTrainer inserts a trainer user plus its profile.
func NewTrainer(t *testing.T, db *gorm.DB, gymID *uuid.UUID) (*domain.User, *domain.TrainerProfile) {
	t.Helper()
	user := NewUser(t, db, domain.RoleTrainer, gymID)
	seq++
	profile := &domain.TrainerProfile{
		UserID:  user.ID,
		License: fmt.Sprintf("CREF-%06d", seq),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create trainer profile: %v", err)
	}
	return user, profile
}

// NewStudent inserts a student user plus its profile linked to optional
// trainer and gym.
func NewStudent(t *testing.T, db *gorm.DB, trainerID, gymID *uuid.UUID) (*domain.User, *domain.StudentProfile) {
	t.Helper()
	user := NewUser(t, db, domain.RoleStudent, nil)
	profile := &domain.StudentProfile{
		UserID:    user.ID,
		TrainerID: trainerID,
		GymID:     gymID,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create student profile: %v", err)
	}
	return user, profile
}

// NewExercise inserts a catalog exercise.
func NewExercise(t *testing.T, db *gorm.DB, name, category string) *domain.Exercise {
	t.Helper()
	exercise := &domain.Exercise{Name: name, Slug: name, Category: category}
	if err := db.Create(exercise).Error; err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	return exercise
}

// NewWorkout inserts a workout for the student, created at the given time.
func NewWorkout(t *testing.T, db *gorm.DB, studentID uuid.UUID, trainerID *uuid.UUID, name string, createdAt time.Time) *domain.Workout {
	t.Helper()
	workout := &domain.Workout{
		StudentID: studentID,
		TrainerID: trainerID,
		Name:      name,
		Active:    true,
	}
	if err := db.Create(workout).Error; err != nil {
		t.Fatalf("create workout: %v", err)
	}
	if !createdAt.IsZero() {
		if err := db.Model(workout).UpdateColumn("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate workout: %v", err)
		}
		workout.CreatedAt = createdAt
	}
	return workout
}

// NewWorkoutItem inserts one item into a workout.
func NewWorkoutItem(t *testing.T, db *gorm.DB, workoutID, exerciseID uuid.UUID, sets uint, loadKg *uint) *domain.WorkoutItem {
	t.Helper()
	item := &domain.WorkoutItem{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Sets:       sets,
		Reps:       "10-12",
		LoadKg:     loadKg,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create workout item: %v", err)
	}
	return item
}

// Uint returns a pointer to v, for optional load fields.
func Uint(v uint) *uint { return &v }
