package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"athlos/gym-app/internal/domain"
)

// OpenDB opens an isolated in-memory SQLite database with the full schema
// migrated. Each call gets its own database, so tests stay independent.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Gym{},
		&domain.User{},
		&domain.TrainerProfile{},
		&domain.StudentProfile{},
		&domain.Exercise{},
		&domain.Workout{},
		&domain.WorkoutItem{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}
