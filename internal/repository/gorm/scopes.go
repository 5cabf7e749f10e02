package gorm

import (
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
)

// The scope* helpers translate an access.Filter into SQL conditions for one
// entity table. An unknown or None filter yields a contradiction so every
// composed query stays safely empty.

func scopeGyms(db *gorm.DB, f access.Filter) *gorm.DB {
	switch f.Kind {
	case access.FilterAll:
		return db
	case access.FilterGym:
		return db.Where("gyms.id = ?", f.ID)
	case access.FilterTrainer:
		// Gyms containing any of the trainer's students.
		return db.Where(
			"gyms.id IN (SELECT gym_id FROM student_profiles WHERE trainer_id = ? AND gym_id IS NOT NULL)",
			f.ID,
		)
	default:
		return db.Where("1 = 0")
	}
}

func scopeTrainers(db *gorm.DB, f access.Filter) *gorm.DB {
	switch f.Kind {
	case access.FilterAll:
		return db
	case access.FilterGym:
		// Trainers are affiliated with a gym through their user record.
		return db.Where(
			"trainer_profiles.user_id IN (SELECT id FROM users WHERE gym_id = ?)",
			f.ID,
		)
	case access.FilterTrainer:
		return db.Where("trainer_profiles.user_id = ?", f.ID)
	default:
		return db.Where("1 = 0")
	}
}

func scopeStudents(db *gorm.DB, f access.Filter) *gorm.DB {
	switch f.Kind {
	case access.FilterAll:
		return db
	case access.FilterGym:
		return db.Where("student_profiles.gym_id = ?", f.ID)
	case access.FilterTrainer:
		return db.Where("student_profiles.trainer_id = ?", f.ID)
	case access.FilterStudent:
		return db.Where("student_profiles.user_id = ?", f.ID)
	default:
		return db.Where("1 = 0")
	}
}

func scopeWorkouts(db *gorm.DB, f access.Filter) *gorm.DB {
	switch f.Kind {
	case access.FilterAll:
		return db
	case access.FilterGym:
		return db.Where(
			"workouts.student_id IN (SELECT user_id FROM student_profiles WHERE gym_id = ?)",
			f.ID,
		)
	case access.FilterTrainer:
		return db.Where("workouts.trainer_id = ?", f.ID)
	case access.FilterStudent:
		return db.Where("workouts.student_id = ?", f.ID)
	default:
		return db.Where("1 = 0")
	}
}
