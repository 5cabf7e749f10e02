package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workout is a named plan belonging to one student. The creating trainer is
// kept for reporting but nulled out if the trainer is deleted, so workout
// history survives staff turnover.
type Workout struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"studentId"`
	TrainerID *uuid.UUID `gorm:"type:uuid;index" json:"trainerId,omitempty"` // Creator
	Name      string     `gorm:"size:50;not null" json:"name"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Student *StudentProfile `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Trainer *TrainerProfile `gorm:"foreignKey:TrainerID;constraint:OnDelete:SET NULL" json:"-"`
	Items   []WorkoutItem   `gorm:"foreignKey:WorkoutID" json:"items,omitempty"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WorkoutItem glues one Exercise into one Workout with the per-instance
// prescription. An exercise appears at most once per workout.
type WorkoutItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_exercise" json:"workoutId"`
	ExerciseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_exercise" json:"exerciseId"`
	Sets       uint      `gorm:"not null" json:"sets"`
	Reps       string    `gorm:"size:20;not null" json:"reps"` // Free text, e.g. "10-12" or "to failure"
	LoadKg     *uint     `json:"loadKg,omitempty"`
	Notes      string    `gorm:"size:200" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Workout  *Workout  `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"-"`
	Exercise *Exercise `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"exercise,omitempty"`
}

func (i *WorkoutItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
