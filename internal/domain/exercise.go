package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Exercise is a catalog entry shared by every gym. The catalog is populated
// from the free-exercise-db JSON dump by cmd/importexercises.
type Exercise struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:100;uniqueIndex" json:"slug"`
	Force     string    `gorm:"size:50" json:"force,omitempty"`     // push / pull / static
	Level     string    `gorm:"size:50" json:"level,omitempty"`     // beginner / intermediate / expert
	Mechanic  string    `gorm:"size:50" json:"mechanic,omitempty"`  // compound / isolation
	Equipment string    `gorm:"size:100" json:"equipment,omitempty"`
	Category  string    `gorm:"size:50;index" json:"category,omitempty"`

	PrimaryMuscles   datatypes.JSONSlice[string] `json:"primaryMuscles"`
	SecondaryMuscles datatypes.JSONSlice[string] `json:"secondaryMuscles"`
	Instructions     datatypes.JSONSlice[string] `json:"instructions"`
	Images           datatypes.JSONSlice[string] `json:"images"` // Object keys, resolved to URLs on demand

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// FallbackCategory is the label used wherever an exercise has no category.
const FallbackCategory = "Other"

// CategoryOrFallback normalizes an empty category to the fallback label.
func (e *Exercise) CategoryOrFallback() string {
	if e.Category == "" {
		return FallbackCategory
	}
	return e.Category
}
