package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleSystemAdmin Role = "system_admin"
	RoleGymAdmin    Role = "gym_admin"
	RoleTrainer     Role = "trainer"
	RoleStudent     Role = "student"
)

// IsValid reports whether r is one of the four known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleGymAdmin, RoleTrainer, RoleStudent:
		return true
	}
	return false
}

// IsAdmin reports whether r is a system or gym admin role.
func (r Role) IsAdmin() bool {
	return r == RoleSystemAdmin || r == RoleGymAdmin
}

// User is the login identity. Profile data specific to trainers and students
// lives in TrainerProfile / StudentProfile, reconciled against the role.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100;not null" json:"lastName"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"` // Login identity
	PasswordHash string     `gorm:"size:255;not null" json:"-"`                 // Never expose this via JSON
	Role         Role       `gorm:"size:20;not null;index" json:"role"`
	GymID        *uuid.UUID `gorm:"type:uuid;index" json:"gymId,omitempty"` // Affiliation, nullable
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Gym *Gym `gorm:"foreignKey:GymID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate assigns a UUID primary key if the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns the display name, falling back to the email when the
// name fields are empty (reports label people this way).
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
