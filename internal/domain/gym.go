package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gym is the tenant organization. Trainers and gym admins are linked through
// their User.GymID affiliation; students through StudentProfile.GymID.
type Gym struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	TaxID     string    `gorm:"size:18;uniqueIndex;not null" json:"taxId"` // CNPJ
	Address   string    `gorm:"size:255" json:"address"`
	Phone     string    `gorm:"size:15" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Gym) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TrainerProfile holds the trainer-specific data for a user with the trainer
// role. Primary key is the user id (one-to-one).
type TrainerProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	License   string    `gorm:"size:20;uniqueIndex;not null" json:"license"` // CREF registry number
	Specialty string    `gorm:"size:100" json:"specialty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// StudentProfile holds the student-specific data for a user with the student
// role. Trainer and gym links are nullable so deleting either preserves the
// student.
type StudentProfile struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"userId"`
	TrainerID *uuid.UUID `gorm:"type:uuid;index" json:"trainerId,omitempty"` // Responsible trainer
	GymID     *uuid.UUID `gorm:"type:uuid;index" json:"gymId,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Goal      string     `gorm:"size:255" json:"goal,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	User    *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Trainer *TrainerProfile `gorm:"foreignKey:TrainerID;constraint:OnDelete:SET NULL" json:"-"`
	Gym     *Gym            `gorm:"foreignKey:GymID;constraint:OnDelete:SET NULL" json:"-"`
}
