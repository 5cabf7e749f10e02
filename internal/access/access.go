// Package access centralizes the per-role visibility rules. Every listing,
// detail, dashboard and report endpoint derives its data scope from the one
// rule table below instead of repeating role switches.
package access

import (
	"github.com/google/uuid"

	"athlos/gym-app/internal/domain"
)

// Actor is the authenticated identity a request acts as. Profile ids equal
// the user id (profiles are keyed by user) and are nil when the matching
// profile has not been provisioned.
type Actor struct {
	UserID    uuid.UUID
	Role      domain.Role
	GymID     *uuid.UUID // Gym affiliation of the user record
	TrainerID *uuid.UUID // Set iff a trainer profile exists
	StudentID *uuid.UUID // Set iff a student profile exists
}

// FilterKind selects how a Filter restricts an entity set.
type FilterKind int

const (
	// FilterNone matches nothing. Used for roles without access and for
	// actors with an unset affiliation or missing profile (fail safe to
	// empty, never an error).
	FilterNone FilterKind = iota
	// FilterAll matches everything.
	FilterAll
	// FilterGym restricts to entities belonging to one gym.
	FilterGym
	// FilterTrainer restricts to entities belonging to one trainer.
	FilterTrainer
	// FilterStudent restricts to entities belonging to one student.
	FilterStudent
)

// Filter is a declarative scope predicate. Repositories translate it into
// SQL per entity type; the meaning of FilterGym for workouts ("workouts of
// students of that gym") differs from its meaning for trainers ("trainers
// affiliated with that gym"), which is why the id alone is not enough.
type Filter struct {
	Kind FilterKind
	ID   uuid.UUID
}

func None() Filter               { return Filter{Kind: FilterNone} }
func All() Filter                { return Filter{Kind: FilterAll} }
func ByGym(id uuid.UUID) Filter  { return Filter{Kind: FilterGym, ID: id} }
func ByTrainer(id uuid.UUID) Filter { return Filter{Kind: FilterTrainer, ID: id} }
func ByStudent(id uuid.UUID) Filter { return Filter{Kind: FilterStudent, ID: id} }

func (f Filter) IsNone() bool { return f.Kind == FilterNone }
func (f Filter) IsAll() bool  { return f.Kind == FilterAll }

// ruleSet maps one role to its scope per entity type.
type ruleSet struct {
	gyms     func(Actor) Filter
	trainers func(Actor) Filter
	students func(Actor) Filter
	workouts func(Actor) Filter
}

func all(Actor) Filter  { return All() }
func none(Actor) Filter { return None() }

func ownGym(a Actor) Filter {
	if a.GymID == nil {
		return None()
	}
	return ByGym(*a.GymID)
}

func ownTrainer(a Actor) Filter {
	if a.TrainerID == nil {
		return None()
	}
	return ByTrainer(*a.TrainerID)
}

func ownStudent(a Actor) Filter {
	if a.StudentID == nil {
		return None()
	}
	return ByStudent(*a.StudentID)
}

// rules is the visibility table. Roles are mutually exclusive so lookup is a
// plain dispatch with no precedence concerns.
var rules = map[domain.Role]ruleSet{
	domain.RoleSystemAdmin: {
		gyms:     all,
		trainers: all,
		students: all,
		workouts: all,
	},
	domain.RoleGymAdmin: {
		gyms:     ownGym,
		trainers: ownGym,
		students: ownGym,
		workouts: ownGym,
	},
	domain.RoleTrainer: {
		gyms:     ownTrainer, // gyms containing any of the trainer's students
		trainers: none,
		students: ownTrainer,
		workouts: ownTrainer, // workouts the trainer created
	},
	domain.RoleStudent: {
		gyms:     none,
		trainers: none,
		students: ownStudent, // own profile only
		workouts: ownStudent,
	},
}

func ruleFor(a Actor) ruleSet {
	if rs, ok := rules[a.Role]; ok {
		return rs
	}
	return ruleSet{gyms: none, trainers: none, students: none, workouts: none}
}

// Gyms returns the actor's gym visibility scope.
func Gyms(a Actor) Filter { return ruleFor(a).gyms(a) }

// Trainers returns the actor's trainer visibility scope.
func Trainers(a Actor) Filter { return ruleFor(a).trainers(a) }

// Students returns the actor's student visibility scope.
func Students(a Actor) Filter { return ruleFor(a).students(a) }

// Workouts returns the actor's workout visibility scope.
func Workouts(a Actor) Filter { return ruleFor(a).workouts(a) }
