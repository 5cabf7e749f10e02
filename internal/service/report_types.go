package service

import (
	"time"

	"github.com/google/uuid"

	"athlos/gym-app/internal/domain"
)

// Period selects the reporting window length.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod maps a request value to a Period, defaulting to month.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeek, PeriodQuarter, PeriodYear:
		return Period(s)
	default:
		return PeriodMonth
	}
}

// Days is the window length in days.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// SeriesPoint is one labeled value in a chart series.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// CategoryShare is one colored slice of a distribution chart.
type CategoryShare struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Color string `json:"color"`
}

// ExerciseRank is one row of an exercise usage ranking.
type ExerciseRank struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// StudentSummary is a compact student listing row.
type StudentSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Goal     string    `json:"goal,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TrainerSummary is a compact trainer listing row.
type TrainerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	License   string    `json:"license"`
	Specialty string    `json:"specialty,omitempty"`
}

// GymRank ranks a gym by its student count.
type GymRank struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Students int64     `json:"students"`
}

// TrainerDashboard is the trainer landing page payload.
type TrainerDashboard struct {
	TotalStudents  int64            `json:"totalStudents"`
	TotalGyms      int64            `json:"totalGyms"`
	TotalWorkouts  int64            `json:"totalWorkouts"`
	ActivityRate   float64          `json:"activityRate"`
	WorkoutSeries  []SeriesPoint    `json:"workoutSeries"`
	TopExercises   []ExerciseRank   `json:"topExercises"`
	RecentStudents []StudentSummary `json:"recentStudents"`
}

// StudentDashboard is the student landing page payload.
type StudentDashboard struct {
	TotalWorkouts  int64            `json:"totalWorkouts"`
	ActiveWorkouts int64            `json:"activeWorkouts"`
	RecentWorkouts []domain.Workout `json:"recentWorkouts"`
}

// GymDashboard is the gym admin landing page payload.
type GymDashboard struct {
	TotalStudents int64            `json:"totalStudents"`
	TotalTrainers int64            `json:"totalTrainers"`
	TotalWorkouts int64            `json:"totalWorkouts"`
	Trainers      []TrainerSummary `json:"trainers"`
}

// GrowthPoint is one bucket of the student/trainer growth series.
type GrowthPoint struct {
	Label    string `json:"label"`
	Students int64  `json:"students"`
	Trainers int64  `json:"trainers"`
}

// SystemDashboard is the system admin landing page payload.
type SystemDashboard struct {
	TotalUsers    int64         `json:"totalUsers"`
	TotalGyms     int64         `json:"totalGyms"`
	TotalTrainers int64         `json:"totalTrainers"`
	TotalStudents int64         `json:"totalStudents"`
	TotalWorkouts int64         `json:"totalWorkouts"`
	Growth        []GrowthPoint `json:"growth"`
	WorkoutVolume []SeriesPoint `json:"workoutVolume"`
	TopGyms       []GymRank     `json:"topGyms"`
}

// StudentStats is the per-student block of a trainer report.
type StudentStats struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Workouts    int64      `json:"workouts"`
	Frequency   float64    `json:"frequency"`
	LastWorkout *time.Time `json:"lastWorkout,omitempty"`
}

// TrainerReport is the trainer's periodic report payload.
type TrainerReport struct {
	Period            Period          `json:"period"`
	WorkoutsInPeriod  int64           `json:"workoutsInPeriod"`
	Variation         float64         `json:"variation"`
	WorkoutSeries     []SeriesPoint   `json:"workoutSeries"`
	StudentSeries     []SeriesPoint   `json:"studentSeries"`
	Categories        []CategoryShare `json:"categories"`
	WeekdayFrequency  []SeriesPoint   `json:"weekdayFrequency"`
	TopExercises      []ExerciseRank  `json:"topExercises"`
	Students          []StudentStats  `json:"students"`
	AverageAttendance float64         `json:"averageAttendance"`
}

// CategoryProgressEntry aggregates a student's items per exercise category.
type CategoryProgressEntry struct {
	Category  string  `json:"category"`
	Exercises int64   `json:"exercises"`
	AvgLoadKg float64 `json:"avgLoadKg"`
	TotalSets int64   `json:"totalSets"`
}

// WorkoutHistoryItem is one abbreviated item inside a history entry.
type WorkoutHistoryItem struct {
	Exercise string `json:"exercise"`
	Sets     uint   `json:"sets"`
	Reps     string `json:"reps"`
	LoadKg   *uint  `json:"loadKg,omitempty"`
}

// WorkoutHistoryEntry is one workout in the student report history.
type WorkoutHistoryEntry struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	Active           bool                 `json:"active"`
	CreatedAt        time.Time            `json:"createdAt"`
	EstimatedMinutes int                  `json:"estimatedMinutes"`
	Items            []WorkoutHistoryItem `json:"items"`
}

// StudentReport is the student's periodic report payload.
type StudentReport struct {
	Period           Period                  `json:"period"`
	TotalWorkouts    int64                   `json:"totalWorkouts"`
	WorkoutsInPeriod int64                   `json:"workoutsInPeriod"`
	ActiveWorkouts   int64                   `json:"activeWorkouts"`
	CategoryProgress []CategoryProgressEntry `json:"categoryProgress"`
	History          []WorkoutHistoryEntry   `json:"history"`
}

// TrainerStats is the per-trainer block of a gym report.
type TrainerStats struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Workouts int64     `json:"workouts"`
	Students int64     `json:"students"`
}

// GymGrowthPoint is one bucket of the gym growth series.
type GymGrowthPoint struct {
	Label       string `json:"label"`
	NewStudents int64  `json:"newStudents"`
	NewWorkouts int64  `json:"newWorkouts"`
}

// GymReport is the gym admin's periodic report payload.
type GymReport struct {
	Period            Period           `json:"period"`
	TotalStudents     int64            `json:"totalStudents"`
	TotalTrainers     int64            `json:"totalTrainers"`
	TotalWorkouts     int64            `json:"totalWorkouts"`
	WorkoutsInPeriod  int64            `json:"workoutsInPeriod"`
	AvgWorkoutsPerDay float64          `json:"avgWorkoutsPerDay"`
	TopWorkoutNames   []SeriesPoint    `json:"topWorkoutNames"`
	Categories        []CategoryShare  `json:"categories"`
	Growth            []GymGrowthPoint `json:"growth"`
	TopTrainers       []TrainerStats   `json:"topTrainers"`
}

// SystemGrowthPoint is one bucket of the platform growth series.
type SystemGrowthPoint struct {
	Label    string `json:"label"`
	Students int64  `json:"students"`
	Trainers int64  `json:"trainers"`
	Gyms     int64  `json:"gyms"`
}

// SystemReport is the system admin's periodic report payload.
type SystemReport struct {
	Period            Period              `json:"period"`
	TotalUsers        int64               `json:"totalUsers"`
	ActiveUsers       int64               `json:"activeUsers"`
	ActiveUserRate    float64             `json:"activeUserRate"`
	TotalGyms         int64               `json:"totalGyms"`
	TotalTrainers     int64               `json:"totalTrainers"`
	TotalStudents     int64               `json:"totalStudents"`
	TotalExercises    int64               `json:"totalExercises"`
	TotalWorkouts     int64               `json:"totalWorkouts"`
	WorkoutsInPeriod  int64               `json:"workoutsInPeriod"`
	WorkoutsPerDay    float64             `json:"workoutsPerDay"`
	Growth            []SystemGrowthPoint `json:"growth"`
	WorkoutVolume     []SeriesPoint       `json:"workoutVolume"`
	TopGyms           []GymRank           `json:"topGyms"`
	TopExercises      []ExerciseRank      `json:"topExercises"`
	UserDistribution  []CategoryShare     `json:"userDistribution"`
}
