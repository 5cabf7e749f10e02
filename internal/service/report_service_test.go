package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	gormrepo "athlos/gym-app/internal/repository/gorm"
	"athlos/gym-app/internal/testutil"
)

var reportAsOf = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newReportFixture(t *testing.T) (*gorm.DB, ReportService) {
	db := testutil.OpenDB(t)
	svc := NewReportService(
		gormrepo.NewReportRepository(db),
		gormrepo.NewStudentRepository(db),
		gormrepo.NewTrainerRepository(db),
		gormrepo.NewGymRepository(db),
		gormrepo.NewWorkoutRepository(db),
	)
	return db, svc
}

func trainerActor(user *domain.User) access.Actor {
	id := user.ID
	return access.Actor{UserID: id, Role: domain.RoleTrainer, TrainerID: &id}
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, PeriodWeek.Days())
	assert.Equal(t, 30, PeriodMonth.Days())
	assert.Equal(t, 90, PeriodQuarter.Days())
	assert.Equal(t, 365, PeriodYear.Days())
	assert.Equal(t, PeriodMonth, ParsePeriod(""))
	assert.Equal(t, PeriodMonth, ParsePeriod("fortnight"))
	assert.Equal(t, PeriodQuarter, ParsePeriod("quarter"))
}

func TestPeriodVariation(t *testing.T) {
	// Against an empty prior window the prior count is clamped to one.
	assert.Equal(t, 300.0, periodVariation(3, 0))
	assert.Equal(t, 50.0, periodVariation(3, 2))
	assert.Equal(t, -50.0, periodVariation(1, 2))
	assert.Equal(t, 0.0, periodVariation(0, 0))
}

func TestAttendanceFrequencyCapsAtHundred(t *testing.T) {
	assert.Equal(t, 100.0, attendanceFrequency(1000, 30))
	assert.Equal(t, 0.0, attendanceFrequency(0, 30))
	// 10 workouts in 30 days vs an expected 5 per week.
	assert.InDelta(t, 46.7, attendanceFrequency(10, 30), 0.05)
}

func TestColorPaletteWraps(t *testing.T) {
	for i := 0; i < 8; i++ {
		assert.Equal(t, chartPalette[i%6], colorAt(i))
	}
	assert.Equal(t, "#ef4444", colorAt(6))
	assert.Equal(t, "#3b82f6", colorAt(7))
}

func TestSeriesBucketsOldestFirst(t *testing.T) {
	buckets := seriesBuckets(reportAsOf, 6)
	require.Len(t, buckets, 6)
	assert.Equal(t, reportAsOf, buckets[5].end)
	for i := 0; i < 5; i++ {
		assert.True(t, buckets[i].end.Before(buckets[i+1].end))
		assert.Equal(t, buckets[i].end, buckets[i+1].start)
	}
	assert.Equal(t, buckets[0].start.Format("Jan"), buckets[0].label)

	yearly := seriesBuckets(reportAsOf, 12)
	assert.Equal(t, yearly[0].start.Format("Jan/06"), yearly[0].label)
}

func TestTrainerDashboardEmptyScope(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)

	dash, err := svc.TrainerDashboard(context.Background(), trainerActor(trainerUser), reportAsOf)
	require.NoError(t, err)

	assert.Zero(t, dash.TotalStudents)
	assert.Zero(t, dash.TotalWorkouts)
	assert.Equal(t, 0.0, dash.ActivityRate)
	require.Len(t, dash.WorkoutSeries, 6)
	for i, point := range dash.WorkoutSeries {
		assert.Zero(t, point.Value)
		assert.Equal(t, reportAsOf.AddDate(0, 0, -30*(6-i)).Format("Jan"), point.Label)
	}
	assert.Empty(t, dash.TopExercises)
	assert.Empty(t, dash.RecentStudents)
}

func TestTrainerDashboardActivityRate(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, nil)

	// 10 workouts overall, 4 inside the newest bucket, 5 still active.
	for i := 0; i < 10; i++ {
		createdAt := reportAsOf.AddDate(0, 0, -100+i)
		if i >= 6 {
			createdAt = reportAsOf.AddDate(0, 0, -(i - 5))
		}
		w := testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", createdAt)
		if i%2 == 0 {
			require.NoError(t, db.Model(w).UpdateColumn("active", false).Error)
		}
	}

	dash, err := svc.TrainerDashboard(context.Background(), trainerActor(trainerUser), reportAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(10), dash.TotalWorkouts)
	assert.Equal(t, 50.0, dash.ActivityRate)
	assert.Equal(t, int64(4), dash.WorkoutSeries[5].Value)
}

func TestTrainerDashboardRequiresTrainerRole(t *testing.T) {
	db, svc := newReportFixture(t)
	admin := testutil.NewUser(t, db, domain.RoleSystemAdmin, nil)

	_, err := svc.TrainerDashboard(context.Background(), access.Actor{UserID: admin.ID, Role: domain.RoleSystemAdmin}, reportAsOf)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTrainerDashboardMissingProfile(t *testing.T) {
	db, svc := newReportFixture(t)
	user := testutil.NewUser(t, db, domain.RoleTrainer, nil)

	_, err := svc.TrainerDashboard(context.Background(), access.Actor{UserID: user.ID, Role: domain.RoleTrainer}, reportAsOf)
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestTrainerReportVariationAgainstEmptyPrior(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, nil)

	for i := 0; i < 3; i++ {
		testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", reportAsOf.AddDate(0, 0, -5-i))
	}

	report, err := svc.TrainerReport(context.Background(), trainerActor(trainerUser), PeriodMonth, reportAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.WorkoutsInPeriod)
	assert.Equal(t, 300.0, report.Variation)
	require.Len(t, report.WeekdayFrequency, 7)
	assert.Equal(t, "Mon", report.WeekdayFrequency[0].Label)
	assert.Equal(t, "Sun", report.WeekdayFrequency[6].Label)
}

func TestTrainerReportRankingTieBreak(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, nil)

	bench := testutil.NewExercise(t, db, "Bench Press", "chest")
	arnold := testutil.NewExercise(t, db, "Arnold Press", "shoulders")
	squat := testutil.NewExercise(t, db, "Squat", "legs")

	for i := 0; i < 2; i++ {
		w := testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", reportAsOf.AddDate(0, 0, -3-i))
		testutil.NewWorkoutItem(t, db, w.ID, bench.ID, 3, nil)
		testutil.NewWorkoutItem(t, db, w.ID, arnold.ID, 3, nil)
	}
	w := testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", reportAsOf.AddDate(0, 0, -1))
	testutil.NewWorkoutItem(t, db, w.ID, squat.ID, 3, nil)

	report, err := svc.TrainerReport(context.Background(), trainerActor(trainerUser), PeriodMonth, reportAsOf)
	require.NoError(t, err)

	// Equal counts fall back to name order.
	require.Len(t, report.TopExercises, 3)
	assert.Equal(t, "Arnold Press", report.TopExercises[0].Name)
	assert.Equal(t, "Bench Press", report.TopExercises[1].Name)
	assert.Equal(t, "Squat", report.TopExercises[2].Name)
}

func TestCategorySharesColorsAndFallback(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, nil)

	w := testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", reportAsOf.AddDate(0, 0, -1))
	uncategorized := testutil.NewExercise(t, db, "Mystery Move", "")
	testutil.NewWorkoutItem(t, db, w.ID, uncategorized.ID, 3, nil)

	rs := svc.(*reportService)
	shares, err := rs.categoryShares(context.Background(), access.ByTrainer(trainerUser.ID), time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, domain.FallbackCategory, shares[0].Name)
	assert.Equal(t, "#ef4444", shares[0].Color)
}

func TestStudentReportHistory(t *testing.T) {
	db, svc := newReportFixture(t)
	trainerUser, _ := testutil.NewTrainer(t, db, nil)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, nil)

	w := testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino A", reportAsOf.AddDate(0, 0, -2))
	var exercises []*domain.Exercise
	names := []string{"Bench Press", "Squat", "Deadlift", "Row", "Curl", "Plank", "Lunge"}
	for _, name := range names {
		exercises = append(exercises, testutil.NewExercise(t, db, name, "strength"))
	}
	for _, ex := range exercises {
		testutil.NewWorkoutItem(t, db, w.ID, ex.ID, 3, testutil.Uint(40))
	}

	studentID := studentUser.ID
	actor := access.Actor{UserID: studentID, Role: domain.RoleStudent, StudentID: &studentID}
	report, err := svc.StudentReport(context.Background(), actor, PeriodMonth, reportAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.TotalWorkouts)
	assert.Equal(t, int64(1), report.WorkoutsInPeriod)
	require.Len(t, report.History, 1)
	entry := report.History[0]
	// Seven items estimate 21 minutes but only five are detailed.
	assert.Equal(t, 21, entry.EstimatedMinutes)
	assert.Len(t, entry.Items, 5)

	require.Len(t, report.CategoryProgress, 1)
	assert.Equal(t, "strength", report.CategoryProgress[0].Category)
	assert.Equal(t, int64(7), report.CategoryProgress[0].Exercises)
	assert.Equal(t, int64(21), report.CategoryProgress[0].TotalSets)
	assert.Equal(t, 40.0, report.CategoryProgress[0].AvgLoadKg)
}

func TestSystemReportTotalsAndDistribution(t *testing.T) {
	db, svc := newReportFixture(t)
	admin := testutil.NewUser(t, db, domain.RoleSystemAdmin, nil)
	gym := testutil.NewGym(t, db, "Iron Temple")
	trainerUser, _ := testutil.NewTrainer(t, db, &gym.ID)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, &gym.ID)
	testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino", reportAsOf.AddDate(0, 0, -1))

	// One of the four users is inactive.
	inactive := testutil.NewUser(t, db, domain.RoleStudent, nil)
	require.NoError(t, db.Model(inactive).UpdateColumn("active", false).Error)

	actor := access.Actor{UserID: admin.ID, Role: domain.RoleSystemAdmin}
	report, err := svc.SystemReport(context.Background(), actor, PeriodMonth, reportAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(4), report.TotalUsers)
	assert.Equal(t, int64(3), report.ActiveUsers)
	assert.Equal(t, 75.0, report.ActiveUserRate)
	assert.Equal(t, int64(1), report.TotalGyms)
	require.Len(t, report.Growth, 12)
	require.Len(t, report.WorkoutVolume, 12)

	require.Len(t, report.TopGyms, 1)
	assert.Equal(t, "Iron Temple", report.TopGyms[0].Name)
	assert.Equal(t, int64(1), report.TopGyms[0].Students)

	require.Len(t, report.UserDistribution, 4)
	assert.Equal(t, string(domain.RoleSystemAdmin), report.UserDistribution[0].Name)
	assert.Equal(t, "#ef4444", report.UserDistribution[0].Color)
}

func TestGymReportScopedToGym(t *testing.T) {
	db, svc := newReportFixture(t)
	gym := testutil.NewGym(t, db, "Iron Temple")
	otherGym := testutil.NewGym(t, db, "Other Gym")

	gymAdmin := testutil.NewUser(t, db, domain.RoleGymAdmin, &gym.ID)
	trainerUser, _ := testutil.NewTrainer(t, db, &gym.ID)
	studentUser, _ := testutil.NewStudent(t, db, &trainerUser.ID, &gym.ID)
	testutil.NewWorkout(t, db, studentUser.ID, &trainerUser.ID, "Treino A", reportAsOf.AddDate(0, 0, -1))

	// Activity in the other gym must not leak into the report.
	otherTrainer, _ := testutil.NewTrainer(t, db, &otherGym.ID)
	otherStudent, _ := testutil.NewStudent(t, db, &otherTrainer.ID, &otherGym.ID)
	testutil.NewWorkout(t, db, otherStudent.ID, &otherTrainer.ID, "Treino B", reportAsOf.AddDate(0, 0, -1))

	actor := access.Actor{UserID: gymAdmin.ID, Role: domain.RoleGymAdmin, GymID: &gym.ID}
	report, err := svc.GymReport(context.Background(), actor, PeriodMonth, reportAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.TotalStudents)
	assert.Equal(t, int64(1), report.TotalTrainers)
	assert.Equal(t, int64(1), report.TotalWorkouts)
	require.Len(t, report.TopTrainers, 1)
	assert.Equal(t, trainerUser.ID, report.TopTrainers[0].ID)
	assert.Equal(t, int64(1), report.TopTrainers[0].Workouts)
	require.Len(t, report.TopWorkoutNames, 1)
	assert.Equal(t, "Treino A", report.TopWorkoutNames[0].Label)
}
