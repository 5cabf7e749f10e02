package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"athlos/gym-app/internal/access"
	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/repository"
)

// chartPalette colors distribution slices, cycling when ranks run past it.
var chartPalette = []string{"#ef4444", "#3b82f6", "#22c55e", "#f59e0b", "#8b5cf6", "#ec4899"}

func colorAt(i int) string {
	return chartPalette[i%len(chartPalette)]
}

// bucketDays is the fixed width of one series bucket.
const bucketDays = 30

type bucket struct {
	start time.Time
	end   time.Time
	label string
}

// seriesBuckets returns n fixed 30-day buckets ending at asOf, oldest first.
// Labels carry the year when the series spans more than 6 buckets.
func seriesBuckets(asOf time.Time, n int) []bucket {
	layout := "Jan"
	if n > 6 {
		layout = "Jan/06"
	}
	buckets := make([]bucket, n)
	for i := 0; i < n; i++ {
		end := asOf.AddDate(0, 0, -bucketDays*(n-1-i))
		start := end.AddDate(0, 0, -bucketDays)
		buckets[i] = bucket{start: start, end: end, label: start.Format(layout)}
	}
	return buckets
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// pctOf is part over total as a percentage, guarding the zero denominator.
func pctOf(part, total int64) float64 {
	if total < 1 {
		total = 1
	}
	return round1(float64(part) / float64(total) * 100)
}

// periodVariation compares the current window against the one before it.
func periodVariation(current, prior int64) float64 {
	base := prior
	if base < 1 {
		base = 1
	}
	return round1(float64(current-prior) / float64(base) * 100)
}

// attendanceFrequency estimates how much of an expected five-weekly schedule
// the workout count covers, capped at 100.
func attendanceFrequency(workouts int64, days int) float64 {
	weeks := float64(days) / 7
	if weeks <= 0 {
		return 0
	}
	freq := float64(workouts) / weeks / 5 * 100
	return round1(math.Min(freq, 100))
}

// ReportService assembles role-specific dashboards and periodic reports.
// Every method takes an explicit asOf instant so results are reproducible.
type ReportService interface {
	TrainerDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*TrainerDashboard, error)
	StudentDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*StudentDashboard, error)
	GymDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*GymDashboard, error)
	SystemDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*SystemDashboard, error)

	TrainerReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*TrainerReport, error)
	StudentReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*StudentReport, error)
	GymReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*GymReport, error)
	SystemReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*SystemReport, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	studentRepo repository.StudentRepository
	trainerRepo repository.TrainerRepository
	gymRepo     repository.GymRepository
	workoutRepo repository.WorkoutRepository
}

// NewReportService creates a new instance of reportService.
func NewReportService(
	reportRepo repository.ReportRepository,
	studentRepo repository.StudentRepository,
	trainerRepo repository.TrainerRepository,
	gymRepo repository.GymRepository,
	workoutRepo repository.WorkoutRepository,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		studentRepo: studentRepo,
		trainerRepo: trainerRepo,
		gymRepo:     gymRepo,
		workoutRepo: workoutRepo,
	}
}

// Scoped listing treats a missing profile as an empty scope, but asking for
// your own dashboard without a profile is a not-found.
func (s *reportService) requireTrainer(actor access.Actor) error {
	if actor.Role != domain.RoleTrainer {
		return ErrAccessDenied
	}
	if actor.TrainerID == nil {
		return ErrTrainerNotFound
	}
	return nil
}

func (s *reportService) requireStudent(actor access.Actor) error {
	if actor.Role != domain.RoleStudent {
		return ErrAccessDenied
	}
	if actor.StudentID == nil {
		return ErrStudentNotFound
	}
	return nil
}

// --- Dashboards ---

func (s *reportService) TrainerDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*TrainerDashboard, error) {
	if err := s.requireTrainer(actor); err != nil {
		return nil, err
	}
	workoutScope := access.Workouts(actor)

	totalStudents, err := s.reportRepo.CountStudents(ctx, access.Students(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalGyms, err := s.reportRepo.CountGyms(ctx, access.Gyms(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalWorkouts, err := s.reportRepo.CountWorkouts(ctx, workoutScope, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	activeWorkouts, err := s.reportRepo.CountActiveWorkouts(ctx, workoutScope)
	if err != nil {
		return nil, err
	}

	series, err := s.workoutSeries(ctx, workoutScope, asOf, 6)
	if err != nil {
		return nil, err
	}
	top, err := s.topExercises(ctx, workoutScope, time.Time{}, 5)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentStudents(ctx, access.Students(actor), 5)
	if err != nil {
		return nil, err
	}

	return &TrainerDashboard{
		TotalStudents:  totalStudents,
		TotalGyms:      totalGyms,
		TotalWorkouts:  totalWorkouts,
		ActivityRate:   pctOf(activeWorkouts, totalWorkouts),
		WorkoutSeries:  series,
		TopExercises:   top,
		RecentStudents: recent,
	}, nil
}

func (s *reportService) StudentDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*StudentDashboard, error) {
	if err := s.requireStudent(actor); err != nil {
		return nil, err
	}
	scope := access.Workouts(actor)

	total, err := s.reportRepo.CountWorkouts(ctx, scope, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	active, err := s.reportRepo.CountActiveWorkouts(ctx, scope)
	if err != nil {
		return nil, err
	}
	recent, err := s.workoutRepo.ListDetailed(ctx, scope, time.Time{}, 5)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		TotalWorkouts:  total,
		ActiveWorkouts: active,
		RecentWorkouts: recent,
	}, nil
}

func (s *reportService) GymDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*GymDashboard, error) {
	if actor.Role != domain.RoleGymAdmin {
		return nil, ErrAccessDenied
	}

	totalStudents, err := s.reportRepo.CountStudents(ctx, access.Students(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalTrainers, err := s.reportRepo.CountTrainers(ctx, access.Trainers(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalWorkouts, err := s.reportRepo.CountWorkouts(ctx, access.Workouts(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	profiles, err := s.trainerRepo.List(ctx, access.Trainers(actor))
	if err != nil {
		return nil, err
	}
	if len(profiles) > 5 {
		profiles = profiles[:5]
	}
	trainers := make([]TrainerSummary, 0, len(profiles))
	for _, p := range profiles {
		trainers = append(trainers, trainerSummary(p))
	}

	return &GymDashboard{
		TotalStudents: totalStudents,
		TotalTrainers: totalTrainers,
		TotalWorkouts: totalWorkouts,
		Trainers:      trainers,
	}, nil
}

func (s *reportService) SystemDashboard(ctx context.Context, actor access.Actor, asOf time.Time) (*SystemDashboard, error) {
	if actor.Role != domain.RoleSystemAdmin {
		return nil, ErrAccessDenied
	}
	all := access.All()

	totalUsers, err := s.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalGyms, err := s.reportRepo.CountGyms(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalTrainers, err := s.reportRepo.CountTrainers(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.reportRepo.CountStudents(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalWorkouts, err := s.reportRepo.CountWorkouts(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	buckets := seriesBuckets(asOf, 6)
	growth := make([]GrowthPoint, 0, len(buckets))
	for _, b := range buckets {
		students, err := s.reportRepo.CountStudents(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		trainers, err := s.reportRepo.CountTrainers(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		growth = append(growth, GrowthPoint{Label: b.label, Students: students, Trainers: trainers})
	}

	volume, err := s.workoutSeries(ctx, all, asOf, 6)
	if err != nil {
		return nil, err
	}
	topGyms, err := s.topGymsByStudents(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &SystemDashboard{
		TotalUsers:    totalUsers,
		TotalGyms:     totalGyms,
		TotalTrainers: totalTrainers,
		TotalStudents: totalStudents,
		TotalWorkouts: totalWorkouts,
		Growth:        growth,
		WorkoutVolume: volume,
		TopGyms:       topGyms,
	}, nil
}

// --- Reports ---

func (s *reportService) TrainerReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*TrainerReport, error) {
	if err := s.requireTrainer(actor); err != nil {
		return nil, err
	}
	workoutScope := access.Workouts(actor)
	studentScope := access.Students(actor)
	days := period.Days()
	windowStart := asOf.AddDate(0, 0, -days)
	priorStart := windowStart.AddDate(0, 0, -days)

	current, err := s.reportRepo.CountWorkouts(ctx, workoutScope, windowStart, asOf)
	if err != nil {
		return nil, err
	}
	prior, err := s.reportRepo.CountWorkouts(ctx, workoutScope, priorStart, windowStart)
	if err != nil {
		return nil, err
	}

	buckets := seriesBuckets(asOf, 6)
	workoutSeries := make([]SeriesPoint, 0, len(buckets))
	studentSeries := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		n, err := s.reportRepo.CountWorkouts(ctx, workoutScope, b.start, b.end)
		if err != nil {
			return nil, err
		}
		workoutSeries = append(workoutSeries, SeriesPoint{Label: b.label, Value: n})

		// Student series is cumulative up to the bucket edge.
		m, err := s.reportRepo.CountStudents(ctx, studentScope, time.Time{}, b.end)
		if err != nil {
			return nil, err
		}
		studentSeries = append(studentSeries, SeriesPoint{Label: b.label, Value: m})
	}

	categories, err := s.categoryShares(ctx, workoutScope, windowStart, 6)
	if err != nil {
		return nil, err
	}
	weekdays, err := s.weekdayFrequency(ctx, workoutScope, windowStart, asOf)
	if err != nil {
		return nil, err
	}
	top, err := s.topExercises(ctx, workoutScope, windowStart, 10)
	if err != nil {
		return nil, err
	}

	students, avgAttendance, err := s.studentStats(ctx, actor, windowStart, days)
	if err != nil {
		return nil, err
	}

	return &TrainerReport{
		Period:            period,
		WorkoutsInPeriod:  current,
		Variation:         periodVariation(current, prior),
		WorkoutSeries:     workoutSeries,
		StudentSeries:     studentSeries,
		Categories:        categories,
		WeekdayFrequency:  weekdays,
		TopExercises:      top,
		Students:          students,
		AverageAttendance: avgAttendance,
	}, nil
}

func (s *reportService) StudentReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*StudentReport, error) {
	if err := s.requireStudent(actor); err != nil {
		return nil, err
	}
	scope := access.Workouts(actor)
	windowStart := asOf.AddDate(0, 0, -period.Days())

	total, err := s.reportRepo.CountWorkouts(ctx, scope, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	inPeriod, err := s.reportRepo.CountWorkouts(ctx, scope, windowStart, asOf)
	if err != nil {
		return nil, err
	}
	active, err := s.reportRepo.CountActiveWorkouts(ctx, scope)
	if err != nil {
		return nil, err
	}

	progressRows, err := s.reportRepo.CategoryProgressByStudent(ctx, scope, windowStart)
	if err != nil {
		return nil, err
	}
	progress := make([]CategoryProgressEntry, 0, len(progressRows))
	for _, row := range progressRows {
		name := row.Category
		if name == "" {
			name = domain.FallbackCategory
		}
		progress = append(progress, CategoryProgressEntry{
			Category:  name,
			Exercises: row.Exercises,
			AvgLoadKg: round1(row.AvgLoadKg),
			TotalSets: row.TotalSets,
		})
	}

	workouts, err := s.workoutRepo.ListDetailed(ctx, scope, windowStart, 20)
	if err != nil {
		return nil, err
	}
	history := make([]WorkoutHistoryEntry, 0, len(workouts))
	for _, w := range workouts {
		entry := WorkoutHistoryEntry{
			ID:               w.ID,
			Name:             w.Name,
			Active:           w.Active,
			CreatedAt:        w.CreatedAt,
			EstimatedMinutes: len(w.Items) * 3,
		}
		for i, item := range w.Items {
			if i == 5 {
				break
			}
			name := ""
			if item.Exercise != nil {
				name = item.Exercise.Name
			}
			entry.Items = append(entry.Items, WorkoutHistoryItem{
				Exercise: name,
				Sets:     item.Sets,
				Reps:     item.Reps,
				LoadKg:   item.LoadKg,
			})
		}
		history = append(history, entry)
	}

	return &StudentReport{
		Period:           period,
		TotalWorkouts:    total,
		WorkoutsInPeriod: inPeriod,
		ActiveWorkouts:   active,
		CategoryProgress: progress,
		History:          history,
	}, nil
}

func (s *reportService) GymReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*GymReport, error) {
	if actor.Role != domain.RoleGymAdmin {
		return nil, ErrAccessDenied
	}
	workoutScope := access.Workouts(actor)
	days := period.Days()
	windowStart := asOf.AddDate(0, 0, -days)

	totalStudents, err := s.reportRepo.CountStudents(ctx, access.Students(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalTrainers, err := s.reportRepo.CountTrainers(ctx, access.Trainers(actor), time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalWorkouts, err := s.reportRepo.CountWorkouts(ctx, workoutScope, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	inPeriod, err := s.reportRepo.CountWorkouts(ctx, workoutScope, windowStart, asOf)
	if err != nil {
		return nil, err
	}

	names, err := s.reportRepo.WorkoutNameRanking(ctx, workoutScope, 10)
	if err != nil {
		return nil, err
	}
	topNames := make([]SeriesPoint, 0, len(names))
	for _, row := range names {
		topNames = append(topNames, SeriesPoint{Label: row.Name, Value: row.Count})
	}

	categories, err := s.categoryShares(ctx, workoutScope, windowStart, 6)
	if err != nil {
		return nil, err
	}

	buckets := seriesBuckets(asOf, 6)
	growth := make([]GymGrowthPoint, 0, len(buckets))
	for _, b := range buckets {
		students, err := s.reportRepo.CountStudents(ctx, access.Students(actor), b.start, b.end)
		if err != nil {
			return nil, err
		}
		workouts, err := s.reportRepo.CountWorkouts(ctx, workoutScope, b.start, b.end)
		if err != nil {
			return nil, err
		}
		growth = append(growth, GymGrowthPoint{Label: b.label, NewStudents: students, NewWorkouts: workouts})
	}

	topTrainers, err := s.trainerStats(ctx, access.Trainers(actor), 10)
	if err != nil {
		return nil, err
	}

	return &GymReport{
		Period:            period,
		TotalStudents:     totalStudents,
		TotalTrainers:     totalTrainers,
		TotalWorkouts:     totalWorkouts,
		WorkoutsInPeriod:  inPeriod,
		AvgWorkoutsPerDay: round1(float64(inPeriod) / float64(days)),
		TopWorkoutNames:   topNames,
		Categories:        categories,
		Growth:            growth,
		TopTrainers:       topTrainers,
	}, nil
}

func (s *reportService) SystemReport(ctx context.Context, actor access.Actor, period Period, asOf time.Time) (*SystemReport, error) {
	if actor.Role != domain.RoleSystemAdmin {
		return nil, ErrAccessDenied
	}
	all := access.All()
	days := period.Days()
	windowStart := asOf.AddDate(0, 0, -days)

	totalUsers, err := s.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.reportRepo.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalGyms, err := s.reportRepo.CountGyms(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalTrainers, err := s.reportRepo.CountTrainers(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.reportRepo.CountStudents(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	totalExercises, err := s.reportRepo.CountExercises(ctx)
	if err != nil {
		return nil, err
	}
	totalWorkouts, err := s.reportRepo.CountWorkouts(ctx, all, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	inPeriod, err := s.reportRepo.CountWorkouts(ctx, all, windowStart, asOf)
	if err != nil {
		return nil, err
	}

	buckets := seriesBuckets(asOf, 12)
	growth := make([]SystemGrowthPoint, 0, len(buckets))
	volume := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		students, err := s.reportRepo.CountStudents(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		trainers, err := s.reportRepo.CountTrainers(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		gyms, err := s.reportRepo.CountGyms(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		workouts, err := s.reportRepo.CountWorkouts(ctx, all, b.start, b.end)
		if err != nil {
			return nil, err
		}
		growth = append(growth, SystemGrowthPoint{Label: b.label, Students: students, Trainers: trainers, Gyms: gyms})
		volume = append(volume, SeriesPoint{Label: b.label, Value: workouts})
	}

	topGyms, err := s.topGymsByStudents(ctx, 10)
	if err != nil {
		return nil, err
	}
	topExercises, err := s.topExercises(ctx, all, windowStart, 10)
	if err != nil {
		return nil, err
	}

	distribution := make([]CategoryShare, 0, 4)
	for i, role := range []domain.Role{domain.RoleSystemAdmin, domain.RoleGymAdmin, domain.RoleTrainer, domain.RoleStudent} {
		n, err := s.reportRepo.CountUsersByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		distribution = append(distribution, CategoryShare{Name: string(role), Count: n, Color: colorAt(i)})
	}

	return &SystemReport{
		Period:           period,
		TotalUsers:       totalUsers,
		ActiveUsers:      activeUsers,
		ActiveUserRate:   pctOf(activeUsers, totalUsers),
		TotalGyms:        totalGyms,
		TotalTrainers:    totalTrainers,
		TotalStudents:    totalStudents,
		TotalExercises:   totalExercises,
		TotalWorkouts:    totalWorkouts,
		WorkoutsInPeriod: inPeriod,
		WorkoutsPerDay:   round1(float64(inPeriod) / float64(days)),
		Growth:           growth,
		WorkoutVolume:    volume,
		TopGyms:          topGyms,
		TopExercises:     topExercises,
		UserDistribution: distribution,
	}, nil
}

// --- Assembly helpers ---

func (s *reportService) workoutSeries(ctx context.Context, f access.Filter, asOf time.Time, n int) ([]SeriesPoint, error) {
	buckets := seriesBuckets(asOf, n)
	series := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		count, err := s.reportRepo.CountWorkouts(ctx, f, b.start, b.end)
		if err != nil {
			return nil, err
		}
		series = append(series, SeriesPoint{Label: b.label, Value: count})
	}
	return series, nil
}

func (s *reportService) topExercises(ctx context.Context, f access.Filter, start time.Time, limit int) ([]ExerciseRank, error) {
	rows, err := s.reportRepo.TopExercises(ctx, f, start, limit)
	if err != nil {
		return nil, err
	}
	ranks := make([]ExerciseRank, 0, len(rows))
	for _, row := range rows {
		category := row.Category
		if category == "" {
			category = domain.FallbackCategory
		}
		ranks = append(ranks, ExerciseRank{Name: row.Name, Category: category, Count: row.Count})
	}
	return ranks, nil
}

func (s *reportService) categoryShares(ctx context.Context, f access.Filter, start time.Time, limit int) ([]CategoryShare, error) {
	rows, err := s.reportRepo.CategoryDistribution(ctx, f, start)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	shares := make([]CategoryShare, 0, len(rows))
	for i, row := range rows {
		name := row.Name
		if name == "" {
			name = domain.FallbackCategory
		}
		shares = append(shares, CategoryShare{Name: name, Count: row.Count, Color: colorAt(i)})
	}
	return shares, nil
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekdayFrequency buckets workout creation instants Monday through Sunday.
func (s *reportService) weekdayFrequency(ctx context.Context, f access.Filter, start, end time.Time) ([]SeriesPoint, error) {
	times, err := s.reportRepo.WorkoutCreationTimes(ctx, f, start, end)
	if err != nil {
		return nil, err
	}
	counts := make([]int64, 7)
	for _, t := range times {
		// time.Weekday starts at Sunday; shift so Monday is index 0.
		counts[(int(t.Weekday())+6)%7]++
	}
	series := make([]SeriesPoint, 7)
	for i, label := range weekdayLabels {
		series[i] = SeriesPoint{Label: label, Value: counts[i]}
	}
	return series, nil
}

func (s *reportService) recentStudents(ctx context.Context, f access.Filter, limit int) ([]StudentSummary, error) {
	profiles, err := s.reportRepo.RecentStudents(ctx, f, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]StudentSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, studentSummary(p))
	}
	return summaries, nil
}

func studentSummary(p domain.StudentProfile) StudentSummary {
	name := ""
	if p.User != nil {
		name = p.User.FullName()
	}
	return StudentSummary{ID: p.UserID, Name: name, Goal: p.Goal, JoinedAt: p.CreatedAt}
}

func trainerSummary(p domain.TrainerProfile) TrainerSummary {
	name := ""
	if p.User != nil {
		name = p.User.FullName()
	}
	return TrainerSummary{ID: p.UserID, Name: name, License: p.License, Specialty: p.Specialty}
}

// studentStats builds the per-student block of the trainer report and the
// average attendance across those students.
func (s *reportService) studentStats(ctx context.Context, actor access.Actor, windowStart time.Time, days int) ([]StudentStats, float64, error) {
	workoutScope := access.Workouts(actor)

	profiles, err := s.studentRepo.List(ctx, access.Students(actor))
	if err != nil {
		return nil, 0, err
	}
	countRows, err := s.reportRepo.WorkoutCountsByStudent(ctx, workoutScope, windowStart)
	if err != nil {
		return nil, 0, err
	}
	lastRows, err := s.reportRepo.LastWorkoutByStudent(ctx, workoutScope, windowStart)
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[uuid.UUID]int64, len(countRows))
	for _, row := range countRows {
		counts[row.ID] = row.Count
	}
	lasts := make(map[uuid.UUID]time.Time, len(lastRows))
	for _, row := range lastRows {
		lasts[row.ID] = row.Last
	}

	stats := make([]StudentStats, 0, len(profiles))
	var sum float64
	for _, p := range profiles {
		entry := StudentStats{
			ID:       p.UserID,
			Workouts: counts[p.UserID],
		}
		if p.User != nil {
			entry.Name = p.User.FullName()
		}
		if last, ok := lasts[p.UserID]; ok {
			t := last
			entry.LastWorkout = &t
		}
		entry.Frequency = attendanceFrequency(entry.Workouts, days)
		sum += entry.Frequency
		stats = append(stats, entry)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Workouts != stats[j].Workouts {
			return stats[i].Workouts > stats[j].Workouts
		}
		return stats[i].Name < stats[j].Name
	})

	avg := 0.0
	if len(stats) > 0 {
		avg = round1(sum / float64(len(stats)))
	}
	return stats, avg, nil
}

// trainerStats ranks scoped trainers by authored workouts.
func (s *reportService) trainerStats(ctx context.Context, f access.Filter, limit int) ([]TrainerStats, error) {
	profiles, err := s.trainerRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	workoutRows, err := s.reportRepo.WorkoutCountsByTrainer(ctx, f)
	if err != nil {
		return nil, err
	}
	studentRows, err := s.reportRepo.StudentCountsByTrainer(ctx, f)
	if err != nil {
		return nil, err
	}

	workouts := make(map[uuid.UUID]int64, len(workoutRows))
	for _, row := range workoutRows {
		workouts[row.ID] = row.Count
	}
	students := make(map[uuid.UUID]int64, len(studentRows))
	for _, row := range studentRows {
		students[row.ID] = row.Count
	}

	stats := make([]TrainerStats, 0, len(profiles))
	for _, p := range profiles {
		entry := TrainerStats{ID: p.UserID, Workouts: workouts[p.UserID], Students: students[p.UserID]}
		if p.User != nil {
			entry.Name = p.User.FullName()
		}
		stats = append(stats, entry)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Workouts != stats[j].Workouts {
			return stats[i].Workouts > stats[j].Workouts
		}
		return stats[i].Name < stats[j].Name
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// topGymsByStudents ranks gyms by enrolled students, count desc then name asc.
func (s *reportService) topGymsByStudents(ctx context.Context, limit int) ([]GymRank, error) {
	rows, err := s.reportRepo.StudentCountsByGym(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}

	gyms, err := s.gymRepo.List(ctx, access.All())
	if err != nil {
		return nil, err
	}
	ranks := make([]GymRank, 0, len(gyms))
	for _, g := range gyms {
		ranks = append(ranks, GymRank{ID: g.ID, Name: g.Name, Students: counts[g.ID]})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Students != ranks[j].Students {
			return ranks[i].Students > ranks[j].Students
		}
		return ranks[i].Name < ranks[j].Name
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}
