package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrRecordNotFound is returned for missing or foreign workout records.
	ErrRecordNotFound = errors.New("workout record not found")
	// ErrInvalidDateRange is returned when a record-list filter is half-open
	// or not in the YYYY-MM-DD format.
	ErrInvalidDateRange = errors.New("both range dates must use the YYYY-MM-DD format")
)

// StatsService owns workout records, the per-day activity rollups derived
// from them, and the achievement badges those rollups unlock.
type StatsService interface {
	AddRecord(ctx context.Context, userID string, record domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	UpdateRecord(ctx context.Context, userID, recordID string, record domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	DeleteRecord(ctx context.Context, userID, recordID string) error
	ListRecords(ctx context.Context, userID, from, to string) ([]domain.WorkoutRecord, error)

	TodayStats(ctx context.Context, userID string) (domain.DailyStats, error)
	WeeklyStats(ctx context.Context, userID string) ([]domain.DailyStats, error)
	WeeklySummary(ctx context.Context, userID string) (domain.WeekSummary, error)

	Achievements(ctx context.Context, userID string) ([]domain.Achievement, error)
}

type statsService struct {
	recordRepo      repository.RecordRepository
	statsRepo       repository.StatsRepository
	achievementRepo repository.AchievementRepository
	now             func() time.Time
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(recordRepo repository.RecordRepository, statsRepo repository.StatsRepository, achievementRepo repository.AchievementRepository) StatsService {
	return &statsService{
		recordRepo:      recordRepo,
		statsRepo:       statsRepo,
		achievementRepo: achievementRepo,
		now:             time.Now,
	}
}

// AddRecord logs one workout session, bumps the day's rollup and re-checks
// achievements. Badge checks are best-effort: a failure there never rolls
// back the record.
func (s *statsService) AddRecord(ctx context.Context, userID string, record domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	record.UserID = oid
	if record.Date == "" {
		record.Date = s.now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, record.Date); err != nil {
		return nil, errors.New("date must use the YYYY-MM-DD format")
	}

	id, err := s.recordRepo.Create(ctx, &record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.statsRepo.Increment(ctx, oid, record.Date, recordDelta(record, 1)); err != nil {
		log.Printf("failed to bump daily stats for %s: %v", record.Date, err)
	}
	s.checkAchievements(ctx, oid)

	return &record, nil
}

// UpdateRecord rewrites a record and moves its contribution between the old
// and new day rollups.
func (s *statsService) UpdateRecord(ctx context.Context, userID, recordID string, record domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	rid, err := parseObjectID(recordID)
	if err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.GetByID(ctx, rid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if existing.UserID != oid {
		return nil, ErrRecordNotFound
	}

	record.ID = rid
	record.UserID = oid
	if record.Date == "" {
		record.Date = existing.Date
	}
	if err := s.recordRepo.Update(ctx, &record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	// Compensating increments keep the rollups consistent even when the
	// record moved to another date.
	if err := s.statsRepo.Increment(ctx, oid, existing.Date, recordDelta(*existing, -1)); err != nil {
		log.Printf("failed to unwind daily stats for %s: %v", existing.Date, err)
	}
	if err := s.statsRepo.Increment(ctx, oid, record.Date, recordDelta(record, 1)); err != nil {
		log.Printf("failed to bump daily stats for %s: %v", record.Date, err)
	}

	return &record, nil
}

// DeleteRecord removes a record and unwinds its day rollup.
func (s *statsService) DeleteRecord(ctx context.Context, userID, recordID string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}
	rid, err := parseObjectID(recordID)
	if err != nil {
		return err
	}

	existing, err := s.recordRepo.GetByID(ctx, rid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if existing.UserID != oid {
		return ErrRecordNotFound
	}

	if err := s.recordRepo.Delete(ctx, rid, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if err := s.statsRepo.Increment(ctx, oid, existing.Date, recordDelta(*existing, -1)); err != nil {
		log.Printf("failed to unwind daily stats for %s: %v", existing.Date, err)
	}
	return nil
}

// ListRecords returns the user's workout records, newest date first. With
// from and to both set, the list is narrowed to that inclusive date range.
func (s *statsService) ListRecords(ctx context.Context, userID, from, to string) ([]domain.WorkoutRecord, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	if from == "" && to == "" {
		return s.recordRepo.GetByUserID(ctx, oid)
	}
	for _, date := range []string{from, to} {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return nil, ErrInvalidDateRange
		}
	}
	return s.recordRepo.GetByUserIDInRange(ctx, oid, from, to)
}

// TodayStats returns today's rollup, zero-valued when nothing was logged.
func (s *statsService) TodayStats(ctx context.Context, userID string) (domain.DailyStats, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return domain.DailyStats{}, err
	}
	today := s.now().Format(domain.DateLayout)
	byDate, err := s.statsRepo.GetByDates(ctx, oid, []string{today})
	if err != nil {
		return domain.DailyStats{}, err
	}
	if stats, ok := byDate[today]; ok {
		return stats, nil
	}
	return domain.DailyStats{Date: today}, nil
}

// WeeklyStats returns the last seven days oldest first, with missing days
// zero-filled so charts always render a full week.
func (s *statsService) WeeklyStats(ctx context.Context, userID string) ([]domain.DailyStats, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	dates := domain.WeekDates(s.now())
	byDate, err := s.statsRepo.GetByDates(ctx, oid, dates)
	if err != nil {
		return nil, err
	}

	week := make([]domain.DailyStats, 0, len(dates))
	for _, date := range dates {
		if stats, ok := byDate[date]; ok {
			week = append(week, stats)
			continue
		}
		week = append(week, domain.DailyStats{Date: date})
	}
	return week, nil
}

// WeeklySummary reduces the last seven days into the home-page totals.
func (s *statsService) WeeklySummary(ctx context.Context, userID string) (domain.WeekSummary, error) {
	week, err := s.WeeklyStats(ctx, userID)
	if err != nil {
		return domain.WeekSummary{}, err
	}
	return domain.SummarizeWeek(week), nil
}

// Achievements merges the static badge catalog with the user's unlocks.
func (s *statsService) Achievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.achievementRepo.GetByUserID(ctx, oid)
	if err != nil {
		return nil, err
	}

	unlocked := make(map[string]string, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.Code] = u.UnlockedDate
	}

	catalog := domain.AchievementCatalog()
	for i := range catalog {
		if date, ok := unlocked[catalog[i].Code]; ok {
			catalog[i].Unlocked = true
			catalog[i].UnlockedDate = date
		}
	}
	return catalog, nil
}

// checkAchievements evaluates the countable badge rules against the user's
// full record history and unlocks whatever newly qualifies. Unlock writes are
// idempotent, so re-checking already-earned badges is harmless.
func (s *statsService) checkAchievements(ctx context.Context, userID primitive.ObjectID) {
	records, err := s.recordRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("achievement check skipped: %v", err)
		return
	}

	today := s.now().Format(domain.DateLayout)
	month := today[:7] // "2006-01"

	var totalCalories, monthCount, morningCount, strengthCount, cardioCount int
	for _, r := range records {
		totalCalories += r.Calories
		if strings.HasPrefix(r.Date, month) {
			monthCount++
		}
		switch r.Type {
		case "strength":
			strengthCount++
		case "cardio":
			cardioCount++
		}
		if strings.Contains(r.Title, "晨") {
			morningCount++
		}
	}

	unlock := func(code string) {
		if err := s.achievementRepo.Unlock(ctx, userID, code, today); err != nil {
			log.Printf("failed to unlock achievement %s: %v", code, err)
		}
	}

	if len(records) >= 1 {
		unlock("a1")
	}
	if hasStreak(records, 7) {
		unlock("a2")
	}
	if totalCalories >= 10000 {
		unlock("a3")
	}
	if morningCount >= 10 {
		unlock("a4")
	}
	if strengthCount >= 50 {
		unlock("a5")
	}
	if cardioCount >= 50 {
		unlock("a6")
	}
	if len(records) >= 100 {
		unlock("a7")
	}
	if monthCount >= 20 {
		unlock("a8")
	}
}

// hasStreak reports whether the records cover n consecutive calendar days.
func hasStreak(records []domain.WorkoutRecord, n int) bool {
	days := make(map[string]bool, len(records))
	for _, r := range records {
		days[r.Date] = true
	}
	for date := range days {
		start, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			continue
		}
		streak := 1
		for streak < n {
			next := start.AddDate(0, 0, streak).Format(domain.DateLayout)
			if !days[next] {
				break
			}
			streak++
		}
		if streak >= n {
			return true
		}
	}
	return false
}

// recordDelta maps a record onto the rollup counters, with sign -1 used to
// unwind a deleted or rewritten record.
func recordDelta(r domain.WorkoutRecord, sign int) domain.DailyStats {
	return domain.DailyStats{
		Calories:      sign * r.Calories,
		ActiveMinutes: sign * r.Duration,
		WorkoutCount:  sign * 1,
	}
}
