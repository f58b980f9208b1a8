package service_test

import (
	"context"
	"time"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.RepositoryError("duplicate email")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	// Store a copy: the service clears the password hash on its pointer
	// after Create, as the real repository persists independently.
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) SetAvatarURL(ctx context.Context, id primitive.ObjectID, avatarURL string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.FitnessProfile
}

func newFakeProfileRepo(profiles ...*domain.FitnessProfile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[primitive.ObjectID]*domain.FitnessProfile{}}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.FitnessProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

type fakePlanRepo struct {
	plans []domain.StoredPlan
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.StoredPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	// Newest first, matching the mongo sort.
	r.plans = append([]domain.StoredPlan{*plan}, r.plans...)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.StoredPlan, error) {
	for _, p := range r.plans {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StoredPlan, error) {
	out := []domain.StoredPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	for i, p := range r.plans {
		if p.ID == id && p.UserID == userID {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMessageRepo struct {
	messages []domain.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *domain.ChatMessage) (primitive.ObjectID, error) {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return msg.ID, nil
}

func (r *fakeMessageRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error) {
	out := []domain.ChatMessage{}
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type fakeRecordRepo struct {
	records []domain.WorkoutRecord
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *domain.WorkoutRecord) (primitive.ObjectID, error) {
	record.ID = primitive.NewObjectID()
	r.records = append(r.records, *record)
	return record.ID, nil
}

func (r *fakeRecordRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			copied := rec
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRecordRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutRecord, error) {
	out := []domain.WorkoutRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) GetByUserIDInRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WorkoutRecord, error) {
	out := []domain.WorkoutRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, record *domain.WorkoutRecord) error {
	for i, rec := range r.records {
		if rec.ID == record.ID && rec.UserID == record.UserID {
			r.records[i] = *record
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeRecordRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	for i, rec := range r.records {
		if rec.ID == id && rec.UserID == userID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type statsKey struct {
	userID primitive.ObjectID
	date   string
}

type fakeStatsRepo struct {
	stats map[statsKey]domain.DailyStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: map[statsKey]domain.DailyStats{}}
}

func (r *fakeStatsRepo) Increment(ctx context.Context, userID primitive.ObjectID, date string, delta domain.DailyStats) error {
	key := statsKey{userID, date}
	s := r.stats[key]
	s.Date = date
	s.Calories += delta.Calories
	s.Steps += delta.Steps
	s.ActiveMinutes += delta.ActiveMinutes
	s.WorkoutCount += delta.WorkoutCount
	r.stats[key] = s
	return nil
}

func (r *fakeStatsRepo) GetByDates(ctx context.Context, userID primitive.ObjectID, dates []string) (map[string]domain.DailyStats, error) {
	out := map[string]domain.DailyStats{}
	for _, date := range dates {
		if s, ok := r.stats[statsKey{userID, date}]; ok {
			out[date] = s
		}
	}
	return out, nil
}

type fakeAchievementRepo struct {
	unlocks []domain.AchievementUnlock
}

func (r *fakeAchievementRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.AchievementUnlock, error) {
	out := []domain.AchievementUnlock{}
	for _, u := range r.unlocks {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) Unlock(ctx context.Context, userID primitive.ObjectID, code, date string) error {
	for _, u := range r.unlocks {
		if u.UserID == userID && u.Code == code {
			return nil
		}
	}
	r.unlocks = append(r.unlocks, domain.AchievementUnlock{UserID: userID, Code: code, UnlockedDate: date})
	return nil
}

func (r *fakeAchievementRepo) has(code string) bool {
	for _, u := range r.unlocks {
		if u.Code == code {
			return true
		}
	}
	return false
}

// countingGenerator replays a canned plan and counts how often it was asked.
type countingGenerator struct {
	calls int
	plan  domain.WorkoutPlan
	err   error
	last  ai.PlanRequest
}

func (g *countingGenerator) GeneratePlan(ctx context.Context, req ai.PlanRequest) (domain.WorkoutPlan, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return domain.WorkoutPlan{}, g.err
	}
	return g.plan, nil
}

// stubChatClient replays a canned reply and records the messages it saw.
type stubChatClient struct {
	content string
	err     error
	seen    [][]ai.Message
}

func (c *stubChatClient) ChatCompletion(ctx context.Context, messages []ai.Message) (string, error) {
	c.seen = append(c.seen, messages)
	if c.err != nil {
		return "", c.err
	}
	return c.content, nil
}
