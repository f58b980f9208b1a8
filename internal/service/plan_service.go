package service

import (
	"context"
	"errors"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoTrainingDays  = errors.New("at least one training day must be selected")
	ErrProgramNotFound = errors.New("program not found")
	ErrPlanNotFound    = errors.New("plan not found")
)

// GeneratePlanInput is the user's plan-generation choices, combined with the
// stored profile to form the full request.
type GeneratePlanInput struct {
	Goal       string                   `json:"goal"`
	Level      string                   `json:"level"`
	Duration   string                   `json:"duration"`
	Preference string                   `json:"preference"`
	Schedule   domain.ScheduleSelection `json:"schedule"`
}

// PlanGenerator produces a weekly plan for a request. Implemented by
// ai.Generator; abstracted so tests can count and stub model calls.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req ai.PlanRequest) (domain.WorkoutPlan, error)
}

// PlanService owns plan generation, the program catalog, and stored plans.
// The newest stored plan per user is the active one.
type PlanService interface {
	Generate(ctx context.Context, userID string, input GeneratePlanInput) (*domain.StoredPlan, error)
	SavePlan(ctx context.Context, userID string, plan domain.WorkoutPlan) (*domain.StoredPlan, error)
	ListPlans(ctx context.Context, userID string) ([]domain.StoredPlan, error)
	GetPlan(ctx context.Context, userID, planID string) (*domain.StoredPlan, error)
	DeletePlan(ctx context.Context, userID, planID string) error

	Programs(ctx context.Context) []domain.Program
	ActivateProgram(ctx context.Context, userID string, programID int, sel domain.ScheduleSelection) (*domain.StoredPlan, error)
}

type planService struct {
	planRepo    repository.PlanRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	generator   PlanGenerator
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, userRepo repository.UserRepository, profileRepo repository.ProfileRepository, generator PlanGenerator) PlanService {
	return &planService{
		planRepo:    planRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		generator:   generator,
	}
}

// Generate runs the full pipeline: profile lookup, model call (or offline
// fallback), dense weekly expansion, persist. An empty day selection is
// rejected before anything touches the network.
func (s *planService) Generate(ctx context.Context, userID string, input GeneratePlanInput) (*domain.StoredPlan, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	days := input.Schedule.Normalized()
	if len(days) == 0 {
		return nil, ErrNoTrainingDays
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	fitnessProfile, err := s.profileRepo.GetByUserID(ctx, oid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	profile := domain.NormalizeProfile(user, fitnessProfile)

	req := ai.PlanRequest{
		Name:               profile.Name,
		Age:                profile.Age,
		Gender:             profile.Gender,
		Height:             profile.Height,
		Weight:             profile.Weight,
		WaistCircumference: profile.WaistCircumference,
		InjuryHistory:      profile.InjuryHistory,
		Notes:              profile.Notes,
		Goal:               input.Goal,
		Level:              input.Level,
		Duration:           input.Duration,
		Preference:         input.Preference,
		Frequency:          input.Schedule.FrequencyLabel(),
	}

	plan, err := s.generator.GeneratePlan(ctx, req)
	if err != nil {
		// Only pre-flight validation fails here; transport and parse
		// problems already degraded to the offline template.
		return nil, err
	}

	plan.Workouts = domain.ExpandWeeklySchedule(plan, input.Schedule)

	return s.store(ctx, oid, plan)
}

// SavePlan persists a plan the client already holds, e.g. one edited locally.
func (s *planService) SavePlan(ctx context.Context, userID string, plan domain.WorkoutPlan) (*domain.StoredPlan, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	if plan.Name == "" {
		plan.Name = ai.DefaultPlanName
	}
	return s.store(ctx, oid, plan)
}

// ListPlans returns the user's plans, newest (active) first.
func (s *planService) ListPlans(ctx context.Context, userID string) ([]domain.StoredPlan, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByUserID(ctx, oid)
}

// GetPlan fetches one plan, scoped to its owner.
func (s *planService) GetPlan(ctx context.Context, userID, planID string) (*domain.StoredPlan, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseObjectID(planID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != oid {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// DeletePlan removes one plan, scoped to its owner.
func (s *planService) DeletePlan(ctx context.Context, userID, planID string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}
	pid, err := parseObjectID(planID)
	if err != nil {
		return err
	}
	err = s.planRepo.Delete(ctx, pid, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// Programs returns the built-in program catalog.
func (s *planService) Programs(ctx context.Context) []domain.Program {
	return domain.Programs()
}

// ActivateProgram schedules a catalog program onto the selected weekdays.
// This is append mode: the program's days are concatenated onto the user's
// active plan as-is, duplicates for an already-scheduled weekday included,
// and the result is stored as a new plan so it becomes the active one.
// Without an existing plan, a fresh shell plan is created around the program.
func (s *planService) ActivateProgram(ctx context.Context, userID string, programID int, sel domain.ScheduleSelection) (*domain.StoredPlan, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	program, ok := domain.ProgramByID(programID)
	if !ok {
		return nil, ErrProgramNotFound
	}
	scheduled := program.ScheduleDays(sel)
	if len(scheduled) == 0 {
		return nil, ErrNoTrainingDays
	}

	plan := s.basePlan(ctx, oid)
	plan.Workouts = append(plan.Workouts, scheduled...)
	// A plan that was never named (or still carries the generation default)
	// takes the program's title.
	if plan.Name == "" || plan.Name == ai.DefaultPlanName {
		plan.Name = program.Title
	}

	return s.store(ctx, oid, plan)
}

// basePlan returns a copy of the active plan's data, or a fresh shell plan
// when the user has none.
func (s *planService) basePlan(ctx context.Context, userID primitive.ObjectID) domain.WorkoutPlan {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err == nil && len(plans) > 0 {
		return plans[0].PlanData
	}
	return domain.WorkoutPlan{
		Name:      "我的健身计划",
		Goal:      domain.PlanGoal{Name: "综合训练", Focus: "保持规律运动习惯"},
		Level:     "自定义",
		Frequency: "自定义",
		Duration:  "多变",
		Workouts:  []domain.DayPlan{},
		Tips:      []string{},
	}
}

// store persists a WorkoutPlan as the user's newest (active) stored plan.
func (s *planService) store(ctx context.Context, userID primitive.ObjectID, plan domain.WorkoutPlan) (*domain.StoredPlan, error) {
	stored := &domain.StoredPlan{
		UserID:    userID,
		Name:      plan.Name,
		Goal:      plan.Goal.Name,
		Level:     plan.Level,
		Frequency: plan.Frequency,
		Duration:  plan.Duration,
		PlanData:  plan,
	}
	id, err := s.planRepo.Create(ctx, stored)
	if err != nil {
		return nil, err
	}
	stored.ID = id
	return stored, nil
}
