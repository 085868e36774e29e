package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ruunai/server/internal/ai"
	"ruunai/server/internal/domain"
	"ruunai/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrGenerationInProgress   = errors.New("plan generation already in progress")
	ErrOnboardingNotFound     = errors.New("onboarding data not found")
	ErrRegenerationLimit      = errors.New("regeneration limit reached")
	ErrPlanNotFound           = errors.New("plan not found")
	ErrInvalidGenerateRequest = errors.New("invalid generate request")
	ErrPlanStorageFailed      = errors.New("failed to store generated plan")
)

// GenerationType distinguishes a fresh plan cycle from a same-lineage
// regeneration.
type GenerationType string

const (
	// GenerationNew starts a fresh 30-day window; the predecessor is archived.
	GenerationNew GenerationType = "new"
	// GenerationRegenerate replaces the predecessor in place and counts
	// against the lineage's regeneration cap.
	GenerationRegenerate GenerationType = "regenerate"
)

// GenerateRequest is the validated plan-generation request.
type GenerateRequest struct {
	Type     GenerationType
	Language domain.PlanLanguage
	Feedback *domain.PlanFeedback
}

// PlanWithDays is the committed plan plus its days ordered by day number.
type PlanWithDays struct {
	Plan *domain.TrainingPlan `json:"plan"`
	Days []domain.TrainingDay `json:"days"`
}

// --- Service Interface ---
type PlanService interface {
	Generate(ctx context.Context, runnerID primitive.ObjectID, req GenerateRequest) (*PlanWithDays, error)
	GetActivePlan(ctx context.Context, runnerID primitive.ObjectID) (*PlanWithDays, error)
	GetHistory(ctx context.Context, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error)
	GetHistoricalPlanDays(ctx context.Context, runnerID, planID primitive.ObjectID) ([]domain.TrainingDay, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.TrainingPlanRepository
	dayRepo      repository.TrainingDayRepository
	responseRepo repository.OnboardingResponseRepository
	generator    ai.Generator
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	dayRepo repository.TrainingDayRepository,
	responseRepo repository.OnboardingResponseRepository,
	generator ai.Generator,
) PlanService {
	return &planService{
		planRepo:     planRepo,
		dayRepo:      dayRepo,
		responseRepo: responseRepo,
		generator:    generator,
	}
}

// Generate runs the whole plan-generation pipeline: advisory lock, context
// assembly, a single model call, output validation, and the multi-step
// commit with compensating deletes. Cross-request exclusion is cooperative
// only: the check-then-insert on the "generating" row has a race window,
// bounded by the staleness reaper on the next attempt.
func (s *planService) Generate(ctx context.Context, runnerID primitive.ObjectID, req GenerateRequest) (*PlanWithDays, error) {
	// 1. Validate the request
	if runnerID == primitive.NilObjectID {
		return nil, errors.New("runner ID is required")
	}
	if req.Type != GenerationNew && req.Type != GenerationRegenerate {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidGenerateRequest, req.Type)
	}
	if !domain.IsValidLanguage(req.Language) {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidGenerateRequest, req.Language)
	}
	if req.Feedback != nil {
		if err := req.Feedback.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGenerateRequest, err)
		}
	}

	// 2. Advisory lock check: at most one in-flight generation per runner.
	// A "generating" row younger than the staleness window rejects the
	// request; an older one is presumed abandoned and reaped.
	if generating, err := s.planRepo.GetByRunnerAndStatus(ctx, runnerID, domain.PlanStatusGenerating); err == nil {
		if time.Since(generating.CreatedAt) < domain.StaleLockAge {
			return nil, ErrGenerationInProgress
		}
		log.Printf("Reaping stale generating plan %s for runner %s", generating.ID.Hex(), runnerID.Hex())
		s.deletePlanAndDays(ctx, generating.ID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Onboarding answers must exist before anything is written.
	response, err := s.responseRepo.GetByRunnerID(ctx, runnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOnboardingNotFound
		}
		return nil, err
	}

	// 4. Fetch the current active plan, if any.
	var activePlan *domain.TrainingPlan
	if plan, err := s.planRepo.GetByRunnerAndStatus(ctx, runnerID, domain.PlanStatusActive); err == nil {
		activePlan = plan
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 5. Regeneration cap: checked before any write so a capped request
	// leaves zero rows behind.
	if req.Type == GenerationRegenerate && activePlan != nil {
		if activePlan.GenerationCount >= domain.MaxGenerationCount {
			return nil, ErrRegenerationLimit
		}
	}

	// 6. Previous-plan summary, only when a fresh cycle supersedes an
	// active plan.
	var previousSummary *ai.PreviousPlanSummary
	if activePlan != nil && req.Type == GenerationNew {
		previousDays, err := s.dayRepo.GetByPlanID(ctx, activePlan.ID)
		if err != nil {
			return nil, err
		}
		previousSummary = ai.BuildPreviousPlanSummary(activePlan, previousDays)
	}

	// 7. Insert the lock row: a "generating" plan carrying the window,
	// language, feedback, lineage reference and generation counter.
	now := time.Now().UTC()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 0, domain.PlanDurationDays-1)

	generationCount := 1
	var previousPlanID *primitive.ObjectID
	if activePlan != nil {
		id := activePlan.ID
		previousPlanID = &id
		if req.Type == GenerationRegenerate {
			generationCount = activePlan.GenerationCount + 1
		}
	}

	lockPlan := &domain.TrainingPlan{
		RunnerID:        runnerID,
		Status:          domain.PlanStatusGenerating,
		Language:        req.Language,
		StartsAt:        startDate,
		EndsAt:          endDate,
		Feedback:        req.Feedback,
		PreviousPlanID:  previousPlanID,
		GenerationCount: generationCount,
	}
	lockPlanID, err := s.planRepo.Create(ctx, lockPlan)
	if err != nil {
		return nil, err
	}

	// Every failure past this point must release the lock row.

	// 8. Assemble the generation input and invoke the model (one attempt,
	// no retry).
	input := ai.BuildPlanInput(&response.Payload, startDate, req.Language, previousSummary, req.Feedback)
	rawOutput, err := s.generator.GeneratePlan(ctx, input)
	if err != nil {
		s.releaseLock(ctx, lockPlanID)
		return nil, err
	}

	// 9. Validate the untrusted response before anything reaches storage.
	planOutput, err := ai.ValidatePlanOutput(rawOutput)
	if err != nil {
		s.releaseLock(ctx, lockPlanID)
		return nil, err
	}

	// 10. Commit: batch-insert the day rows, then promote the plan.
	days := make([]domain.TrainingDay, 0, len(planOutput.Days))
	for _, d := range planOutput.Days {
		days = append(days, domain.TrainingDay{
			PlanID:          lockPlanID,
			Date:            startDate.AddDate(0, 0, d.DayNumber-1),
			DayNumber:       d.DayNumber,
			WorkoutType:     domain.WorkoutType(d.WorkoutType),
			Title:           domain.Truncate(d.Title, domain.MaxTextLength),
			Description:     domain.Truncate(d.Description, domain.MaxTextLength),
			DistanceKm:      d.DistanceKm,
			DurationMinutes: d.DurationMinutes,
			TargetPace:      domain.Truncate(d.TargetPace, domain.MaxTextLength),
			Warmup:          domain.Truncate(d.Warmup, domain.MaxTextLength),
			Cooldown:        domain.Truncate(d.Cooldown, domain.MaxTextLength),
			Notes:           domain.Truncate(d.Notes, domain.MaxTextLength),
		})
	}
	if err := s.dayRepo.CreateMany(ctx, days); err != nil {
		log.Printf("Failed to insert training days for plan %s: %v", lockPlanID.Hex(), err)
		s.deletePlanAndDays(ctx, lockPlanID)
		return nil, fmt.Errorf("%w: %v", ErrPlanStorageFailed, err)
	}

	if err := s.planRepo.Promote(ctx, lockPlanID,
		domain.Truncate(planOutput.PlanOverview.Title, domain.MaxTextLength),
		domain.Truncate(planOutput.PlanOverview.Description, domain.MaxTextLength),
		domain.Truncate(planOutput.PlanOverview.WeeklySummary, domain.MaxTextLength),
	); err != nil {
		s.deletePlanAndDays(ctx, lockPlanID)
		return nil, fmt.Errorf("%w: %v", ErrPlanStorageFailed, err)
	}

	// 11. Handle the superseded plan: a regeneration deletes it outright,
	// a fresh cycle keeps it as history.
	if activePlan != nil {
		if req.Type == GenerationRegenerate {
			s.deletePlanAndDays(ctx, activePlan.ID)
		} else {
			if err := s.planRepo.SetStatus(ctx, activePlan.ID, domain.PlanStatusHistorical); err != nil {
				log.Printf("Failed to archive superseded plan %s: %v", activePlan.ID.Hex(), err)
			}
		}
	}

	// 12. Re-read the committed plan and its ordered days as the response.
	committedPlan, err := s.planRepo.GetByID(ctx, lockPlanID)
	if err != nil {
		return nil, err
	}
	committedDays, err := s.dayRepo.GetByPlanID(ctx, lockPlanID)
	if err != nil {
		return nil, err
	}
	return &PlanWithDays{Plan: committedPlan, Days: committedDays}, nil
}

// GetActivePlan returns the runner's active plan with its days, or an empty
// result when none exists.
func (s *planService) GetActivePlan(ctx context.Context, runnerID primitive.ObjectID) (*PlanWithDays, error) {
	plan, err := s.planRepo.GetByRunnerAndStatus(ctx, runnerID, domain.PlanStatusActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &PlanWithDays{Days: []domain.TrainingDay{}}, nil
		}
		return nil, err
	}
	days, err := s.dayRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []domain.TrainingDay{}
	}
	return &PlanWithDays{Plan: plan, Days: days}, nil
}

// GetHistory returns the runner's historical plans, newest first.
func (s *planService) GetHistory(ctx context.Context, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	plans, err := s.planRepo.GetHistoryByRunner(ctx, runnerID)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.TrainingPlan{}
	}
	return plans, nil
}

// GetHistoricalPlanDays returns a plan's days after verifying the plan
// belongs to the runner.
func (s *planService) GetHistoricalPlanDays(ctx context.Context, runnerID, planID primitive.ObjectID) ([]domain.TrainingDay, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.RunnerID != runnerID {
		// Ownership mismatch is indistinguishable from absence to the caller.
		return nil, ErrPlanNotFound
	}
	days, err := s.dayRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []domain.TrainingDay{}
	}
	return days, nil
}

// releaseLock removes the lock row after a failed generation. Best effort:
// a cleanup failure is logged, never surfaced, and the staleness reaper
// covers it on the next attempt.
func (s *planService) releaseLock(ctx context.Context, planID primitive.ObjectID) {
	if err := s.planRepo.Delete(ctx, planID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Failed to release generation lock %s: %v", planID.Hex(), err)
	}
}

// deletePlanAndDays removes a plan row and any day rows attached to it.
// Best effort for the same reason as releaseLock.
func (s *planService) deletePlanAndDays(ctx context.Context, planID primitive.ObjectID) {
	if err := s.dayRepo.DeleteByPlanID(ctx, planID); err != nil {
		log.Printf("Failed to delete days for plan %s: %v", planID.Hex(), err)
	}
	if err := s.planRepo.Delete(ctx, planID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Failed to delete plan %s: %v", planID.Hex(), err)
	}
}
