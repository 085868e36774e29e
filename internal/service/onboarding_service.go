package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ruunai/server/internal/domain"
	"ruunai/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRunnerNotFound    = errors.New("runner not found")
	ErrInvalidOnboarding = errors.New("invalid onboarding payload")
)

// ProfileStatus is the dashboard aggregate: who the runner is and where they
// stand in the onboarding -> active plan funnel.
type ProfileStatus struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	FullName            string `json:"full_name,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	HasResponses        bool   `json:"has_responses"`
	HasActivePlan       bool   `json:"has_active_plan"`
	PlanExpired         bool   `json:"plan_expired"`
	GenerationCount     int    `json:"generation_count"`
}

// --- Service Interface ---
type OnboardingService interface {
	Submit(ctx context.Context, runnerID primitive.ObjectID, payload domain.OnboardingData) error
	ClearResponses(ctx context.Context, runnerID primitive.ObjectID) error
	GetProfileStatus(ctx context.Context, runnerID primitive.ObjectID) (*ProfileStatus, error)
}

// --- Service Implementation ---

// onboardingService implements the OnboardingService interface.
type onboardingService struct {
	runnerRepo   repository.RunnerRepository
	responseRepo repository.OnboardingResponseRepository
	planRepo     repository.TrainingPlanRepository
}

// NewOnboardingService creates a new instance of onboardingService.
func NewOnboardingService(
	runnerRepo repository.RunnerRepository,
	responseRepo repository.OnboardingResponseRepository,
	planRepo repository.TrainingPlanRepository,
) OnboardingService {
	return &onboardingService{
		runnerRepo:   runnerRepo,
		responseRepo: responseRepo,
		planRepo:     planRepo,
	}
}

// Submit validates and stores the runner's questionnaire answers, then marks
// onboarding as completed.
func (s *onboardingService) Submit(ctx context.Context, runnerID primitive.ObjectID, payload domain.OnboardingData) error {
	// 1. Validate input
	if runnerID == primitive.NilObjectID {
		return errors.New("runner ID is required")
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOnboarding, err)
	}

	// 2. Upsert the single live response row
	if err := s.responseRepo.Upsert(ctx, runnerID, payload); err != nil {
		return err
	}

	// 3. Flag the runner as onboarded
	if err := s.runnerRepo.SetOnboardingCompleted(ctx, runnerID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRunnerNotFound
		}
		return err
	}
	return nil
}

// ClearResponses deletes the runner's answers and resets the onboarding flag,
// sending the runner back through the questionnaire.
func (s *onboardingService) ClearResponses(ctx context.Context, runnerID primitive.ObjectID) error {
	if runnerID == primitive.NilObjectID {
		return errors.New("runner ID is required")
	}

	if err := s.responseRepo.DeleteByRunnerID(ctx, runnerID); err != nil {
		return err
	}

	if err := s.runnerRepo.SetOnboardingCompleted(ctx, runnerID, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRunnerNotFound
		}
		return err
	}
	return nil
}

// GetProfileStatus assembles the dashboard aggregate for a runner.
func (s *onboardingService) GetProfileStatus(ctx context.Context, runnerID primitive.ObjectID) (*ProfileStatus, error) {
	// 1. The runner record
	runner, err := s.runnerRepo.GetByID(ctx, runnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunnerNotFound
		}
		return nil, err
	}

	status := &ProfileStatus{
		ID:                  runner.ID.Hex(),
		Email:               runner.Email,
		FullName:            runner.FullName,
		OnboardingCompleted: runner.OnboardingCompleted,
	}

	// 2. Stored questionnaire answers
	_, err = s.responseRepo.GetByRunnerID(ctx, runnerID)
	switch {
	case err == nil:
		status.HasResponses = true
	case errors.Is(err, repository.ErrNotFound):
		// no responses yet
	default:
		return nil, err
	}

	// 3. Active plan state
	plan, err := s.planRepo.GetByRunnerAndStatus(ctx, runnerID, domain.PlanStatusActive)
	switch {
	case err == nil:
		status.HasActivePlan = true
		status.PlanExpired = plan.IsExpired(time.Now().UTC())
		status.GenerationCount = plan.GenerationCount
	case errors.Is(err, repository.ErrNotFound):
		// no active plan
	default:
		return nil, err
	}

	return status, nil
}
