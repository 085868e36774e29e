package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ruunai/server/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// RunnerRepository defines the interface for interacting with runner accounts.
type RunnerRepository interface {
	Create(ctx context.Context, runner *domain.Runner) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Runner, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Runner, error)
	SetOnboardingCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
}

// TrainingPlanRepository defines the interface for interacting with plan rows.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	// GetByRunnerAndStatus returns the single plan with the given status for
	// the runner, or ErrNotFound. "generating" and "active" are expected to
	// be at most one per runner.
	GetByRunnerAndStatus(ctx context.Context, runnerID primitive.ObjectID, status domain.PlanStatus) (*domain.TrainingPlan, error)
	// GetHistoryByRunner returns historical plans, newest first.
	GetHistoryByRunner(ctx context.Context, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error)
	// Promote flips a generating plan to active and sets its overview texts.
	Promote(ctx context.Context, id primitive.ObjectID, title, description, weeklySummary string) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingDayRepository defines the interface for interacting with day rows.
type TrainingDayRepository interface {
	CreateMany(ctx context.Context, days []domain.TrainingDay) error
	// GetByPlanID returns a plan's days ordered by day number ascending.
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.TrainingDay, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// OnboardingResponseRepository defines the interface for questionnaire answers.
type OnboardingResponseRepository interface {
	// Upsert inserts or replaces the runner's single live response row,
	// bumping its version on replacement.
	Upsert(ctx context.Context, runnerID primitive.ObjectID, payload domain.OnboardingData) error
	GetByRunnerID(ctx context.Context, runnerID primitive.ObjectID) (*domain.OnboardingResponse, error)
	DeleteByRunnerID(ctx context.Context, runnerID primitive.ObjectID) error
}
