package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus tracks a plan through its lifecycle.
type PlanStatus string

const (
	PlanStatusGenerating PlanStatus = "generating"
	PlanStatusActive     PlanStatus = "active"
	PlanStatusHistorical PlanStatus = "historical"
)

// PlanLanguage is the language the plan text is generated in.
type PlanLanguage string

const (
	LanguageEnglish    PlanLanguage = "en"
	LanguagePortuguese PlanLanguage = "pt-BR"
	LanguageSpanish    PlanLanguage = "es"
)

// IsValidLanguage reports whether l is one of the supported plan languages.
func IsValidLanguage(l PlanLanguage) bool {
	switch l {
	case LanguageEnglish, LanguagePortuguese, LanguageSpanish:
		return true
	}
	return false
}

const (
	// PlanDurationDays is the fixed span of every plan.
	PlanDurationDays = 30
	// MaxGenerationCount caps regenerations per plan lineage.
	MaxGenerationCount = 10
	// MaxTextLength bounds every free-text field stored from AI output.
	MaxTextLength = 2000
	// StaleLockAge is how old a "generating" plan must be before it is
	// treated as abandoned and reaped.
	StaleLockAge = 5 * time.Minute
)

// TrainingPlan represents one generated 30-day plan for a runner.
// A plan is inserted with status "generating" (the advisory lock row),
// promoted to "active" on successful commit, and later either demoted to
// "historical" (superseded by a fresh plan) or deleted (superseded by a
// regeneration of the same lineage).
type TrainingPlan struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RunnerID        primitive.ObjectID  `bson:"userId" json:"userId"`
	Status          PlanStatus          `bson:"status" json:"status"`
	Title           string              `bson:"title,omitempty" json:"title,omitempty"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	WeeklySummary   string              `bson:"weeklySummary,omitempty" json:"weeklySummary,omitempty"`
	Language        PlanLanguage        `bson:"language" json:"language"`
	StartsAt        time.Time           `bson:"startsAt" json:"startsAt"`
	EndsAt          time.Time           `bson:"endsAt" json:"endsAt"` // StartsAt + 29 days
	Feedback        *PlanFeedback       `bson:"feedback,omitempty" json:"feedback,omitempty"`
	PreviousPlanID  *primitive.ObjectID `bson:"previousPlanId,omitempty" json:"previousPlanId,omitempty"`
	GenerationCount int                 `bson:"generationCount" json:"generationCount"` // starts at 1
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsExpired reports whether the plan's window ended before the given day.
func (p *TrainingPlan) IsExpired(today time.Time) bool {
	y, m, d := today.Date()
	return p.EndsAt.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
