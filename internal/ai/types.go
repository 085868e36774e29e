package ai

import "ruunai/server/internal/domain"

// PlanInput is the generation-input document sent to the model, serialized
// as JSON. Its schema is a versioned contract with the prompt text in
// prompt.go; changing either means changing both.
type PlanInput struct {
	RunnerProfile       RunnerProfile        `json:"runner_profile"`
	PlanConfig          PlanConfig           `json:"plan_config"`
	PreviousPlanSummary *PreviousPlanSummary `json:"previous_plan_summary"`
	Feedback            *domain.PlanFeedback `json:"feedback"`
}

// RunnerProfile carries the onboarding answers in the wire shape the prompt
// describes.
type RunnerProfile struct {
	Goal                     domain.Goal               `json:"goal"`
	EventDate                string                    `json:"event_date,omitempty"`
	TargetTime               string                    `json:"target_time,omitempty"`
	TargetPace               string                    `json:"target_pace,omitempty"`
	ExperienceLevel          domain.ExperienceLevel    `json:"experience_level"`
	CanRun20MinsContinuously *bool                     `json:"can_run_20_mins_continuously,omitempty"`
	RecentBest5K             string                    `json:"recent_best_5k,omitempty"`
	RecentBest10K            string                    `json:"recent_best_10k,omitempty"`
	RecentEasyPace           string                    `json:"recent_easy_pace,omitempty"`
	WeeklyVolume             domain.WeeklyVolume       `json:"weekly_volume"`
	DaysPerWeek              int                       `json:"days_per_week"`
	PreferredDays            []string                  `json:"preferred_days,omitempty"`
	LongestRecentRun         *float64                  `json:"longest_recent_run,omitempty"`
	NoRecentRun              *bool                     `json:"no_recent_run,omitempty"`
	InjuryTypes              []domain.InjuryType       `json:"injury_types"`
	InjuryDetails            string                    `json:"injury_details,omitempty"`
	Equipment                []string                  `json:"equipment,omitempty"`
	PlanStyle                domain.PlanStyle          `json:"plan_style"`
	PlanFlexibility          domain.PlanFlexibility    `json:"plan_flexibility"`
	IntensityTolerance       domain.IntensityTolerance `json:"intensity_tolerance"`
}

// PlanConfig carries the derived calendar structures. TrainingDayNumbers is
// the authoritative list of day numbers the model may populate; empty means
// no constraint.
type PlanConfig struct {
	StartDate          string         `json:"start_date"` // YYYY-MM-DD
	StartDayOfWeek     string         `json:"start_day_of_week"`
	DurationDays       int            `json:"duration_days"`
	Language           string         `json:"language"`
	DayNumberToWeekday map[int]string `json:"day_number_to_weekday"`
	TrainingDayNumbers []int          `json:"training_day_numbers"`
}

// PreviousPlanSummary condenses the plan being superseded so the model can
// build on it progressively.
type PreviousPlanSummary struct {
	TotalDistanceKm         float64        `json:"total_distance_km"`
	TotalTrainingDays       int            `json:"total_training_days"`
	WorkoutTypeDistribution map[string]int `json:"workout_type_distribution"`
	WeeklyVolumesKm         []float64      `json:"weekly_volumes_km"`
	PlanTitle               string         `json:"plan_title"`
}

// PlanOutput is the validated shape of the model's response.
type PlanOutput struct {
	PlanOverview PlanOverview `json:"plan_overview"`
	Days         []DayOutput  `json:"days"`
}

// PlanOverview is the plan-level text emitted by the model.
type PlanOverview struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	WeeklySummary string `json:"weekly_summary"`
}

// DayOutput is one scheduled workout emitted by the model. Rest days are
// omitted entirely.
type DayOutput struct {
	DayNumber       int      `json:"day_number"`
	WorkoutType     string   `json:"workout_type"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	TargetPace      string   `json:"target_pace,omitempty"`
	Warmup          string   `json:"warmup,omitempty"`
	Cooldown        string   `json:"cooldown,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}
