package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType is the fixed set of workout categories the AI may emit.
type WorkoutType string

const (
	WorkoutEasyRun       WorkoutType = "easy_run"
	WorkoutTempo         WorkoutType = "tempo"
	WorkoutIntervals     WorkoutType = "intervals"
	WorkoutLongRun       WorkoutType = "long_run"
	WorkoutRecovery      WorkoutType = "recovery"
	WorkoutCrossTraining WorkoutType = "cross_training"
	WorkoutRacePace      WorkoutType = "race_pace"
)

// IsValidWorkoutType reports whether t is one of the seven allowed types.
func IsValidWorkoutType(t WorkoutType) bool {
	switch t {
	case WorkoutEasyRun, WorkoutTempo, WorkoutIntervals, WorkoutLongRun,
		WorkoutRecovery, WorkoutCrossTraining, WorkoutRacePace:
		return true
	}
	return false
}

// TrainingDay is one scheduled workout within a plan. Rest days have no row:
// any day number in [1,30] without a TrainingDay is implicitly a rest day.
// Date is always the plan's start date plus (DayNumber - 1) days.
type TrainingDay struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID          primitive.ObjectID `bson:"planId" json:"planId"`
	Date            time.Time          `bson:"date" json:"date"`
	DayNumber       int                `bson:"dayNumber" json:"dayNumber"` // 1..30, unique within a plan
	WorkoutType     WorkoutType        `bson:"workoutType" json:"workoutType"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	DistanceKm      *float64           `bson:"distanceKm,omitempty" json:"distanceKm,omitempty"`
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	TargetPace      string             `bson:"targetPace,omitempty" json:"targetPace,omitempty"`
	Warmup          string             `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Cooldown        string             `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Truncate bounds a free-text field before storage. Truncation is silent
// and applied uniformly to everything coming back from the AI.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}
