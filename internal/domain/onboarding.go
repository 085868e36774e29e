package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enumerations for the onboarding questionnaire.
type (
	Goal               string
	ExperienceLevel    string
	WeeklyVolume       string
	InjuryType         string
	PlanStyle          string
	PlanFlexibility    string
	IntensityTolerance string
)

const (
	Goal5K             Goal = "5K"
	Goal10K            Goal = "10K"
	GoalHalfMarathon   Goal = "HALF_MARATHON"
	GoalMarathon       Goal = "MARATHON"
	GoalGeneralFitness Goal = "GENERAL_FITNESS"

	ExperienceBeginner     ExperienceLevel = "BEGINNER"
	ExperienceIntermediate ExperienceLevel = "INTERMEDIATE"
	ExperienceAdvanced     ExperienceLevel = "ADVANCED"

	Volume0To5   WeeklyVolume = "0_5"
	Volume5To15  WeeklyVolume = "5_15"
	Volume15To30 WeeklyVolume = "15_30"
	Volume30To50 WeeklyVolume = "30_50"
	Volume50Plus WeeklyVolume = "50_PLUS"

	InjuryNone  InjuryType = "NONE"
	InjuryKnee  InjuryType = "KNEE"
	InjuryShin  InjuryType = "SHIN"
	InjuryFoot  InjuryType = "FOOT"
	InjuryOther InjuryType = "OTHER"

	StyleTimeBased     PlanStyle = "TIME_BASED"
	StyleDistanceBased PlanStyle = "DISTANCE_BASED"

	FlexibilityStructured PlanFlexibility = "STRUCTURED"
	FlexibilityFlexible   PlanFlexibility = "FLEXIBLE"

	ToleranceLow    IntensityTolerance = "LOW"
	ToleranceMedium IntensityTolerance = "MEDIUM"
	ToleranceHigh   IntensityTolerance = "HIGH"
)

// OnboardingData is the questionnaire answer payload. The required fields
// drive plan generation directly; the optional ones refine it.
type OnboardingData struct {
	Goal               Goal               `bson:"goal" json:"goal"`
	ExperienceLevel    ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	WeeklyVolume       WeeklyVolume       `bson:"weeklyVolume" json:"weeklyVolume"`
	DaysPerWeek        int                `bson:"daysPerWeek" json:"daysPerWeek"` // 1..7
	InjuryTypes        []InjuryType       `bson:"injuryTypes" json:"injuryTypes"` // at least one (NONE counts)
	PlanStyle          PlanStyle          `bson:"planStyle" json:"planStyle"`
	PlanFlexibility    PlanFlexibility    `bson:"planFlexibility" json:"planFlexibility"`
	IntensityTolerance IntensityTolerance `bson:"intensityTolerance" json:"intensityTolerance"`

	EventDate                string   `bson:"eventDate,omitempty" json:"eventDate,omitempty"`
	TargetTime               string   `bson:"targetTime,omitempty" json:"targetTime,omitempty"`
	TargetPace               string   `bson:"targetPace,omitempty" json:"targetPace,omitempty"`
	CanRun20MinsContinuously *bool    `bson:"canRun20MinsContinuously,omitempty" json:"canRun20MinsContinuously,omitempty"`
	RecentBest5K             string   `bson:"recentBest5K,omitempty" json:"recentBest5K,omitempty"`
	RecentBest10K            string   `bson:"recentBest10K,omitempty" json:"recentBest10K,omitempty"`
	RecentEasyPace           string   `bson:"recentEasyPace,omitempty" json:"recentEasyPace,omitempty"`
	PreferredDays            []string `bson:"preferredDays,omitempty" json:"preferredDays,omitempty"` // weekday names
	LongestRecentRun         *float64 `bson:"longestRecentRun,omitempty" json:"longestRecentRun,omitempty"`
	NoRecentRun              *bool    `bson:"noRecentRun,omitempty" json:"noRecentRun,omitempty"`
	InjuryDetails            string   `bson:"injuryDetails,omitempty" json:"injuryDetails,omitempty"`
	Equipment                []string `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

// Validate enforces the questionnaire's enumerations and ranges.
func (d *OnboardingData) Validate() error {
	switch d.Goal {
	case Goal5K, Goal10K, GoalHalfMarathon, GoalMarathon, GoalGeneralFitness:
	default:
		return fmt.Errorf("invalid goal %q", d.Goal)
	}
	switch d.ExperienceLevel {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
	default:
		return fmt.Errorf("invalid experience level %q", d.ExperienceLevel)
	}
	switch d.WeeklyVolume {
	case Volume0To5, Volume5To15, Volume15To30, Volume30To50, Volume50Plus:
	default:
		return fmt.Errorf("invalid weekly volume %q", d.WeeklyVolume)
	}
	if d.DaysPerWeek < 1 || d.DaysPerWeek > 7 {
		return fmt.Errorf("days per week must be 1-7, got %d", d.DaysPerWeek)
	}
	if len(d.InjuryTypes) == 0 {
		return fmt.Errorf("at least one injury type is required")
	}
	for _, it := range d.InjuryTypes {
		switch it {
		case InjuryNone, InjuryKnee, InjuryShin, InjuryFoot, InjuryOther:
		default:
			return fmt.Errorf("invalid injury type %q", it)
		}
	}
	switch d.PlanStyle {
	case StyleTimeBased, StyleDistanceBased:
	default:
		return fmt.Errorf("invalid plan style %q", d.PlanStyle)
	}
	switch d.PlanFlexibility {
	case FlexibilityStructured, FlexibilityFlexible:
	default:
		return fmt.Errorf("invalid plan flexibility %q", d.PlanFlexibility)
	}
	switch d.IntensityTolerance {
	case ToleranceLow, ToleranceMedium, ToleranceHigh:
	default:
		return fmt.Errorf("invalid intensity tolerance %q", d.IntensityTolerance)
	}
	return nil
}

// OnboardingResponse is a runner's stored questionnaire answers. One live
// row per runner, upserted on each submission.
type OnboardingResponse struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunnerID  primitive.ObjectID `bson:"userId" json:"userId"` // unique
	Payload   OnboardingData     `bson:"payload" json:"payload"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
