package domain

import "errors"

// Enumerations for structured plan feedback.
type (
	FeedbackDifficulty string
	FeedbackVolume     string
	FeedbackVariety    string
	FeedbackInjuries   string
)

const (
	DifficultyTooEasy  FeedbackDifficulty = "TOO_EASY"
	DifficultyAdequate FeedbackDifficulty = "ADEQUATE"
	DifficultyTooHard  FeedbackDifficulty = "TOO_HARD"

	VolumeWantedMore FeedbackVolume = "WANTED_MORE"
	VolumeGood       FeedbackVolume = "GOOD"
	VolumeTooMuch    FeedbackVolume = "TOO_MUCH"

	VarietyWantedMore FeedbackVariety = "WANTED_MORE"
	VarietyGood       FeedbackVariety = "GOOD"
	VarietyTooMuch    FeedbackVariety = "TOO_MUCH"

	InjuriesNoIssues      FeedbackInjuries = "NO_ISSUES"
	InjuriesHadDiscomfort FeedbackInjuries = "HAD_DISCOMFORT"
	InjuriesGotInjured    FeedbackInjuries = "GOT_INJURED"
)

// MaxCommentLength bounds the optional free-text comment.
const MaxCommentLength = 500

// PlanFeedback carries the runner's structured ratings of the plan being
// replaced. It is stored on the successor plan and forwarded to the AI.
type PlanFeedback struct {
	Difficulty FeedbackDifficulty `bson:"difficulty" json:"difficulty"`
	Volume     FeedbackVolume     `bson:"volume" json:"volume"`
	Variety    FeedbackVariety    `bson:"variety" json:"variety"`
	Injuries   FeedbackInjuries   `bson:"injuries" json:"injuries"`
	Comments   string             `bson:"comments,omitempty" json:"comments,omitempty"`
}

var ErrInvalidFeedback = errors.New("invalid plan feedback")

// Validate checks every rating against its enumeration and bounds the comment.
func (f *PlanFeedback) Validate() error {
	switch f.Difficulty {
	case DifficultyTooEasy, DifficultyAdequate, DifficultyTooHard:
	default:
		return ErrInvalidFeedback
	}
	switch f.Volume {
	case VolumeWantedMore, VolumeGood, VolumeTooMuch:
	default:
		return ErrInvalidFeedback
	}
	switch f.Variety {
	case VarietyWantedMore, VarietyGood, VarietyTooMuch:
	default:
		return ErrInvalidFeedback
	}
	switch f.Injuries {
	case InjuriesNoIssues, InjuriesHadDiscomfort, InjuriesGotInjured:
	default:
		return ErrInvalidFeedback
	}
	if len([]rune(f.Comments)) > MaxCommentLength {
		return ErrInvalidFeedback
	}
	return nil
}
