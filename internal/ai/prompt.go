package ai

import (
	"math"
	"strings"
	"time"

	"ruunai/server/internal/domain"
)

var daysOfWeek = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func weekdayName(t time.Time) string {
	return daysOfWeek[int(t.Weekday())]
}

// buildDayNumberToWeekdayMap maps every day number 1..30 to its weekday name,
// so the model can verify its own scheduling.
func buildDayNumberToWeekdayMap(start time.Time) map[int]string {
	m := make(map[int]string, domain.PlanDurationDays)
	for i := 0; i < domain.PlanDurationDays; i++ {
		m[i+1] = weekdayName(start.AddDate(0, 0, i))
	}
	return m
}

// buildTrainingDayNumbers lists the day numbers that fall on one of the
// runner's preferred weekdays. An empty result (no preference given) means the
// model is unconstrained.
func buildTrainingDayNumbers(start time.Time, preferredDays []string) []int {
	if len(preferredDays) == 0 {
		return nil
	}
	preferred := make(map[string]bool, len(preferredDays))
	for _, d := range preferredDays {
		preferred[strings.ToLower(d)] = true
	}
	var result []int
	for i := 0; i < domain.PlanDurationDays; i++ {
		if preferred[weekdayName(start.AddDate(0, 0, i))] {
			result = append(result, i+1)
		}
	}
	return result
}

// BuildPlanInput assembles the generation-input document from the runner's
// onboarding answers, the computed plan window, and the optional
// previous-plan summary and feedback.
func BuildPlanInput(
	data *domain.OnboardingData,
	startDate time.Time,
	language domain.PlanLanguage,
	previousPlanSummary *PreviousPlanSummary,
	feedback *domain.PlanFeedback,
) *PlanInput {
	return &PlanInput{
		RunnerProfile: RunnerProfile{
			Goal:                     data.Goal,
			EventDate:                data.EventDate,
			TargetTime:               data.TargetTime,
			TargetPace:               data.TargetPace,
			ExperienceLevel:          data.ExperienceLevel,
			CanRun20MinsContinuously: data.CanRun20MinsContinuously,
			RecentBest5K:             data.RecentBest5K,
			RecentBest10K:            data.RecentBest10K,
			RecentEasyPace:           data.RecentEasyPace,
			WeeklyVolume:             data.WeeklyVolume,
			DaysPerWeek:              data.DaysPerWeek,
			PreferredDays:            data.PreferredDays,
			LongestRecentRun:         data.LongestRecentRun,
			NoRecentRun:              data.NoRecentRun,
			InjuryTypes:              data.InjuryTypes,
			InjuryDetails:            data.InjuryDetails,
			Equipment:                data.Equipment,
			PlanStyle:                data.PlanStyle,
			PlanFlexibility:          data.PlanFlexibility,
			IntensityTolerance:       data.IntensityTolerance,
		},
		PlanConfig: PlanConfig{
			StartDate:          startDate.Format("2006-01-02"),
			StartDayOfWeek:     weekdayName(startDate),
			DurationDays:       domain.PlanDurationDays,
			Language:           string(language),
			DayNumberToWeekday: buildDayNumberToWeekdayMap(startDate),
			TrainingDayNumbers: buildTrainingDayNumbers(startDate, data.PreferredDays),
		},
		PreviousPlanSummary: previousPlanSummary,
		Feedback:            feedback,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildPreviousPlanSummary condenses a superseded plan's days into the
// aggregate shape the model receives: total distance, day count, workout-type
// distribution, and per-week distance buckets (five buckets, days beyond week
// five clamped into the last one).
func BuildPreviousPlanSummary(plan *domain.TrainingPlan, days []domain.TrainingDay) *PreviousPlanSummary {
	var totalDistance float64
	typeDistribution := make(map[string]int)
	weeklyVolumes := make([]float64, 5)

	for _, day := range days {
		var dist float64
		if day.DistanceKm != nil {
			dist = *day.DistanceKm
		}
		totalDistance += dist
		typeDistribution[string(day.WorkoutType)]++

		weekIndex := (day.DayNumber - 1) / 7
		if weekIndex > 4 {
			weekIndex = 4
		}
		weeklyVolumes[weekIndex] += dist
	}
	for i := range weeklyVolumes {
		weeklyVolumes[i] = round1(weeklyVolumes[i])
	}

	title := plan.Title
	if title == "" {
		title = "Previous Plan"
	}

	return &PreviousPlanSummary{
		TotalDistanceKm:         round1(totalDistance),
		TotalTrainingDays:       len(days),
		WorkoutTypeDistribution: typeDistribution,
		WeeklyVolumesKm:         weeklyVolumes,
		PlanTitle:               title,
	}
}

// SystemPrompt is the fixed instruction document sent with every generation
// request. It is a versioned contract with an untrusted responder; the output
// schema it names is enforced by ValidatePlanOutput.
func SystemPrompt() string {
	return `You are an expert running coach AI. You create personalized 30-day training plans.

CRITICAL - TRAINING DAY SELECTION:
- The input includes "plan_config.training_day_numbers" - this is the PRE-CALCULATED list of day_number values that fall on the runner's preferred weekdays.
- You MUST ONLY use day_number values from this list. Do NOT assign workouts to any other day_number.
- The input also includes "plan_config.day_number_to_weekday" which maps every day_number (1-30) to its weekday. Use this to verify your output.
- Example: if training_day_numbers is [1, 3, 5, 8, 10, 12, 15, 17, 19, 22, 24, 26, 29], your "days" array must ONLY contain entries with those day_number values.

RULES:
- Generate a JSON training plan following the exact schema provided.
- Only include training days in the "days" array. Do NOT include rest days - any day not in the array is automatically a rest day.
- day_number starts at 1 (first day of the plan) and goes up to 30.
- Adapt intensity to the runner's experience_level and intensity_tolerance.
- Account for injuries by avoiding aggravating workouts and including injury-prevention notes.
- workout_type must be one of: easy_run, tempo, intervals, long_run, recovery, cross_training, race_pace
- All text content MUST be in the language specified in plan_config.language.
- If previous_plan_summary is provided, create a plan that builds on it with slight variations for progression and adaptability.
- If feedback is provided, adjust the plan based on the runner's feedback (difficulty, volume, variety, injuries, comments).
- Include progressive overload: gradually increase volume/intensity across the 4 weeks.
- Include a recovery/taper in the last few days if appropriate.
- Be specific with paces, distances, warmup/cooldown instructions.

OUTPUT SCHEMA:
{
  "plan_overview": {
    "title": "string - plan name",
    "description": "string - 2-3 sentence plan description",
    "weekly_summary": "string - brief weekly structure overview"
  },
  "days": [
    {
      "day_number": "integer - MUST be from training_day_numbers",
      "workout_type": "string - one of the allowed types",
      "title": "string - workout name",
      "description": "string - detailed workout description",
      "distance_km": "number - distance in km (optional)",
      "duration_minutes": "integer - estimated duration (optional)",
      "target_pace": "string - pace range like '5:30-6:00 /km' (optional)",
      "warmup": "string - warmup instructions (optional)",
      "cooldown": "string - cooldown instructions (optional)",
      "notes": "string - additional notes (optional)"
    }
  ]
}`
}
