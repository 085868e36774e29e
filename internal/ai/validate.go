package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"ruunai/server/internal/domain"
)

// --- Error Definitions ---
var (
	// ErrMalformedResponse means the model's response was not parseable JSON.
	ErrMalformedResponse = errors.New("ai response is not valid JSON")
	// ErrInvalidPlanShape means the JSON parsed but does not conform to the
	// output schema. The whole response is rejected; there is no partial
	// acceptance.
	ErrInvalidPlanShape = errors.New("ai response does not match the plan schema")
)

// ValidatePlanOutput parses and structurally validates the raw model
// response. The model is untrusted input: enumerations and numeric ranges are
// checked strictly, free text only by type (length bounding happens at write
// time).
func ValidatePlanOutput(raw string) (*PlanOutput, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	overview, err := validateOverview(root["plan_overview"])
	if err != nil {
		return nil, err
	}

	daysRaw, ok := root["days"]
	if !ok {
		return nil, fmt.Errorf("%w: missing days", ErrInvalidPlanShape)
	}
	var dayMaps []map[string]json.RawMessage
	if err := json.Unmarshal(daysRaw, &dayMaps); err != nil {
		return nil, fmt.Errorf("%w: days is not a list of objects", ErrInvalidPlanShape)
	}

	days := make([]DayOutput, 0, len(dayMaps))
	for i, m := range dayMaps {
		day, err := validateDay(m)
		if err != nil {
			return nil, fmt.Errorf("%w (days[%d])", err, i)
		}
		days = append(days, *day)
	}

	return &PlanOutput{PlanOverview: *overview, Days: days}, nil
}

func validateOverview(raw json.RawMessage) (*PlanOverview, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing plan_overview", ErrInvalidPlanShape)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: plan_overview is not an object", ErrInvalidPlanShape)
	}
	var overview PlanOverview
	for _, f := range []struct {
		key  string
		dest *string
	}{
		{"title", &overview.Title},
		{"description", &overview.Description},
		{"weekly_summary", &overview.WeeklySummary},
	} {
		s, ok := asString(fields[f.key])
		if !ok {
			return nil, fmt.Errorf("%w: plan_overview.%s must be a string", ErrInvalidPlanShape, f.key)
		}
		*f.dest = s
	}
	return &overview, nil
}

func validateDay(fields map[string]json.RawMessage) (*DayOutput, error) {
	var day DayOutput

	n, ok := asNumber(fields["day_number"])
	if !ok || n != math.Trunc(n) || n < 1 || n > domain.PlanDurationDays {
		return nil, fmt.Errorf("%w: day_number must be an integer in [1,30]", ErrInvalidPlanShape)
	}
	day.DayNumber = int(n)

	wt, ok := asString(fields["workout_type"])
	if !ok || !domain.IsValidWorkoutType(domain.WorkoutType(wt)) {
		return nil, fmt.Errorf("%w: unknown workout_type", ErrInvalidPlanShape)
	}
	day.WorkoutType = wt

	if day.Title, ok = asString(fields["title"]); !ok {
		return nil, fmt.Errorf("%w: title must be a string", ErrInvalidPlanShape)
	}
	if day.Description, ok = asString(fields["description"]); !ok {
		return nil, fmt.Errorf("%w: description must be a string", ErrInvalidPlanShape)
	}

	// Optional fields are permissive: type-checked only when present.
	if raw, present := presentField(fields, "distance_km"); present {
		v, ok := asNumber(raw)
		if !ok {
			return nil, fmt.Errorf("%w: distance_km must be a number", ErrInvalidPlanShape)
		}
		day.DistanceKm = &v
	}
	if raw, present := presentField(fields, "duration_minutes"); present {
		v, ok := asNumber(raw)
		if !ok || v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: duration_minutes must be an integer", ErrInvalidPlanShape)
		}
		minutes := int(v)
		day.DurationMinutes = &minutes
	}
	for _, f := range []struct {
		key  string
		dest *string
	}{
		{"target_pace", &day.TargetPace},
		{"warmup", &day.Warmup},
		{"cooldown", &day.Cooldown},
		{"notes", &day.Notes},
	} {
		raw, present := presentField(fields, f.key)
		if !present {
			continue
		}
		s, ok := asString(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidPlanShape, f.key)
		}
		*f.dest = s
	}

	return &day, nil
}

// presentField treats an explicit JSON null the same as an absent key.
func presentField(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func asNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}
