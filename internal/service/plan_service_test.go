package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ruunai/server/internal/ai"
	"ruunai/server/internal/domain"
	"ruunai/server/internal/repository"
)

// --- In-Memory Fakes ---

type fakePlanRepo struct {
	plans      map[primitive.ObjectID]domain.TrainingPlan
	createErr  error
	promoteErr error
	creates    int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]domain.TrainingPlan)}
}

func (r *fakePlanRepo) put(plan domain.TrainingPlan) primitive.ObjectID {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	r.plans[plan.ID] = plan
	return plan.ID
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	r.creates++
	stored := *plan
	stored.ID = primitive.NewObjectID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt
	r.plans[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (r *fakePlanRepo) GetByRunnerAndStatus(ctx context.Context, runnerID primitive.ObjectID, status domain.PlanStatus) (*domain.TrainingPlan, error) {
	for _, plan := range r.plans {
		if plan.RunnerID == runnerID && plan.Status == status {
			p := plan
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) GetHistoryByRunner(ctx context.Context, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	var out []domain.TrainingPlan
	for _, plan := range r.plans {
		if plan.RunnerID == runnerID && plan.Status == domain.PlanStatusHistorical {
			out = append(out, plan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePlanRepo) Promote(ctx context.Context, id primitive.ObjectID, title, description, weeklySummary string) error {
	if r.promoteErr != nil {
		return r.promoteErr
	}
	plan, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	plan.Status = domain.PlanStatusActive
	plan.Title = title
	plan.Description = description
	plan.WeeklySummary = weeklySummary
	plan.UpdatedAt = time.Now().UTC()
	r.plans[id] = plan
	return nil
}

func (r *fakePlanRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	plan, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	plan.Status = status
	r.plans[id] = plan
	return nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) withStatus(status domain.PlanStatus) []domain.TrainingPlan {
	var out []domain.TrainingPlan
	for _, plan := range r.plans {
		if plan.Status == status {
			out = append(out, plan)
		}
	}
	return out
}

type fakeDayRepo struct {
	days          map[primitive.ObjectID][]domain.TrainingDay
	createManyErr error
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[primitive.ObjectID][]domain.TrainingDay)}
}

func (r *fakeDayRepo) CreateMany(ctx context.Context, days []domain.TrainingDay) error {
	if r.createManyErr != nil {
		return r.createManyErr
	}
	for _, d := range days {
		r.days[d.PlanID] = append(r.days[d.PlanID], d)
	}
	return nil
}

func (r *fakeDayRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.TrainingDay, error) {
	out := append([]domain.TrainingDay(nil), r.days[planID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (r *fakeDayRepo) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	delete(r.days, planID)
	return nil
}

type fakeResponseRepo struct {
	responses map[primitive.ObjectID]domain.OnboardingResponse
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[primitive.ObjectID]domain.OnboardingResponse)}
}

func (r *fakeResponseRepo) Upsert(ctx context.Context, runnerID primitive.ObjectID, payload domain.OnboardingData) error {
	resp := r.responses[runnerID]
	resp.RunnerID = runnerID
	resp.Payload = payload
	resp.Version++
	r.responses[runnerID] = resp
	return nil
}

func (r *fakeResponseRepo) GetByRunnerID(ctx context.Context, runnerID primitive.ObjectID) (*domain.OnboardingResponse, error) {
	resp, ok := r.responses[runnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &resp, nil
}

func (r *fakeResponseRepo) DeleteByRunnerID(ctx context.Context, runnerID primitive.ObjectID) error {
	delete(r.responses, runnerID)
	return nil
}

type fakeGenerator struct {
	output string
	err    error
	calls  int
	input  *ai.PlanInput
}

func (g *fakeGenerator) GeneratePlan(ctx context.Context, input *ai.PlanInput) (string, error) {
	g.calls++
	g.input = input
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

// --- Test Fixtures ---

type planFixture struct {
	svc      PlanService
	planRepo *fakePlanRepo
	dayRepo  *fakeDayRepo
	respRepo *fakeResponseRepo
	gen      *fakeGenerator
	runnerID primitive.ObjectID
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	f := &planFixture{
		planRepo: newFakePlanRepo(),
		dayRepo:  newFakeDayRepo(),
		respRepo: newFakeResponseRepo(),
		gen:      &fakeGenerator{output: modelOutput(3)},
		runnerID: primitive.NewObjectID(),
	}
	f.svc = NewPlanService(f.planRepo, f.dayRepo, f.respRepo, f.gen)
	return f
}

func (f *planFixture) withOnboarding(t *testing.T) *planFixture {
	t.Helper()
	data := domain.OnboardingData{
		Goal:               domain.Goal10K,
		ExperienceLevel:    domain.ExperienceIntermediate,
		WeeklyVolume:       domain.Volume15To30,
		DaysPerWeek:        4,
		InjuryTypes:        []domain.InjuryType{domain.InjuryNone},
		PlanStyle:          domain.StyleDistanceBased,
		PlanFlexibility:    domain.FlexibilityFlexible,
		IntensityTolerance: domain.ToleranceMedium,
	}
	if err := f.respRepo.Upsert(context.Background(), f.runnerID, data); err != nil {
		t.Fatalf("seeding onboarding: %v", err)
	}
	return f
}

func (f *planFixture) withActivePlan(generationCount int, age time.Duration) primitive.ObjectID {
	created := time.Now().UTC().Add(-age)
	return f.planRepo.put(domain.TrainingPlan{
		RunnerID:        f.runnerID,
		Status:          domain.PlanStatusActive,
		Title:           "Old Plan",
		Language:        domain.LanguageEnglish,
		StartsAt:        created.Truncate(24 * time.Hour),
		EndsAt:          created.Truncate(24 * time.Hour).AddDate(0, 0, domain.PlanDurationDays-1),
		GenerationCount: generationCount,
		CreatedAt:       created,
	})
}

func newRequest() GenerateRequest {
	return GenerateRequest{Type: GenerationNew, Language: domain.LanguageEnglish}
}

// modelOutput builds a well-formed model response with the given number of
// training days.
func modelOutput(days int) string {
	type day struct {
		DayNumber   int    `json:"day_number"`
		WorkoutType string `json:"workout_type"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	out := map[string]any{
		"plan_overview": map[string]string{
			"title":          "Generated Plan",
			"description":    "A month of structured running.",
			"weekly_summary": "Gradual build.",
		},
	}
	list := make([]day, 0, days)
	for i := 1; i <= days; i++ {
		list = append(list, day{
			DayNumber:   i,
			WorkoutType: string(domain.WorkoutEasyRun),
			Title:       fmt.Sprintf("Day %d", i),
			Description: "Easy effort.",
		})
	}
	out["days"] = list
	raw, _ := json.Marshal(out)
	return string(raw)
}

// --- Tests ---

func TestGenerateValidation(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	badComment := strings.Repeat("x", domain.MaxCommentLength+1)

	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{"unknown type", GenerateRequest{Type: "refresh", Language: domain.LanguageEnglish}},
		{"empty type", GenerateRequest{Language: domain.LanguageEnglish}},
		{"unsupported language", GenerateRequest{Type: GenerationNew, Language: "fr"}},
		{"invalid feedback", GenerateRequest{Type: GenerationNew, Language: domain.LanguageEnglish,
			Feedback: &domain.PlanFeedback{
				Difficulty: domain.DifficultyAdequate,
				Volume:     domain.VolumeGood,
				Variety:    domain.VarietyGood,
				Injuries:   domain.InjuriesNoIssues,
				Comments:   badComment,
			}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Generate(context.Background(), f.runnerID, tt.req)
			if !errors.Is(err, ErrInvalidGenerateRequest) {
				t.Errorf("error = %v, want ErrInvalidGenerateRequest", err)
			}
		})
	}
	if f.gen.calls != 0 {
		t.Errorf("generator called %d times for invalid requests", f.gen.calls)
	}
}

func TestGenerateWithoutOnboarding(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if !errors.Is(err, ErrOnboardingNotFound) {
		t.Fatalf("error = %v, want ErrOnboardingNotFound", err)
	}
	if len(f.planRepo.plans) != 0 {
		t.Errorf("plan rows written = %d, want 0", len(f.planRepo.plans))
	}
	if f.gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", f.gen.calls)
	}
}

func TestGenerateRejectsFreshLock(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	f.planRepo.put(domain.TrainingPlan{
		RunnerID:  f.runnerID,
		Status:    domain.PlanStatusGenerating,
		CreatedAt: time.Now().UTC().Add(-4 * time.Minute),
	})

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if !errors.Is(err, ErrGenerationInProgress) {
		t.Fatalf("error = %v, want ErrGenerationInProgress", err)
	}
	if f.gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", f.gen.calls)
	}
	if len(f.planRepo.plans) != 1 {
		t.Errorf("lock row count = %d, want the original untouched", len(f.planRepo.plans))
	}
}

func TestGenerateReapsStaleLock(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	staleID := f.planRepo.put(domain.TrainingPlan{
		RunnerID:  f.runnerID,
		Status:    domain.PlanStatusGenerating,
		CreatedAt: time.Now().UTC().Add(-6 * time.Minute),
	})
	f.dayRepo.days[staleID] = []domain.TrainingDay{{PlanID: staleID, DayNumber: 1}}

	result, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, ok := f.planRepo.plans[staleID]; ok {
		t.Error("stale generating plan was not reaped")
	}
	if _, ok := f.dayRepo.days[staleID]; ok {
		t.Error("stale plan's days were not deleted")
	}
	if result.Plan.Status != domain.PlanStatusActive {
		t.Errorf("new plan status = %q, want active", result.Plan.Status)
	}
}

func TestGenerateRegenerationCap(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	activeID := f.withActivePlan(domain.MaxGenerationCount, time.Hour)

	_, err := f.svc.Generate(context.Background(), f.runnerID, GenerateRequest{
		Type:     GenerationRegenerate,
		Language: domain.LanguageEnglish,
	})
	if !errors.Is(err, ErrRegenerationLimit) {
		t.Fatalf("error = %v, want ErrRegenerationLimit", err)
	}
	if f.gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", f.gen.calls)
	}
	if f.planRepo.creates != 0 {
		t.Errorf("plan inserts = %d, want 0", f.planRepo.creates)
	}
	if plan := f.planRepo.plans[activeID]; plan.Status != domain.PlanStatusActive {
		t.Errorf("active plan status = %q, want untouched", plan.Status)
	}
}

func TestGenerateNewFirstPlan(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)

	result, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	plan := result.Plan
	if plan.Status != domain.PlanStatusActive {
		t.Errorf("status = %q, want active", plan.Status)
	}
	if plan.GenerationCount != 1 {
		t.Errorf("generationCount = %d, want 1", plan.GenerationCount)
	}
	if plan.PreviousPlanID != nil {
		t.Errorf("previousPlanId = %v, want nil", plan.PreviousPlanID)
	}
	if plan.Title != "Generated Plan" {
		t.Errorf("title = %q", plan.Title)
	}
	if got := plan.EndsAt.Sub(plan.StartsAt); got != 29*24*time.Hour {
		t.Errorf("plan window = %v, want 29 days", got)
	}
	if len(result.Days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(result.Days))
	}
	for i, d := range result.Days {
		if d.DayNumber != i+1 {
			t.Errorf("days[%d].DayNumber = %d, want %d", i, d.DayNumber, i+1)
		}
		want := plan.StartsAt.AddDate(0, 0, d.DayNumber-1)
		if !d.Date.Equal(want) {
			t.Errorf("days[%d].Date = %v, want %v", i, d.Date, want)
		}
	}
	if f.gen.input == nil || f.gen.input.PreviousPlanSummary != nil {
		t.Errorf("first plan should carry no previous summary: %+v", f.gen.input)
	}
}

func TestGenerateNewArchivesActivePlan(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	activeID := f.withActivePlan(2, 31*24*time.Hour)
	dist := 8.0
	f.dayRepo.days[activeID] = []domain.TrainingDay{
		{PlanID: activeID, DayNumber: 1, WorkoutType: domain.WorkoutLongRun, DistanceKm: &dist},
	}

	result, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if old := f.planRepo.plans[activeID]; old.Status != domain.PlanStatusHistorical {
		t.Errorf("superseded plan status = %q, want historical", old.Status)
	}
	if result.Plan.GenerationCount != 1 {
		t.Errorf("fresh cycle generationCount = %d, want 1", result.Plan.GenerationCount)
	}
	if result.Plan.PreviousPlanID == nil || *result.Plan.PreviousPlanID != activeID {
		t.Errorf("previousPlanId = %v, want %s", result.Plan.PreviousPlanID, activeID.Hex())
	}
	summary := f.gen.input.PreviousPlanSummary
	if summary == nil {
		t.Fatal("expected previous plan summary in generation input")
	}
	if summary.TotalDistanceKm != 8 || summary.PlanTitle != "Old Plan" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestGenerateRegenerateReplacesActivePlan(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	activeID := f.withActivePlan(2, time.Hour)
	f.dayRepo.days[activeID] = []domain.TrainingDay{{PlanID: activeID, DayNumber: 1}}

	result, err := f.svc.Generate(context.Background(), f.runnerID, GenerateRequest{
		Type:     GenerationRegenerate,
		Language: domain.LanguagePortuguese,
		Feedback: &domain.PlanFeedback{
			Difficulty: domain.DifficultyTooHard,
			Volume:     domain.VolumeTooMuch,
			Variety:    domain.VarietyGood,
			Injuries:   domain.InjuriesNoIssues,
		},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, ok := f.planRepo.plans[activeID]; ok {
		t.Error("regenerated-over plan should be deleted")
	}
	if _, ok := f.dayRepo.days[activeID]; ok {
		t.Error("regenerated-over plan's days should be deleted")
	}
	if result.Plan.GenerationCount != 3 {
		t.Errorf("generationCount = %d, want 3", result.Plan.GenerationCount)
	}
	if result.Plan.Language != domain.LanguagePortuguese {
		t.Errorf("language = %q, want pt-BR", result.Plan.Language)
	}
	if f.gen.input.PreviousPlanSummary != nil {
		t.Error("regeneration should not carry a previous plan summary")
	}
	if f.gen.input.Feedback == nil || f.gen.input.Feedback.Difficulty != domain.DifficultyTooHard {
		t.Errorf("feedback not forwarded to generator: %+v", f.gen.input.Feedback)
	}
}

func TestGenerateReleasesLockOnGeneratorError(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	f.gen.err = errors.New("model unavailable")

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("error = %v, want generator error", err)
	}
	if n := len(f.planRepo.withStatus(domain.PlanStatusGenerating)); n != 0 {
		t.Errorf("generating rows left behind = %d, want 0", n)
	}
	if len(f.planRepo.plans) != 0 {
		t.Errorf("plan rows left behind = %d, want 0", len(f.planRepo.plans))
	}
}

func TestGenerateReleasesLockOnInvalidOutput(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	f.gen.output = "I am sorry, I cannot help with that."

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
	if len(f.planRepo.plans) != 0 {
		t.Errorf("plan rows left behind = %d, want 0", len(f.planRepo.plans))
	}
}

func TestGenerateCompensatesOnDayInsertFailure(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	f.dayRepo.createManyErr = errors.New("write concern failed")

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if !errors.Is(err, ErrPlanStorageFailed) {
		t.Fatalf("error = %v, want ErrPlanStorageFailed", err)
	}
	if len(f.planRepo.plans) != 0 {
		t.Errorf("plan rows left behind = %d, want 0", len(f.planRepo.plans))
	}
	if n := len(f.planRepo.withStatus(domain.PlanStatusActive)); n != 0 {
		t.Errorf("active plans = %d, want 0", n)
	}
}

func TestGenerateCompensatesOnPromoteFailure(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	f.planRepo.promoteErr = errors.New("update failed")

	_, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if !errors.Is(err, ErrPlanStorageFailed) {
		t.Fatalf("error = %v, want ErrPlanStorageFailed", err)
	}
	if len(f.planRepo.plans) != 0 {
		t.Errorf("plan rows left behind = %d, want 0", len(f.planRepo.plans))
	}
	for planID, days := range f.dayRepo.days {
		if len(days) != 0 {
			t.Errorf("orphaned days for plan %s", planID.Hex())
		}
	}
}

func TestGenerateTruncatesLongText(t *testing.T) {
	f := newPlanFixture(t).withOnboarding(t)
	longText := strings.Repeat("a", domain.MaxTextLength+500)
	raw, _ := json.Marshal(map[string]any{
		"plan_overview": map[string]string{
			"title":          longText,
			"description":    "d",
			"weekly_summary": "w",
		},
		"days": []map[string]any{
			{"day_number": 1, "workout_type": "easy_run", "title": "t", "description": longText},
		},
	})
	f.gen.output = string(raw)

	result, err := f.svc.Generate(context.Background(), f.runnerID, newRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := len(result.Plan.Title); got != domain.MaxTextLength {
		t.Errorf("plan title length = %d, want %d", got, domain.MaxTextLength)
	}
	if got := len(result.Days[0].Description); got != domain.MaxTextLength {
		t.Errorf("day description length = %d, want %d", got, domain.MaxTextLength)
	}
}

func TestGetActivePlanWhenNone(t *testing.T) {
	f := newPlanFixture(t)

	result, err := f.svc.GetActivePlan(context.Background(), f.runnerID)
	if err != nil {
		t.Fatalf("GetActivePlan() error = %v", err)
	}
	if result.Plan != nil {
		t.Errorf("plan = %+v, want nil", result.Plan)
	}
	if result.Days == nil || len(result.Days) != 0 {
		t.Errorf("days = %v, want empty non-nil slice", result.Days)
	}
}

func TestGetHistoryOrder(t *testing.T) {
	f := newPlanFixture(t)
	older := f.planRepo.put(domain.TrainingPlan{
		RunnerID:  f.runnerID,
		Status:    domain.PlanStatusHistorical,
		Title:     "First",
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	})
	newer := f.planRepo.put(domain.TrainingPlan{
		RunnerID:  f.runnerID,
		Status:    domain.PlanStatusHistorical,
		Title:     "Second",
		CreatedAt: time.Now().UTC().Add(-24 * time.Hour),
	})
	f.planRepo.put(domain.TrainingPlan{
		RunnerID:  primitive.NewObjectID(),
		Status:    domain.PlanStatusHistorical,
		CreatedAt: time.Now().UTC(),
	})

	plans, err := f.svc.GetHistory(context.Background(), f.runnerID)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("len(plans) = %d, want 2", len(plans))
	}
	if plans[0].ID != newer || plans[1].ID != older {
		t.Errorf("history order = [%s, %s], want newest first", plans[0].Title, plans[1].Title)
	}
}

func TestGetHistoricalPlanDaysOwnership(t *testing.T) {
	f := newPlanFixture(t)
	otherRunner := primitive.NewObjectID()
	planID := f.planRepo.put(domain.TrainingPlan{
		RunnerID: otherRunner,
		Status:   domain.PlanStatusHistorical,
	})
	f.dayRepo.days[planID] = []domain.TrainingDay{{PlanID: planID, DayNumber: 1}}

	_, err := f.svc.GetHistoricalPlanDays(context.Background(), f.runnerID, planID)
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}

	_, err = f.svc.GetHistoricalPlanDays(context.Background(), f.runnerID, primitive.NewObjectID())
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("missing plan error = %v, want ErrPlanNotFound", err)
	}

	days, err := f.svc.GetHistoricalPlanDays(context.Background(), otherRunner, planID)
	if err != nil {
		t.Fatalf("owner lookup error = %v", err)
	}
	if len(days) != 1 {
		t.Errorf("len(days) = %d, want 1", len(days))
	}
}
