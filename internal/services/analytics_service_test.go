package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/models"
)

type stubFactReader struct {
	facts []models.JournalFact
	calls int
	err   error
}

func (stub *stubFactReader) ListFactsByUserRange(_ uint, start time.Time, end time.Time) ([]models.JournalFact, error) {
	stub.calls++
	if stub.err != nil {
		return nil, stub.err
	}
	window := Window{Start: start, End: end}
	selected := make([]models.JournalFact, 0)
	for _, fact := range stub.facts {
		if window.Contains(fact.CreatedAt) {
			selected = append(selected, fact)
		}
	}
	return selected, nil
}

type stubCurriculumLookup struct{}

func (stubCurriculumLookup) ListByIDs(ids []uint) ([]models.Curriculum, error) {
	entries := make([]models.Curriculum, 0, len(ids))
	for _, id := range ids {
		dosage := models.DosageMedicinal
		if id%2 == 0 {
			dosage = models.DosageToxic
		}
		entries = append(entries, models.Curriculum{ID: id, Dosage: dosage, Expression: "expression"})
	}
	return entries, nil
}

type stubStrategyLookup struct{}

func (stubStrategyLookup) ListByIDs(ids []uint) ([]models.Strategy, error) {
	strategies := make([]models.Strategy, 0, len(ids))
	for _, id := range ids {
		strategies = append(strategies, models.Strategy{ID: id, Strategy: "strategy"})
	}
	return strategies, nil
}

type recordingObserver struct {
	hits   int
	misses int
}

func (observer *recordingObserver) RecordCacheLookup(_ string, hit bool) {
	if hit {
		observer.hits++
		return
	}
	observer.misses++
}

func (observer *recordingObserver) ObserveAnalytics(string, time.Duration) {}

var analyticsTestEnd = time.Date(2026, time.March, 31, 20, 0, 0, 0, time.UTC)

func fact(id uint, createdAt time.Time, curriculumID uint, layerID uint, phaseID uint, dosage models.Dosage) models.JournalFact {
	return models.JournalFact{
		ID:           id,
		CreatedAt:    createdAt,
		CurriculumID: curriculumID,
		LayerID:      layerID,
		PhaseID:      phaseID,
		Dosage:       dosage,
	}
}

func newAnalyticsServiceForTest(reader *stubFactReader, store AnalyticsCache, observer AnalyticsObserver) *AnalyticsService {
	service := NewAnalyticsService(reader, stubCurriculumLookup{}, stubStrategyLookup{}, store, observer, nil)
	service.now = func() time.Time { return analyticsTestEnd }
	return service
}

func approxEqual(left float64, right float64) bool {
	return math.Abs(left-right) < 1e-9
}

func TestOverviewMedicinalRatioAndSecondaryPercentage(t *testing.T) {
	secondary := uint(9)
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-1*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-25*time.Hour), 3, 1, 2, models.DosageMedicinal),
		fact(3, analyticsTestEnd.Add(-49*time.Hour), 5, 2, 2, models.DosageMedicinal),
		fact(4, analyticsTestEnd.Add(-73*time.Hour), 2, 2, 2, models.DosageToxic),
	}
	facts[0].SecondaryCurriculumID = &secondary
	facts[1].SecondaryCurriculumID = &secondary
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if overview.TotalEntries != 4 {
		t.Fatalf("expected 4 entries, got %d", overview.TotalEntries)
	}
	if !approxEqual(overview.MedicinalRatio, 75.0) {
		t.Fatalf("expected medicinal ratio 75, got %v", overview.MedicinalRatio)
	}
	if !approxEqual(overview.SecondaryEmotionsPct, 50.0) {
		t.Fatalf("expected secondary pct 50, got %v", overview.SecondaryEmotionsPct)
	}
	if overview.CurrentStreak != 4 || overview.LongestStreak != 4 {
		t.Fatalf("expected streaks 4/4, got %d/%d", overview.CurrentStreak, overview.LongestStreak)
	}
	if !approxEqual(overview.AvgFrequency, 4.0/31.0) {
		t.Fatalf("expected avg frequency 4/31, got %v", overview.AvgFrequency)
	}
	if overview.LastCheckIn == nil || !overview.LastCheckIn.Equal(facts[0].CreatedAt) {
		t.Fatalf("expected last check-in at newest entry, got %v", overview.LastCheckIn)
	}
	if overview.UniqueEmotions != 4 || overview.StrategiesUsed != 0 {
		t.Fatalf("unexpected distinct counts: emotions=%d strategies=%d", overview.UniqueEmotions, overview.StrategiesUsed)
	}
	if overview.DominantLayerID == nil || *overview.DominantLayerID != 1 {
		t.Fatalf("expected dominant layer 1 on a 2/2 tie, got %v", overview.DominantLayerID)
	}
	if overview.DominantPhaseID == nil || *overview.DominantPhaseID != 2 {
		t.Fatalf("expected dominant phase 2, got %v", overview.DominantPhaseID)
	}
}

func TestOverviewSecondaryPercentageTwoOfThree(t *testing.T) {
	secondary := uint(4)
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-2*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(3, analyticsTestEnd.Add(-3*time.Hour), 1, 1, 1, models.DosageMedicinal),
	}
	facts[0].SecondaryCurriculumID = &secondary
	facts[2].SecondaryCurriculumID = &secondary
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if !approxEqual(overview.SecondaryEmotionsPct, 200.0/3.0) {
		t.Fatalf("expected secondary pct 66.66..., got %v", overview.SecondaryEmotionsPct)
	}
}

func TestOverviewMedicinalTrendComparesPrecedingWindow(t *testing.T) {
	start := analyticsTestEnd.AddDate(0, 0, -10)
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-2*time.Hour), 2, 1, 1, models.DosageToxic),
		// preceding window [start-10d, start]: one medicinal, three toxic
		fact(3, start.Add(-time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(4, start.Add(-2*time.Hour), 2, 1, 1, models.DosageToxic),
		fact(5, start.Add(-3*time.Hour), 2, 1, 1, models.DosageToxic),
		fact(6, start.Add(-4*time.Hour), 2, 1, 1, models.DosageToxic),
	}
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	end := analyticsTestEnd
	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if overview.TotalEntries != 2 {
		t.Fatalf("expected preceding window entries to be excluded from totals, got %d", overview.TotalEntries)
	}
	if !approxEqual(overview.MedicinalTrend, 50.0-25.0) {
		t.Fatalf("expected medicinal trend 25, got %v", overview.MedicinalTrend)
	}

	growth, err := service.Growth(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Growth() unexpected error: %v", err)
	}
	if !approxEqual(growth.MedicinalTrend, overview.MedicinalTrend) {
		t.Fatalf("expected growth trend to match overview trend, got %v", growth.MedicinalTrend)
	}
}

func dailyFacts(days int) []models.JournalFact {
	facts := make([]models.JournalFact, 0, days)
	for day := 0; day < days; day++ {
		facts = append(facts, fact(uint(day+1), analyticsTestEnd.AddDate(0, 0, -day), 1, 1, 1, models.DosageMedicinal))
	}
	return facts
}

func TestOverviewStreaksStopAtWindowStart(t *testing.T) {
	reader := &stubFactReader{facts: dailyFacts(15)}
	service := newAnalyticsServiceForTest(reader, nil, nil)

	start := analyticsTestEnd.AddDate(0, 0, -5)
	end := analyticsTestEnd
	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if overview.TotalEntries != 6 {
		t.Fatalf("expected 6 entries inside the window, got %d", overview.TotalEntries)
	}
	if overview.CurrentStreak != 6 || overview.LongestStreak != 6 {
		t.Fatalf("expected streaks truncated to 6 in-window days, got current=%d longest=%d", overview.CurrentStreak, overview.LongestStreak)
	}
}

func TestOverviewDefaultWindowTruncatesOlderStreak(t *testing.T) {
	reader := &stubFactReader{facts: dailyFacts(35)}
	service := newAnalyticsServiceForTest(reader, nil, nil)

	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	// end minus 30 days lands exactly on the 31st daily entry
	if overview.TotalEntries != 31 {
		t.Fatalf("expected 31 entries in the default window, got %d", overview.TotalEntries)
	}
	if overview.CurrentStreak != 31 || overview.LongestStreak != 31 {
		t.Fatalf("expected streaks of 31 days, got current=%d longest=%d", overview.CurrentStreak, overview.LongestStreak)
	}
}

func TestOverviewDominantUsesTrailingSevenDays(t *testing.T) {
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-time.Hour), 1, 3, 4, models.DosageMedicinal),
		fact(2, analyticsTestEnd.AddDate(0, 0, -10), 1, 5, 6, models.DosageMedicinal),
		fact(3, analyticsTestEnd.AddDate(0, 0, -11), 1, 5, 6, models.DosageMedicinal),
	}
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	overview, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if overview.DominantLayerID == nil || *overview.DominantLayerID != 3 {
		t.Fatalf("expected dominant layer from the last 7 days, got %v", overview.DominantLayerID)
	}

	start := analyticsTestEnd.AddDate(0, 0, -30)
	end := analyticsTestEnd.AddDate(0, 0, -9)
	older, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if older.DominantLayerID == nil || *older.DominantLayerID != 5 {
		t.Fatalf("expected dominant layer 5 for the older window, got %v", older.DominantLayerID)
	}

	start = analyticsTestEnd.AddDate(0, 0, -30)
	end = analyticsTestEnd.AddDate(0, 0, -11).Add(time.Minute)
	single, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	if single.DominantLayerID == nil || single.DominantPhaseID == nil {
		t.Fatal("expected dominant ids when the trailing slice has entries")
	}
}

func TestOverviewEmptyWindowIsNotFoundButLandscapeIsZeroed(t *testing.T) {
	service := newAnalyticsServiceForTest(&stubFactReader{}, nil, nil)
	ctx := context.Background()

	if _, err := service.Overview(ctx, AnalyticsQuery{UserID: 42}); !errors.Is(err, ErrNoJournalEntries) {
		t.Fatalf("expected ErrNoJournalEntries, got %v", err)
	}

	landscape, err := service.EmotionalLandscape(ctx, AnalyticsQuery{UserID: 42})
	if err != nil {
		t.Fatalf("EmotionalLandscape() unexpected error: %v", err)
	}
	if landscape.TotalEntries != 0 || len(landscape.LayerDistribution) != 0 || len(landscape.PhaseDistribution) != 0 || len(landscape.TopEmotions) != 0 {
		t.Fatalf("expected zeroed landscape, got %+v", landscape)
	}
	if landscape.TopEmotions == nil || landscape.LayerDistribution == nil {
		t.Fatal("expected empty lists rather than nil so they encode as []")
	}

	selfCare, err := service.SelfCare(ctx, AnalyticsQuery{UserID: 42})
	if err != nil || selfCare.TotalStrategyEntries != 0 || selfCare.DiversityScore != 0 || len(selfCare.TopStrategies) != 0 {
		t.Fatalf("expected zeroed self-care, got %+v err=%v", selfCare, err)
	}

	temporal, err := service.Temporal(ctx, AnalyticsQuery{UserID: 42})
	if err != nil || temporal.ConsistencyScore != 0 || len(temporal.HourlyDistribution) != 0 {
		t.Fatalf("expected zeroed temporal patterns, got %+v err=%v", temporal, err)
	}

	growth, err := service.Growth(ctx, AnalyticsQuery{UserID: 42})
	if err != nil || growth != (GrowthIndicators{}) {
		t.Fatalf("expected zeroed growth, got %+v err=%v", growth, err)
	}
}

func TestEmotionalLandscapeMergesPrimaryAndSecondary(t *testing.T) {
	three := uint(3)
	seven := uint(7)
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-1*time.Hour), 7, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-2*time.Hour), 5, 1, 2, models.DosageMedicinal),
		fact(3, analyticsTestEnd.Add(-3*time.Hour), 5, 2, 2, models.DosageMedicinal),
		fact(4, analyticsTestEnd.Add(-4*time.Hour), 7, 2, 2, models.DosageMedicinal),
	}
	facts[1].SecondaryCurriculumID = &three
	facts[2].SecondaryCurriculumID = &seven
	// identical secondary counts once
	facts[3].SecondaryCurriculumID = &seven
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	landscape, err := service.EmotionalLandscape(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("EmotionalLandscape() unexpected error: %v", err)
	}

	expected := []struct {
		id    uint
		count int
	}{{7, 3}, {5, 2}, {3, 1}}
	if len(landscape.TopEmotions) != len(expected) {
		t.Fatalf("expected %d ranked emotions, got %+v", len(expected), landscape.TopEmotions)
	}
	for index, want := range expected {
		got := landscape.TopEmotions[index]
		if got.CurriculumID != want.id || got.Count != want.count {
			t.Fatalf("rank %d: expected %d x%d, got %d x%d", index, want.id, want.count, got.CurriculumID, got.Count)
		}
	}

	if len(landscape.LayerDistribution) != 2 || landscape.LayerDistribution[0].ID != 1 || !approxEqual(landscape.LayerDistribution[0].Percentage, 50) {
		t.Fatalf("unexpected layer distribution %+v", landscape.LayerDistribution)
	}
	if len(landscape.PhaseDistribution) != 2 || landscape.PhaseDistribution[0].ID != 2 || landscape.PhaseDistribution[0].Count != 3 {
		t.Fatalf("unexpected phase distribution %+v", landscape.PhaseDistribution)
	}

	limited, err := service.EmotionalLandscape(context.Background(), AnalyticsQuery{UserID: 1, Limit: 1})
	if err != nil {
		t.Fatalf("EmotionalLandscape(limit=1) unexpected error: %v", err)
	}
	if len(limited.TopEmotions) != 1 || limited.TopEmotions[0].CurriculumID != 7 {
		t.Fatalf("expected limit to truncate ranking, got %+v", limited.TopEmotions)
	}
}

func TestRankingLimitOutOfRangeIsValidationError(t *testing.T) {
	service := newAnalyticsServiceForTest(&stubFactReader{}, nil, nil)

	for _, limit := range []int{-1, 101} {
		if _, err := service.EmotionalLandscape(context.Background(), AnalyticsQuery{UserID: 1, Limit: limit}); !errors.Is(err, ErrValidation) {
			t.Fatalf("limit %d: expected ErrValidation, got %v", limit, err)
		}
		if _, err := service.SelfCare(context.Background(), AnalyticsQuery{UserID: 1, Limit: limit}); !errors.Is(err, ErrValidation) {
			t.Fatalf("limit %d: expected ErrValidation, got %v", limit, err)
		}
	}
}

func TestSelfCareDiversityAndTopStrategies(t *testing.T) {
	one := uint(1)
	two := uint(2)
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-1*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-2*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(3, analyticsTestEnd.Add(-3*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(4, analyticsTestEnd.Add(-4*time.Hour), 1, 1, 1, models.DosageMedicinal),
	}
	facts[0].StrategyID = &two
	facts[1].StrategyID = &one
	facts[2].StrategyID = &two
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	selfCare, err := service.SelfCare(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("SelfCare() unexpected error: %v", err)
	}
	if selfCare.TotalStrategyEntries != 3 || selfCare.UniqueStrategies != 2 {
		t.Fatalf("unexpected totals %+v", selfCare)
	}
	if !approxEqual(selfCare.DiversityScore, 200.0/3.0) {
		t.Fatalf("expected diversity 66.66..., got %v", selfCare.DiversityScore)
	}
	top := selfCare.TopStrategies
	if len(top) != 2 || top[0].StrategyID != 2 || top[0].Count != 2 || !approxEqual(top[0].Percentage, 200.0/3.0) {
		t.Fatalf("unexpected top strategies %+v", top)
	}
	if top[0].Strategy != "strategy" {
		t.Fatalf("expected strategy text to be attached, got %q", top[0].Strategy)
	}
}

func TestTemporalHourBucketsAndConsistency(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	facts := []models.JournalFact{
		fact(1, time.Date(2026, time.March, 2, 21, 5, 0, 0, time.UTC), 1, 1, 1, models.DosageMedicinal),
		fact(2, time.Date(2026, time.March, 2, 7, 15, 0, 0, time.UTC), 1, 1, 1, models.DosageMedicinal),
		fact(3, time.Date(2026, time.March, 5, 7, 45, 0, 0, time.UTC), 1, 1, 1, models.DosageMedicinal),
	}
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	temporal, err := service.Temporal(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Temporal() unexpected error: %v", err)
	}
	if len(temporal.HourlyDistribution) != 2 {
		t.Fatalf("expected 2 sparse hour buckets, got %+v", temporal.HourlyDistribution)
	}
	if temporal.HourlyDistribution[0] != (HourBucket{Hour: 7, Count: 2}) || temporal.HourlyDistribution[1] != (HourBucket{Hour: 21, Count: 1}) {
		t.Fatalf("unexpected hour buckets %+v", temporal.HourlyDistribution)
	}
	if temporal.ActiveDays != 2 || temporal.DaysInPeriod != 10 || !approxEqual(temporal.ConsistencyScore, 20) {
		t.Fatalf("unexpected consistency %+v", temporal)
	}
}

func TestGrowthCountsDistinctLayersAndPhases(t *testing.T) {
	facts := []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-1*time.Hour), 1, 1, 1, models.DosageMedicinal),
		fact(2, analyticsTestEnd.Add(-2*time.Hour), 2, 2, 1, models.DosageMedicinal),
		fact(3, analyticsTestEnd.Add(-3*time.Hour), 3, 3, 2, models.DosageMedicinal),
	}
	service := newAnalyticsServiceForTest(&stubFactReader{facts: facts}, nil, nil)

	growth, err := service.Growth(context.Background(), AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Growth() unexpected error: %v", err)
	}
	if growth.LayerDiversity != 3 || growth.PhaseCoverage != 2 {
		t.Fatalf("unexpected growth indicators %+v", growth)
	}
	if !approxEqual(growth.MedicinalTrend, 100) {
		t.Fatalf("expected trend 100 against an empty preceding window, got %v", growth.MedicinalTrend)
	}
}

func TestAnalyticsReversedWindowIsRejected(t *testing.T) {
	service := newAnalyticsServiceForTest(&stubFactReader{}, nil, nil)
	start := analyticsTestEnd
	end := analyticsTestEnd.Add(-time.Hour)

	if _, err := service.Temporal(context.Background(), AnalyticsQuery{UserID: 1, Start: &start, End: &end}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestAnalyticsServesRepeatedQueriesFromCache(t *testing.T) {
	reader := &stubFactReader{facts: []models.JournalFact{
		fact(1, analyticsTestEnd.Add(-time.Hour), 1, 1, 1, models.DosageMedicinal),
	}}
	observer := &recordingObserver{}
	service := newAnalyticsServiceForTest(reader, cache.NewMemoryCache(time.Minute, 0), observer)
	ctx := context.Background()

	first, err := service.Overview(ctx, AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("first Overview() unexpected error: %v", err)
	}
	second, err := service.Overview(ctx, AnalyticsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("second Overview() unexpected error: %v", err)
	}
	if reader.calls != 1 {
		t.Fatalf("expected second overview to be served from cache, reader called %d times", reader.calls)
	}
	if first.TotalEntries != second.TotalEntries || !first.LastCheckIn.Equal(*second.LastCheckIn) {
		t.Fatalf("cached overview differs: %+v vs %+v", first, second)
	}
	if observer.hits != 1 || observer.misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", observer.hits, observer.misses)
	}

	service.InvalidateUser(ctx, 1)
	if _, err := service.Overview(ctx, AnalyticsQuery{UserID: 1}); err != nil {
		t.Fatalf("third Overview() unexpected error: %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("expected invalidation to force recomputation, reader called %d times", reader.calls)
	}
}

func TestAnalyticsDoesNotCacheNotFound(t *testing.T) {
	reader := &stubFactReader{}
	service := newAnalyticsServiceForTest(reader, cache.NewMemoryCache(time.Minute, 0), nil)

	for attempt := 0; attempt < 2; attempt++ {
		if _, err := service.Overview(context.Background(), AnalyticsQuery{UserID: 3}); !errors.Is(err, ErrNoJournalEntries) {
			t.Fatalf("attempt %d: expected ErrNoJournalEntries, got %v", attempt, err)
		}
	}
	if reader.calls != 2 {
		t.Fatalf("expected empty results to bypass the cache, reader called %d times", reader.calls)
	}
}

func TestAnalyticsWrapsReaderFailures(t *testing.T) {
	service := newAnalyticsServiceForTest(&stubFactReader{err: errors.New("disk gone")}, nil, nil)

	if _, err := service.Temporal(context.Background(), AnalyticsQuery{UserID: 1}); !errors.Is(err, ErrAnalyticsFailed) {
		t.Fatalf("expected ErrAnalyticsFailed, got %v", err)
	}
}
