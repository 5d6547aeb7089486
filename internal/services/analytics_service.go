package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/logging"
	"github.com/terraincognita07/wavelength/internal/models"
)

const (
	EndpointOverview           = "overview"
	EndpointEmotionalLandscape = "emotional-landscape"
	EndpointSelfCare           = "self-care"
	EndpointTemporal           = "temporal"
	EndpointGrowth             = "growth"

	DefaultTopEmotionsLimit   = 10
	DefaultTopStrategiesLimit = 5
	MaxRankingLimit           = 100
)

var ErrAnalyticsFailed = errors.New("analytics computation failed")

type AnalyticsJournalReader interface {
	ListFactsByUserRange(userID uint, start time.Time, end time.Time) ([]models.JournalFact, error)
}

type AnalyticsCurriculumReader interface {
	ListByIDs(ids []uint) ([]models.Curriculum, error)
}

type AnalyticsStrategyReader interface {
	ListByIDs(ids []uint) ([]models.Strategy, error)
}

type AnalyticsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

type AnalyticsObserver interface {
	RecordCacheLookup(endpoint string, hit bool)
	ObserveAnalytics(endpoint string, elapsed time.Duration)
}

type AnalyticsQuery struct {
	UserID uint
	Start  *time.Time
	End    *time.Time
	Limit  int
}

type AnalyticsOverview struct {
	TotalEntries         int        `json:"total_entries"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	AvgFrequency         float64    `json:"avg_frequency"`
	LastCheckIn          *time.Time `json:"last_check_in"`
	MedicinalRatio       float64    `json:"medicinal_ratio"`
	MedicinalTrend       float64    `json:"medicinal_trend"`
	DominantLayerID      *uint      `json:"dominant_layer_id"`
	DominantPhaseID      *uint      `json:"dominant_phase_id"`
	UniqueEmotions       int        `json:"unique_emotions"`
	StrategiesUsed       int        `json:"strategies_used"`
	SecondaryEmotionsPct float64    `json:"secondary_emotions_pct"`
}

type EmotionRanking struct {
	CurriculumID uint          `json:"curriculum_id"`
	Expression   string        `json:"expression"`
	Dosage       models.Dosage `json:"dosage"`
	Count        int           `json:"count"`
}

type EmotionalLandscape struct {
	TotalEntries      int                `json:"total_entries"`
	LayerDistribution []DistributionItem `json:"layer_distribution"`
	PhaseDistribution []DistributionItem `json:"phase_distribution"`
	TopEmotions       []EmotionRanking   `json:"top_emotions"`
}

type StrategyUsage struct {
	StrategyID uint    `json:"strategy_id"`
	Strategy   string  `json:"strategy"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type SelfCareAnalytics struct {
	TotalStrategyEntries int             `json:"total_strategy_entries"`
	UniqueStrategies     int             `json:"unique_strategies"`
	DiversityScore       float64         `json:"diversity_score"`
	TopStrategies        []StrategyUsage `json:"top_strategies"`
}

type TemporalPatterns struct {
	TotalEntries       int          `json:"total_entries"`
	HourlyDistribution []HourBucket `json:"hourly_distribution"`
	ActiveDays         int          `json:"active_days"`
	DaysInPeriod       int          `json:"days_in_period"`
	ConsistencyScore   float64      `json:"consistency_score"`
}

type GrowthIndicators struct {
	MedicinalTrend float64 `json:"medicinal_trend"`
	LayerDiversity int     `json:"layer_diversity"`
	PhaseCoverage  int     `json:"phase_coverage"`
}

type AnalyticsService struct {
	journal    AnalyticsJournalReader
	curriculum AnalyticsCurriculumReader
	strategies AnalyticsStrategyReader
	cache      AnalyticsCache
	observer   AnalyticsObserver
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAnalyticsService wires the analytics engine. cacheStore, observer and
// logger may be nil.
func NewAnalyticsService(
	journal AnalyticsJournalReader,
	curriculum AnalyticsCurriculumReader,
	strategies AnalyticsStrategyReader,
	cacheStore AnalyticsCache,
	observer AnalyticsObserver,
	logger *logrus.Logger,
) *AnalyticsService {
	if cacheStore == nil {
		cacheStore = cache.Noop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &AnalyticsService{
		journal:    journal,
		curriculum: curriculum,
		strategies: strategies,
		cache:      cacheStore,
		observer:   observer,
		logger:     logger,
		now:        time.Now,
	}
}

// InvalidateUser drops every cached analytics result of the user. Failures
// are logged and swallowed since the cache is never authoritative.
func (service *AnalyticsService) InvalidateUser(ctx context.Context, userID uint) {
	if err := service.cache.InvalidatePrefix(ctx, cache.UserPrefix(userID)); err != nil {
		service.logger.WithError(err).WithField("user_id", userID).Warn("analytics cache invalidation failed")
	}
}

func (service *AnalyticsService) Overview(ctx context.Context, query AnalyticsQuery) (AnalyticsOverview, error) {
	window, err := ResolveWindow(query.Start, query.End, service.now())
	if err != nil {
		return AnalyticsOverview{}, err
	}
	return cachedResult(ctx, service, query.UserID, EndpointOverview, window, nil, func() (AnalyticsOverview, error) {
		return service.computeOverview(query.UserID, window)
	})
}

func (service *AnalyticsService) EmotionalLandscape(ctx context.Context, query AnalyticsQuery) (EmotionalLandscape, error) {
	window, err := ResolveWindow(query.Start, query.End, service.now())
	if err != nil {
		return EmotionalLandscape{}, err
	}
	limit, err := resolveRankingLimit(query.Limit, DefaultTopEmotionsLimit)
	if err != nil {
		return EmotionalLandscape{}, err
	}
	extras := map[string]string{"limit": fmt.Sprint(limit)}
	return cachedResult(ctx, service, query.UserID, EndpointEmotionalLandscape, window, extras, func() (EmotionalLandscape, error) {
		return service.computeEmotionalLandscape(query.UserID, window, limit)
	})
}

func (service *AnalyticsService) SelfCare(ctx context.Context, query AnalyticsQuery) (SelfCareAnalytics, error) {
	window, err := ResolveWindow(query.Start, query.End, service.now())
	if err != nil {
		return SelfCareAnalytics{}, err
	}
	limit, err := resolveRankingLimit(query.Limit, DefaultTopStrategiesLimit)
	if err != nil {
		return SelfCareAnalytics{}, err
	}
	extras := map[string]string{"limit": fmt.Sprint(limit)}
	return cachedResult(ctx, service, query.UserID, EndpointSelfCare, window, extras, func() (SelfCareAnalytics, error) {
		return service.computeSelfCare(query.UserID, window, limit)
	})
}

func (service *AnalyticsService) Temporal(ctx context.Context, query AnalyticsQuery) (TemporalPatterns, error) {
	window, err := ResolveWindow(query.Start, query.End, service.now())
	if err != nil {
		return TemporalPatterns{}, err
	}
	return cachedResult(ctx, service, query.UserID, EndpointTemporal, window, nil, func() (TemporalPatterns, error) {
		return service.computeTemporal(query.UserID, window)
	})
}

func (service *AnalyticsService) Growth(ctx context.Context, query AnalyticsQuery) (GrowthIndicators, error) {
	window, err := ResolveWindow(query.Start, query.End, service.now())
	if err != nil {
		return GrowthIndicators{}, err
	}
	return cachedResult(ctx, service, query.UserID, EndpointGrowth, window, nil, func() (GrowthIndicators, error) {
		return service.computeGrowth(query.UserID, window)
	})
}

func resolveRankingLimit(limit int, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 1 || limit > MaxRankingLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, MaxRankingLimit)
	}
	return limit, nil
}

// cachedResult serves endpoint results from the cache and stores fresh
// computations. Cache failures fall through to computing the result.
func cachedResult[T any](
	ctx context.Context,
	service *AnalyticsService,
	userID uint,
	endpoint string,
	window Window,
	extras map[string]string,
	compute func() (T, error),
) (T, error) {
	key := cache.Key(userID, endpoint, window.Start, window.End, extras)
	entry := service.logger.WithField("endpoint", endpoint)

	raw, hit, err := service.cache.Get(ctx, key)
	if err != nil {
		entry.WithError(err).Warn("analytics cache read failed")
	}
	if hit {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			service.recordLookup(endpoint, true)
			return cached, nil
		}
		entry.Warn("discarding undecodable analytics cache entry")
	}
	service.recordLookup(endpoint, false)

	started := time.Now()
	result, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	if service.observer != nil {
		service.observer.ObserveAnalytics(endpoint, time.Since(started))
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		entry.WithError(err).Warn("analytics result encoding failed")
		return result, nil
	}
	if err := service.cache.Set(ctx, key, encoded); err != nil {
		entry.WithError(err).Warn("analytics cache write failed")
	}
	return result, nil
}

func (service *AnalyticsService) recordLookup(endpoint string, hit bool) {
	if service.observer != nil {
		service.observer.RecordCacheLookup(endpoint, hit)
	}
}

func (service *AnalyticsService) fetchFacts(userID uint, window Window) ([]models.JournalFact, error) {
	facts, err := service.journal.ListFactsByUserRange(userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyticsFailed, err)
	}
	return facts, nil
}

func (service *AnalyticsService) computeOverview(userID uint, window Window) (AnalyticsOverview, error) {
	previous := window.Previous()
	dominant := window.TrailingDominant()
	span := Window{Start: previous.Start, End: window.End}
	if dominant.Start.Before(span.Start) {
		span.Start = dominant.Start
	}

	all, err := service.fetchFacts(userID, span)
	if err != nil {
		return AnalyticsOverview{}, err
	}
	facts := factsInWindow(all, window)
	if len(facts) == 0 {
		return AnalyticsOverview{}, ErrNoJournalEntries
	}

	timestamps := factTimestamps(facts)
	lastCheckIn := models.CanonicalUTC(facts[0].CreatedAt)
	dominantLayerID, dominantPhaseID := DominantLayerAndPhase(factsInWindow(all, dominant))

	secondary := 0
	for _, fact := range facts {
		if fact.SecondaryCurriculumID != nil {
			secondary++
		}
	}

	return AnalyticsOverview{
		TotalEntries:    len(facts),
		CurrentStreak:   CurrentStreak(timestamps, window.End),
		LongestStreak:   LongestStreak(timestamps),
		AvgFrequency:    float64(len(facts)) / float64(window.DaysInPeriod()),
		LastCheckIn:     &lastCheckIn,
		MedicinalRatio:  MedicinalRatio(facts),
		MedicinalTrend:  MedicinalTrend(all, window),
		DominantLayerID: dominantLayerID,
		DominantPhaseID: dominantPhaseID,
		UniqueEmotions: distinctCount(facts, func(fact models.JournalFact) (uint, bool) {
			return fact.CurriculumID, true
		}),
		StrategiesUsed: distinctCount(facts, func(fact models.JournalFact) (uint, bool) {
			if fact.StrategyID == nil {
				return 0, false
			}
			return *fact.StrategyID, true
		}),
		SecondaryEmotionsPct: percentage(secondary, len(facts)),
	}, nil
}

func (service *AnalyticsService) computeEmotionalLandscape(userID uint, window Window, limit int) (EmotionalLandscape, error) {
	facts, err := service.fetchFacts(userID, window)
	if err != nil {
		return EmotionalLandscape{}, err
	}

	ranked := rankedCounts(emotionCounts(facts))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]uint, 0, len(ranked))
	for _, item := range ranked {
		ids = append(ids, item.id)
	}
	entries, err := service.curriculum.ListByIDs(ids)
	if err != nil {
		return EmotionalLandscape{}, fmt.Errorf("%w: %v", ErrAnalyticsFailed, err)
	}
	byID := make(map[uint]models.Curriculum, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	topEmotions := make([]EmotionRanking, 0, len(ranked))
	for _, item := range ranked {
		entry := byID[item.id]
		topEmotions = append(topEmotions, EmotionRanking{
			CurriculumID: item.id,
			Expression:   entry.Expression,
			Dosage:       entry.Dosage,
			Count:        item.count,
		})
	}

	return EmotionalLandscape{
		TotalEntries:      len(facts),
		LayerDistribution: LayerDistribution(facts),
		PhaseDistribution: PhaseDistribution(facts),
		TopEmotions:       topEmotions,
	}, nil
}

func (service *AnalyticsService) computeSelfCare(userID uint, window Window, limit int) (SelfCareAnalytics, error) {
	facts, err := service.fetchFacts(userID, window)
	if err != nil {
		return SelfCareAnalytics{}, err
	}

	counts, total := strategyCounts(facts)
	ranked := rankedCounts(counts)
	unique := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]uint, 0, len(ranked))
	for _, item := range ranked {
		ids = append(ids, item.id)
	}
	strategies, err := service.strategies.ListByIDs(ids)
	if err != nil {
		return SelfCareAnalytics{}, fmt.Errorf("%w: %v", ErrAnalyticsFailed, err)
	}
	names := make(map[uint]string, len(strategies))
	for _, strategy := range strategies {
		names[strategy.ID] = strategy.Strategy
	}

	top := make([]StrategyUsage, 0, len(ranked))
	for _, item := range ranked {
		top = append(top, StrategyUsage{
			StrategyID: item.id,
			Strategy:   names[item.id],
			Count:      item.count,
			Percentage: percentage(item.count, total),
		})
	}

	return SelfCareAnalytics{
		TotalStrategyEntries: total,
		UniqueStrategies:     unique,
		DiversityScore:       percentage(unique, total),
		TopStrategies:        top,
	}, nil
}

func (service *AnalyticsService) computeTemporal(userID uint, window Window) (TemporalPatterns, error) {
	facts, err := service.fetchFacts(userID, window)
	if err != nil {
		return TemporalPatterns{}, err
	}

	activeDays := len(DistinctUTCDates(factTimestamps(facts)))
	daysInPeriod := window.DaysInPeriod()
	return TemporalPatterns{
		TotalEntries:       len(facts),
		HourlyDistribution: HourlyDistribution(facts),
		ActiveDays:         activeDays,
		DaysInPeriod:       daysInPeriod,
		ConsistencyScore:   percentage(activeDays, daysInPeriod),
	}, nil
}

func (service *AnalyticsService) computeGrowth(userID uint, window Window) (GrowthIndicators, error) {
	all, err := service.fetchFacts(userID, Window{Start: window.Previous().Start, End: window.End})
	if err != nil {
		return GrowthIndicators{}, err
	}
	facts := factsInWindow(all, window)
	if len(facts) == 0 {
		return GrowthIndicators{}, nil
	}

	return GrowthIndicators{
		MedicinalTrend: MedicinalTrend(all, window),
		LayerDiversity: distinctCount(facts, func(fact models.JournalFact) (uint, bool) {
			return fact.LayerID, true
		}),
		PhaseCoverage: distinctCount(facts, func(fact models.JournalFact) (uint, bool) {
			return fact.PhaseID, true
		}),
	}, nil
}
