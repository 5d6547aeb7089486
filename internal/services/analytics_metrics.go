package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/wavelength/internal/models"
)

type DistributionItem struct {
	ID         uint    `json:"id"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type idCount struct {
	id    uint
	count int
}

func factsInWindow(facts []models.JournalFact, window Window) []models.JournalFact {
	selected := make([]models.JournalFact, 0, len(facts))
	for _, fact := range facts {
		if window.Contains(models.CanonicalUTC(fact.CreatedAt)) {
			selected = append(selected, fact)
		}
	}
	return selected
}

func factTimestamps(facts []models.JournalFact) []time.Time {
	timestamps := make([]time.Time, 0, len(facts))
	for _, fact := range facts {
		timestamps = append(timestamps, fact.CreatedAt)
	}
	return timestamps
}

func percentage(part int, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// MedicinalRatio is the share of entries whose primary curriculum is
// medicinal, as a percentage.
func MedicinalRatio(facts []models.JournalFact) float64 {
	medicinal := 0
	for _, fact := range facts {
		if fact.Dosage == models.DosageMedicinal {
			medicinal++
		}
	}
	return percentage(medicinal, len(facts))
}

// MedicinalTrend is the percentage point change of the medicinal ratio from
// the preceding window of equal length to window.
func MedicinalTrend(facts []models.JournalFact, window Window) float64 {
	current := MedicinalRatio(factsInWindow(facts, window))
	previous := MedicinalRatio(factsInWindow(facts, window.Previous()))
	return current - previous
}

// rankedCounts orders ids by count descending, lowest id first on ties.
func rankedCounts(counts map[uint]int) []idCount {
	ranked := make([]idCount, 0, len(counts))
	for id, count := range counts {
		ranked = append(ranked, idCount{id: id, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})
	return ranked
}

// DominantLayerAndPhase returns the most frequent layer and phase in facts,
// or nil when facts is empty.
func DominantLayerAndPhase(facts []models.JournalFact) (*uint, *uint) {
	if len(facts) == 0 {
		return nil, nil
	}

	layers := make(map[uint]int)
	phases := make(map[uint]int)
	for _, fact := range facts {
		layers[fact.LayerID]++
		phases[fact.PhaseID]++
	}

	layerID := rankedCounts(layers)[0].id
	phaseID := rankedCounts(phases)[0].id
	return &layerID, &phaseID
}

func distribution(facts []models.JournalFact, key func(models.JournalFact) uint) []DistributionItem {
	counts := make(map[uint]int)
	for _, fact := range facts {
		counts[key(fact)]++
	}

	items := make([]DistributionItem, 0, len(counts))
	for _, ranked := range rankedCounts(counts) {
		items = append(items, DistributionItem{
			ID:         ranked.id,
			Count:      ranked.count,
			Percentage: percentage(ranked.count, len(facts)),
		})
	}
	return items
}

func LayerDistribution(facts []models.JournalFact) []DistributionItem {
	return distribution(facts, func(fact models.JournalFact) uint { return fact.LayerID })
}

func PhaseDistribution(facts []models.JournalFact) []DistributionItem {
	return distribution(facts, func(fact models.JournalFact) uint { return fact.PhaseID })
}

// emotionCounts merges primary and secondary curriculum references. An entry
// whose secondary equals its primary counts once.
func emotionCounts(facts []models.JournalFact) map[uint]int {
	counts := make(map[uint]int)
	for _, fact := range facts {
		counts[fact.CurriculumID]++
		if fact.SecondaryCurriculumID != nil && *fact.SecondaryCurriculumID != fact.CurriculumID {
			counts[*fact.SecondaryCurriculumID]++
		}
	}
	return counts
}

func strategyCounts(facts []models.JournalFact) (map[uint]int, int) {
	counts := make(map[uint]int)
	total := 0
	for _, fact := range facts {
		if fact.StrategyID == nil {
			continue
		}
		counts[*fact.StrategyID]++
		total++
	}
	return counts, total
}

func distinctCount(facts []models.JournalFact, key func(models.JournalFact) (uint, bool)) int {
	seen := make(map[uint]struct{})
	for _, fact := range facts {
		if id, ok := key(fact); ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// HourlyDistribution buckets entries by UTC hour, omitting empty hours.
func HourlyDistribution(facts []models.JournalFact) []HourBucket {
	var counts [24]int
	for _, fact := range facts {
		counts[fact.CreatedAt.UTC().Hour()]++
	}

	buckets := make([]HourBucket, 0)
	for hour, count := range counts {
		if count > 0 {
			buckets = append(buckets, HourBucket{Hour: hour, Count: count})
		}
	}
	return buckets
}
