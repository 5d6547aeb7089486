package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/wavelength/internal/models"
)

const day = 24 * time.Hour

// DistinctUTCDates returns the calendar days (UTC midnight) that carry at
// least one timestamp, ascending.
func DistinctUTCDates(timestamps []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(timestamps))
	dates := make([]time.Time, 0, len(timestamps))
	for _, timestamp := range timestamps {
		date := models.UTCDate(timestamp)
		if _, exists := seen[date]; exists {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// CurrentStreak counts consecutive days ending at the most recent entry. A
// most recent entry older than the day before end breaks the streak.
func CurrentStreak(timestamps []time.Time, end time.Time) int {
	dates := DistinctUTCDates(timestamps)
	if len(dates) == 0 {
		return 0
	}

	latest := dates[len(dates)-1]
	if latest.Before(models.UTCDate(end).Add(-day)) {
		return 0
	}

	streak := 0
	expected := latest
	for index := len(dates) - 1; index >= 0; index-- {
		if !dates[index].Equal(expected) {
			break
		}
		streak++
		expected = expected.Add(-day)
	}
	return streak
}

// LongestStreak is the longest run of consecutive days in timestamps.
func LongestStreak(timestamps []time.Time) int {
	dates := DistinctUTCDates(timestamps)
	if len(dates) == 0 {
		return 0
	}

	longest := 1
	current := 1
	for index := 1; index < len(dates); index++ {
		if dates[index].Sub(dates[index-1]) == day {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 1
	}
	return longest
}
