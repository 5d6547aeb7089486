package services

import (
	"testing"
	"time"
)

func daysBefore(end time.Time, offsets ...int) []time.Time {
	timestamps := make([]time.Time, 0, len(offsets))
	for _, offset := range offsets {
		timestamps = append(timestamps, end.AddDate(0, 0, -offset))
	}
	return timestamps
}

func TestStreaksOverFiveConsecutiveDays(t *testing.T) {
	end := time.Date(2026, time.May, 5, 18, 0, 0, 0, time.UTC)
	timestamps := daysBefore(end, 4, 3, 2, 1, 0)

	if current := CurrentStreak(timestamps, end); current != 5 {
		t.Fatalf("expected current streak 5, got %d", current)
	}
	if longest := LongestStreak(timestamps); longest != 5 {
		t.Fatalf("expected longest streak 5, got %d", longest)
	}
}

func TestStreaksAcrossTwoDayGap(t *testing.T) {
	end := time.Date(2026, time.May, 5, 18, 0, 0, 0, time.UTC)
	// days 0, 3 and 4 of a window ending on day 4
	timestamps := daysBefore(end, 4, 1, 0)

	if current := CurrentStreak(timestamps, end); current != 2 {
		t.Fatalf("expected current streak 2, got %d", current)
	}
	if longest := LongestStreak(timestamps); longest != 2 {
		t.Fatalf("expected longest streak 2, got %d", longest)
	}
}

func TestStreaksWithLongerEarlierRun(t *testing.T) {
	end := time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC)
	// run of 4 ending 6 days ago, gap, run of 2 ending today
	timestamps := daysBefore(end, 9, 8, 7, 6, 1, 0)

	current := CurrentStreak(timestamps, end)
	longest := LongestStreak(timestamps)
	if current != 2 {
		t.Fatalf("expected current streak 2, got %d", current)
	}
	if longest != 4 {
		t.Fatalf("expected longest streak 4, got %d", longest)
	}
	if longest < current {
		t.Fatalf("longest streak %d must not be below current %d", longest, current)
	}
}

func TestCurrentStreakAllowsYesterdayButNotOlder(t *testing.T) {
	end := time.Date(2026, time.May, 10, 0, 30, 0, 0, time.UTC)

	if current := CurrentStreak(daysBefore(end, 2, 1), end); current != 2 {
		t.Fatalf("expected streak ending yesterday to count, got %d", current)
	}
	if current := CurrentStreak(daysBefore(end, 3, 2), end); current != 0 {
		t.Fatalf("expected stale streak to be 0, got %d", current)
	}
}

func TestStreaksOfEmptySetAreZero(t *testing.T) {
	end := time.Now()
	if current := CurrentStreak(nil, end); current != 0 {
		t.Fatalf("expected empty current streak 0, got %d", current)
	}
	if longest := LongestStreak(nil); longest != 0 {
		t.Fatalf("expected empty longest streak 0, got %d", longest)
	}
}

func TestStreaksCountDistinctDatesOnce(t *testing.T) {
	end := time.Date(2026, time.May, 10, 23, 0, 0, 0, time.UTC)
	timestamps := []time.Time{
		end,
		end.Add(-time.Hour),
		end.Add(-22 * time.Hour),
		end.Add(-24 * time.Hour),
	}

	if current := CurrentStreak(timestamps, end); current != 2 {
		t.Fatalf("expected duplicates on a day to count once, got %d", current)
	}
}

func TestStreaksUseUTCCalendarDays(t *testing.T) {
	plusFive := time.FixedZone("UTC+5", 5*60*60)
	// 02:00 at +05:00 on May 10 is 21:00 UTC on May 9
	entry := time.Date(2026, time.May, 10, 2, 0, 0, 0, plusFive)
	end := time.Date(2026, time.May, 11, 12, 0, 0, 0, time.UTC)

	if current := CurrentStreak([]time.Time{entry}, end); current != 0 {
		t.Fatalf("expected entry on May 9 UTC to be stale for May 11, got %d", current)
	}
	dates := DistinctUTCDates([]time.Time{entry})
	if len(dates) != 1 || dates[0].Day() != 9 {
		t.Fatalf("expected UTC date May 9, got %v", dates)
	}
}
