package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, day("2024-01-10")))
	assert.Equal(t, 0, Streak([]time.Time{}, day("2024-01-10")))
}

func TestStreakConsecutive(t *testing.T) {
	ref := day("2024-01-10")
	dates := []time.Time{day("2024-01-10"), day("2024-01-09"), day("2024-01-08")}
	assert.Equal(t, 3, Streak(dates, ref))
}

func TestStreakGapTruncates(t *testing.T) {
	ref := day("2024-01-10")
	// Missing Jan 9: only today counts.
	dates := []time.Time{day("2024-01-10"), day("2024-01-08")}
	assert.Equal(t, 1, Streak(dates, ref))
}

func TestStreakUnsortedInput(t *testing.T) {
	ref := day("2024-01-10")
	dates := []time.Time{day("2024-01-08"), day("2024-01-10"), day("2024-01-09")}
	assert.Equal(t, 3, Streak(dates, ref))
}

func TestStreakDuplicatesCollapse(t *testing.T) {
	ref := day("2024-01-10")
	dates := []time.Time{
		day("2024-01-10"), day("2024-01-10"),
		day("2024-01-09"), day("2024-01-09"),
	}
	assert.Equal(t, 2, Streak(dates, ref))
}

func TestStreakNoCheckinToday(t *testing.T) {
	ref := day("2024-01-10")
	dates := []time.Time{day("2024-01-09"), day("2024-01-08")}
	// The walk starts at ref itself; an absent today breaks immediately.
	assert.Equal(t, 0, Streak(dates, ref))
}

func TestStreakIgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 18, 45, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, Streak(dates, ref))
}

func TestProgressOnTrack(t *testing.T) {
	got := ComputeProgress(
		day("2024-01-01"), day("2024-01-10"),
		[]time.Time{day("2024-01-01"), day("2024-01-02"), day("2024-01-03")},
		day("2024-01-03"),
	)
	assert.Equal(t, Progress{TotalDays: 10, DaysElapsed: 3, CompletedDays: 3, Percentage: 100}, got)
}

func TestProgressPastTargetClampsElapsed(t *testing.T) {
	got := ComputeProgress(day("2024-01-01"), day("2024-01-10"), nil, day("2024-01-15"))
	assert.Equal(t, Progress{TotalDays: 10, DaysElapsed: 10, CompletedDays: 0, Percentage: 0}, got)
}

func TestProgressMissingDates(t *testing.T) {
	completed := []time.Time{day("2024-01-01"), day("2024-01-02")}
	assert.Equal(t, Progress{}, ComputeProgress(time.Time{}, day("2024-01-10"), completed, day("2024-01-05")))
	assert.Equal(t, Progress{}, ComputeProgress(day("2024-01-01"), time.Time{}, completed, day("2024-01-05")))
}

func TestProgressBeforeStart(t *testing.T) {
	got := ComputeProgress(day("2024-02-01"), day("2024-02-10"), nil, day("2024-01-20"))
	assert.Equal(t, 0, got.DaysElapsed)
	assert.Equal(t, 0, got.Percentage)
	assert.Equal(t, 10, got.TotalDays)
}

func TestProgressOutOfRangeCompletionsExcluded(t *testing.T) {
	got := ComputeProgress(
		day("2024-01-05"), day("2024-01-10"),
		[]time.Time{day("2024-01-01"), day("2024-01-05"), day("2024-01-11")},
		day("2024-01-06"),
	)
	assert.Equal(t, 1, got.CompletedDays)
	assert.Equal(t, 2, got.DaysElapsed)
	assert.Equal(t, 50, got.Percentage)
}

func TestProgressClampedAtHundred(t *testing.T) {
	// Duplicate upserts can never create extra rows, but the percentage
	// is clamped regardless.
	got := ComputeProgress(
		day("2024-01-01"), day("2024-01-10"),
		[]time.Time{day("2024-01-01"), day("2024-01-02")},
		day("2024-01-01"),
	)
	assert.Equal(t, 100, got.Percentage)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 35, Score(2, 1, 4)) // 20 + 20 - 5
	assert.Equal(t, 0, Score(0, 0, 0))
	assert.Equal(t, -15, Score(0, 3, 0))
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, WinRate(0, 0, 0))
	assert.Equal(t, 50.0, WinRate(1, 1, 0))
	assert.Equal(t, 33.3, WinRate(1, 1, 1))
	assert.Equal(t, 66.7, WinRate(2, 1, 0))
}

func TestIdempotence(t *testing.T) {
	ref := day("2024-01-10")
	dates := []time.Time{day("2024-01-10"), day("2024-01-09")}
	assert.Equal(t, Streak(dates, ref), Streak(dates, ref))

	p1 := ComputeProgress(day("2024-01-01"), day("2024-01-10"), dates, ref)
	p2 := ComputeProgress(day("2024-01-01"), day("2024-01-10"), dates, ref)
	assert.Equal(t, p1, p2)

	assert.Equal(t, Score(3, 2, 5), Score(3, 2, 5))
}
