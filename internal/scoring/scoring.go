// Package scoring holds the pure computation behind progress bars,
// streak counters and leaderboard rankings. Functions here never touch
// the database or the clock: callers load the rows and inject the
// reference date, which keeps every result deterministic and testable.
package scoring

import (
	"math"
	"sort"
	"time"
)

// DateOnly truncates t to midnight UTC. All streak and progress
// arithmetic treats check-in dates as whole calendar days in this single
// reference timezone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak returns the length of the unbroken run of daily check-ins
// ending at ref. Input order does not matter and duplicate dates for the
// same day collapse to one. A gap of a single day truncates the run;
// there is no notion of a best historical streak.
func Streak(dates []time.Time, ref time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := DateOnly(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := DateOnly(ref)
	streak := 0
	for i, day := range days {
		expected := today.AddDate(0, 0, -i)
		if !day.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// Progress describes how far along a bet is relative to the days that
// have already elapsed.
type Progress struct {
	TotalDays     int `json:"totalDays"`
	DaysElapsed   int `json:"daysElapsed"`
	CompletedDays int `json:"completedDays"`
	Percentage    int `json:"percentage"`
}

// ComputeProgress derives completion stats for a bet spanning [start,
// target] inclusive. The percentage denominator is days elapsed, not the
// full span, so a bet that is on track reads 100% from day one. Missing
// start or target (zero time) yields the zero Progress. The result is
// clamped to [0, 100].
func ComputeProgress(start, target time.Time, completed []time.Time, ref time.Time) Progress {
	if start.IsZero() || target.IsZero() {
		return Progress{}
	}

	startDay := DateOnly(start)
	targetDay := DateOnly(target)
	refDay := DateOnly(ref)

	totalDays := daysBetween(startDay, targetDay) + 1
	if totalDays < 0 {
		totalDays = 0
	}

	end := targetDay
	if refDay.Before(end) {
		end = refDay
	}
	elapsed := daysBetween(startDay, end) + 1
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > totalDays {
		elapsed = totalDays
	}

	seen := make(map[time.Time]struct{}, len(completed))
	done := 0
	for _, d := range completed {
		day := DateOnly(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		if !day.Before(startDay) && !day.After(targetDay) {
			done++
		}
	}

	pct := 0
	if elapsed > 0 {
		pct = int(math.Round(float64(done) / float64(elapsed) * 100))
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
	}

	return Progress{
		TotalDays:     totalDays,
		DaysElapsed:   elapsed,
		CompletedDays: done,
		Percentage:    pct,
	}
}

// Score is the composite leaderboard sort key. It has no floor and can
// go negative for users who lose more than they win.
func Score(won, lost, streak int) int {
	return won*10 + streak*5 - lost*5
}

// WinRate returns the percentage of resolved-won bets over all bets,
// rounded to one decimal. Pending bets count toward the denominator,
// matching the original leaderboard.
func WinRate(won, lost, pending int) float64 {
	total := won + lost + pending
	if total == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(total)*1000) / 10
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
