package tracking

import (
	"sort"
	"time"
)

// Streak counts consecutive done-days ending today or yesterday. A single
// missing day before today is tolerated (grace window); a gap of more than
// one day breaks the streak. Input dates may be unordered and need not be
// normalized; dates after today are ignored.
func Streak(doneDates []time.Time, today time.Time) int {
	today = DateOf(today)

	seen := make(map[time.Time]struct{}, len(doneDates))
	dates := make([]time.Time, 0, len(doneDates))
	for _, d := range doneDates {
		day := DateOf(d)
		if day.After(today) {
			continue
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	if DaysBetween(dates[0], today) > 1 {
		return 0
	}

	streak := 1
	prev := dates[0]
	for _, d := range dates[1:] {
		if DaysBetween(d, prev) != 1 {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// CapStreak clamps a computed streak to what is arithmetically possible for
// the entity: no longer than the days elapsed since its start (inclusive)
// and no longer than its target duration.
func CapStreak(streak int, startDate, today time.Time, targetDays int) int {
	maxDays := DaysBetween(startDate, today) + 1
	if maxDays < 0 {
		maxDays = 0
	}
	if streak > maxDays {
		streak = maxDays
	}
	if targetDays > 0 && streak > targetDays {
		streak = targetDays
	}
	return streak
}
