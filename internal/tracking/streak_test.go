package tracking

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestStreak(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		dates []string
		want  int
	}{
		{
			name:  "no_completions",
			dates: nil,
			want:  0,
		},
		{
			name:  "three_consecutive_ending_today",
			dates: []string{"2026-08-31", "2026-08-30", "2026-08-29"},
			want:  3,
		},
		{
			name:  "gap_two_days_back_breaks_walk",
			dates: []string{"2026-08-31", "2026-08-30", "2026-08-28"},
			want:  2,
		},
		{
			name:  "yesterday_keeps_streak_standing",
			dates: []string{"2026-08-30", "2026-08-29"},
			want:  2,
		},
		{
			name:  "two_day_gap_to_today_breaks",
			dates: []string{"2026-08-29", "2026-08-28", "2026-08-27"},
			want:  0,
		},
		{
			name:  "unordered_input",
			dates: []string{"2026-08-29", "2026-08-31", "2026-08-30"},
			want:  3,
		},
		{
			name:  "duplicate_days_never_double_count",
			dates: []string{"2026-08-31", "2026-08-31", "2026-08-30"},
			want:  2,
		},
		{
			name:  "future_dates_ignored",
			dates: []string{"2026-09-02", "2026-08-31", "2026-08-30"},
			want:  2,
		},
		{
			name:  "single_completion_today",
			dates: []string{"2026-08-31"},
			want:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dates := make([]time.Time, 0, len(tc.dates))
			for _, s := range tc.dates {
				dates = append(dates, day(t, s))
			}
			if got := Streak(dates, today); got != tc.want {
				t.Fatalf("Streak(%v)=%d, want %d", tc.dates, got, tc.want)
			}
		})
	}
}

func TestStreakIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 8, 31, 23, 45, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2026, 8, 31, 1, 2, 3, 0, time.UTC),
		time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC),
	}
	if got := Streak(dates, today); got != 2 {
		t.Fatalf("Streak=%d, want 2", got)
	}
}

func TestCapStreak(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		streak     int
		startDate  string
		targetDays int
		want       int
	}{
		{"under_both_limits", 3, "2026-08-20", 7, 3},
		{"capped_by_target", 9, "2026-08-01", 7, 7},
		{"capped_by_elapsed_days", 5, "2026-08-30", 7, 2},
		{"start_today_allows_one", 1, "2026-08-31", 7, 1},
		{"zero_streak_unchanged", 0, "2026-08-01", 7, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CapStreak(tc.streak, day(t, tc.startDate), today, tc.targetDays)
			if got != tc.want {
				t.Fatalf("CapStreak(%d)=%d, want %d", tc.streak, got, tc.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2026-08-30", "2026-08-31", 1},
		{"2026-08-31", "2026-08-31", 0},
		{"2026-08-31", "2026-08-29", -2},
		{"2026-07-31", "2026-08-31", 31},
	}
	for _, tc := range cases {
		if got := DaysBetween(day(t, tc.from), day(t, tc.to)); got != tc.want {
			t.Fatalf("DaysBetween(%s, %s)=%d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}
