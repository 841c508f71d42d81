// Package stats derives writing statistics from a user's entries. The
// computation is a pure function over the entry list; nothing here is
// persisted, so streaks are always re-derivable from the entries alone.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// Stats holds the aggregate writing metrics for one user.
type Stats struct {
	TotalPosts          int `json:"total_posts"`
	TotalWords          int `json:"total_words"`
	AverageWordsPerPost int `json:"average_words_per_post"`
	FavoriteCount       int `json:"favorite_count"`
	TodayWords          int `json:"today_words"`
	CurrentStreak       int `json:"current_streak"`
	LongestStreak       int `json:"longest_streak"`
}

// Compute derives all statistics from the entry list. Calendar days are
// taken in now's location. An empty list yields all zeros.
func Compute(list []entries.Entry, now time.Time) Stats {
	var s Stats
	if len(list) == 0 {
		return s
	}

	loc := now.Location()
	today := dayOf(now, loc)

	for _, e := range list {
		s.TotalPosts++
		s.TotalWords += e.WordCount
		if e.Favorite {
			s.FavoriteCount++
		}
		if dayOf(e.CreatedAt, loc) == today {
			s.TodayWords += e.WordCount
		}
	}
	s.AverageWordsPerPost = int(math.Round(float64(s.TotalWords) / float64(s.TotalPosts)))

	days := distinctDaysDescending(list, loc)
	s.CurrentStreak = currentStreak(days, today)
	s.LongestStreak = longestStreak(days)

	return s
}

// dayOf truncates a timestamp to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// distinctDaysDescending reduces entries to the distinct calendar days on
// which at least one entry was created, most recent first.
func distinctDaysDescending(list []entries.Entry, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(list))
	days := make([]time.Time, 0, len(list))
	for _, e := range list {
		day := dayOf(e.CreatedAt, loc)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// currentStreak walks the descending day list and counts consecutive days.
// The streak is zero unless the most recent writing day is today or
// yesterday; an older last entry means the streak is already broken.
func currentStreak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	latest := days[0]
	if daysBetween(latest, today) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// longestStreak finds the longest run of consecutive days anywhere in the
// descending day list, independent of whether it reaches today.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// daysBetween returns the whole calendar days from earlier to later. Both
// inputs are midnight-truncated in the same location; dividing the wall
// difference by 24h would drift across DST changes, so count by date.
func daysBetween(earlier, later time.Time) int {
	days := 0
	for d := earlier; d.Before(later); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
