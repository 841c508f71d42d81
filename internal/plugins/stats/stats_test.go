package stats

import (
	"testing"
	"time"

	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// entryOn builds an entry created at noon on the given date.
func entryOn(date string, wordCount int, favorite bool) entries.Entry {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		panic(err)
	}
	return entries.Entry{
		WordCount: wordCount,
		Favorite:  favorite,
		CreatedAt: day.Add(12 * time.Hour),
	}
}

// at returns noon on the given date, used as "now" in tests.
func at(date string) time.Time {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		panic(err)
	}
	return day.Add(12 * time.Hour)
}

func TestCompute_EmptyListIsAllZero(t *testing.T) {
	got := Compute(nil, at("2024-01-03"))
	if got != (Stats{}) {
		t.Errorf("expected all-zero stats, got %+v", got)
	}
}

func TestCompute_Aggregates(t *testing.T) {
	list := []entries.Entry{
		entryOn("2024-01-01", 100, true),
		entryOn("2024-01-02", 200, false),
		entryOn("2024-01-03", 50, true),
	}

	got := Compute(list, at("2024-01-03"))

	if got.TotalPosts != 3 {
		t.Errorf("TotalPosts = %d, want 3", got.TotalPosts)
	}
	if got.TotalWords != 350 {
		t.Errorf("TotalWords = %d, want 350", got.TotalWords)
	}
	if got.AverageWordsPerPost != 117 { // round(350/3)
		t.Errorf("AverageWordsPerPost = %d, want 117", got.AverageWordsPerPost)
	}
	if got.FavoriteCount != 2 {
		t.Errorf("FavoriteCount = %d, want 2", got.FavoriteCount)
	}
	if got.TodayWords != 50 {
		t.Errorf("TodayWords = %d, want 50", got.TodayWords)
	}
}

func TestCompute_TodayWordsSumsOnlyToday(t *testing.T) {
	list := []entries.Entry{
		entryOn("2024-01-03", 10, false),
		entryOn("2024-01-03", 15, false),
		entryOn("2024-01-02", 99, false),
	}

	got := Compute(list, at("2024-01-03"))
	if got.TodayWords != 25 {
		t.Errorf("TodayWords = %d, want 25", got.TodayWords)
	}
}

func TestCompute_Streaks(t *testing.T) {
	tests := []struct {
		name        string
		dates       []string
		today       string
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "three consecutive days ending today",
			dates:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			today:       "2024-01-03",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "gap breaks current streak at today",
			dates:       []string{"2024-01-01", "2024-01-03"},
			today:       "2024-01-03",
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "streak ending yesterday still counts",
			dates:       []string{"2024-01-01", "2024-01-02"},
			today:       "2024-01-03",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "last entry two days ago means no current streak",
			dates:       []string{"2023-12-30", "2023-12-31", "2024-01-01"},
			today:       "2024-01-03",
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name:        "longest streak lies in the past",
			dates:       []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-10"},
			today:       "2024-01-10",
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "multiple entries same day count once",
			dates:       []string{"2024-01-02", "2024-01-02", "2024-01-03"},
			today:       "2024-01-03",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "single entry today",
			dates:       []string{"2024-01-03"},
			today:       "2024-01-03",
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list []entries.Entry
			for _, d := range tt.dates {
				list = append(list, entryOn(d, 10, false))
			}

			got := Compute(list, at(tt.today))
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	// The entry list is unordered; shuffling must not change the result.
	forward := []entries.Entry{
		entryOn("2024-01-01", 10, false),
		entryOn("2024-01-02", 20, false),
		entryOn("2024-01-03", 30, false),
	}
	reversed := []entries.Entry{forward[2], forward[0], forward[1]}

	now := at("2024-01-03")
	if a, b := Compute(forward, now), Compute(reversed, now); a != b {
		t.Errorf("stats differ by input order: %+v vs %+v", a, b)
	}
}
