package services

import (
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
)

type StreakResult struct {
	CurrentStreak int
	LongestStreak int
}

// Streak derives streaks from a habit's full log history. Logs may be in any
// order; only COMPLETED entries count. The longest streak is the maximum run
// of consecutive completed days anywhere in history. The current streak counts
// consecutive completed days ending exactly at today: a gap at today yields
// zero even if a long run ended yesterday.
//
// Days are compared by their yyyy-MM-dd form, not by time.Time equality, so
// logs read back from the database in a different location still line up with
// the caller's clock.
func Streak(logs []models.HabitLog, today time.Time) StreakResult {
	completedDays := make(map[string]time.Time)
	for _, log := range logs {
		if log.Status == models.HabitStatusCompleted {
			day := StartOfDay(log.Date)
			completedDays[day.Format(dateKeyFormat)] = day
		}
	}

	if len(completedDays) == 0 {
		return StreakResult{}
	}

	completed := func(day time.Time) bool {
		_, ok := completedDays[day.Format(dateKeyFormat)]
		return ok
	}

	longest := 0
	for _, day := range completedDays {
		// Only start counting from the beginning of a run.
		if completed(day.AddDate(0, 0, -1)) {
			continue
		}
		length := 0
		for cursor := day; completed(cursor); cursor = cursor.AddDate(0, 0, 1) {
			length++
		}
		if length > longest {
			longest = length
		}
	}

	current := 0
	for cursor := StartOfDay(today); completed(cursor); cursor = cursor.AddDate(0, 0, -1) {
		current++
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}
