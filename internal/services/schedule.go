package services

import (
	"strings"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
)

var weekdayTokens = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsScheduledOn decides whether a habit is due on the given date.
//
// DAILY habits are always due. WEEKLY habits are due on the weekdays listed in
// DaysOfWeek, or every day when the list is empty. MONTHLY habits are due on
// DayOfMonth, clamped to the month's last day for short months, or every day
// when unset. YEARLY habits are due on the exact month and day, or every day
// when either is unset. CUSTOM habits are due on their explicit schedule
// dates, or every day when none exist. Unknown frequency types are treated as
// due every day.
func IsScheduledOn(habit models.Habit, scheduleDates []models.HabitScheduleDate, date time.Time) bool {
	switch habit.FrequencyType {
	case models.FrequencyDaily:
		return true

	case models.FrequencyWeekly:
		tokens := parseDaysOfWeek(habit.DaysOfWeek)
		if len(tokens) == 0 {
			return true
		}
		today := weekdayTokens[int(date.Weekday())]
		for _, token := range tokens {
			if token == today {
				return true
			}
		}
		return false

	case models.FrequencyMonthly:
		if habit.DayOfMonth == nil {
			return true
		}
		return date.Day() == scheduledDayOfMonth(*habit.DayOfMonth, date)

	case models.FrequencyYearly:
		if habit.YearlyMonth == nil || habit.YearlyDay == nil {
			return true
		}
		return int(date.Month()) == *habit.YearlyMonth && date.Day() == *habit.YearlyDay

	case models.FrequencyCustom:
		if len(scheduleDates) == 0 {
			return true
		}
		for _, scheduled := range scheduleDates {
			if SameDay(scheduled.Date, date) {
				return true
			}
		}
		return false

	default:
		return true
	}
}

// scheduledDayOfMonth clamps a day-of-month to the last day of date's month,
// so a day-31 habit still fires in February.
func scheduledDayOfMonth(dayOfMonth int, date time.Time) int {
	lastDay := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	if dayOfMonth > lastDay {
		return lastDay
	}
	return dayOfMonth
}

func parseDaysOfWeek(daysOfWeek *string) []string {
	if daysOfWeek == nil {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(*daysOfWeek, ",") {
		token := strings.ToUpper(strings.TrimSpace(part))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// NormalizeFrequencyFields clears every frequency-specific field that does not
// belong to the habit's active frequency type, so exactly one interpretation
// is ever persisted.
func NormalizeFrequencyFields(habit *models.Habit) {
	if habit.FrequencyType != models.FrequencyWeekly {
		habit.DaysOfWeek = nil
	}
	if habit.FrequencyType != models.FrequencyMonthly {
		habit.DayOfMonth = nil
	}
	if habit.FrequencyType != models.FrequencyYearly {
		habit.YearlyMonth = nil
		habit.YearlyDay = nil
	}
}
