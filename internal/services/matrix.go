package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
)

const dateKeyFormat = "2006-01-02"

type MatrixService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
}

func NewMatrixService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository) *MatrixService {
	return &MatrixService{habitRepo: habitRepo, logRepo: logRepo}
}

type MatrixDay struct {
	DateKey   string
	Label     string
	Weekday   string
	WeekIndex int
}

type MatrixWeek struct {
	Label string
	Days  []MatrixDay
}

type MatrixCell struct {
	DateKey         string
	DateLabel       string
	IsCompleted     bool
	Status          *models.HabitStatus
	Value           *float64
	ProgressPercent int
}

type MatrixRow struct {
	Habit           models.Habit
	Cells           []MatrixCell
	ExpectedCount   int
	CompletedCount  int
	ProgressPercent int
}

type DailySummary struct {
	DateKey   string
	Label     string
	Completed int
	NotDone   int
	Percent   int
}

type HabitSummary struct {
	HabitName       string
	Expected        int
	Completed       int
	ProgressPercent int
}

type Matrix struct {
	Weeks          []MatrixWeek
	Days           []MatrixDay
	Rows           []MatrixRow
	DailySummaries []DailySummary
	HabitSummaries []HabitSummary
}

// BuildMatrix assembles the spreadsheet view: three Monday-start weeks
// (previous, offset-adjusted current, next) crossed with the user's active
// habits in manual sort order.
func (service *MatrixService) BuildMatrix(ctx context.Context, userID string, weekOffset int, now time.Time) (Matrix, error) {
	baseWeekStart := startOfWeek(now.AddDate(0, 0, 7*weekOffset))
	weekStarts := []time.Time{
		baseWeekStart.AddDate(0, 0, -7),
		baseWeekStart,
		baseWeekStart.AddDate(0, 0, 7),
	}

	var days []MatrixDay
	var weeks []MatrixWeek
	for weekIndex, weekStart := range weekStarts {
		_, isoWeek := weekStart.ISOWeek()
		week := MatrixWeek{Label: fmt.Sprintf("Week %d", isoWeek)}
		for i := 0; i < 7; i++ {
			date := weekStart.AddDate(0, 0, i)
			day := MatrixDay{
				DateKey:   date.Format(dateKeyFormat),
				Label:     date.Format("Jan 2"),
				Weekday:   date.Format("Mon"),
				WeekIndex: weekIndex,
			}
			week.Days = append(week.Days, day)
			days = append(days, day)
		}
		weeks = append(weeks, week)
	}

	habits, err := service.habitRepo.FindAll(ctx, repository.HabitFilter{UserID: userID})
	if err != nil {
		return Matrix{}, fmt.Errorf("finding habits: %w", err)
	}
	if len(habits) == 0 {
		return Matrix{}, nil
	}

	windowStart := weekStarts[0]
	windowEnd := weekStarts[2].AddDate(0, 0, 7)
	logs, err := service.logRepo.FindForUserInRange(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return Matrix{}, fmt.Errorf("finding logs: %w", err)
	}

	logMap := make(map[string]models.HabitLog, len(logs))
	for _, log := range logs {
		logMap[log.HabitID+"-"+StartOfDay(log.Date).Format(dateKeyFormat)] = log
	}

	var rows []MatrixRow
	for _, habit := range habits {
		row := MatrixRow{Habit: habit, ExpectedCount: len(days)}
		for _, day := range days {
			cell := MatrixCell{DateKey: day.DateKey, DateLabel: day.Label}
			if log, ok := logMap[habit.ID+"-"+day.DateKey]; ok {
				status := log.Status
				cell.Status = &status
				cell.IsCompleted = status == models.HabitStatusCompleted
				cell.Value = log.Value
				cell.ProgressPercent = CellProgress(habit, &log)
			}
			if cell.IsCompleted {
				row.CompletedCount++
			}
			row.Cells = append(row.Cells, cell)
		}
		if row.ExpectedCount > 0 {
			row.ProgressPercent = int(math.Round(float64(row.CompletedCount) / float64(row.ExpectedCount) * 100))
		}
		rows = append(rows, row)
	}

	var dailySummaries []DailySummary
	for index, day := range days {
		completed := 0
		for _, row := range rows {
			if row.Cells[index].IsCompleted {
				completed++
			}
		}
		percent := 0
		if len(habits) > 0 {
			percent = int(math.Round(float64(completed) / float64(len(habits)) * 100))
		}
		dailySummaries = append(dailySummaries, DailySummary{
			DateKey:   day.DateKey,
			Label:     day.Label,
			Completed: completed,
			NotDone:   len(habits) - completed,
			Percent:   percent,
		})
	}

	habitSummaries := make([]HabitSummary, 0, len(rows))
	for _, row := range rows {
		habitSummaries = append(habitSummaries, HabitSummary{
			HabitName:       row.Habit.Name,
			Expected:        row.ExpectedCount,
			Completed:       row.CompletedCount,
			ProgressPercent: row.ProgressPercent,
		})
	}

	return Matrix{
		Weeks:          weeks,
		Days:           days,
		Rows:           rows,
		DailySummaries: dailySummaries,
		HabitSummaries: habitSummaries,
	}, nil
}

// CellProgress computes a cell's progress percentage. BOOLEAN habits are all
// or nothing. Habits with a numeric target scale the logged value against it,
// clamped to [0, 100]. A logged value without a target counts as full, since
// there is no scale for partial credit.
func CellProgress(habit models.Habit, log *models.HabitLog) int {
	if log == nil {
		return 0
	}

	if habit.HabitType == models.HabitTypeBoolean {
		if log.Status == models.HabitStatusCompleted {
			return 100
		}
		return 0
	}

	if log.Value == nil {
		return 0
	}
	if habit.TargetValue == nil || *habit.TargetValue == 0 {
		return 100
	}

	percent := *log.Value / *habit.TargetValue * 100
	return int(math.Round(math.Max(0, math.Min(100, percent))))
}

type HeatmapDay struct {
	Key         string
	Label       string
	Day         string
	Completions int
	Habits      []string
}

// BuildHeatmap summarizes the trailing 30 days: per day, the number of
// completed logs across all the user's habits and the distinct habit names
// completed that day.
func (service *MatrixService) BuildHeatmap(ctx context.Context, userID string, now time.Time) ([]HeatmapDay, error) {
	today := StartOfDay(now)
	from := today.AddDate(0, 0, -29)

	completed, err := service.logRepo.CompletedWithHabitNames(ctx, userID, from, today)
	if err != nil {
		return nil, fmt.Errorf("finding completed logs: %w", err)
	}

	counts := make(map[string]int)
	namesByDay := make(map[string][]string)
	for _, log := range completed {
		key := StartOfDay(log.Date).Format(dateKeyFormat)
		counts[key]++
		if !containsString(namesByDay[key], log.HabitName) {
			namesByDay[key] = append(namesByDay[key], log.HabitName)
		}
	}

	days := make([]HeatmapDay, 0, 30)
	for i := 0; i < 30; i++ {
		date := from.AddDate(0, 0, i)
		key := date.Format(dateKeyFormat)
		days = append(days, HeatmapDay{
			Key:         key,
			Label:       date.Format("Jan 2"),
			Day:         date.Format("2"),
			Completions: counts[key],
			Habits:      namesByDay[key],
		})
	}
	return days, nil
}

// startOfWeek returns the Monday midnight beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -daysSinceMonday)
}

func containsString(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
