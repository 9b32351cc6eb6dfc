package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
)

var ErrHabitNotFound = errors.New("habit not found")

type HabitService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
}

func NewHabitService(habitRepo repository.HabitRepository, logRepo repository.HabitLogRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo, logRepo: logRepo}
}

// Habit returns a single habit, or ErrHabitNotFound when it does not exist or
// belongs to another user.
func (service *HabitService) Habit(ctx context.Context, userID string, habitID string) (models.Habit, error) {
	habit, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID)
	if err != nil {
		return models.Habit{}, ErrHabitNotFound
	}
	return habit, nil
}

// ScheduleDates returns the explicit dates of a CUSTOM habit the user owns.
func (service *HabitService) ScheduleDates(ctx context.Context, userID string, habitID string) ([]time.Time, error) {
	if _, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID); err != nil {
		return nil, ErrHabitNotFound
	}

	scheduleDates, err := service.habitRepo.FindScheduleDates(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("finding schedule dates: %w", err)
	}

	dates := make([]time.Time, 0, len(scheduleDates))
	for _, scheduleDate := range scheduleDates {
		dates = append(dates, scheduleDate.Date)
	}
	return dates, nil
}

// TodayHabit is a habit scheduled for the viewed day, with that day's log if
// one exists.
type TodayHabit struct {
	Habit models.Habit
	Log   *models.HabitLog
}

// TodayHabits returns the user's active habits that are scheduled on the
// given date, in manual sort order, each paired with its log for that day.
func (service *HabitService) TodayHabits(ctx context.Context, userID string, date time.Time) ([]TodayHabit, error) {
	day := StartOfDay(date)

	habits, err := service.habitRepo.FindAll(ctx, repository.HabitFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("finding habits: %w", err)
	}

	logs, err := service.logRepo.FindForUserInRange(ctx, userID, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("finding logs for day: %w", err)
	}
	logByHabit := make(map[string]models.HabitLog, len(logs))
	for _, log := range logs {
		logByHabit[log.HabitID] = log
	}

	var scheduled []TodayHabit
	for _, habit := range habits {
		var scheduleDates []models.HabitScheduleDate
		if habit.FrequencyType == models.FrequencyCustom {
			scheduleDates, err = service.habitRepo.FindScheduleDates(ctx, habit.ID)
			if err != nil {
				return nil, fmt.Errorf("finding schedule dates: %w", err)
			}
		}
		if !IsScheduledOn(habit, scheduleDates, day) {
			continue
		}

		entry := TodayHabit{Habit: habit}
		if log, ok := logByHabit[habit.ID]; ok {
			logCopy := log
			entry.Log = &logCopy
		}
		scheduled = append(scheduled, entry)
	}
	return scheduled, nil
}

// Categories returns the distinct category names across the user's active
// habits, sorted, skipping blanks.
func (service *HabitService) Categories(ctx context.Context, userID string) ([]string, error) {
	habits, err := service.habitRepo.FindAll(ctx, repository.HabitFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("finding habits: %w", err)
	}

	seen := make(map[string]bool)
	var categories []string
	for _, habit := range habits {
		if habit.Category == "" || seen[habit.Category] {
			continue
		}
		seen[habit.Category] = true
		categories = append(categories, habit.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// LogHabit records the outcome of a habit for the day containing date. There
// is at most one log per habit per day: a second call for the same day updates
// the existing log in place, and legacy single-habit goals covering the day
// are adjusted by the completion delta.
func (service *HabitService) LogHabit(ctx context.Context, userID string, habitID string, date time.Time, status models.HabitStatus, value *float64, notes string) (models.HabitLog, error) {
	if _, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID); err != nil {
		return models.HabitLog{}, ErrHabitNotFound
	}

	day := StartOfDay(date)
	log, _, err := service.logRepo.Reconcile(ctx, habitID, day, status, value, notes)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("reconciling log: %w", err)
	}
	return log, nil
}

func (service *HabitService) Streak(ctx context.Context, userID string, habitID string) (StreakResult, error) {
	if _, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID); err != nil {
		return StreakResult{}, ErrHabitNotFound
	}

	logs, err := service.logRepo.FindByHabit(ctx, habitID)
	if err != nil {
		return StreakResult{}, fmt.Errorf("finding logs: %w", err)
	}
	return Streak(logs, time.Now()), nil
}

// Logs returns a habit's full history in ascending date order.
func (service *HabitService) Logs(ctx context.Context, userID string, habitID string) ([]models.HabitLog, error) {
	if _, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID); err != nil {
		return nil, ErrHabitNotFound
	}

	logs, err := service.logRepo.FindByHabit(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("finding logs: %w", err)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })
	return logs, nil
}

// CreateHabit normalizes frequency fields, appends the habit to the user's
// manual order, and stores the explicit schedule for CUSTOM habits.
func (service *HabitService) CreateHabit(ctx context.Context, habit models.Habit, scheduleDates []time.Time) (models.Habit, error) {
	NormalizeFrequencyFields(&habit)

	maxOrder, err := service.habitRepo.MaxSortOrder(ctx, habit.UserID)
	if err != nil {
		return models.Habit{}, fmt.Errorf("finding max sort order: %w", err)
	}
	habit.SortOrder = maxOrder + 1

	created, err := service.habitRepo.Create(ctx, habit)
	if err != nil {
		return models.Habit{}, err
	}

	if created.FrequencyType == models.FrequencyCustom {
		if err := service.habitRepo.ReplaceScheduleDates(ctx, created.ID, truncateDays(scheduleDates)); err != nil {
			return models.Habit{}, err
		}
	}
	return created, nil
}

// UpdateHabit applies edits to a habit the user owns. For CUSTOM habits the
// full schedule-date set is replaced atomically; leaving CUSTOM clears it.
func (service *HabitService) UpdateHabit(ctx context.Context, userID string, habit models.Habit, scheduleDates []time.Time) error {
	existing, err := service.habitRepo.FindByIDForUser(ctx, habit.ID, userID)
	if err != nil {
		return ErrHabitNotFound
	}
	habit.UserID = existing.UserID
	habit.SortOrder = existing.SortOrder
	NormalizeFrequencyFields(&habit)

	if err := service.habitRepo.Update(ctx, habit); err != nil {
		return err
	}

	if habit.FrequencyType == models.FrequencyCustom {
		return service.habitRepo.ReplaceScheduleDates(ctx, habit.ID, truncateDays(scheduleDates))
	}
	return service.habitRepo.ReplaceScheduleDates(ctx, habit.ID, nil)
}

func (service *HabitService) DeleteHabit(ctx context.Context, userID string, habitID string) error {
	if _, err := service.habitRepo.FindByIDForUser(ctx, habitID, userID); err != nil {
		return ErrHabitNotFound
	}
	return service.habitRepo.Delete(ctx, habitID)
}

func (service *HabitService) Reorder(ctx context.Context, userID string, updates []repository.SortOrderUpdate) error {
	return service.habitRepo.UpdateSortOrders(ctx, userID, updates)
}

func truncateDays(dates []time.Time) []time.Time {
	truncated := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		truncated = append(truncated, StartOfDay(date))
	}
	return truncated
}
