package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/testutil"
)

var testUserCounter int

func createTestUser(t *testing.T, repo *repository.SQLiteUserRepository) models.User {
	t.Helper()
	testUserCounter++
	user, err := repo.Create(context.Background(), models.User{
		Email:        fmt.Sprintf("svc%d@example.com", testUserCounter),
		PasswordHash: "not-a-real-hash",
		Name:         "Test User",
		UnitsMetric:  true,
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func TestHabitService_TodayHabitsFiltersBySchedule(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	// Tuesday.
	viewedDay := time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC)

	daily, err := habitService.CreateHabit(ctx, models.Habit{
		UserID: user.ID, Name: "Daily", FrequencyType: models.FrequencyDaily,
	}, nil)
	if err != nil {
		t.Fatalf("creating daily habit: %v", err)
	}
	if _, err := habitService.CreateHabit(ctx, models.Habit{
		UserID: user.ID, Name: "Mondays only", FrequencyType: models.FrequencyWeekly, DaysOfWeek: strPtr("MON"),
	}, nil); err != nil {
		t.Fatalf("creating weekly habit: %v", err)
	}
	custom, err := habitService.CreateHabit(ctx, models.Habit{
		UserID: user.ID, Name: "Custom", FrequencyType: models.FrequencyCustom,
	}, []time.Time{viewedDay})
	if err != nil {
		t.Fatalf("creating custom habit: %v", err)
	}

	if _, err := habitService.LogHabit(ctx, user.ID, daily.ID, viewedDay, models.HabitStatusCompleted, nil, ""); err != nil {
		t.Fatalf("logging daily habit: %v", err)
	}

	today, err := habitService.TodayHabits(ctx, user.ID, viewedDay)
	if err != nil {
		t.Fatalf("loading today habits: %v", err)
	}
	if len(today) != 2 {
		t.Fatalf("expected daily and custom habits only, got %d", len(today))
	}

	byID := make(map[string]services.TodayHabit)
	for _, entry := range today {
		byID[entry.Habit.ID] = entry
	}
	if byID[daily.ID].Log == nil {
		t.Error("expected the daily habit paired with its log")
	}
	if byID[custom.ID].Log != nil {
		t.Error("expected the custom habit with no log")
	}
}

func TestHabitService_LogHabitRejectsForeignHabit(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	ctx := context.Background()

	owner := createTestUser(t, userRepo)
	intruder := createTestUser(t, userRepo)

	habit, err := habitService.CreateHabit(ctx, models.Habit{UserID: owner.ID, Name: "Private"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	_, err = habitService.LogHabit(ctx, intruder.ID, habit.ID, time.Now(), models.HabitStatusCompleted, nil, "")
	if !errors.Is(err, services.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound for another user's habit, got %v", err)
	}

	logs, err := logRepo.FindByHabit(ctx, habit.ID)
	if err != nil {
		t.Fatalf("finding logs: %v", err)
	}
	if len(logs) != 0 {
		t.Error("rejected log attempt should leave no rows")
	}
}

func TestHabitService_StreakFromStoredLogs(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	habit, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Stretch"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	// Today and the two days before, written through reconciliation and read
	// back from the database rather than built in memory.
	now := time.Now()
	for offset := 2; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		if _, err := habitService.LogHabit(ctx, user.ID, habit.ID, day, models.HabitStatusCompleted, nil, ""); err != nil {
			t.Fatalf("logging day -%d: %v", offset, err)
		}
	}

	streak, err := habitService.Streak(ctx, user.ID, habit.ID)
	if err != nil {
		t.Fatalf("computing streak: %v", err)
	}
	if streak.CurrentStreak != 3 {
		t.Errorf("expected current streak 3 from stored logs, got %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 3 {
		t.Errorf("expected longest streak 3 from stored logs, got %d", streak.LongestStreak)
	}
}

func TestHabitService_CreateHabitAppendsSortOrder(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	first, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "First"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}
	second, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Second"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	if second.SortOrder <= first.SortOrder {
		t.Errorf("expected new habits appended, got %d then %d", first.SortOrder, second.SortOrder)
	}
}

func TestHabitService_UpdateHabitSwitchingOffCustomClearsDates(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	scheduled := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	habit, err := habitService.CreateHabit(ctx, models.Habit{
		UserID: user.ID, Name: "Was custom", FrequencyType: models.FrequencyCustom,
	}, []time.Time{scheduled})
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	habit.FrequencyType = models.FrequencyDaily
	if err := habitService.UpdateHabit(ctx, user.ID, habit, nil); err != nil {
		t.Fatalf("updating habit: %v", err)
	}

	dates, err := habitService.ScheduleDates(ctx, user.ID, habit.ID)
	if err != nil {
		t.Fatalf("finding schedule dates: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("expected schedule dates cleared when leaving CUSTOM, got %d", len(dates))
	}
}
