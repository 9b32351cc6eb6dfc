package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/testutil"
)

func TestCellProgress(t *testing.T) {
	boolean := models.Habit{HabitType: models.HabitTypeBoolean}
	quantity := models.Habit{HabitType: models.HabitTypeQuantity, TargetValue: floatPtr(10)}
	noTarget := models.Habit{HabitType: models.HabitTypeQuantity}

	tests := []struct {
		name  string
		habit models.Habit
		log   *models.HabitLog
		want  int
	}{
		{"no log", boolean, nil, 0},
		{"boolean completed", boolean, &models.HabitLog{Status: models.HabitStatusCompleted}, 100},
		{"boolean missed", boolean, &models.HabitLog{Status: models.HabitStatusMissed}, 0},
		{"half of target", quantity, &models.HabitLog{Status: models.HabitStatusPartial, Value: floatPtr(5)}, 50},
		{"over target clamps", quantity, &models.HabitLog{Status: models.HabitStatusCompleted, Value: floatPtr(25)}, 100},
		{"value without target", noTarget, &models.HabitLog{Status: models.HabitStatusPartial, Value: floatPtr(3)}, 100},
		{"quantity log without value", quantity, &models.HabitLog{Status: models.HabitStatusPartial}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.CellProgress(tt.habit, tt.log); got != tt.want {
				t.Errorf("expected %d%%, got %d%%", tt.want, got)
			}
		})
	}
}

func TestBuildMatrix_ThreeMondayStartWeeks(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	matrixService := services.NewMatrixService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	habit, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Read"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	// Wednesday June 18 2025; its week starts Monday June 16.
	now := time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)

	if _, err := habitService.LogHabit(ctx, user.ID, habit.ID, monday, models.HabitStatusCompleted, nil, ""); err != nil {
		t.Fatalf("logging habit: %v", err)
	}

	matrix, err := matrixService.BuildMatrix(ctx, user.ID, 0, now)
	if err != nil {
		t.Fatalf("building matrix: %v", err)
	}

	if len(matrix.Weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(matrix.Weeks))
	}
	if len(matrix.Days) != 21 {
		t.Fatalf("expected 21 days, got %d", len(matrix.Days))
	}
	if matrix.Days[0].DateKey != "2025-06-09" {
		t.Errorf("expected the window to open on the previous Monday, got %s", matrix.Days[0].DateKey)
	}
	if matrix.Days[7].DateKey != "2025-06-16" {
		t.Errorf("expected the middle week to start on Monday, got %s", matrix.Days[7].DateKey)
	}

	if len(matrix.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(matrix.Rows))
	}
	row := matrix.Rows[0]
	if row.Cells[7].ProgressPercent != 100 || !row.Cells[7].IsCompleted {
		t.Error("expected the Monday cell completed")
	}
	if row.Cells[8].Status != nil {
		t.Error("expected no status for an unlogged day")
	}
	if row.CompletedCount != 1 || row.ExpectedCount != 21 {
		t.Errorf("expected 1/21 for the row, got %d/%d", row.CompletedCount, row.ExpectedCount)
	}

	if matrix.DailySummaries[7].Completed != 1 || matrix.DailySummaries[7].Percent != 100 {
		t.Errorf("expected Monday summary fully complete, got %+v", matrix.DailySummaries[7])
	}
	if matrix.DailySummaries[8].Completed != 0 {
		t.Error("expected Tuesday summary empty")
	}
}

func TestBuildMatrix_WeekOffsetShiftsWindow(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	matrixService := services.NewMatrixService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	if _, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Read"}, nil); err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	now := time.Date(2025, time.June, 18, 15, 0, 0, 0, time.UTC)

	shifted, err := matrixService.BuildMatrix(ctx, user.ID, 1, now)
	if err != nil {
		t.Fatalf("building matrix: %v", err)
	}
	if shifted.Days[0].DateKey != "2025-06-16" {
		t.Errorf("expected offset 1 to shift the window a week forward, got %s", shifted.Days[0].DateKey)
	}
}

func TestBuildMatrix_NoHabits(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	matrixService := services.NewMatrixService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	matrix, err := matrixService.BuildMatrix(ctx, user.ID, 0, time.Now())
	if err != nil {
		t.Fatalf("building matrix: %v", err)
	}
	if len(matrix.Rows) != 0 || len(matrix.Weeks) != 0 {
		t.Error("expected an empty matrix for a user with no habits")
	}
}

func TestBuildHeatmap_TrailingThirtyDays(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	matrixService := services.NewMatrixService(habitRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	reading, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Reading"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}
	running, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Running"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	busyDay := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	for _, habitID := range []string{reading.ID, running.ID} {
		if _, err := habitService.LogHabit(ctx, user.ID, habitID, busyDay, models.HabitStatusCompleted, nil, ""); err != nil {
			t.Fatalf("logging habit: %v", err)
		}
	}
	// A miss should not show up in the heatmap.
	if _, err := habitService.LogHabit(ctx, user.ID, reading.ID, busyDay.AddDate(0, 0, 1), models.HabitStatusMissed, nil, ""); err != nil {
		t.Fatalf("logging miss: %v", err)
	}

	days, err := matrixService.BuildHeatmap(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("building heatmap: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected 30 days, got %d", len(days))
	}
	if days[0].Key != "2025-06-01" {
		t.Errorf("expected the window to open 29 days back, got %s", days[0].Key)
	}
	if days[29].Key != "2025-06-30" {
		t.Errorf("expected the window to close today, got %s", days[29].Key)
	}

	byKey := make(map[string]services.HeatmapDay)
	for _, day := range days {
		byKey[day.Key] = day
	}
	busy := byKey["2025-06-20"]
	if busy.Completions != 2 {
		t.Errorf("expected 2 completions on the busy day, got %d", busy.Completions)
	}
	if len(busy.Habits) != 2 {
		t.Errorf("expected both habit names listed, got %v", busy.Habits)
	}
	if byKey["2025-06-21"].Completions != 0 {
		t.Error("missed logs should not count as completions")
	}
}
