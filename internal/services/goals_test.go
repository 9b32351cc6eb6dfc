package services_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/testutil"
)

func TestGoalService_WeightedProgress(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	goalRepo := repository.NewHabitGoalRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	goalService := services.NewGoalService(goalRepo, logRepo)
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

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 29)

	created, err := goalService.CreateGoal(ctx, user.ID, services.CreateGoalInput{
		GoalScope:    "June push",
		StartDate:    start,
		EndDate:      end,
		HabitIDs:     []string{reading.ID, running.ID},
		TargetCounts: []int{10, 5},
		Weights:      []float64{1, 2},
	})
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	if created == nil {
		t.Fatal("expected a goal to be created")
	}

	// 12 reading completions: 2 beyond the item target of 10 should not count.
	for offset := 0; offset < 12; offset++ {
		day := start.AddDate(0, 0, offset)
		if _, err := habitService.LogHabit(ctx, user.ID, reading.ID, day, models.HabitStatusCompleted, nil, ""); err != nil {
			t.Fatalf("logging reading day %d: %v", offset, err)
		}
	}
	// 3 of 5 running completions.
	for offset := 0; offset < 3; offset++ {
		day := start.AddDate(0, 0, offset)
		if _, err := habitService.LogHabit(ctx, user.ID, running.ID, day, models.HabitStatusCompleted, nil, ""); err != nil {
			t.Fatalf("logging running day %d: %v", offset, err)
		}
	}

	goals, err := goalService.GoalsWithProgress(ctx, user.ID)
	if err != nil {
		t.Fatalf("loading goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}

	goal := goals[0]
	if !goal.IsMulti {
		t.Error("expected a multi-habit goal")
	}
	// min(12,10)*1 + min(3,5)*2 = 16 of 10*1 + 5*2 = 20 weighted, so 80%.
	if math.Abs(goal.ProgressPercent-80) > 0.001 {
		t.Errorf("expected 80%% progress, got %v", goal.ProgressPercent)
	}
	if goal.TotalWeightedTarget != 20 {
		t.Errorf("expected weighted target 20, got %v", goal.TotalWeightedTarget)
	}

	segments := make(map[string]services.GoalSegment)
	for _, segment := range goal.Segments {
		segments[segment.HabitName] = segment
	}
	if segments["Reading"].Completed != 12 {
		t.Errorf("segment should report the raw count, got %d", segments["Reading"].Completed)
	}
	if segments["Running"].Completed != 3 {
		t.Errorf("expected 3 running completions, got %d", segments["Running"].Completed)
	}
}

func TestGoalService_ProgressCapsAtHundred(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	goalRepo := repository.NewHabitGoalRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	goalService := services.NewGoalService(goalRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	habit, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Walk"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if _, err := goalService.CreateGoal(ctx, user.ID, services.CreateGoalInput{
		GoalScope:    "Tiny goal",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 9),
		HabitIDs:     []string{habit.ID},
		TargetCounts: []int{2},
		Weights:      []float64{1},
	}); err != nil {
		t.Fatalf("creating goal: %v", err)
	}

	for offset := 0; offset < 5; offset++ {
		day := start.AddDate(0, 0, offset)
		if _, err := habitService.LogHabit(ctx, user.ID, habit.ID, day, models.HabitStatusCompleted, nil, ""); err != nil {
			t.Fatalf("logging day %d: %v", offset, err)
		}
	}

	goals, err := goalService.GoalsWithProgress(ctx, user.ID)
	if err != nil {
		t.Fatalf("loading goals: %v", err)
	}
	if goals[0].ProgressPercent != 100 {
		t.Errorf("expected progress capped at 100, got %v", goals[0].ProgressPercent)
	}
}

func TestGoalService_CreateGoalFiltersEmptyRows(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	goalRepo := repository.NewHabitGoalRepository(db)
	habitService := services.NewHabitService(habitRepo, logRepo)
	goalService := services.NewGoalService(goalRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	habit, err := habitService.CreateHabit(ctx, models.Habit{UserID: user.ID, Name: "Walk"}, nil)
	if err != nil {
		t.Fatalf("creating habit: %v", err)
	}

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	created, err := goalService.CreateGoal(ctx, user.ID, services.CreateGoalInput{
		GoalScope:    "Mixed form rows",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 9),
		HabitIDs:     []string{habit.ID, "", habit.ID},
		TargetCounts: []int{3, 5, 0},
		Weights:      []float64{0, 1, 1},
	})
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	if created == nil {
		t.Fatal("expected a goal from the one valid row")
	}
	if len(created.Items) != 1 {
		t.Fatalf("expected empty and zero-target rows dropped, got %d items", len(created.Items))
	}
	if created.Items[0].Weight != 1 {
		t.Errorf("expected missing weight defaulted to 1, got %v", created.Items[0].Weight)
	}
}

func TestGoalService_CreateGoalWithNoValidRowsIsNoOp(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewHabitLogRepository(db)
	goalRepo := repository.NewHabitGoalRepository(db)
	goalService := services.NewGoalService(goalRepo, logRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	created, err := goalService.CreateGoal(ctx, user.ID, services.CreateGoalInput{
		GoalScope:    "Empty",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 9),
		HabitIDs:     []string{"", ""},
		TargetCounts: []int{0, 0},
	})
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	if created != nil {
		t.Error("expected no goal when every row is invalid")
	}

	goals, err := goalService.GoalsWithProgress(ctx, user.ID)
	if err != nil {
		t.Fatalf("loading goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected no goals persisted, got %d", len(goals))
	}
}
