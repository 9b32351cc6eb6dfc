package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
)

type GoalService struct {
	goalRepo repository.HabitGoalRepository
	logRepo  repository.HabitLogRepository
}

func NewGoalService(goalRepo repository.HabitGoalRepository, logRepo repository.HabitLogRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, logRepo: logRepo}
}

// GoalSegment is the per-habit breakdown of a multi-habit goal, for display.
type GoalSegment struct {
	HabitName string
	Completed int
	Target    int
	Weight    float64
}

type GoalWithProgress struct {
	models.HabitGoal
	IsMulti             bool
	ProgressPercent     float64
	TotalWeightedTarget float64
	Segments            []GoalSegment
}

// GoalsWithProgress annotates each of the user's goals with display-ready
// progress. Multi-habit goals recompute from their items on every read: each
// item contributes its completed count within the goal range, capped at the
// item's target, times its weight. Legacy single-habit goals use the counter
// maintained incrementally by log reconciliation.
func (service *GoalService) GoalsWithProgress(ctx context.Context, userID string) ([]GoalWithProgress, error) {
	goals, err := service.goalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	annotated := make([]GoalWithProgress, 0, len(goals))
	for _, goal := range goals {
		if len(goal.Items) > 0 {
			withProgress, err := service.multiHabitProgress(ctx, goal)
			if err != nil {
				return nil, err
			}
			annotated = append(annotated, withProgress)
			continue
		}

		percent := 0.0
		if goal.Target > 0 {
			percent = math.Min(100, float64(goal.CurrentProgress)/float64(goal.Target)*100)
		}
		annotated = append(annotated, GoalWithProgress{
			HabitGoal:           goal,
			ProgressPercent:     percent,
			TotalWeightedTarget: float64(goal.Target),
		})
	}
	return annotated, nil
}

func (service *GoalService) multiHabitProgress(ctx context.Context, goal models.HabitGoal) (GoalWithProgress, error) {
	totalWeightedTarget := 0.0
	for _, item := range goal.Items {
		totalWeightedTarget += float64(item.TargetCount) * item.Weight
	}

	weightedCompleted := 0.0
	segments := make([]GoalSegment, 0, len(goal.Items))
	for _, item := range goal.Items {
		completed, err := service.logRepo.CountCompletedInRange(ctx, item.HabitID, goal.StartDate, goal.EndDate)
		if err != nil {
			return GoalWithProgress{}, fmt.Errorf("counting completions for goal item: %w", err)
		}

		capped := completed
		if capped > item.TargetCount {
			capped = item.TargetCount
		}
		weightedCompleted += float64(capped) * item.Weight

		segments = append(segments, GoalSegment{
			HabitName: item.HabitName,
			Completed: completed,
			Target:    item.TargetCount,
			Weight:    item.Weight,
		})
	}

	percent := 0.0
	if totalWeightedTarget > 0 {
		percent = math.Min(100, weightedCompleted/totalWeightedTarget*100)
	}

	return GoalWithProgress{
		HabitGoal:           goal,
		IsMulti:             true,
		ProgressPercent:     percent,
		TotalWeightedTarget: totalWeightedTarget,
		Segments:            segments,
	}, nil
}

// DeleteGoal removes a goal the user owns. Deleting someone else's goal is a
// silent no-op.
func (service *GoalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	return service.goalRepo.Delete(ctx, goalID, userID)
}

type CreateGoalInput struct {
	GoalScope   string
	Description string
	StartDate   time.Time
	EndDate     time.Time

	// Parallel slices from the goal builder form; rows with an empty habit id
	// or a zero target are dropped, and a missing weight defaults to 1.
	HabitIDs     []string
	TargetCounts []int
	Weights      []float64
}

// CreateGoal builds a multi-habit goal from the parallel input slices. When no
// valid items remain after filtering, nothing is created and nil is returned.
func (service *GoalService) CreateGoal(ctx context.Context, userID string, input CreateGoalInput) (*models.HabitGoal, error) {
	var items []models.HabitGoalItem
	for index, habitID := range input.HabitIDs {
		targetCount := 0
		if index < len(input.TargetCounts) {
			targetCount = input.TargetCounts[index]
		}
		weight := 0.0
		if index < len(input.Weights) {
			weight = input.Weights[index]
		}
		if weight == 0 {
			weight = 1
		}

		if habitID == "" || targetCount == 0 {
			continue
		}
		items = append(items, models.HabitGoalItem{
			HabitID:     habitID,
			TargetCount: targetCount,
			Weight:      weight,
		})
	}

	if len(items) == 0 {
		return nil, nil
	}

	totalWeightedTarget := 0.0
	for _, item := range items {
		totalWeightedTarget += float64(item.TargetCount) * item.Weight
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}
	endDate := input.EndDate
	if endDate.IsZero() {
		endDate = time.Now()
	}

	goal := models.HabitGoal{
		UserID:      userID,
		GoalScope:   input.GoalScope,
		Description: input.Description,
		StartDate:   StartOfDay(startDate),
		EndDate:     StartOfDay(endDate),
		// The header target is the rounded weighted total, kept only for
		// legacy display; multi-habit progress recomputes from items.
		Target: int(math.Round(totalWeightedTarget)),
		Items:  items,
	}

	created, err := service.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
