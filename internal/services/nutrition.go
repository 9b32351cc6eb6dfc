package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
)

type NutritionService struct {
	userRepo      repository.UserRepository
	nutritionRepo repository.NutritionRepository
}

func NewNutritionService(userRepo repository.UserRepository, nutritionRepo repository.NutritionRepository) *NutritionService {
	return &NutritionService{userRepo: userRepo, nutritionRepo: nutritionRepo}
}

func activityMultiplier(level *models.ActivityLevel) float64 {
	if level == nil {
		return 1.2
	}
	switch *level {
	case models.ActivitySedentary:
		return 1.2
	case models.ActivityLight:
		return 1.375
	case models.ActivityModerate:
		return 1.55
	case models.ActivityActive:
		return 1.725
	case models.ActivityVeryActive:
		return 1.9
	default:
		return 1.2
	}
}

// CalorieGoal returns the user's explicit calorie goal when set, otherwise an
// estimate from the Mifflin-St Jeor equation scaled by activity level, with a
// 400 kcal deficit for loss goals and a 300 kcal surplus for gain goals.
// Missing profile fields fall back to population defaults.
func CalorieGoal(user models.User) int {
	if user.CalorieGoal != nil {
		return *user.CalorieGoal
	}

	weight := 70.0
	if user.WeightKg != nil {
		weight = *user.WeightKg
	}
	height := 170.0
	if user.HeightCm != nil {
		height = *user.HeightCm
	}
	age := 30.0
	if user.Age != nil {
		age = float64(*user.Age)
	}
	genderOffset := 5.0
	if user.Gender != nil && *user.Gender == "FEMALE" {
		genderOffset = -161
	}

	bmr := 10*weight + 6.25*height - 5*age + genderOffset
	tdee := bmr * activityMultiplier(user.ActivityLevel)

	if user.GoalType != nil {
		switch *user.GoalType {
		case models.GoalTypeLoss:
			tdee -= 400
		case models.GoalTypeGain:
			tdee += 300
		}
	}

	return int(math.Round(tdee))
}

// ScaleMacros scales a food's base macros to the logged quantity. A zero base
// amount yields zeroed macros rather than a division error.
func ScaleMacros(base models.Macros, baseAmount float64, quantity float64) models.Macros {
	factor := 0.0
	if baseAmount != 0 {
		factor = quantity / baseAmount
	}
	return models.Macros{
		Calories: base.Calories * factor,
		Protein:  base.Protein * factor,
		Carbs:    base.Carbs * factor,
		Fat:      base.Fat * factor,
		Fiber:    base.Fiber * factor,
		Sugar:    base.Sugar * factor,
		Sodium:   base.Sodium * factor,
	}
}

type DailyNutritionSummary struct {
	Goal           int
	CaloriesEaten  float64
	CaloriesBurned float64
	Remaining      float64
	Protein        float64
	Carbs          float64
	Fat            float64
	Fiber          float64
	Sugar          float64
	Sodium         float64
}

// DailySummary totals the user's food and exercise logs for the day
// containing date, against their calorie goal.
func (service *NutritionService) DailySummary(ctx context.Context, userID string, date time.Time) (DailyNutritionSummary, error) {
	day := StartOfDay(date)
	nextDay := day.Add(24 * time.Hour)

	user, err := service.userRepo.FindByID(ctx, userID)
	if err != nil {
		return DailyNutritionSummary{}, fmt.Errorf("finding user: %w", err)
	}

	foods, err := service.nutritionRepo.FindFoodEntriesInRange(ctx, userID, day, nextDay)
	if err != nil {
		return DailyNutritionSummary{}, fmt.Errorf("finding food entries: %w", err)
	}

	exercises, err := service.nutritionRepo.FindExerciseLogsInRange(ctx, userID, day, nextDay)
	if err != nil {
		return DailyNutritionSummary{}, fmt.Errorf("finding exercise logs: %w", err)
	}

	summary := DailyNutritionSummary{Goal: CalorieGoal(user)}
	for _, food := range foods {
		summary.CaloriesEaten += food.Calories
		summary.Protein += food.Protein
		summary.Carbs += food.Carbs
		summary.Fat += food.Fat
		summary.Fiber += food.Fiber
		summary.Sugar += food.Sugar
		summary.Sodium += food.Sodium
	}
	for _, exercise := range exercises {
		summary.CaloriesBurned += exercise.CaloriesBurned
	}
	summary.Remaining = float64(summary.Goal) - summary.CaloriesEaten + summary.CaloriesBurned

	return summary, nil
}

// LogFood records a food entry. When the entry references a custom food, its
// macros are scaled from the food's base serving; otherwise the entry's own
// macros are stored as given.
func (service *NutritionService) LogFood(ctx context.Context, userID string, entry models.FoodEntry) (models.FoodEntry, error) {
	entry.UserID = userID
	if entry.Quantity == 0 {
		entry.Quantity = 1
	}

	if entry.CustomFoodID != nil {
		food, err := service.nutritionRepo.FindCustomFoodByID(ctx, *entry.CustomFoodID, userID)
		if err != nil {
			return models.FoodEntry{}, fmt.Errorf("finding custom food: %w", err)
		}
		entry.Name = food.Name
		entry.Macros = ScaleMacros(food.Macros, food.BaseServingSizeAmount, entry.Quantity)
	}

	return service.nutritionRepo.CreateFoodEntry(ctx, entry)
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
}

type WeightPoint struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

// Trends aggregates the trailing 30 days of calories by day, alongside weight
// logs, for charting.
func (service *NutritionService) Trends(ctx context.Context, userID string, now time.Time) ([]TrendPoint, []WeightPoint, error) {
	today := StartOfDay(now)
	from := today.AddDate(0, 0, -29)
	until := today.Add(24 * time.Hour)

	foods, err := service.nutritionRepo.FindFoodEntriesInRange(ctx, userID, from, until)
	if err != nil {
		return nil, nil, fmt.Errorf("finding food entries: %w", err)
	}

	byDay := make(map[string]float64)
	var order []string
	for _, food := range foods {
		key := StartOfDay(food.DateTime).Format(dateKeyFormat)
		if _, seen := byDay[key]; !seen {
			order = append(order, key)
		}
		byDay[key] += food.Calories
	}

	entries := make([]TrendPoint, 0, len(order))
	for _, key := range order {
		entries = append(entries, TrendPoint{Date: key, Calories: byDay[key]})
	}

	weightLogs, err := service.nutritionRepo.FindWeightLogsInRange(ctx, userID, from, until)
	if err != nil {
		return nil, nil, fmt.Errorf("finding weight logs: %w", err)
	}
	weights := make([]WeightPoint, 0, len(weightLogs))
	for _, log := range weightLogs {
		weights = append(weights, WeightPoint{Date: StartOfDay(log.Date).Format(dateKeyFormat), WeightKg: log.WeightKg})
	}

	return entries, weights, nil
}
