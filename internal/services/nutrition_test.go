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

func TestCalorieGoal_ExplicitGoalWins(t *testing.T) {
	goal := 2200
	user := models.User{CalorieGoal: &goal}
	if got := services.CalorieGoal(user); got != 2200 {
		t.Errorf("expected the explicit goal, got %d", got)
	}
}

func TestCalorieGoal_MifflinStJeor(t *testing.T) {
	age := 30
	height := 180.0
	weight := 80.0
	gender := "MALE"
	level := models.ActivityModerate

	user := models.User{
		Age:           &age,
		HeightCm:      &height,
		WeightKg:      &weight,
		Gender:        &gender,
		ActivityLevel: &level,
	}

	// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1780; TDEE = 1780 * 1.55 = 2759.
	if got := services.CalorieGoal(user); got != 2759 {
		t.Errorf("expected 2759 kcal, got %d", got)
	}
}

func TestCalorieGoal_FemaleOffsetAndLossDeficit(t *testing.T) {
	age := 30
	height := 165.0
	weight := 60.0
	gender := "FEMALE"
	level := models.ActivitySedentary
	goalType := models.GoalTypeLoss

	user := models.User{
		Age:           &age,
		HeightCm:      &height,
		WeightKg:      &weight,
		Gender:        &gender,
		ActivityLevel: &level,
		GoalType:      &goalType,
	}

	// BMR = 600 + 1031.25 - 150 - 161 = 1320.25; TDEE = 1584.3 - 400 = 1184.3.
	if got := services.CalorieGoal(user); got != 1184 {
		t.Errorf("expected 1184 kcal, got %d", got)
	}
}

func TestCalorieGoal_DefaultsWhenProfileEmpty(t *testing.T) {
	// Defaults: 70kg, 170cm, 30y, male offset, sedentary multiplier.
	// BMR = 700 + 1062.5 - 150 + 5 = 1617.5; TDEE = 1941.
	if got := services.CalorieGoal(models.User{}); got != 1941 {
		t.Errorf("expected 1941 kcal from population defaults, got %d", got)
	}
}

func TestScaleMacros(t *testing.T) {
	base := models.Macros{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9}

	scaled := services.ScaleMacros(base, 100, 50)
	if math.Abs(scaled.Calories-194.5) > 0.001 {
		t.Errorf("expected half the calories, got %v", scaled.Calories)
	}
	if math.Abs(scaled.Protein-8.45) > 0.001 {
		t.Errorf("expected half the protein, got %v", scaled.Protein)
	}

	zeroBase := services.ScaleMacros(base, 0, 50)
	if zeroBase.Calories != 0 {
		t.Errorf("zero base amount should yield zeroed macros, got %v", zeroBase.Calories)
	}
}

func TestNutritionService_DailySummary(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	nutritionService := services.NewNutritionService(userRepo, nutritionRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	goal := 2000
	user.CalorieGoal = &goal
	if err := userRepo.UpdateProfile(ctx, user); err != nil {
		t.Fatalf("setting calorie goal: %v", err)
	}

	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	if _, err := nutritionService.LogFood(ctx, user.ID, models.FoodEntry{
		DateTime: day.Add(8 * time.Hour),
		MealType: models.MealTypeBreakfast,
		Name:     "Oatmeal",
		Quantity: 1,
		Macros:   models.Macros{Calories: 350, Protein: 12},
	}); err != nil {
		t.Fatalf("logging breakfast: %v", err)
	}
	if _, err := nutritionService.LogFood(ctx, user.ID, models.FoodEntry{
		DateTime: day.Add(13 * time.Hour),
		MealType: models.MealTypeLunch,
		Name:     "Sandwich",
		Quantity: 1,
		Macros:   models.Macros{Calories: 550, Protein: 25},
	}); err != nil {
		t.Fatalf("logging lunch: %v", err)
	}
	if err := nutritionRepo.CreateExerciseLog(ctx, models.ExerciseLog{
		UserID:         user.ID,
		ExerciseType:   "Run",
		CaloriesBurned: 300,
		DateTime:       day.Add(18 * time.Hour),
	}); err != nil {
		t.Fatalf("logging exercise: %v", err)
	}
	// Yesterday's meal must not leak into the summary.
	if _, err := nutritionService.LogFood(ctx, user.ID, models.FoodEntry{
		DateTime: day.AddDate(0, 0, -1),
		MealType: models.MealTypeDinner,
		Name:     "Pasta",
		Quantity: 1,
		Macros:   models.Macros{Calories: 700},
	}); err != nil {
		t.Fatalf("logging yesterday's dinner: %v", err)
	}

	summary, err := nutritionService.DailySummary(ctx, user.ID, day.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("loading summary: %v", err)
	}
	if summary.Goal != 2000 {
		t.Errorf("expected goal 2000, got %d", summary.Goal)
	}
	if summary.CaloriesEaten != 900 {
		t.Errorf("expected 900 kcal eaten, got %v", summary.CaloriesEaten)
	}
	if summary.CaloriesBurned != 300 {
		t.Errorf("expected 300 kcal burned, got %v", summary.CaloriesBurned)
	}
	if summary.Remaining != 1400 {
		t.Errorf("expected 1400 kcal remaining, got %v", summary.Remaining)
	}
	if summary.Protein != 37 {
		t.Errorf("expected 37g protein, got %v", summary.Protein)
	}
}

func TestNutritionService_LogFoodScalesFromCustomFood(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	nutritionService := services.NewNutritionService(userRepo, nutritionRepo)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	food, err := nutritionRepo.CreateCustomFood(ctx, models.CustomFood{
		UserID:                user.ID,
		Name:                  "Oatmeal",
		BaseServingSizeAmount: 100,
		BaseServingSizeUnit:   "G",
		Macros:                models.Macros{Calories: 389, Protein: 16.9},
	})
	if err != nil {
		t.Fatalf("creating custom food: %v", err)
	}

	entry, err := nutritionService.LogFood(ctx, user.ID, models.FoodEntry{
		DateTime:     time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC),
		MealType:     models.MealTypeBreakfast,
		CustomFoodID: &food.ID,
		Quantity:     50,
	})
	if err != nil {
		t.Fatalf("logging food: %v", err)
	}
	if entry.Name != "Oatmeal" {
		t.Errorf("expected name copied from the custom food, got '%s'", entry.Name)
	}
	if math.Abs(entry.Calories-194.5) > 0.001 {
		t.Errorf("expected calories scaled to the quantity, got %v", entry.Calories)
	}
}
