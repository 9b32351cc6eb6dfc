package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type NutritionHandler struct {
	nutritionService *services.NutritionService
	nutritionRepo    repository.NutritionRepository
	logger           *slog.Logger
}

func NewNutritionHandler(nutritionService *services.NutritionService, nutritionRepo repository.NutritionRepository, logger *slog.Logger) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService, nutritionRepo: nutritionRepo, logger: logger}
}

type nutritionProps struct {
	Title       string
	User        models.User
	Date        time.Time
	PrevDate    time.Time
	NextDate    time.Time
	Summary     services.DailyNutritionSummary
	WaterMl     float64
	FoodEntries []models.FoodEntry
	CustomFoods []models.CustomFood
}

func (handler *NutritionHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.URL.Query().Get("date"), time.Now())
	day := services.StartOfDay(date)
	nextDay := day.Add(24 * time.Hour)

	summary, err := handler.nutritionService.DailySummary(r.Context(), user.ID, date)
	if err != nil {
		renderError(w, handler.logger, "loading nutrition summary", err)
		return
	}

	waterMl, err := handler.nutritionRepo.SumWaterInRange(r.Context(), user.ID, day, nextDay)
	if err != nil {
		renderError(w, handler.logger, "loading water logs", err)
		return
	}

	foodEntries, err := handler.nutritionRepo.FindFoodEntriesInRange(r.Context(), user.ID, day, nextDay)
	if err != nil {
		renderError(w, handler.logger, "loading food entries", err)
		return
	}

	customFoods, err := handler.nutritionRepo.FindCustomFoods(r.Context(), user.ID, "", 100)
	if err != nil {
		renderError(w, handler.logger, "loading custom foods", err)
		return
	}

	props := nutritionProps{
		Title:       "Nutrition",
		User:        user,
		Date:        day,
		PrevDate:    day.AddDate(0, 0, -1),
		NextDate:    day.AddDate(0, 0, 1),
		Summary:     summary,
		WaterMl:     waterMl,
		FoodEntries: foodEntries,
		CustomFoods: customFoods,
	}
	if err := views.Render(w, "nutrition", props); err != nil {
		handler.logger.Error("rendering nutrition", "error", err)
	}
}

func (handler *NutritionHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.FormValue("date"), time.Now())

	entry := models.FoodEntry{
		DateTime: date,
		MealType: models.MealType(r.FormValue("meal_type")),
		Name:     r.FormValue("name"),
		Quantity: parseFloatOr(r.FormValue("quantity"), 1),
		Macros: models.Macros{
			Calories: parseFloatOr(r.FormValue("calories"), 0),
			Protein:  parseFloatOr(r.FormValue("protein"), 0),
			Carbs:    parseFloatOr(r.FormValue("carbs"), 0),
			Fat:      parseFloatOr(r.FormValue("fat"), 0),
		},
	}
	if customFoodID := r.FormValue("custom_food_id"); customFoodID != "" {
		entry.CustomFoodID = &customFoodID
	}

	if _, err := handler.nutritionService.LogFood(r.Context(), user.ID, entry); err != nil {
		renderError(w, handler.logger, "logging food", err)
		return
	}
	http.Redirect(w, r, "/nutrition?date="+date.Format(dateInputFormat), http.StatusFound)
}

func (handler *NutritionHandler) CreateCustomFood(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	food := models.CustomFood{
		UserID:                user.ID,
		Name:                  r.FormValue("name"),
		ServingSizeDesc:       r.FormValue("serving_size_desc"),
		BaseServingSizeAmount: parseFloatOr(r.FormValue("base_amount"), 100),
		BaseServingSizeUnit:   r.FormValue("base_unit"),
		Macros: models.Macros{
			Calories: parseFloatOr(r.FormValue("calories"), 0),
			Protein:  parseFloatOr(r.FormValue("protein"), 0),
			Carbs:    parseFloatOr(r.FormValue("carbs"), 0),
			Fat:      parseFloatOr(r.FormValue("fat"), 0),
			Fiber:    parseFloatOr(r.FormValue("fiber"), 0),
			Sugar:    parseFloatOr(r.FormValue("sugar"), 0),
			Sodium:   parseFloatOr(r.FormValue("sodium"), 0),
		},
	}
	if food.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if _, err := handler.nutritionRepo.CreateCustomFood(r.Context(), food); err != nil {
		renderError(w, handler.logger, "creating custom food", err)
		return
	}
	http.Redirect(w, r, "/nutrition", http.StatusFound)
}

func (handler *NutritionHandler) LogWater(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.FormValue("date"), time.Now())

	log := models.WaterLog{
		UserID:   user.ID,
		Amount:   parseFloatOr(r.FormValue("amount"), 0),
		DateTime: date,
	}
	if log.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if err := handler.nutritionRepo.CreateWaterLog(r.Context(), log); err != nil {
		renderError(w, handler.logger, "logging water", err)
		return
	}
	http.Redirect(w, r, "/nutrition?date="+date.Format(dateInputFormat), http.StatusFound)
}

func (handler *NutritionHandler) LogExercise(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.FormValue("date"), time.Now())

	log := models.ExerciseLog{
		UserID:         user.ID,
		ExerciseType:   r.FormValue("exercise_type"),
		DurationMin:    parseFloatOr(r.FormValue("duration"), 0),
		CaloriesBurned: parseFloatOr(r.FormValue("calories_burned"), 0),
		DateTime:       date,
	}
	if log.ExerciseType == "" {
		http.Error(w, "activity is required", http.StatusBadRequest)
		return
	}

	if err := handler.nutritionRepo.CreateExerciseLog(r.Context(), log); err != nil {
		renderError(w, handler.logger, "logging exercise", err)
		return
	}
	http.Redirect(w, r, "/nutrition?date="+date.Format(dateInputFormat), http.StatusFound)
}

func (handler *NutritionHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.FormValue("date"), time.Now())

	weight := parseFloatOr(r.FormValue("weight"), 0)
	if weight <= 0 {
		http.Error(w, "weight must be positive", http.StatusBadRequest)
		return
	}

	log := models.WeightLog{UserID: user.ID, WeightKg: weight, Date: date}
	if err := handler.nutritionRepo.CreateWeightLog(r.Context(), log); err != nil {
		renderError(w, handler.logger, "logging weight", err)
		return
	}
	http.Redirect(w, r, "/nutrition?date="+date.Format(dateInputFormat), http.StatusFound)
}

type trendsProps struct {
	Title    string
	User     models.User
	Calories []services.TrendPoint
	Weights  []services.WeightPoint
}

func (handler *NutritionHandler) Trends(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	calories, weights, err := handler.nutritionService.Trends(r.Context(), user.ID, time.Now())
	if err != nil {
		renderError(w, handler.logger, "loading nutrition trends", err)
		return
	}

	props := trendsProps{Title: "Trends", User: user, Calories: calories, Weights: weights}
	if err := views.Render(w, "nutrition_trends", props); err != nil {
		handler.logger.Error("rendering nutrition trends", "error", err)
	}
}

// TrendsJSON serves the same 30 day aggregates for charting clients.
func (handler *NutritionHandler) TrendsJSON(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	calories, weights, err := handler.nutritionService.Trends(r.Context(), user.ID, time.Now())
	if err != nil {
		renderError(w, handler.logger, "loading nutrition trends", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"calories": calories,
		"weights":  weights,
	}); err != nil {
		handler.logger.Error("encoding nutrition trends", "error", err)
	}
}
