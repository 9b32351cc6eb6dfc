package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type DashboardHandler struct {
	habitService     *services.HabitService
	goalService      *services.GoalService
	nutritionService *services.NutritionService
	journalRepo      repository.JournalRepository
	nutritionRepo    repository.NutritionRepository
	logger           *slog.Logger
}

func NewDashboardHandler(
	habitService *services.HabitService,
	goalService *services.GoalService,
	nutritionService *services.NutritionService,
	journalRepo repository.JournalRepository,
	nutritionRepo repository.NutritionRepository,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		habitService:     habitService,
		goalService:      goalService,
		nutritionService: nutritionService,
		journalRepo:      journalRepo,
		nutritionRepo:    nutritionRepo,
		logger:           logger,
	}
}

type dashboardProps struct {
	Title          string
	User           models.User
	Today          time.Time
	TodayHabits    []services.TodayHabit
	Goals          []services.GoalWithProgress
	Nutrition      services.DailyNutritionSummary
	WaterMl        float64
	WaterGoalMl    int
	LatestWeight   *models.WeightLog
	JournalEntries []models.JournalEntry
}

func (handler *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	now := time.Now()

	todayHabits, err := handler.habitService.TodayHabits(r.Context(), user.ID, now)
	if err != nil {
		renderError(w, handler.logger, "loading today's habits", err)
		return
	}

	goals, err := handler.goalService.GoalsWithProgress(r.Context(), user.ID)
	if err != nil {
		renderError(w, handler.logger, "loading goals", err)
		return
	}

	nutrition, err := handler.nutritionService.DailySummary(r.Context(), user.ID, now)
	if err != nil {
		renderError(w, handler.logger, "loading nutrition summary", err)
		return
	}

	entries, err := handler.journalRepo.FindRecent(r.Context(), user.ID, 5)
	if err != nil {
		renderError(w, handler.logger, "loading journal entries", err)
		return
	}

	day := services.StartOfDay(now)
	waterMl, err := handler.nutritionRepo.SumWaterInRange(r.Context(), user.ID, day, day.Add(24*time.Hour))
	if err != nil {
		renderError(w, handler.logger, "loading water total", err)
		return
	}

	// Users without a weight log yet just get no weight card.
	var latestWeight *models.WeightLog
	if weight, err := handler.nutritionRepo.FindLatestWeight(r.Context(), user.ID); err == nil {
		latestWeight = &weight
	} else {
		handler.logger.Debug("no latest weight", "error", err)
	}

	waterGoal := 2000
	if user.WaterGoalMl != nil {
		waterGoal = *user.WaterGoalMl
	}

	props := dashboardProps{
		Title:          "Dashboard",
		User:           user,
		Today:          now,
		TodayHabits:    todayHabits,
		Goals:          goals,
		Nutrition:      nutrition,
		WaterMl:        waterMl,
		WaterGoalMl:    waterGoal,
		LatestWeight:   latestWeight,
		JournalEntries: entries,
	}
	if err := views.Render(w, "dashboard", props); err != nil {
		handler.logger.Error("rendering dashboard", "error", err)
	}
}
