package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type GoalHandler struct {
	goalService *services.GoalService
	habitRepo   repository.HabitRepository
	logger      *slog.Logger
}

func NewGoalHandler(goalService *services.GoalService, habitRepo repository.HabitRepository, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{goalService: goalService, habitRepo: habitRepo, logger: logger}
}

type goalsProps struct {
	Title       string
	User        models.User
	Goals       []services.GoalWithProgress
	Habits      []models.Habit
	BuilderRows []int
}

func (handler *GoalHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	goals, err := handler.goalService.GoalsWithProgress(r.Context(), user.ID)
	if err != nil {
		renderError(w, handler.logger, "loading goals", err)
		return
	}

	habits, err := handler.habitRepo.FindAll(r.Context(), repository.HabitFilter{UserID: user.ID, OrderBy: repository.OrderByName})
	if err != nil {
		renderError(w, handler.logger, "loading habits", err)
		return
	}

	props := goalsProps{
		Title:       "Goals",
		User:        user,
		Goals:       goals,
		Habits:      habits,
		BuilderRows: []int{0, 1, 2, 3, 4},
	}
	if err := views.Render(w, "habits_goals", props); err != nil {
		handler.logger.Error("rendering goals", "error", err)
	}
}

func (handler *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	targetCounts := make([]int, 0, len(r.PostForm["target_count"]))
	for _, raw := range r.PostForm["target_count"] {
		parsed, _ := strconv.Atoi(raw)
		targetCounts = append(targetCounts, parsed)
	}
	weights := make([]float64, 0, len(r.PostForm["weight"]))
	for _, raw := range r.PostForm["weight"] {
		parsed, _ := strconv.ParseFloat(raw, 64)
		weights = append(weights, parsed)
	}

	input := services.CreateGoalInput{
		GoalScope:    r.FormValue("goal_scope"),
		Description:  r.FormValue("description"),
		StartDate:    parseDateOr(r.FormValue("start_date"), time.Now()),
		EndDate:      parseDateOr(r.FormValue("end_date"), time.Now()),
		HabitIDs:     r.PostForm["habit_id"],
		TargetCounts: targetCounts,
		Weights:      weights,
	}

	if _, err := handler.goalService.CreateGoal(r.Context(), user.ID, input); err != nil {
		renderError(w, handler.logger, "creating goal", err)
		return
	}
	http.Redirect(w, r, "/habits/goals", http.StatusFound)
}

func (handler *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	goalID := chi.URLParam(r, "goalID")

	if err := handler.goalService.DeleteGoal(r.Context(), user.ID, goalID); err != nil {
		renderError(w, handler.logger, "deleting goal", err)
		return
	}
	http.Redirect(w, r, "/habits/goals", http.StatusFound)
}
