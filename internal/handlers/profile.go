package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type ProfileHandler struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewProfileHandler(userRepo repository.UserRepository, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, logger: logger}
}

type profileProps struct {
	Title             string
	User              models.User
	Saved             bool
	Error             string
	EstimatedCalories int
}

func (props profileProps) IsGender(value string) bool {
	return props.User.Gender != nil && *props.User.Gender == value
}

func (props profileProps) IsActivity(value string) bool {
	return props.User.ActivityLevel != nil && string(*props.User.ActivityLevel) == value
}

func (props profileProps) IsGoalType(value string) bool {
	return props.User.GoalType != nil && string(*props.User.GoalType) == value
}

func (handler *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	handler.render(w, user, r.URL.Query().Get("saved") == "1", "")
}

func (handler *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	name := r.FormValue("name")
	if name == "" {
		handler.render(w, user, false, "Name is required")
		return
	}

	user.Name = name
	user.Age = parseIntPtr(r.FormValue("age"))
	user.HeightCm = parseFloatPtr(r.FormValue("height_cm"))
	user.WeightKg = parseFloatPtr(r.FormValue("weight_kg"))
	user.CalorieGoal = parseIntPtr(r.FormValue("calorie_goal"))
	user.ProteinGoalG = parseIntPtr(r.FormValue("protein_goal"))
	user.CarbsGoalG = parseIntPtr(r.FormValue("carbs_goal"))
	user.FatGoalG = parseIntPtr(r.FormValue("fat_goal"))
	user.WaterGoalMl = parseIntPtr(r.FormValue("water_goal"))
	user.UnitsMetric = r.FormValue("units_metric") != ""

	user.Gender = nil
	if gender := r.FormValue("gender"); gender != "" {
		user.Gender = &gender
	}
	user.ActivityLevel = nil
	if level := models.ActivityLevel(r.FormValue("activity_level")); level != "" {
		user.ActivityLevel = &level
	}
	user.GoalType = nil
	if goalType := models.GoalType(r.FormValue("goal_type")); goalType != "" {
		user.GoalType = &goalType
	}

	if err := handler.userRepo.UpdateProfile(r.Context(), user); err != nil {
		renderError(w, handler.logger, "updating profile", err)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusFound)
}

func (handler *ProfileHandler) render(w http.ResponseWriter, user models.User, saved bool, errorMessage string) {
	props := profileProps{
		Title:             "Profile",
		User:              user,
		Saved:             saved,
		Error:             errorMessage,
		EstimatedCalories: services.CalorieGoal(user),
	}
	if err := views.Render(w, "profile", props); err != nil {
		handler.logger.Error("rendering profile", "error", err)
	}
}
