package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type HabitHandler struct {
	habitService *services.HabitService
	logger       *slog.Logger
}

func NewHabitHandler(habitService *services.HabitService, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{habitService: habitService, logger: logger}
}

type habitsTodayProps struct {
	Title      string
	User       models.User
	Date       time.Time
	PrevDate   time.Time
	NextDate   time.Time
	Habits     []services.TodayHabit
	Categories []string
}

func (handler *HabitHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	date := parseDateOr(r.URL.Query().Get("date"), time.Now())

	habits, err := handler.habitService.TodayHabits(r.Context(), user.ID, date)
	if err != nil {
		renderError(w, handler.logger, "loading habits for day", err)
		return
	}

	categories, err := handler.habitService.Categories(r.Context(), user.ID)
	if err != nil {
		renderError(w, handler.logger, "loading categories", err)
		return
	}

	props := habitsTodayProps{
		Title:      "Today",
		User:       user,
		Date:       date,
		PrevDate:   date.AddDate(0, 0, -1),
		NextDate:   date.AddDate(0, 0, 1),
		Habits:     habits,
		Categories: categories,
	}
	if err := views.Render(w, "habits_today", props); err != nil {
		handler.logger.Error("rendering today view", "error", err)
	}
}

type habitFormProps struct {
	Title         string
	User          models.User
	Habit         models.Habit
	ScheduleDates string
	Error         string
}

func (handler *HabitHandler) ShowNew(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	props := habitFormProps{
		Title: "New habit",
		User:  user,
		Habit: models.Habit{HabitType: models.HabitTypeBoolean, FrequencyType: models.FrequencyDaily},
	}
	if err := views.Render(w, "habit_form", props); err != nil {
		handler.logger.Error("rendering habit form", "error", err)
	}
}

func (handler *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habit, scheduleDates := habitFromForm(r)
	habit.UserID = user.ID

	if habit.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		views.Render(w, "habit_form", habitFormProps{Title: "New habit", User: user, Habit: habit, Error: "Name is required"})
		return
	}

	if _, err := handler.habitService.CreateHabit(r.Context(), habit, scheduleDates); err != nil {
		renderError(w, handler.logger, "creating habit", err)
		return
	}
	http.Redirect(w, r, "/habits", http.StatusFound)
}

func (handler *HabitHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habitID := chi.URLParam(r, "habitID")

	habit, err := handler.habitService.Habit(r.Context(), user.ID, habitID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	scheduleDates, err := handler.habitService.ScheduleDates(r.Context(), user.ID, habitID)
	if err != nil {
		renderError(w, handler.logger, "loading schedule dates", err)
		return
	}
	keys := make([]string, 0, len(scheduleDates))
	for _, date := range scheduleDates {
		keys = append(keys, date.Format(dateInputFormat))
	}

	props := habitFormProps{
		Title:         "Edit habit",
		User:          user,
		Habit:         habit,
		ScheduleDates: strings.Join(keys, ","),
	}
	if err := views.Render(w, "habit_form", props); err != nil {
		handler.logger.Error("rendering habit form", "error", err)
	}
}

func (handler *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habit, scheduleDates := habitFromForm(r)
	habit.ID = chi.URLParam(r, "habitID")

	if err := handler.habitService.UpdateHabit(r.Context(), user.ID, habit, scheduleDates); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			http.NotFound(w, r)
			return
		}
		renderError(w, handler.logger, "updating habit", err)
		return
	}
	http.Redirect(w, r, "/habits", http.StatusFound)
}

func (handler *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habitID := chi.URLParam(r, "habitID")

	if err := handler.habitService.DeleteHabit(r.Context(), user.ID, habitID); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			http.NotFound(w, r)
			return
		}
		renderError(w, handler.logger, "deleting habit", err)
		return
	}
	http.Redirect(w, r, "/habits", http.StatusFound)
}

// Log records a habit outcome from the today view. Logging the same habit and
// day again updates the existing entry rather than adding a second one.
func (handler *HabitHandler) Log(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habitID := chi.URLParam(r, "habitID")

	date := parseDateOr(r.FormValue("date"), time.Now())
	status := models.HabitStatus(r.FormValue("status"))
	switch status {
	case models.HabitStatusCompleted, models.HabitStatusPartial, models.HabitStatusMissed:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	value := parseFloatPtr(r.FormValue("value"))
	notes := r.FormValue("notes")

	if _, err := handler.habitService.LogHabit(r.Context(), user.ID, habitID, date, status, value, notes); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			http.NotFound(w, r)
			return
		}
		renderError(w, handler.logger, "logging habit", err)
		return
	}
	http.Redirect(w, r, "/habits?date="+date.Format(dateInputFormat), http.StatusFound)
}

type habitLogsProps struct {
	Title  string
	User   models.User
	Habit  models.Habit
	Streak services.StreakResult
	Logs   []models.HabitLog
}

func (handler *HabitHandler) Logs(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	habitID := chi.URLParam(r, "habitID")

	habit, err := handler.habitService.Habit(r.Context(), user.ID, habitID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	logs, err := handler.habitService.Logs(r.Context(), user.ID, habitID)
	if err != nil {
		renderError(w, handler.logger, "loading habit logs", err)
		return
	}

	streak, err := handler.habitService.Streak(r.Context(), user.ID, habitID)
	if err != nil {
		renderError(w, handler.logger, "computing streak", err)
		return
	}

	props := habitLogsProps{Title: habit.Name, User: user, Habit: habit, Streak: streak, Logs: logs}
	if err := views.Render(w, "habit_logs", props); err != nil {
		handler.logger.Error("rendering habit logs", "error", err)
	}
}

// Reorder accepts the drag-and-drop ordering as JSON from the today view.
func (handler *HabitHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var payload struct {
		HabitIDs []string `json:"habitIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	updates := make([]repository.SortOrderUpdate, 0, len(payload.HabitIDs))
	for index, habitID := range payload.HabitIDs {
		updates = append(updates, repository.SortOrderUpdate{HabitID: habitID, SortOrder: index})
	}

	if err := handler.habitService.Reorder(r.Context(), user.ID, updates); err != nil {
		renderError(w, handler.logger, "reordering habits", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func habitFromForm(r *http.Request) (models.Habit, []time.Time) {
	habit := models.Habit{
		Name:          strings.TrimSpace(r.FormValue("name")),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
		Color:         r.FormValue("color"),
		Icon:          r.FormValue("icon"),
		TimeOfDay:     r.FormValue("time_of_day"),
		HabitType:     models.HabitType(r.FormValue("habit_type")),
		FrequencyType: models.FrequencyType(r.FormValue("frequency_type")),
		TargetValue:   parseFloatPtr(r.FormValue("target_value")),
		DayOfMonth:    parseIntPtr(r.FormValue("day_of_month")),
		YearlyMonth:   parseIntPtr(r.FormValue("yearly_month")),
		YearlyDay:     parseIntPtr(r.FormValue("yearly_day")),
		IsArchived:    r.FormValue("is_archived") != "",
	}

	if daysOfWeek := strings.TrimSpace(r.FormValue("days_of_week")); daysOfWeek != "" {
		habit.DaysOfWeek = &daysOfWeek
	}

	habit.StartDate = parseDateOr(r.FormValue("start_date"), time.Now())
	if endValue := r.FormValue("end_date"); endValue != "" {
		endDate := parseDateOr(endValue, time.Time{})
		if !endDate.IsZero() {
			habit.EndDate = &endDate
		}
	}

	var scheduleDates []time.Time
	for _, raw := range strings.Split(r.FormValue("schedule_dates"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if date, err := time.ParseInLocation(dateInputFormat, raw, time.Local); err == nil {
			scheduleDates = append(scheduleDates, date)
		}
	}
	return habit, scheduleDates
}
