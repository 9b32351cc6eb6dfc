package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type JournalHandler struct {
	journalRepo repository.JournalRepository
	habitRepo   repository.HabitRepository
	logger      *slog.Logger
}

func NewJournalHandler(journalRepo repository.JournalRepository, habitRepo repository.HabitRepository, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{journalRepo: journalRepo, habitRepo: habitRepo, logger: logger}
}

type journalProps struct {
	Title   string
	User    models.User
	Today   time.Time
	Entries []models.JournalEntry
	Habits  []models.Habit
}

func (handler *JournalHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	entries, err := handler.journalRepo.FindRecent(r.Context(), user.ID, 50)
	if err != nil {
		renderError(w, handler.logger, "loading journal entries", err)
		return
	}

	habits, err := handler.habitRepo.FindAll(r.Context(), repository.HabitFilter{UserID: user.ID, OrderBy: repository.OrderByName})
	if err != nil {
		renderError(w, handler.logger, "loading habits", err)
		return
	}

	props := journalProps{Title: "Journal", User: user, Today: time.Now(), Entries: entries, Habits: habits}
	if err := views.Render(w, "journal", props); err != nil {
		handler.logger.Error("rendering journal", "error", err)
	}
}

func (handler *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	entry := models.JournalEntry{
		UserID:   user.ID,
		Date:     parseDateOr(r.FormValue("date"), time.Now()),
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Tags:     r.FormValue("tags"),
		HabitIDs: r.PostForm["habit_ids"],
	}
	if entry.Title == "" || entry.Content == "" {
		http.Error(w, "title and content are required", http.StatusBadRequest)
		return
	}

	if _, err := handler.journalRepo.Create(r.Context(), entry); err != nil {
		renderError(w, handler.logger, "creating journal entry", err)
		return
	}
	http.Redirect(w, r, "/journal", http.StatusFound)
}
