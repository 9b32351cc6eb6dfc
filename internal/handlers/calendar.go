package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
)

type CalendarHandler struct {
	feedService *services.CalendarFeedService
	logger      *slog.Logger
}

func NewCalendarHandler(feedService *services.CalendarFeedService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{feedService: feedService, logger: logger}
}

// Feed serves the user's upcoming habit schedule as an iCalendar file.
func (handler *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	feed, err := handler.feedService.Feed(r.Context(), user.ID, time.Now())
	if err != nil {
		renderError(w, handler.logger, "building calendar feed", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="habits.ics"`)
	w.Write([]byte(feed))
}
