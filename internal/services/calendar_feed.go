package services

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
)

// CalendarFeedService renders the user's upcoming habit schedule as an
// iCalendar feed, one all-day event per scheduled habit occurrence.
type CalendarFeedService struct {
	habitRepo repository.HabitRepository
	feedDays  int
}

func NewCalendarFeedService(habitRepo repository.HabitRepository) *CalendarFeedService {
	return &CalendarFeedService{habitRepo: habitRepo, feedDays: 30}
}

func (service *CalendarFeedService) Feed(ctx context.Context, userID string, now time.Time) (string, error) {
	habits, err := service.habitRepo.FindAll(ctx, repository.HabitFilter{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("finding habits: %w", err)
	}

	scheduleDates := make(map[string][]models.HabitScheduleDate)
	for _, habit := range habits {
		if habit.FrequencyType != models.FrequencyCustom {
			continue
		}
		dates, err := service.habitRepo.FindScheduleDates(ctx, habit.ID)
		if err != nil {
			return "", fmt.Errorf("finding schedule dates: %w", err)
		}
		scheduleDates[habit.ID] = dates
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//Habit Tracker//Habit Schedule//EN")

	start := StartOfDay(now)
	for offset := 0; offset < service.feedDays; offset++ {
		day := start.AddDate(0, 0, offset)
		for _, habit := range habits {
			if day.Before(StartOfDay(habit.StartDate)) {
				continue
			}
			if habit.EndDate != nil && day.After(*habit.EndDate) {
				continue
			}
			if !IsScheduledOn(habit, scheduleDates[habit.ID], day) {
				continue
			}

			event := calendar.AddEvent(fmt.Sprintf("%s-%s@habit-tracker", habit.ID, day.Format(dateKeyFormat)))
			event.SetSummary(habit.Name)
			if habit.Description != "" {
				event.SetDescription(habit.Description)
			}
			event.SetDtStampTime(now.UTC())
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	return calendar.Serialize(), nil
}
