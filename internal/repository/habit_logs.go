package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

type HabitLogRepository interface {
	FindByDay(ctx context.Context, habitID string, day time.Time) (models.HabitLog, error)
	FindByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error)
	FindForUserInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.HabitLog, error)
	CountCompletedInRange(ctx context.Context, habitID string, firstDay time.Time, lastDay time.Time) (int, error)
	CompletedWithHabitNames(ctx context.Context, userID string, firstDay time.Time, lastDay time.Time) ([]CompletedLog, error)
	Reconcile(ctx context.Context, habitID string, day time.Time, status models.HabitStatus, value *float64, notes string) (models.HabitLog, int, error)
}

// CompletedLog pairs a completed log's day with its habit's display name.
type CompletedLog struct {
	HabitID   string
	HabitName string
	Date      time.Time
}

type SQLiteHabitLogRepository struct {
	database *sql.DB
}

func NewHabitLogRepository(database *sql.DB) *SQLiteHabitLogRepository {
	return &SQLiteHabitLogRepository{database: database}
}

// CompletionDelta is the signed change a status transition applies to goal
// progress: +1 entering COMPLETED, -1 leaving it, 0 otherwise. A nil previous
// status means no log existed for the day.
func CompletionDelta(previous *models.HabitStatus, next models.HabitStatus) int {
	wasCompleted := previous != nil && *previous == models.HabitStatusCompleted
	isCompleted := next == models.HabitStatusCompleted

	switch {
	case !wasCompleted && isCompleted:
		return 1
	case wasCompleted && !isCompleted:
		return -1
	default:
		return 0
	}
}

func (repository *SQLiteHabitLogRepository) FindByDay(ctx context.Context, habitID string, day time.Time) (models.HabitLog, error) {
	row := repository.database.QueryRowContext(ctx,
		`SELECT id, habit_id, date, status, value, notes, created_at, updated_at
		FROM habit_logs WHERE habit_id = ? AND date >= ? AND date < ?`,
		habitID, day, day.Add(24*time.Hour),
	)
	log, err := scanHabitLog(row)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("finding log by day: %w", err)
	}
	return log, nil
}

func (repository *SQLiteHabitLogRepository) FindByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, habit_id, date, status, value, notes, created_at, updated_at
		FROM habit_logs WHERE habit_id = ? ORDER BY date DESC`,
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding logs by habit: %w", err)
	}
	defer rows.Close()

	return collectHabitLogs(rows)
}

func (repository *SQLiteHabitLogRepository) FindForUserInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.HabitLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT l.id, l.habit_id, l.date, l.status, l.value, l.notes, l.created_at, l.updated_at
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.date >= ? AND l.date < ?
		ORDER BY l.date`,
		userID, from, until,
	)
	if err != nil {
		return nil, fmt.Errorf("finding logs in range: %w", err)
	}
	defer rows.Close()

	return collectHabitLogs(rows)
}

func (repository *SQLiteHabitLogRepository) CountCompletedInRange(ctx context.Context, habitID string, firstDay time.Time, lastDay time.Time) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM habit_logs
		WHERE habit_id = ? AND status = ? AND date >= ? AND date < ?`,
		habitID, models.HabitStatusCompleted, firstDay, lastDay.Add(24*time.Hour),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting completed logs: %w", err)
	}
	return count, nil
}

func (repository *SQLiteHabitLogRepository) CompletedWithHabitNames(ctx context.Context, userID string, firstDay time.Time, lastDay time.Time) ([]CompletedLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT l.habit_id, h.name, l.date
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.status = ? AND l.date >= ? AND l.date < ?
		ORDER BY l.date`,
		userID, models.HabitStatusCompleted, firstDay, lastDay.Add(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("finding completed logs: %w", err)
	}
	defer rows.Close()

	var logs []CompletedLog
	for rows.Next() {
		var log CompletedLog
		if err := rows.Scan(&log.HabitID, &log.HabitName, &log.Date); err != nil {
			return nil, fmt.Errorf("scanning completed log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Reconcile upserts the single log for (habit, day) and applies the completion
// delta to every legacy single-habit goal whose range contains the day, all in
// one transaction. The unique index on (habit_id, date) makes concurrent
// same-day calls safe: one writer wins the insert, the other fails and retries
// as an update would. Returns the log and the applied delta.
func (repository *SQLiteHabitLogRepository) Reconcile(ctx context.Context, habitID string, day time.Time, status models.HabitStatus, value *float64, notes string) (models.HabitLog, int, error) {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.HabitLog{}, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	var existingID string
	var existingStatus models.HabitStatus
	var previous *models.HabitStatus

	err = transaction.QueryRowContext(ctx,
		"SELECT id, status FROM habit_logs WHERE habit_id = ? AND date >= ? AND date < ?",
		habitID, day, day.Add(24*time.Hour),
	).Scan(&existingID, &existingStatus)
	switch {
	case err == nil:
		previous = &existingStatus
	case errors.Is(err, sql.ErrNoRows):
	default:
		return models.HabitLog{}, 0, fmt.Errorf("finding existing log: %w", err)
	}

	delta := CompletionDelta(previous, status)
	now := time.Now()

	log := models.HabitLog{
		ID:      existingID,
		HabitID: habitID,
		Date:    day,
		Status:  status,
		Value:   value,
		Notes:   notes,
	}

	if existingID != "" {
		log.UpdatedAt = now
		if _, err := transaction.ExecContext(ctx,
			"UPDATE habit_logs SET status = ?, value = ?, notes = ?, updated_at = ? WHERE id = ?",
			status, value, notes, now, existingID,
		); err != nil {
			return models.HabitLog{}, 0, fmt.Errorf("updating log: %w", err)
		}
	} else {
		log.ID = uuid.New().String()
		log.CreatedAt = now
		log.UpdatedAt = now
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO habit_logs (id, habit_id, date, status, value, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			log.ID, habitID, day, status, value, notes, now, now,
		); err != nil {
			return models.HabitLog{}, 0, fmt.Errorf("creating log: %w", err)
		}
	}

	if delta != 0 {
		if _, err := transaction.ExecContext(ctx,
			`UPDATE habit_goals SET current_progress = current_progress + ?, updated_at = ?
			WHERE habit_id = ? AND start_date <= ? AND end_date >= ?`,
			delta, now, habitID, day, day,
		); err != nil {
			return models.HabitLog{}, 0, fmt.Errorf("applying goal delta: %w", err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return models.HabitLog{}, 0, fmt.Errorf("committing reconcile: %w", err)
	}
	return log, delta, nil
}

func collectHabitLogs(rows *sql.Rows) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	for rows.Next() {
		log, err := scanHabitLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func scanHabitLog(row rowScanner) (models.HabitLog, error) {
	var log models.HabitLog
	err := row.Scan(&log.ID, &log.HabitID, &log.Date, &log.Status, &log.Value, &log.Notes, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return models.HabitLog{}, err
	}
	return log, nil
}
