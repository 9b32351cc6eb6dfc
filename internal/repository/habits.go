package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

const (
	OrderBySortOrder = "sort_order ASC, id ASC"
	OrderByName      = "name ASC"
)

const habitColumns = `id, user_id, name, description, category, color, icon, time_of_day,
	habit_type, frequency_type, days_of_week, day_of_month, yearly_month, yearly_day,
	target_value, start_date, end_date, sort_order, is_archived, created_at, updated_at`

type HabitFilter struct {
	UserID          string
	IncludeArchived bool
	OrderBy         string
}

type SortOrderUpdate struct {
	HabitID   string
	SortOrder int
}

type HabitRepository interface {
	FindByID(ctx context.Context, id string) (models.Habit, error)
	FindByIDForUser(ctx context.Context, id string, userID string) (models.Habit, error)
	FindAll(ctx context.Context, filter HabitFilter) ([]models.Habit, error)
	Create(ctx context.Context, habit models.Habit) (models.Habit, error)
	Update(ctx context.Context, habit models.Habit) error
	Delete(ctx context.Context, id string) error
	MaxSortOrder(ctx context.Context, userID string) (int, error)
	UpdateSortOrders(ctx context.Context, userID string, updates []SortOrderUpdate) error
	FindScheduleDates(ctx context.Context, habitID string) ([]models.HabitScheduleDate, error)
	ReplaceScheduleDates(ctx context.Context, habitID string, dates []time.Time) error
}

type SQLiteHabitRepository struct {
	database *sql.DB
}

func NewHabitRepository(database *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{database: database}
}

func (repository *SQLiteHabitRepository) FindByID(ctx context.Context, id string) (models.Habit, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+habitColumns+" FROM habits WHERE id = ?", id,
	)
	habit, err := scanHabitRow(row)
	if err != nil {
		return models.Habit{}, fmt.Errorf("finding habit by id: %w", err)
	}
	return habit, nil
}

func (repository *SQLiteHabitRepository) FindByIDForUser(ctx context.Context, id string, userID string) (models.Habit, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+habitColumns+" FROM habits WHERE id = ? AND user_id = ?", id, userID,
	)
	habit, err := scanHabitRow(row)
	if err != nil {
		return models.Habit{}, fmt.Errorf("finding habit for user: %w", err)
	}
	return habit, nil
}

func (repository *SQLiteHabitRepository) FindAll(ctx context.Context, filter HabitFilter) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE user_id = ?"
	args := []interface{}{filter.UserID}

	if !filter.IncludeArchived {
		query += " AND is_archived = 0"
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = OrderBySortOrder
	}
	query += " ORDER BY " + orderBy

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning habit: %w", err)
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (repository *SQLiteHabitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	now := time.Now()
	habit.CreatedAt = now
	habit.UpdatedAt = now
	if habit.HabitType == "" {
		habit.HabitType = models.HabitTypeBoolean
	}
	if habit.FrequencyType == "" {
		habit.FrequencyType = models.FrequencyDaily
	}
	if habit.TimeOfDay == "" {
		habit.TimeOfDay = "ANY"
	}
	if habit.StartDate.IsZero() {
		habit.StartDate = now
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, description, category, color, icon, time_of_day,
			habit_type, frequency_type, days_of_week, day_of_month, yearly_month, yearly_day,
			target_value, start_date, end_date, sort_order, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.Category, habit.Color, habit.Icon, habit.TimeOfDay,
		habit.HabitType, habit.FrequencyType, habit.DaysOfWeek, habit.DayOfMonth, habit.YearlyMonth, habit.YearlyDay,
		habit.TargetValue, habit.StartDate, habit.EndDate, habit.SortOrder, habit.IsArchived, habit.CreatedAt, habit.UpdatedAt,
	)
	if err != nil {
		return models.Habit{}, fmt.Errorf("creating habit: %w", err)
	}
	return habit, nil
}

func (repository *SQLiteHabitRepository) Update(ctx context.Context, habit models.Habit) error {
	habit.UpdatedAt = time.Now()
	_, err := repository.database.ExecContext(ctx,
		`UPDATE habits SET name = ?, description = ?, category = ?, color = ?, icon = ?, time_of_day = ?,
			habit_type = ?, frequency_type = ?, days_of_week = ?, day_of_month = ?, yearly_month = ?, yearly_day = ?,
			target_value = ?, start_date = ?, end_date = ?, is_archived = ?, updated_at = ?
		WHERE id = ?`,
		habit.Name, habit.Description, habit.Category, habit.Color, habit.Icon, habit.TimeOfDay,
		habit.HabitType, habit.FrequencyType, habit.DaysOfWeek, habit.DayOfMonth, habit.YearlyMonth, habit.YearlyDay,
		habit.TargetValue, habit.StartDate, habit.EndDate, habit.IsArchived, habit.UpdatedAt,
		habit.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	return nil
}

// Delete removes the habit and everything hanging off it in one transaction:
// journal links, goal items, logs, schedule dates. Legacy single-habit goals
// pointing at the habit are detached rather than deleted.
func (repository *SQLiteHabitRepository) Delete(ctx context.Context, id string) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	statements := []string{
		"DELETE FROM journal_entry_habits WHERE habit_id = ?",
		"DELETE FROM habit_goal_items WHERE habit_id = ?",
		"DELETE FROM habit_logs WHERE habit_id = ?",
		"DELETE FROM habit_schedule_dates WHERE habit_id = ?",
		"UPDATE habit_goals SET habit_id = NULL WHERE habit_id = ?",
		"DELETE FROM habits WHERE id = ?",
	}
	for _, statement := range statements {
		if _, err := transaction.ExecContext(ctx, statement, id); err != nil {
			return fmt.Errorf("deleting habit: %w", err)
		}
	}

	return transaction.Commit()
}

func (repository *SQLiteHabitRepository) MaxSortOrder(ctx context.Context, userID string) (int, error) {
	var maxOrder sql.NullInt64
	err := repository.database.QueryRowContext(ctx,
		"SELECT MAX(sort_order) FROM habits WHERE user_id = ?", userID,
	).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("finding max sort order: %w", err)
	}
	return int(maxOrder.Int64), nil
}

func (repository *SQLiteHabitRepository) UpdateSortOrders(ctx context.Context, userID string, updates []SortOrderUpdate) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	for _, update := range updates {
		if _, err := transaction.ExecContext(ctx,
			"UPDATE habits SET sort_order = ?, updated_at = ? WHERE id = ? AND user_id = ?",
			update.SortOrder, time.Now(), update.HabitID, userID,
		); err != nil {
			return fmt.Errorf("updating sort order: %w", err)
		}
	}

	return transaction.Commit()
}

func (repository *SQLiteHabitRepository) FindScheduleDates(ctx context.Context, habitID string) ([]models.HabitScheduleDate, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, habit_id, date FROM habit_schedule_dates WHERE habit_id = ? ORDER BY date",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding schedule dates: %w", err)
	}
	defer rows.Close()

	var dates []models.HabitScheduleDate
	for rows.Next() {
		var date models.HabitScheduleDate
		if err := rows.Scan(&date.ID, &date.HabitID, &date.Date); err != nil {
			return nil, fmt.Errorf("scanning schedule date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func (repository *SQLiteHabitRepository) ReplaceScheduleDates(ctx context.Context, habitID string, dates []time.Time) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(ctx, "DELETE FROM habit_schedule_dates WHERE habit_id = ?", habitID); err != nil {
		return fmt.Errorf("clearing schedule dates: %w", err)
	}

	for _, date := range dates {
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO habit_schedule_dates (id, habit_id, date) VALUES (?, ?, ?)",
			uuid.New().String(), habitID, date,
		); err != nil {
			return fmt.Errorf("inserting schedule date: %w", err)
		}
	}

	return transaction.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabitRow(row *sql.Row) (models.Habit, error) {
	return scanHabit(row)
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var habit models.Habit
	err := row.Scan(
		&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.Category, &habit.Color, &habit.Icon, &habit.TimeOfDay,
		&habit.HabitType, &habit.FrequencyType, &habit.DaysOfWeek, &habit.DayOfMonth, &habit.YearlyMonth, &habit.YearlyDay,
		&habit.TargetValue, &habit.StartDate, &habit.EndDate, &habit.SortOrder, &habit.IsArchived, &habit.CreatedAt, &habit.UpdatedAt,
	)
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}
