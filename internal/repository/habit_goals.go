package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

type HabitGoalRepository interface {
	FindByID(ctx context.Context, id string) (models.HabitGoal, error)
	FindByUser(ctx context.Context, userID string) ([]models.HabitGoal, error)
	Create(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error)
	Delete(ctx context.Context, id string, userID string) error
}

type SQLiteHabitGoalRepository struct {
	database *sql.DB
}

func NewHabitGoalRepository(database *sql.DB) *SQLiteHabitGoalRepository {
	return &SQLiteHabitGoalRepository{database: database}
}

const goalColumns = `id, user_id, habit_id, goal_scope, description,
	start_date, end_date, target, current_progress, created_at, updated_at`

func (repository *SQLiteHabitGoalRepository) FindByID(ctx context.Context, id string) (models.HabitGoal, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM habit_goals WHERE id = ?", id,
	)
	goal, err := scanHabitGoal(row)
	if err != nil {
		return models.HabitGoal{}, fmt.Errorf("finding goal by id: %w", err)
	}

	items, err := repository.findItems(ctx, goal.ID)
	if err != nil {
		return models.HabitGoal{}, err
	}
	goal.Items = items
	return goal, nil
}

func (repository *SQLiteHabitGoalRepository) FindByUser(ctx context.Context, userID string) ([]models.HabitGoal, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM habit_goals WHERE user_id = ? ORDER BY end_date ASC", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding goals: %w", err)
	}
	defer rows.Close()

	var goals []models.HabitGoal
	for rows.Next() {
		goal, err := scanHabitGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range goals {
		items, err := repository.findItems(ctx, goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].Items = items
	}
	return goals, nil
}

// Create inserts the goal header and all of its items in one transaction.
func (repository *SQLiteHabitGoalRepository) Create(ctx context.Context, goal models.HabitGoal) (models.HabitGoal, error) {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.HabitGoal{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(ctx,
		`INSERT INTO habit_goals (id, user_id, habit_id, goal_scope, description,
			start_date, end_date, target, current_progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.HabitID, goal.GoalScope, goal.Description,
		goal.StartDate, goal.EndDate, goal.Target, goal.CurrentProgress, goal.CreatedAt, goal.UpdatedAt,
	); err != nil {
		return models.HabitGoal{}, fmt.Errorf("creating goal: %w", err)
	}

	for i := range goal.Items {
		item := &goal.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.HabitGoalID = goal.ID
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO habit_goal_items (id, habit_goal_id, habit_id, target_count, weight) VALUES (?, ?, ?, ?, ?)",
			item.ID, item.HabitGoalID, item.HabitID, item.TargetCount, item.Weight,
		); err != nil {
			return models.HabitGoal{}, fmt.Errorf("creating goal item: %w", err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return models.HabitGoal{}, fmt.Errorf("committing goal: %w", err)
	}
	return goal, nil
}

func (repository *SQLiteHabitGoalRepository) Delete(ctx context.Context, id string, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM habit_goals WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

func (repository *SQLiteHabitGoalRepository) findItems(ctx context.Context, goalID string) ([]models.HabitGoalItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT i.id, i.habit_goal_id, i.habit_id, h.name, i.target_count, i.weight
		FROM habit_goal_items i
		JOIN habits h ON h.id = i.habit_id
		WHERE i.habit_goal_id = ?
		ORDER BY h.name`,
		goalID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding goal items: %w", err)
	}
	defer rows.Close()

	var items []models.HabitGoalItem
	for rows.Next() {
		var item models.HabitGoalItem
		if err := rows.Scan(&item.ID, &item.HabitGoalID, &item.HabitID, &item.HabitName, &item.TargetCount, &item.Weight); err != nil {
			return nil, fmt.Errorf("scanning goal item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanHabitGoal(row rowScanner) (models.HabitGoal, error) {
	var goal models.HabitGoal
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.HabitID, &goal.GoalScope, &goal.Description,
		&goal.StartDate, &goal.EndDate, &goal.Target, &goal.CurrentProgress, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return models.HabitGoal{}, err
	}
	return goal, nil
}
