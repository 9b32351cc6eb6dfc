package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

type NutritionRepository interface {
	FindCustomFoods(ctx context.Context, userID string, query string, limit int) ([]models.CustomFood, error)
	FindCustomFoodByID(ctx context.Context, id string, userID string) (models.CustomFood, error)
	CreateCustomFood(ctx context.Context, food models.CustomFood) (models.CustomFood, error)
	FindFoodEntriesInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.FoodEntry, error)
	CreateFoodEntry(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error)
	CreateWaterLog(ctx context.Context, log models.WaterLog) error
	SumWaterInRange(ctx context.Context, userID string, from time.Time, until time.Time) (float64, error)
	CreateExerciseLog(ctx context.Context, log models.ExerciseLog) error
	FindExerciseLogsInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.ExerciseLog, error)
	CreateWeightLog(ctx context.Context, log models.WeightLog) error
	FindLatestWeight(ctx context.Context, userID string) (models.WeightLog, error)
	FindWeightLogsInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.WeightLog, error)
}

type SQLiteNutritionRepository struct {
	database *sql.DB
}

func NewNutritionRepository(database *sql.DB) *SQLiteNutritionRepository {
	return &SQLiteNutritionRepository{database: database}
}

const customFoodColumns = `id, user_id, name, serving_size_desc, base_serving_size_amount, base_serving_size_unit,
	calories, protein, carbs, fat, fiber, sugar, sodium, created_at`

func (repository *SQLiteNutritionRepository) FindCustomFoods(ctx context.Context, userID string, query string, limit int) ([]models.CustomFood, error) {
	sqlQuery := "SELECT " + customFoodColumns + " FROM custom_foods WHERE user_id = ?"
	args := []interface{}{userID}
	if query != "" {
		sqlQuery += " AND name LIKE ?"
		args = append(args, "%"+query+"%")
	}
	sqlQuery += " ORDER BY name LIMIT ?"
	args = append(args, limit)

	rows, err := repository.database.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("finding custom foods: %w", err)
	}
	defer rows.Close()

	var foods []models.CustomFood
	for rows.Next() {
		food, err := scanCustomFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning custom food: %w", err)
		}
		foods = append(foods, food)
	}
	return foods, rows.Err()
}

func (repository *SQLiteNutritionRepository) FindCustomFoodByID(ctx context.Context, id string, userID string) (models.CustomFood, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+customFoodColumns+" FROM custom_foods WHERE id = ? AND user_id = ?", id, userID,
	)
	food, err := scanCustomFood(row)
	if err != nil {
		return models.CustomFood{}, fmt.Errorf("finding custom food: %w", err)
	}
	return food, nil
}

func (repository *SQLiteNutritionRepository) CreateCustomFood(ctx context.Context, food models.CustomFood) (models.CustomFood, error) {
	if food.ID == "" {
		food.ID = uuid.New().String()
	}
	food.CreatedAt = time.Now()
	if food.BaseServingSizeAmount == 0 {
		food.BaseServingSizeAmount = 100
	}
	if food.BaseServingSizeUnit == "" {
		food.BaseServingSizeUnit = "G"
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO custom_foods (id, user_id, name, serving_size_desc, base_serving_size_amount, base_serving_size_unit,
			calories, protein, carbs, fat, fiber, sugar, sodium, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		food.ID, food.UserID, food.Name, food.ServingSizeDesc, food.BaseServingSizeAmount, food.BaseServingSizeUnit,
		food.Calories, food.Protein, food.Carbs, food.Fat, food.Fiber, food.Sugar, food.Sodium, food.CreatedAt,
	)
	if err != nil {
		return models.CustomFood{}, fmt.Errorf("creating custom food: %w", err)
	}
	return food, nil
}

func (repository *SQLiteNutritionRepository) FindFoodEntriesInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.FoodEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, date_time, meal_type, custom_food_id, name, quantity, unit,
			calories, protein, carbs, fat, fiber, sugar, sodium, created_at
		FROM food_entries WHERE user_id = ? AND date_time >= ? AND date_time < ?
		ORDER BY date_time`,
		userID, from, until,
	)
	if err != nil {
		return nil, fmt.Errorf("finding food entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FoodEntry
	for rows.Next() {
		var entry models.FoodEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.DateTime, &entry.MealType, &entry.CustomFoodID, &entry.Name, &entry.Quantity, &entry.Unit,
			&entry.Calories, &entry.Protein, &entry.Carbs, &entry.Fat, &entry.Fiber, &entry.Sugar, &entry.Sodium, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning food entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (repository *SQLiteNutritionRepository) CreateFoodEntry(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	if entry.DateTime.IsZero() {
		entry.DateTime = entry.CreatedAt
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO food_entries (id, user_id, date_time, meal_type, custom_food_id, name, quantity, unit,
			calories, protein, carbs, fat, fiber, sugar, sodium, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.DateTime, entry.MealType, entry.CustomFoodID, entry.Name, entry.Quantity, entry.Unit,
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Fiber, entry.Sugar, entry.Sodium, entry.CreatedAt,
	)
	if err != nil {
		return models.FoodEntry{}, fmt.Errorf("creating food entry: %w", err)
	}
	return entry, nil
}

func (repository *SQLiteNutritionRepository) CreateWaterLog(ctx context.Context, log models.WaterLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Unit == "" {
		log.Unit = "ML"
	}
	if log.DateTime.IsZero() {
		log.DateTime = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO water_logs (id, user_id, amount, unit, date_time) VALUES (?, ?, ?, ?, ?)",
		log.ID, log.UserID, log.Amount, log.Unit, log.DateTime,
	)
	if err != nil {
		return fmt.Errorf("creating water log: %w", err)
	}
	return nil
}

func (repository *SQLiteNutritionRepository) SumWaterInRange(ctx context.Context, userID string, from time.Time, until time.Time) (float64, error) {
	var total sql.NullFloat64
	err := repository.database.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM water_logs WHERE user_id = ? AND date_time >= ? AND date_time < ?",
		userID, from, until,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing water logs: %w", err)
	}
	return total.Float64, nil
}

func (repository *SQLiteNutritionRepository) CreateExerciseLog(ctx context.Context, log models.ExerciseLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Source == "" {
		log.Source = "MANUAL"
	}
	if log.DateTime.IsZero() {
		log.DateTime = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO exercise_logs (id, user_id, exercise_type, duration_min, calories_burned, date_time, source) VALUES (?, ?, ?, ?, ?, ?, ?)",
		log.ID, log.UserID, log.ExerciseType, log.DurationMin, log.CaloriesBurned, log.DateTime, log.Source,
	)
	if err != nil {
		return fmt.Errorf("creating exercise log: %w", err)
	}
	return nil
}

func (repository *SQLiteNutritionRepository) FindExerciseLogsInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.ExerciseLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, exercise_type, duration_min, calories_burned, date_time, source
		FROM exercise_logs WHERE user_id = ? AND date_time >= ? AND date_time < ?
		ORDER BY date_time`,
		userID, from, until,
	)
	if err != nil {
		return nil, fmt.Errorf("finding exercise logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ExerciseLog
	for rows.Next() {
		var log models.ExerciseLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.ExerciseType, &log.DurationMin, &log.CaloriesBurned, &log.DateTime, &log.Source); err != nil {
			return nil, fmt.Errorf("scanning exercise log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (repository *SQLiteNutritionRepository) CreateWeightLog(ctx context.Context, log models.WeightLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Date.IsZero() {
		log.Date = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO weight_logs (id, user_id, weight_kg, date) VALUES (?, ?, ?, ?)",
		log.ID, log.UserID, log.WeightKg, log.Date,
	)
	if err != nil {
		return fmt.Errorf("creating weight log: %w", err)
	}
	return nil
}

func (repository *SQLiteNutritionRepository) FindLatestWeight(ctx context.Context, userID string) (models.WeightLog, error) {
	var log models.WeightLog
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, user_id, weight_kg, date FROM weight_logs WHERE user_id = ? ORDER BY date DESC LIMIT 1",
		userID,
	).Scan(&log.ID, &log.UserID, &log.WeightKg, &log.Date)
	if err != nil {
		return models.WeightLog{}, fmt.Errorf("finding latest weight: %w", err)
	}
	return log, nil
}

func (repository *SQLiteNutritionRepository) FindWeightLogsInRange(ctx context.Context, userID string, from time.Time, until time.Time) ([]models.WeightLog, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, user_id, weight_kg, date FROM weight_logs WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date",
		userID, from, until,
	)
	if err != nil {
		return nil, fmt.Errorf("finding weight logs: %w", err)
	}
	defer rows.Close()

	var logs []models.WeightLog
	for rows.Next() {
		var log models.WeightLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.WeightKg, &log.Date); err != nil {
			return nil, fmt.Errorf("scanning weight log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func scanCustomFood(row rowScanner) (models.CustomFood, error) {
	var food models.CustomFood
	err := row.Scan(
		&food.ID, &food.UserID, &food.Name, &food.ServingSizeDesc, &food.BaseServingSizeAmount, &food.BaseServingSizeUnit,
		&food.Calories, &food.Protein, &food.Carbs, &food.Fat, &food.Fiber, &food.Sugar, &food.Sodium, &food.CreatedAt,
	)
	if err != nil {
		return models.CustomFood{}, err
	}
	return food, nil
}
