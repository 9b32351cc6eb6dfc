package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, name,
	age, height_cm, weight_kg, gender, activity_level, goal_type,
	calorie_goal, protein_goal_g, carbs_goal_g, fat_goal_g, water_goal_ml, units_metric,
	created_at, updated_at`

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
}

type SQLiteUserRepository struct {
	database *sql.DB
}

func NewUserRepository(database *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{database: database}
}

func (repository *SQLiteUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id,
	)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by id: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email,
	)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by email: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name,
			age, height_cm, weight_kg, gender, activity_level, goal_type,
			calorie_goal, protein_goal_g, carbs_goal_g, fat_goal_g, water_goal_ml, units_metric,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.Name,
		user.Age, user.HeightCm, user.WeightKg, user.Gender, user.ActivityLevel, user.GoalType,
		user.CalorieGoal, user.ProteinGoalG, user.CarbsGoalG, user.FatGoalG, user.WaterGoalMl, user.UnitsMetric,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE users SET name = ?,
			age = ?, height_cm = ?, weight_kg = ?, gender = ?, activity_level = ?, goal_type = ?,
			calorie_goal = ?, protein_goal_g = ?, carbs_goal_g = ?, fat_goal_g = ?, water_goal_ml = ?, units_metric = ?,
			updated_at = ?
		WHERE id = ?`,
		user.Name,
		user.Age, user.HeightCm, user.WeightKg, user.Gender, user.ActivityLevel, user.GoalType,
		user.CalorieGoal, user.ProteinGoalG, user.CarbsGoalG, user.FatGoalG, user.WaterGoalMl, user.UnitsMetric,
		time.Now(), user.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var activityLevel, goalType, gender sql.NullString
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Age, &user.HeightCm, &user.WeightKg, &gender, &activityLevel, &goalType,
		&user.CalorieGoal, &user.ProteinGoalG, &user.CarbsGoalG, &user.FatGoalG, &user.WaterGoalMl, &user.UnitsMetric,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if gender.Valid {
		user.Gender = &gender.String
	}
	if activityLevel.Valid {
		level := models.ActivityLevel(activityLevel.String)
		user.ActivityLevel = &level
	}
	if goalType.Valid {
		goal := models.GoalType(goalType.String)
		user.GoalType = &goal
	}
	return user, nil
}
