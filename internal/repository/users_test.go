package repository_test

import (
	"context"
	"testing"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/testutil"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, models.User{
		Email:        "ana@example.com",
		PasswordHash: "hash",
		Name:         "Ana",
		UnitsMetric:  true,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	byEmail, err := userRepo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("finding by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Error("expected the same user by email")
	}

	if _, err := userRepo.FindByEmail(ctx, "missing@example.com"); err == nil {
		t.Error("expected error for unknown email")
	}
}

func TestUserRepository_UpdateProfileRoundTrip(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	age := 34
	height := 172.5
	weight := 68.0
	gender := "FEMALE"
	level := models.ActivityModerate
	goalType := models.GoalTypeLoss
	calories := 1900

	user.Name = "Renamed"
	user.Age = &age
	user.HeightCm = &height
	user.WeightKg = &weight
	user.Gender = &gender
	user.ActivityLevel = &level
	user.GoalType = &goalType
	user.CalorieGoal = &calories
	user.UnitsMetric = false

	if err := userRepo.UpdateProfile(ctx, user); err != nil {
		t.Fatalf("updating profile: %v", err)
	}

	found, err := userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("finding user: %v", err)
	}
	if found.Name != "Renamed" {
		t.Errorf("expected name updated, got '%s'", found.Name)
	}
	if found.Age == nil || *found.Age != 34 {
		t.Error("expected age round-trip")
	}
	if found.Gender == nil || *found.Gender != "FEMALE" {
		t.Error("expected gender round-trip")
	}
	if found.ActivityLevel == nil || *found.ActivityLevel != models.ActivityModerate {
		t.Error("expected activity level round-trip")
	}
	if found.GoalType == nil || *found.GoalType != models.GoalTypeLoss {
		t.Error("expected goal type round-trip")
	}
	if found.CalorieGoal == nil || *found.CalorieGoal != 1900 {
		t.Error("expected calorie goal round-trip")
	}
	if found.UnitsMetric {
		t.Error("expected units flag updated")
	}
}

func TestUserRepository_NullableFieldsStayNil(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	found, err := userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("finding user: %v", err)
	}
	if found.Age != nil || found.Gender != nil || found.ActivityLevel != nil || found.GoalType != nil {
		t.Error("expected unset profile fields to scan as nil")
	}
}
