package models

import "time"

type HabitType string

const (
	HabitTypeBoolean  HabitType = "BOOLEAN"
	HabitTypeQuantity HabitType = "QUANTITY"
	HabitTypeDuration HabitType = "DURATION"
)

type FrequencyType string

const (
	FrequencyDaily   FrequencyType = "DAILY"
	FrequencyWeekly  FrequencyType = "WEEKLY"
	FrequencyMonthly FrequencyType = "MONTHLY"
	FrequencyYearly  FrequencyType = "YEARLY"
	FrequencyCustom  FrequencyType = "CUSTOM"
)

type HabitStatus string

const (
	HabitStatusCompleted HabitStatus = "COMPLETED"
	HabitStatusPartial   HabitStatus = "PARTIAL"
	HabitStatusMissed    HabitStatus = "MISSED"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "SEDENTARY"
	ActivityLight      ActivityLevel = "LIGHT"
	ActivityModerate   ActivityLevel = "MODERATE"
	ActivityActive     ActivityLevel = "ACTIVE"
	ActivityVeryActive ActivityLevel = "VERY_ACTIVE"
)

type GoalType string

const (
	GoalTypeLoss     GoalType = "LOSS"
	GoalTypeMaintain GoalType = "MAINTAIN"
	GoalTypeGain     GoalType = "GAIN"
)

type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string

	Age           *int
	HeightCm      *float64
	WeightKg      *float64
	Gender        *string
	ActivityLevel *ActivityLevel
	GoalType      *GoalType

	CalorieGoal  *int
	ProteinGoalG *int
	CarbsGoalG   *int
	FatGoalG     *int
	WaterGoalMl  *int
	UnitsMetric  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Habit struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Category    string
	Color       string
	Icon        string
	TimeOfDay   string

	HabitType     HabitType
	FrequencyType FrequencyType

	// Frequency-specific fields. Only the fields belonging to FrequencyType
	// are set; the rest are nil.
	DaysOfWeek  *string
	DayOfMonth  *int
	YearlyMonth *int
	YearlyDay   *int

	TargetValue *float64
	StartDate   time.Time
	EndDate     *time.Time
	SortOrder   int
	IsArchived  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type HabitLog struct {
	ID      string
	HabitID string
	// Date is truncated to the start of its calendar day.
	Date   time.Time
	Status HabitStatus
	Value  *float64
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type HabitScheduleDate struct {
	ID      string
	HabitID string
	Date    time.Time
}

type HabitGoal struct {
	ID     string
	UserID string
	// HabitID is set for legacy single-habit goals and nil for multi-habit
	// goals, which carry Items instead.
	HabitID         *string
	GoalScope       string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	Target          int
	CurrentProgress int

	Items []HabitGoalItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type HabitGoalItem struct {
	ID          string
	HabitGoalID string
	HabitID     string
	HabitName   string
	TargetCount int
	Weight      float64
}

type JournalEntry struct {
	ID       string
	UserID   string
	Date     time.Time
	Title    string
	Content  string
	Tags     string
	HabitIDs []string

	CreatedAt time.Time
}

type Macros struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
	Sodium   float64
}

type CustomFood struct {
	ID                    string
	UserID                string
	Name                  string
	ServingSizeDesc       string
	BaseServingSizeAmount float64
	BaseServingSizeUnit   string
	Macros

	CreatedAt time.Time
}

type FoodEntry struct {
	ID           string
	UserID       string
	DateTime     time.Time
	MealType     MealType
	CustomFoodID *string
	Name         string
	Quantity     float64
	Unit         string
	Macros

	CreatedAt time.Time
}

type WaterLog struct {
	ID       string
	UserID   string
	Amount   float64
	Unit     string
	DateTime time.Time
}

type ExerciseLog struct {
	ID             string
	UserID         string
	ExerciseType   string
	DurationMin    float64
	CaloriesBurned float64
	DateTime       time.Time
	Source         string
}

type WeightLog struct {
	ID       string
	UserID   string
	WeightKg float64
	Date     time.Time
}
