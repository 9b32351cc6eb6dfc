package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/config"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/handlers"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/repository"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config, authService *services.AuthService, logger *slog.Logger) *Server {
	userRepo := repository.NewUserRepository(database)
	habitRepo := repository.NewHabitRepository(database)
	logRepo := repository.NewHabitLogRepository(database)
	goalRepo := repository.NewHabitGoalRepository(database)
	journalRepo := repository.NewJournalRepository(database)
	nutritionRepo := repository.NewNutritionRepository(database)

	habitService := services.NewHabitService(habitRepo, logRepo)
	goalService := services.NewGoalService(goalRepo, logRepo)
	matrixService := services.NewMatrixService(habitRepo, logRepo)
	nutritionService := services.NewNutritionService(userRepo, nutritionRepo)
	feedService := services.NewCalendarFeedService(habitRepo)

	authHandler := handlers.NewAuthHandler(authService, logger)
	dashboardHandler := handlers.NewDashboardHandler(habitService, goalService, nutritionService, journalRepo, nutritionRepo, logger)
	habitHandler := handlers.NewHabitHandler(habitService, logger)
	matrixHandler := handlers.NewMatrixHandler(matrixService, logger)
	goalHandler := handlers.NewGoalHandler(goalService, habitRepo, logger)
	journalHandler := handlers.NewJournalHandler(journalRepo, habitRepo, logger)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService, nutritionRepo, logger)
	profileHandler := handlers.NewProfileHandler(userRepo, logger)
	calendarHandler := handlers.NewCalendarHandler(feedService, logger)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Handle("/static/*", views.StaticHandler())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated(authService))

		r.Get("/auth/login", authHandler.ShowLogin)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/auth/register", authHandler.ShowRegister)
		r.Post("/auth/register", authHandler.Register)
	})

	router.Post("/auth/logout", authHandler.Logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
		r.Get("/dashboard", dashboardHandler.Show)

		r.Get("/habits", habitHandler.Today)
		r.Get("/habits/new", habitHandler.ShowNew)
		r.Post("/habits/new", habitHandler.Create)
		r.Post("/habits/reorder", habitHandler.Reorder)

		r.Get("/habits/matrix", matrixHandler.Matrix)
		r.Get("/habits/heatmap", matrixHandler.Heatmap)

		r.Get("/habits/goals", goalHandler.Index)
		r.Post("/habits/goals", goalHandler.Create)
		r.Post("/habits/goals/{goalID}/delete", goalHandler.Delete)

		r.Get("/habits/{habitID}/edit", habitHandler.ShowEdit)
		r.Post("/habits/{habitID}/edit", habitHandler.Update)
		r.Post("/habits/{habitID}/delete", habitHandler.Delete)
		r.Post("/habits/{habitID}/log", habitHandler.Log)
		r.Get("/habits/{habitID}/logs", habitHandler.Logs)

		r.Get("/journal", journalHandler.Index)
		r.Post("/journal", journalHandler.Create)

		r.Get("/nutrition", nutritionHandler.Daily)
		r.Get("/nutrition/trends", nutritionHandler.Trends)
		r.Get("/nutrition/trends.json", nutritionHandler.TrendsJSON)
		r.Post("/nutrition/food", nutritionHandler.LogFood)
		r.Post("/nutrition/foods", nutritionHandler.CreateCustomFood)
		r.Post("/nutrition/water", nutritionHandler.LogWater)
		r.Post("/nutrition/exercise", nutritionHandler.LogExercise)
		r.Post("/nutrition/weight", nutritionHandler.LogWeight)

		r.Get("/profile", profileHandler.Show)
		r.Post("/profile", profileHandler.Update)

		r.Get("/habits/calendar.ics", calendarHandler.Feed)
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
