package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/middleware"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type MatrixHandler struct {
	matrixService *services.MatrixService
	logger        *slog.Logger
}

func NewMatrixHandler(matrixService *services.MatrixService, logger *slog.Logger) *MatrixHandler {
	return &MatrixHandler{matrixService: matrixService, logger: logger}
}

type matrixProps struct {
	Title      string
	User       models.User
	Matrix     services.Matrix
	PrevOffset int
	NextOffset int
}

func (handler *MatrixHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	weekOffset := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			weekOffset = parsed
		}
	}

	matrix, err := handler.matrixService.BuildMatrix(r.Context(), user.ID, weekOffset, time.Now())
	if err != nil {
		renderError(w, handler.logger, "building matrix", err)
		return
	}

	props := matrixProps{
		Title:      "Matrix",
		User:       user,
		Matrix:     matrix,
		PrevOffset: weekOffset - 1,
		NextOffset: weekOffset + 1,
	}
	if err := views.Render(w, "habits_matrix", props); err != nil {
		handler.logger.Error("rendering matrix", "error", err)
	}
}

type heatmapProps struct {
	Title string
	User  models.User
	Days  []services.HeatmapDay
}

func (handler *MatrixHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	days, err := handler.matrixService.BuildHeatmap(r.Context(), user.ID, time.Now())
	if err != nil {
		renderError(w, handler.logger, "building heatmap", err)
		return
	}

	props := heatmapProps{Title: "Heatmap", User: user, Days: days}
	if err := views.Render(w, "habits_heatmap", props); err != nil {
		handler.logger.Error("rendering heatmap", "error", err)
	}
}
