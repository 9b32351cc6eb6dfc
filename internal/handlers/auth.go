package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/services"
	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/views"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type authPageProps struct {
	Title string
	User  models.User
	Error string
	Name  string
	Email string
}

func (handler *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if err := views.Render(w, "login", authPageProps{Title: "Log in"}); err != nil {
		handler.logger.Error("rendering login page", "error", err)
	}
}

func (handler *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := handler.authService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			views.Render(w, "login", authPageProps{Title: "Log in", Error: "Invalid email or password", Email: email})
			return
		}
		renderError(w, handler.logger, "logging in", err)
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		renderError(w, handler.logger, "setting session", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (handler *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if err := views.Render(w, "register", authPageProps{Title: "Register"}); err != nil {
		handler.logger.Error("rendering register page", "error", err)
	}
}

func (handler *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	props := authPageProps{Title: "Register", Name: name, Email: email}
	if name == "" || email == "" || len(password) < 8 {
		w.WriteHeader(http.StatusBadRequest)
		props.Error = "Name, email and a password of at least 8 characters are required"
		views.Render(w, "register", props)
		return
	}

	user, err := handler.authService.Register(r.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			w.WriteHeader(http.StatusConflict)
			props.Error = "That email is already registered"
			views.Render(w, "register", props)
			return
		}
		renderError(w, handler.logger, "registering user", err)
		return
	}

	if err := handler.authService.SetSession(w, user.ID); err != nil {
		renderError(w, handler.logger, "setting session", err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (handler *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	handler.authService.ClearSession(w)
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}
