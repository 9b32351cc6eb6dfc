package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const dateInputFormat = "2006-01-02"

// parseDateOr parses a yyyy-mm-dd form value, falling back to the given
// default when the value is empty or malformed.
func parseDateOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseInLocation(dateInputFormat, value, time.Local)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloatPtr(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseFloatOr(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntPtr(value string) *int {
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func renderError(w http.ResponseWriter, logger *slog.Logger, message string, err error) {
	logger.Error(message, "error", err)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}
