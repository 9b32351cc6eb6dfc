package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaaaandreiii/Habit-Tracker-Web-App/internal/models"
	"github.com/google/uuid"
)

type JournalRepository interface {
	FindRecent(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error)
	Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
}

type SQLiteJournalRepository struct {
	database *sql.DB
}

func NewJournalRepository(database *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{database: database}
}

func (repository *SQLiteJournalRepository) FindRecent(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, date, title, content, tags, created_at
		FROM journal_entries WHERE user_id = ? ORDER BY date DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding journal entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var entry models.JournalEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Date, &entry.Title, &entry.Content, &entry.Tags, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Create inserts the entry and its habit links in one transaction.
func (repository *SQLiteJournalRepository) Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	if entry.Date.IsZero() {
		entry.Date = entry.CreatedAt
	}

	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(ctx,
		"INSERT INTO journal_entries (id, user_id, date, title, content, tags, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.UserID, entry.Date, entry.Title, entry.Content, entry.Tags, entry.CreatedAt,
	); err != nil {
		return models.JournalEntry{}, fmt.Errorf("creating journal entry: %w", err)
	}

	for _, habitID := range entry.HabitIDs {
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO journal_entry_habits (journal_entry_id, habit_id) VALUES (?, ?)",
			entry.ID, habitID,
		); err != nil {
			return models.JournalEntry{}, fmt.Errorf("linking journal entry habit: %w", err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return models.JournalEntry{}, fmt.Errorf("committing journal entry: %w", err)
	}
	return entry, nil
}
