package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nullsec0x/securebank/internal/models"
)

// logRepository persists audit log rows in PostgreSQL. Rows are append-only.
// The acting username is denormalised into the row so the audit trail
// survives deletion of the user it is attributed to.
type logRepository struct {
	q DBTX
}

func (r *logRepository) Create(ctx context.Context, entry *models.Log) error {
	query := `
		INSERT INTO logs (user_id, username, action, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.q.QueryRowContext(ctx, query,
		entry.UserID, entry.Username, entry.Action, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}
	return nil
}

func (r *logRepository) List(ctx context.Context) ([]models.LogView, error) {
	query := `
		SELECT id, username, action, created_at
		FROM logs
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return collectLogs(rows)
}

func (r *logRepository) ListByUserID(ctx context.Context, userID int64) ([]models.LogView, error) {
	query := `
		SELECT id, username, action, created_at
		FROM logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]models.LogView, error) {
	defer rows.Close()
	var views []models.LogView
	for rows.Next() {
		var view models.LogView
		if err := rows.Scan(&view.ID, &view.Username, &view.Action, &view.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}
