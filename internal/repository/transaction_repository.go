package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nullsec0x/securebank/internal/models"
)

// transactionRepository persists ledger entries in PostgreSQL. Entries are
// append-only: there is no update, and deletion happens only as part of an
// account's cascade.
type transactionRepository struct {
	q DBTX
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, amount, type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.q.QueryRowContext(ctx, query,
		transaction.AccountID, transaction.Amount, transaction.Type, transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error) {
	query := `
		SELECT t.id, t.account_id, a.number, t.amount, t.type, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.account_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`
	rows, err := r.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *transactionRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TransactionView, error) {
	query := `
		SELECT t.id, t.account_id, a.number, t.amount, t.type, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *transactionRepository) List(ctx context.Context) ([]models.TransactionView, error) {
	query := `
		SELECT t.id, t.account_id, a.number, t.amount, t.type, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		ORDER BY t.created_at DESC, t.id DESC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]models.TransactionView, error) {
	defer rows.Close()
	var views []models.TransactionView
	for rows.Next() {
		var view models.TransactionView
		if err := rows.Scan(&view.ID, &view.AccountID, &view.AccountNumber, &view.Amount, &view.Type, &view.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *transactionRepository) DeleteByAccountID(ctx context.Context, accountID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}
