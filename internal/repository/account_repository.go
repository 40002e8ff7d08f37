package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/models"
)

// accountRepository persists accounts in PostgreSQL.
type accountRepository struct {
	q DBTX
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (number, user_id, balance, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.q.QueryRowContext(ctx, query,
		account.Number, account.UserID, account.Balance, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, number, user_id, balance, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanAccount(r.q.QueryRowContext(ctx, query, id))
}

// GetForUpdate takes a row lock so concurrent mutations to the same balance
// serialise inside their units of work.
func (r *accountRepository) GetForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, number, user_id, balance, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanAccount(r.q.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	query := `
		SELECT id, number, user_id, balance, created_at
		FROM accounts
		WHERE number = $1
	`
	return r.scanAccount(r.q.QueryRowContext(ctx, query, number))
}

func (r *accountRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.Number, &account.UserID, &account.Balance, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE number = $1)`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

func (r *accountRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `
		SELECT id, number, user_id, balance, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, number, user_id, balance, created_at
		FROM accounts
		ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func collectAccounts(rows *sql.Rows) ([]models.Account, error) {
	defer rows.Close()
	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Number, &account.UserID, &account.Balance, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE accounts SET balance = $2 WHERE id = $1`, id, balance,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return requireRow(result)
}

func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(result)
}
