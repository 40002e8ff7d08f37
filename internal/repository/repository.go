package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/models"
)

// UserStore holds user records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
}

// AccountStore holds bank accounts.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	// GetForUpdate locks the account row for the remainder of the unit of
	// work so concurrent balance mutations serialise at the store.
	GetForUpdate(ctx context.Context, id int64) (*models.Account, error)
	GetByNumber(ctx context.Context, number string) (*models.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// TransactionStore is the append-only ledger of deposit/withdraw events.
type TransactionStore interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.TransactionView, error)
	List(ctx context.Context) ([]models.TransactionView, error)
	DeleteByAccountID(ctx context.Context, accountID int64) error
}

// LogStore is the append-only audit trail of user actions.
type LogStore interface {
	Create(ctx context.Context, entry *models.Log) error
	List(ctx context.Context) ([]models.LogView, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.LogView, error)
}

// UnitOfWork bundles the entity stores bound to a single database handle:
// either one transaction (inside Store.WithTx, where all mutations commit or
// roll back together) or the bare connection pool for reads.
type UnitOfWork struct {
	Users        UserStore
	Accounts     AccountStore
	Transactions TransactionStore
	Logs         LogStore
}

// Store is the relational store's transaction facility. Services depend on
// this interface; tests substitute an in-memory implementation.
type Store interface {
	// WithTx runs fn inside one unit of work. If fn returns an error the
	// whole unit rolls back and the error is returned unchanged.
	WithTx(ctx context.Context, fn func(uow UnitOfWork) error) error
	// View returns a unit of work over the bare connection, for reads that
	// need no transaction.
	View() UnitOfWork
}
