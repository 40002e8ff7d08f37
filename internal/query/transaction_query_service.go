package query

import (
	"context"

	"github.com/nullsec0x/securebank/internal/authz"
	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

type TransactionQueryService struct {
	store repository.Store
}

func NewTransactionQueryService(store repository.Store) *TransactionQueryService {
	return &TransactionQueryService{store: store}
}

// ListAccountTransactions returns an account's ledger, most recent first.
// Owners and admins may read it.
func (s *TransactionQueryService) ListAccountTransactions(ctx context.Context, q cqrs.ListAccountTransactionsQuery) ([]models.TransactionView, error) {
	account, err := s.store.View().Accounts.GetByID(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessAccount(q.Acting, account.UserID) {
		return nil, models.ErrOwnershipViolation
	}
	return s.store.View().Transactions.ListByAccountID(ctx, account.ID)
}

// ListTransactions returns the acting user's ledger across all owned
// accounts, most recent first; admins see every transaction.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	if authz.IsAdmin(q.Acting) {
		return s.store.View().Transactions.List(ctx)
	}
	return s.store.View().Transactions.ListByUserID(ctx, q.Acting.UserID)
}
