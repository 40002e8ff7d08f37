package query

import (
	"context"

	"github.com/nullsec0x/securebank/internal/authz"
	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// accountViewReader is the slice of AccountReadRepository the query side uses.
type accountViewReader interface {
	GetByID(ctx context.Context, id int64) (*models.AccountView, error)
}

type AccountQueryService struct {
	store repository.Store
	views accountViewReader
}

func NewAccountQueryService(store repository.Store, views accountViewReader) *AccountQueryService {
	return &AccountQueryService{store: store, views: views}
}

// GetAccount fetches a single account view. Owners and admins may read it.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	view, err := s.views.GetByID(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessAccount(q.Acting, view.UserID) {
		return nil, models.ErrOwnershipViolation
	}
	return view, nil
}

// GetAccountByNumber is a point lookup by account number, same access rule.
func (s *AccountQueryService) GetAccountByNumber(ctx context.Context, q cqrs.GetAccountByNumberQuery) (*models.AccountView, error) {
	account, err := s.store.View().Accounts.GetByNumber(ctx, q.Number)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessAccount(q.Acting, account.UserID) {
		return nil, models.ErrOwnershipViolation
	}
	return repository.AccountToView(account), nil
}

// ListAccounts returns the acting user's accounts; admins see every account.
func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	var (
		accounts []models.Account
		err      error
	)
	if authz.IsAdmin(q.Acting) {
		accounts, err = s.store.View().Accounts.List(ctx)
	} else {
		accounts, err = s.store.View().Accounts.ListByUserID(ctx, q.Acting.UserID)
	}
	if err != nil {
		return nil, err
	}
	views := make([]models.AccountView, len(accounts))
	for i := range accounts {
		views[i] = *repository.AccountToView(&accounts[i])
	}
	return views, nil
}
