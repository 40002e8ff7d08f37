package query

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// fakeStore is a read-only in-memory repository.Store seeded directly by the
// tests. The query side never mutates, so the write methods are stubs.
type fakeStore struct {
	users        []models.User
	accounts     []models.Account
	transactions []models.TransactionView
	logs         []models.LogView
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(s.View())
}

func (s *fakeStore) View() repository.UnitOfWork {
	return repository.UnitOfWork{
		Users:        &fakeUsers{store: s},
		Accounts:     &fakeAccounts{store: s},
		Transactions: &fakeTransactions{store: s},
		Logs:         &fakeLogs{store: s},
	}
}

type fakeUsers struct {
	store *fakeStore
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.store.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.store.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.store.users...), nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	for i := range f.store.users {
		if f.store.users[i].ID == id {
			f.store.users[i].Role = role
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) error {
	for i := range f.store.users {
		if f.store.users[i].ID == id {
			f.store.users = append(f.store.users[:i], f.store.users[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeAccounts struct {
	store *fakeStore
}

func (f *fakeAccounts) Create(ctx context.Context, account *models.Account) error { return nil }

func (f *fakeAccounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	for _, account := range f.store.accounts {
		if account.ID == id {
			a := account
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAccounts) GetForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeAccounts) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	for _, account := range f.store.accounts {
		if account.Number == number {
			a := account
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAccounts) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	_, err := f.GetByNumber(ctx, number)
	return err == nil, nil
}

func (f *fakeAccounts) ListByUserID(ctx context.Context, userID int64) ([]models.Account, error) {
	var accounts []models.Account
	for _, account := range f.store.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (f *fakeAccounts) List(ctx context.Context) ([]models.Account, error) {
	return append([]models.Account(nil), f.store.accounts...), nil
}

func (f *fakeAccounts) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	return nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id int64) error { return nil }

type fakeTransactions struct {
	store *fakeStore
}

func (f *fakeTransactions) Create(ctx context.Context, transaction *models.Transaction) error {
	return nil
}

func (f *fakeTransactions) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error) {
	var views []models.TransactionView
	for _, view := range f.store.transactions {
		if view.AccountID == accountID {
			views = append(views, view)
		}
	}
	sortNewestFirst(views)
	return views, nil
}

func (f *fakeTransactions) ListByUserID(ctx context.Context, userID int64) ([]models.TransactionView, error) {
	owned := map[int64]bool{}
	for _, account := range f.store.accounts {
		if account.UserID == userID {
			owned[account.ID] = true
		}
	}
	var views []models.TransactionView
	for _, view := range f.store.transactions {
		if owned[view.AccountID] {
			views = append(views, view)
		}
	}
	sortNewestFirst(views)
	return views, nil
}

func (f *fakeTransactions) List(ctx context.Context) ([]models.TransactionView, error) {
	views := append([]models.TransactionView(nil), f.store.transactions...)
	sortNewestFirst(views)
	return views, nil
}

func (f *fakeTransactions) DeleteByAccountID(ctx context.Context, accountID int64) error { return nil }

func sortNewestFirst(views []models.TransactionView) {
	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID > views[j].ID
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}

type fakeLogs struct {
	store *fakeStore
}

func (f *fakeLogs) Create(ctx context.Context, entry *models.Log) error { return nil }

func (f *fakeLogs) List(ctx context.Context) ([]models.LogView, error) {
	return append([]models.LogView(nil), f.store.logs...), nil
}

func (f *fakeLogs) ListByUserID(ctx context.Context, userID int64) ([]models.LogView, error) {
	return append([]models.LogView(nil), f.store.logs...), nil
}

// fakeUserViews serves user views straight from the store, bypassing Redis.
type fakeUserViews struct {
	store *fakeStore
}

func (f *fakeUserViews) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	user, err := (&fakeUsers{store: f.store}).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return repository.UserToView(user), nil
}

// fakeAccountViews serves account views straight from the store.
type fakeAccountViews struct {
	store *fakeStore
}

func (f *fakeAccountViews) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	account, err := (&fakeAccounts{store: f.store}).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return repository.AccountToView(account), nil
}
