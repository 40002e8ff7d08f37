package command

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// fakeStore is an in-memory repository.Store. WithTx snapshots the state
// before running fn and restores it when fn fails, mirroring the rollback
// semantics the real store gets from PostgreSQL.
type fakeStore struct {
	state fakeState
}

type fakeState struct {
	users        map[int64]models.User
	accounts     map[int64]models.Account
	transactions map[int64]models.Transaction
	logs         []models.Log
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: fakeState{
		users:        map[int64]models.User{},
		accounts:     map[int64]models.Account{},
		transactions: map[int64]models.Transaction{},
	}}
}

func (s *fakeState) clone() fakeState {
	out := fakeState{
		users:        make(map[int64]models.User, len(s.users)),
		accounts:     make(map[int64]models.Account, len(s.accounts)),
		transactions: make(map[int64]models.Transaction, len(s.transactions)),
		logs:         append([]models.Log(nil), s.logs...),
		nextID:       s.nextID,
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.accounts {
		out.accounts[k] = v
	}
	for k, v := range s.transactions {
		out.transactions[k] = v
	}
	return out
}

func (s *fakeState) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	snapshot := s.state.clone()
	if err := fn(s.uow()); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *fakeStore) View() repository.UnitOfWork {
	return s.uow()
}

func (s *fakeStore) uow() repository.UnitOfWork {
	return repository.UnitOfWork{
		Users:        &fakeUsers{state: &s.state},
		Accounts:     &fakeAccounts{state: &s.state},
		Transactions: &fakeTransactions{state: &s.state},
		Logs:         &fakeLogs{state: &s.state},
	}
}

// addUser seeds a user directly into the store.
func (s *fakeStore) addUser(username string, role models.Role) models.User {
	user := models.User{
		ID:           s.state.id(),
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.state.users[user.ID] = user
	return user
}

// addAccount seeds an account directly into the store.
func (s *fakeStore) addAccount(userID int64, number string, balance decimal.Decimal) models.Account {
	account := models.Account{
		ID:        s.state.id(),
		Number:    number,
		UserID:    userID,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	s.state.accounts[account.ID] = account
	return account
}

// ---- UserStore ----

type fakeUsers struct {
	state *fakeState
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.state.users {
		if existing.Username == user.Username {
			return models.ErrDuplicateUsername
		}
	}
	user.ID = f.state.id()
	f.state.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.state.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.state.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.state.users))
	for _, user := range f.state.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	user, ok := f.state.users[id]
	if !ok {
		return models.ErrNotFound
	}
	user.Role = role
	f.state.users[id] = user
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) error {
	if _, ok := f.state.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.state.users, id)
	return nil
}

// ---- AccountStore ----

type fakeAccounts struct {
	state *fakeState
}

func (f *fakeAccounts) Create(ctx context.Context, account *models.Account) error {
	account.ID = f.state.id()
	f.state.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account, ok := f.state.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &account, nil
}

func (f *fakeAccounts) GetForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeAccounts) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	for _, account := range f.state.accounts {
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
	for _, account := range f.state.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (f *fakeAccounts) List(ctx context.Context) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(f.state.accounts))
	for _, account := range f.state.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (f *fakeAccounts) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	account, ok := f.state.accounts[id]
	if !ok {
		return models.ErrNotFound
	}
	account.Balance = balance
	f.state.accounts[id] = account
	return nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id int64) error {
	if _, ok := f.state.accounts[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.state.accounts, id)
	return nil
}

// ---- TransactionStore ----

type fakeTransactions struct {
	state *fakeState
}

func (f *fakeTransactions) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = f.state.id()
	f.state.transactions[transaction.ID] = *transaction
	return nil
}

func (f *fakeTransactions) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error) {
	return f.collect(func(t models.Transaction) bool { return t.AccountID == accountID }), nil
}

func (f *fakeTransactions) ListByUserID(ctx context.Context, userID int64) ([]models.TransactionView, error) {
	return f.collect(func(t models.Transaction) bool {
		account, ok := f.state.accounts[t.AccountID]
		return ok && account.UserID == userID
	}), nil
}

func (f *fakeTransactions) List(ctx context.Context) ([]models.TransactionView, error) {
	return f.collect(func(models.Transaction) bool { return true }), nil
}

func (f *fakeTransactions) collect(match func(models.Transaction) bool) []models.TransactionView {
	var views []models.TransactionView
	for _, t := range f.state.transactions {
		if !match(t) {
			continue
		}
		views = append(views, models.TransactionView{
			ID:            t.ID,
			AccountID:     t.AccountID,
			AccountNumber: f.state.accounts[t.AccountID].Number,
			Amount:        t.Amount,
			Type:          t.Type,
			CreatedAt:     t.CreatedAt,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID > views[j].ID
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

func (f *fakeTransactions) DeleteByAccountID(ctx context.Context, accountID int64) error {
	for id, t := range f.state.transactions {
		if t.AccountID == accountID {
			delete(f.state.transactions, id)
		}
	}
	return nil
}

// ---- LogStore ----

type fakeLogs struct {
	state *fakeState
}

func (f *fakeLogs) Create(ctx context.Context, entry *models.Log) error {
	entry.ID = f.state.id()
	f.state.logs = append(f.state.logs, *entry)
	return nil
}

func (f *fakeLogs) List(ctx context.Context) ([]models.LogView, error) {
	views := make([]models.LogView, 0, len(f.state.logs))
	for _, l := range f.state.logs {
		views = append(views, models.LogView{ID: l.ID, Username: l.Username, Action: l.Action, CreatedAt: l.CreatedAt})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID > views[j].ID })
	return views, nil
}

func (f *fakeLogs) ListByUserID(ctx context.Context, userID int64) ([]models.LogView, error) {
	var views []models.LogView
	for _, l := range f.state.logs {
		if l.UserID == userID {
			views = append(views, models.LogView{ID: l.ID, Username: l.Username, Action: l.Action, CreatedAt: l.CreatedAt})
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID > views[j].ID })
	return views, nil
}

// ---- collaborators ----

type nopAccountViews struct{}

func (nopAccountViews) CacheAccountView(context.Context, *models.AccountView) {}
func (nopAccountViews) InvalidateAccountView(context.Context, int64)         {}

type nopUserViews struct{}

func (nopUserViews) CacheUserView(context.Context, *models.UserView) {}
func (nopUserViews) InvalidateUserView(context.Context, int64)       {}

// capturePublisher records published event types.
type capturePublisher struct {
	published []string
}

func (p *capturePublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.published = append(p.published, eventType)
	return nil
}
