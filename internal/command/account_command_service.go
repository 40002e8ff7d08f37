package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/events"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
	"github.com/nullsec0x/securebank/internal/utils"
)

// Account numbers are generated randomly and retried on collision; this bound
// only exists to turn a broken generator into an error instead of a spin.
const maxAccountNumberAttempts = 10

// AccountCommandService creates and deletes accounts and applies balance
// mutations under the non-negative balance invariant.
type AccountCommandService struct {
	store     repository.Store
	views     accountViewCache
	publisher eventPublisher
}

func NewAccountCommandService(store repository.Store, views accountViewCache, publisher eventPublisher) *AccountCommandService {
	return &AccountCommandService{store: store, views: views, publisher: publisher}
}

// CreateAccount opens a zero-balance account for the given user. The account
// number is regenerated until no existing account shares it.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	var account *models.Account
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		user, err := uow.Users.GetByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}

		number, err := freeAccountNumber(ctx, uow.Accounts)
		if err != nil {
			return err
		}

		account = &models.Account{
			Number:    number,
			UserID:    user.ID,
			Balance:   decimal.Zero,
			CreatedAt: time.Now().UTC(),
		}
		return uow.Accounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.views.CacheAccountView(ctx, repository.AccountToView(account))
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.Number,
		UserID:        account.UserID,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}

func freeAccountNumber(ctx context.Context, accounts repository.AccountStore) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number := utils.GenerateAccountNumber()
		taken, err := accounts.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique account number")
}

// Deposit adds the amount to the account balance. The amount is validated
// (> 0) at the transport layer.
func (s *AccountCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.Account, error) {
	var account *models.Account
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		account, err = applyDeposit(ctx, uow, cmd.AccountID, cmd.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.afterBalanceChange(ctx, account, cmd.Amount)
	return account, nil
}

// Withdraw subtracts the amount, failing with ErrInsufficientFunds when it
// exceeds the current balance. The balance is left untouched on failure.
func (s *AccountCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.Account, error) {
	var account *models.Account
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		account, err = applyWithdraw(ctx, uow, cmd.AccountID, cmd.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.afterBalanceChange(ctx, account, cmd.Amount.Neg())
	return account, nil
}

// DeleteAccount removes a zero-balance account and its ledger in one unit of
// work: transactions first, then the account, then the audit log row. The
// ownership check is the caller's concern; deletion is attributed to whoever
// is acting, which for admin-initiated deletions is the admin.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	var account *models.Account
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		account, err = uow.Accounts.GetByID(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if account.Balance.IsPositive() {
			return models.ErrNonZeroBalance
		}
		if err := uow.Transactions.DeleteByAccountID(ctx, account.ID); err != nil {
			return err
		}
		if err := uow.Accounts.Delete(ctx, account.ID); err != nil {
			return err
		}
		if cmd.Acting.Resolved() {
			return uow.Logs.Create(ctx, &models.Log{
				UserID:    cmd.Acting.UserID,
				Username:  cmd.Acting.Username,
				Action:    fmt.Sprintf("%s deleted account: %s", cmd.Acting.Username, account.Number),
				CreatedAt: time.Now().UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.views.InvalidateAccountView(ctx, account.ID)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID:     account.ID,
		AccountNumber: account.Number,
		UserID:        account.UserID,
	}); err != nil {
		log.Printf("Failed to publish account.deleted event: %v", err)
	}
	return nil
}

func (s *AccountCommandService) afterBalanceChange(ctx context.Context, account *models.Account, change decimal.Decimal) {
	s.views.CacheAccountView(ctx, repository.AccountToView(account))
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.ID,
		NewBalance: account.Balance,
		Change:     change,
	}); err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
}

// applyDeposit mutates the balance inside the caller's unit of work. The row
// is locked first so concurrent mutations to the same account serialise.
func applyDeposit(ctx context.Context, uow repository.UnitOfWork, accountID int64, amount decimal.Decimal) (*models.Account, error) {
	account, err := uow.Accounts.GetForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Balance = account.Balance.Add(amount)
	if err := uow.Accounts.UpdateBalance(ctx, account.ID, account.Balance); err != nil {
		return nil, err
	}
	return account, nil
}

// applyWithdraw mutates the balance inside the caller's unit of work,
// enforcing the non-negative balance invariant.
func applyWithdraw(ctx context.Context, uow repository.UnitOfWork, accountID int64, amount decimal.Decimal) (*models.Account, error) {
	account, err := uow.Accounts.GetForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, models.ErrInsufficientFunds
	}
	account.Balance = account.Balance.Sub(amount)
	if err := uow.Accounts.UpdateBalance(ctx, account.ID, account.Balance); err != nil {
		return nil, err
	}
	return account, nil
}
