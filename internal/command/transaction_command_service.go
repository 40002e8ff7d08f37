package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/events"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// TransactionCommandService turns a transaction request into a balance
// mutation plus a ledger entry within one unit of work.
type TransactionCommandService struct {
	store     repository.Store
	views     accountViewCache
	publisher eventPublisher
}

func NewTransactionCommandService(store repository.Store, views accountViewCache, publisher eventPublisher) *TransactionCommandService {
	return &TransactionCommandService{store: store, views: views, publisher: publisher}
}

// CreateTransaction applies the deposit or withdrawal and appends the ledger
// entry. If either step fails, neither is retained. A successful transaction
// also appends an audit log row attributed to the acting principal.
func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if !cmd.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	var (
		transaction *models.Transaction
		account     *models.Account
	)
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		switch cmd.Type {
		case models.TypeDeposit:
			account, err = applyDeposit(ctx, uow, cmd.AccountID, cmd.Amount)
		case models.TypeWithdraw:
			account, err = applyWithdraw(ctx, uow, cmd.AccountID, cmd.Amount)
		default:
			return fmt.Errorf("unsupported transaction type %q", cmd.Type)
		}
		if err != nil {
			return err
		}

		transaction = &models.Transaction{
			AccountID: account.ID,
			Amount:    cmd.Amount,
			Type:      cmd.Type,
			CreatedAt: time.Now().UTC(),
		}
		if err := uow.Transactions.Create(ctx, transaction); err != nil {
			return err
		}

		if cmd.Acting.Resolved() {
			return uow.Logs.Create(ctx, &models.Log{
				UserID:    cmd.Acting.UserID,
				Username:  cmd.Acting.Username,
				Action:    fmt.Sprintf("%s performed %s of MAD %s", cmd.Acting.Username, cmd.Type, cmd.Amount.StringFixed(2)),
				CreatedAt: time.Now().UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.views.CacheAccountView(ctx, repository.AccountToView(account))
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		AccountID:     transaction.AccountID,
		Amount:        transaction.Amount,
		Type:          string(transaction.Type),
	}); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}
	return transaction, nil
}
