package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/nullsec0x/securebank/internal/events"
	"github.com/nullsec0x/securebank/internal/models"
)

// accountViewRefresher reloads or drops cached account views.
type accountViewRefresher interface {
	RefreshAccountView(ctx context.Context, accountID int64) error
	InvalidateAccountView(ctx context.Context, accountID int64)
}

// CacheSyncService keeps the Redis read model aligned with committed writes
// by consuming the domain event streams. Mutations already write through the
// cache; this consumer repairs views that were updated elsewhere or raced a
// concurrent write.
type CacheSyncService struct {
	views accountViewRefresher
}

func NewCacheSyncService(views accountViewRefresher) *CacheSyncService {
	return &CacheSyncService{views: views}
}

// HandleTransactionEvent refreshes the account view after a ledger write.
func (s *CacheSyncService) HandleTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionCreated {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.TransactionCreatedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transaction.created event: %w", err)
	}
	if err := s.views.RefreshAccountView(ctx, data.AccountID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Account deleted since the event was published.
			s.views.InvalidateAccountView(ctx, data.AccountID)
			return nil
		}
		return err
	}
	log.Printf("Refreshed account view %d after %s", data.AccountID, data.Type)
	return nil
}

// HandleAccountEvent drops the cached view when an account is deleted.
func (s *CacheSyncService) HandleAccountEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.AccountDeleted {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.AccountDeletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal account.deleted event: %w", err)
	}
	s.views.InvalidateAccountView(ctx, data.AccountID)
	return nil
}
