// Package command holds the write-side services. Every operation runs its
// mutations inside one unit of work: the balance change, the ledger append and
// the audit log row commit together or not at all.
package command

import (
	"context"

	"github.com/nullsec0x/securebank/internal/models"
)

// eventPublisher is the slice of events.Publisher the command side uses.
// Publishing is best-effort: failures are logged, never returned to callers.
type eventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// accountViewCache keeps the Redis account read model in step with mutations.
type accountViewCache interface {
	CacheAccountView(ctx context.Context, view *models.AccountView)
	InvalidateAccountView(ctx context.Context, accountID int64)
}

// userViewCache keeps the Redis user read model in step with mutations.
type userViewCache interface {
	CacheUserView(ctx context.Context, view *models.UserView)
	InvalidateUserView(ctx context.Context, userID int64)
}
