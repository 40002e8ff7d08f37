package query

import (
	"context"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// LogQueryService reads the audit trail. Route-level guards restrict it to
// administrators.
type LogQueryService struct {
	store repository.Store
}

func NewLogQueryService(store repository.Store) *LogQueryService {
	return &LogQueryService{store: store}
}

// ListLogs returns all audit rows, most recent first.
func (s *LogQueryService) ListLogs(ctx context.Context, q cqrs.ListLogsQuery) ([]models.LogView, error) {
	return s.store.View().Logs.List(ctx)
}

// ListUserLogs returns one user's audit rows, most recent first.
func (s *LogQueryService) ListUserLogs(ctx context.Context, q cqrs.ListUserLogsQuery) ([]models.LogView, error) {
	return s.store.View().Logs.ListByUserID(ctx, q.UserID)
}
