package repository

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/redis"
)

// AccountReadRepository serves account point lookups Redis-first, falling back
// to PostgreSQL on a miss and warming the cache.
type AccountReadRepository struct {
	store Store
	cache *redis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(store Store, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		store: store,
		cache: redis.NewViewCache[models.AccountView](redisClient, "account:view:", 0),
	}
}

// GetByID returns an AccountView from Redis first, then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	if view, ok := r.cache.Get(ctx, id); ok {
		return view, nil
	}

	account, err := r.store.View().Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := AccountToView(account)
	r.CacheAccountView(ctx, view)
	return view, nil
}

// CacheAccountView stores or refreshes the Redis read model for an account.
// Called by the command side after every balance mutation.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, view.ID, view)
}

// InvalidateAccountView removes the Redis read model entry for a deleted account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, accountID int64) {
	r.cache.Delete(ctx, accountID)
}

// RefreshAccountView reloads the account from PostgreSQL and rewrites the
// cached view. Used by the stream subscriber after ledger events.
func (r *AccountReadRepository) RefreshAccountView(ctx context.Context, accountID int64) error {
	account, err := r.store.View().Accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	r.CacheAccountView(ctx, AccountToView(account))
	return nil
}

// AccountToView converts the PostgreSQL write model to the Redis read view model.
func AccountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:        a.ID,
		Number:    a.Number,
		UserID:    a.UserID,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
