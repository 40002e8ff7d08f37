package repository

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/redis"
)

// UserReadRepository serves user point lookups Redis-first, falling back to
// PostgreSQL on a miss and warming the cache.
type UserReadRepository struct {
	store Store
	cache *redis.ViewCache[models.UserView]
}

func NewUserReadRepository(store Store, redisClient *goredis.Client) *UserReadRepository {
	return &UserReadRepository{
		store: store,
		cache: redis.NewViewCache[models.UserView](redisClient, "user:view:", 0),
	}
}

// GetByID returns a UserView from Redis first, then PostgreSQL.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	if view, ok := r.cache.Get(ctx, id); ok {
		return view, nil
	}

	user, err := r.store.View().Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := UserToView(user)
	r.CacheUserView(ctx, view)
	return view, nil
}

// CacheUserView stores or refreshes the Redis read model for a user.
func (r *UserReadRepository) CacheUserView(ctx context.Context, view *models.UserView) {
	r.cache.Set(ctx, view.ID, view)
}

// InvalidateUserView removes the Redis read model entry for a deleted user.
func (r *UserReadRepository) InvalidateUserView(ctx context.Context, userID int64) {
	r.cache.Delete(ctx, userID)
}

// UserToView converts the write model to the read view model, dropping the
// password hash.
func UserToView(u *models.User) *models.UserView {
	return &models.UserView{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
