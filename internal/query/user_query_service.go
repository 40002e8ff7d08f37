package query

import (
	"context"

	"github.com/nullsec0x/securebank/internal/authz"
	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
)

// userViewReader is the slice of UserReadRepository the query side uses.
type userViewReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserView, error)
}

type UserQueryService struct {
	store repository.Store
	views userViewReader
}

func NewUserQueryService(store repository.Store, views userViewReader) *UserQueryService {
	return &UserQueryService{store: store, views: views}
}

// GetUser fetches a single user view. Users may read themselves; admins may
// read anyone.
func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
	if !authz.CanAccessUser(q.Acting, q.UserID) {
		return nil, models.ErrOwnershipViolation
	}
	return s.views.GetByID(ctx, q.UserID)
}

func (s *UserQueryService) ListUsers(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error) {
	users, err := s.store.View().Users.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, len(users))
	for i := range users {
		views[i] = *repository.UserToView(&users[i])
	}
	return views, nil
}
