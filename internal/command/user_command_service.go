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
	"github.com/nullsec0x/securebank/internal/utils"
)

// UserCommandService manages the user lifecycle: creation, deletion under the
// admin-protection and zero-balance rules, and role updates.
type UserCommandService struct {
	store        repository.Store
	userViews    userViewCache
	accountViews accountViewCache
	publisher    eventPublisher
}

func NewUserCommandService(store repository.Store, userViews userViewCache, accountViews accountViewCache, publisher eventPublisher) *UserCommandService {
	return &UserCommandService{
		store:        store,
		userViews:    userViews,
		accountViews: accountViews,
		publisher:    publisher,
	}
}

func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     cmd.Username,
		PasswordHash: passwordHash,
		Role:         cmd.Role,
		CreatedAt:    time.Now().UTC(),
	}
	err = s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		taken, err := uow.Users.ExistsByUsername(ctx, cmd.Username)
		if err != nil {
			return err
		}
		if taken {
			return models.ErrDuplicateUsername
		}
		return uow.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.userViews.CacheUserView(ctx, repository.UserToView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return user, nil
}

// DeleteUser removes a user, their accounts and those accounts' ledgers in one
// unit of work, with explicit ordered deletes. ADMIN users can never be
// deleted; neither can a user while any owned account holds a balance. The
// audit log step is skipped when no acting principal is resolvable.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	var (
		user     *models.User
		accounts []models.Account
	)
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		user, err = uow.Users.GetByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if user.Role == models.RoleAdmin {
			return models.ErrProtectedRole
		}

		accounts, err = uow.Accounts.ListByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, account := range accounts {
			if account.Balance.IsPositive() {
				return models.ErrNonZeroBalance
			}
		}

		for _, account := range accounts {
			if err := uow.Transactions.DeleteByAccountID(ctx, account.ID); err != nil {
				return err
			}
			if err := uow.Accounts.Delete(ctx, account.ID); err != nil {
				return err
			}
		}
		if err := uow.Users.Delete(ctx, user.ID); err != nil {
			return err
		}

		if cmd.Acting.Resolved() {
			return uow.Logs.Create(ctx, &models.Log{
				UserID:    cmd.Acting.UserID,
				Username:  cmd.Acting.Username,
				Action:    fmt.Sprintf("Admin %s deleted user: %s", cmd.Acting.Username, user.Username),
				CreatedAt: time.Now().UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.userViews.InvalidateUserView(ctx, user.ID)
	for _, account := range accounts {
		s.accountViews.InvalidateAccountView(ctx, account.ID)
	}
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserDeleted, events.UserDeletedEvent{
		UserID:   user.ID,
		Username: user.Username,
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return nil
}

// UpdateUserRole overwrites the user's role. Any transition is allowed.
func (s *UserCommandService) UpdateUserRole(ctx context.Context, cmd cqrs.UpdateUserRoleCommand) (*models.User, error) {
	var user *models.User
	err := s.store.WithTx(ctx, func(uow repository.UnitOfWork) error {
		var err error
		user, err = uow.Users.GetByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		user.Role = cmd.Role
		return uow.Users.UpdateRole(ctx, user.ID, cmd.Role)
	})
	if err != nil {
		return nil, err
	}

	s.userViews.CacheUserView(ctx, repository.UserToView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRoleUpdated, events.UserRoleUpdatedEvent{
		UserID: user.ID,
		Role:   string(user.Role),
	}); err != nil {
		log.Printf("Failed to publish user.role_updated event: %v", err)
	}
	return user, nil
}
