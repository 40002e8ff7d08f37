package cqrs

import (
	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/models"
)

type CreateUserCommand struct {
	Username string
	Password string
	Role     models.Role
}

// DeleteUserCommand carries the acting principal explicitly so the service can
// attribute the audit log entry without consulting ambient session state.
type DeleteUserCommand struct {
	UserID int64
	Acting models.Principal
}

type UpdateUserRoleCommand struct {
	UserID int64
	Role   models.Role
	Acting models.Principal
}

type CreateAccountCommand struct {
	UserID int64
	Acting models.Principal
}

type DeleteAccountCommand struct {
	AccountID int64
	Acting    models.Principal
}

type DepositCommand struct {
	AccountID int64
	Amount    decimal.Decimal
}

type WithdrawCommand struct {
	AccountID int64
	Amount    decimal.Decimal
}

type CreateTransactionCommand struct {
	AccountID int64
	Amount    decimal.Decimal
	Type      models.TransactionType
	Acting    models.Principal
}

type LoginCommand struct {
	Username string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}
