package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	UserCreated     = "user.created"
	UserDeleted     = "user.deleted"
	UserRoleUpdated = "user.role_updated"

	AccountCreated = "account.created"
	AccountDeleted = "account.deleted"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// User events
type UserCreatedEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UserDeletedEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type UserRoleUpdatedEvent struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        int64  `json:"userId"`
}

type AccountDeletedEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	UserID        int64  `json:"userId"`
}

// Transaction events
type TransactionCreatedEvent struct {
	TransactionID int64           `json:"transactionId"`
	AccountID     int64           `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}

type BalanceUpdatedEvent struct {
	AccountID  int64           `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}
