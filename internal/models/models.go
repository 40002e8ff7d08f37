package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type TransactionType string

const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

type Account struct {
	ID        int64           `json:"id"`
	Number    string          `json:"accountNumber"`
	UserID    int64           `json:"-"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdTimestamp"`
}

type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"-"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"createdTimestamp"`
}

// Log is one audit trail row. Username is a copy of the acting principal's
// name taken at write time, so the row stays readable after that user is
// deleted.
type Log struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Principal is the identity of the authenticated user performing a request.
// Services that attribute audit log entries receive it explicitly from the
// transport layer instead of reading ambient session state.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

// Resolved reports whether an authenticated identity is attached. Commands
// that log skip the log step when the principal could not be resolved.
func (p Principal) Resolved() bool {
	return p.UserID != 0 && p.Username != ""
}
