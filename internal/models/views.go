package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserView is the read-optimised projection of a user.
// It never exposes PasswordHash.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// AccountView is the read-optimised projection of an account.
// UserID is populated for ownership checks but never serialised to the API response.
type AccountView struct {
	ID        int64           `json:"id"`
	Number    string          `json:"accountNumber"`
	UserID    int64           `json:"-"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdTimestamp"`
}

// TransactionView is the read-optimised projection of a ledger entry.
type TransactionView struct {
	ID            int64           `json:"id"`
	AccountID     int64           `json:"-"`
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
}

// LogView is the read-optimised projection of an audit log row.
type LogView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdTimestamp"`
}
