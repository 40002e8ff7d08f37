package cqrs

import "github.com/nullsec0x/securebank/internal/models"

// ---------- User queries ----------

// GetUserQuery fetches a single user by ID, subject to the authz policy.
type GetUserQuery struct {
	UserID int64
	Acting models.Principal
}

type ListUsersQuery struct{}

// ---------- Account queries ----------

// GetAccountQuery fetches a single account; owners and admins may read it.
type GetAccountQuery struct {
	AccountID int64
	Acting    models.Principal
}

type GetAccountByNumberQuery struct {
	Number string
	Acting models.Principal
}

// ListAccountsQuery fetches the principal's accounts; admins see all.
type ListAccountsQuery struct {
	Acting models.Principal
}

// ---------- Transaction queries ----------

// ListAccountTransactionsQuery fetches an account's ledger, newest first.
type ListAccountTransactionsQuery struct {
	AccountID int64
	Acting    models.Principal
}

// ListTransactionsQuery fetches the principal's ledger across all owned
// accounts; admins see every transaction.
type ListTransactionsQuery struct {
	Acting models.Principal
}

// ---------- Log queries ----------

type ListLogsQuery struct{}

type ListUserLogsQuery struct {
	UserID int64
}
