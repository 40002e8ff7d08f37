package models

import "errors"

// Domain failure kinds. Every service operation either succeeds or fails with
// exactly one of these; handlers translate them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNonZeroBalance     = errors.New("balance is not zero")
	ErrProtectedRole      = errors.New("cannot delete ADMIN users")
	ErrOwnershipViolation = errors.New("not the owner of this account")
)
