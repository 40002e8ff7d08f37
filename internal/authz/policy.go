// Package authz is the single authorization policy consulted by both the
// routing middleware and the service layer. All role and ownership decisions
// go through these capability checks rather than ad-hoc string comparisons.
package authz

import "github.com/nullsec0x/securebank/internal/models"

// IsAdmin reports whether the principal holds the administrator role.
func IsAdmin(p models.Principal) bool {
	return p.Role == models.RoleAdmin
}

// OwnsAccount reports whether the principal is the owner of the account.
func OwnsAccount(p models.Principal, ownerID int64) bool {
	return p.UserID == ownerID
}

// CanAccessAccount allows owners and admins to read an account and its ledger.
func CanAccessAccount(p models.Principal, ownerID int64) bool {
	return IsAdmin(p) || OwnsAccount(p, ownerID)
}

// CanDeleteAccount mirrors the caller-side check before account deletion:
// a user may delete their own account, an admin may delete anyone's.
func CanDeleteAccount(p models.Principal, ownerID int64) bool {
	return IsAdmin(p) || OwnsAccount(p, ownerID)
}

// CanAccessUser allows a user to read their own record and admins to read any.
func CanAccessUser(p models.Principal, userID int64) bool {
	return IsAdmin(p) || p.UserID == userID
}
