package utils

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accountNumberPrefix = "ACC"

// GenerateAccountNumber generates a candidate account number: the fixed
// prefix plus 8 uppercase hex characters. Callers retry until no existing
// account shares the number.
func GenerateAccountNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return accountNumberPrefix + suffix
}

// ValidateAccountNumber validates the account number format.
func ValidateAccountNumber(number string) bool {
	return len(number) == len(accountNumberPrefix)+8 && strings.HasPrefix(number, accountNumberPrefix)
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
