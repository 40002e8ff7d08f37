package query

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
	"github.com/nullsec0x/securebank/internal/repository"
	"github.com/nullsec0x/securebank/internal/utils"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

// Claims is the JWT payload.
type Claims struct {
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthQueryService handles login and token refresh. There's no command service
// for auth because these operations don't mutate application state.
type AuthQueryService struct {
	store repository.Store
}

func NewAuthQueryService(store repository.Store) *AuthQueryService {
	return &AuthQueryService{store: store}
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (string, error) {
	user, err := s.store.View().Users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", fmt.Errorf("invalid credentials")
	}
	return s.generateToken(user)
}

func (s *AuthQueryService) RefreshToken(ctx context.Context, cmd cqrs.RefreshTokenCommand) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cmd.Token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	// Re-read the user so a role change or deletion takes effect on refresh.
	user, err := s.store.View().Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid token")
	}
	return s.generateToken(user)
}

func (s *AuthQueryService) generateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
