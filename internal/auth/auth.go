package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

type Authenticator struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthenticator(users repository.UserRepository, secret string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Login verifies the bcrypt hash of the user and issues a signed token
// carrying the identity the API extracts on every request.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(a.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Verify parses a bearer token back into an Identity.
func (a *Authenticator) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return domain.Identity{}, errors.New("invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return domain.Identity{}, errors.New("invalid token claims")
	}
	return domain.Identity{ID: int64(userID), Role: domain.Role(role)}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
