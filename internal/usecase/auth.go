package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderservice/internal/pkg/auth"
)

// AuthUseCase checks configured credentials and manages tokens.
type AuthUseCase struct {
	users  map[string]model.Credential
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase for the given credentials.
func NewAuthUseCase(users []model.Credential, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	byLogin := make(map[string]model.Credential, len(users))
	for _, u := range users {
		byLogin[u.Login] = u
	}
	return &AuthUseCase{users: byLogin, hasher: hasher, tokens: strategy}
}

// Authenticate validates credentials and returns the principal with its token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (model.Principal, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return model.Principal{}, "", domainErrors.ErrInvalidCredentials
	}

	cred, ok := u.users[login]
	if !ok {
		return model.Principal{}, "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(cred.PasswordHash, password); err != nil {
		return model.Principal{}, "", domainErrors.ErrInvalidCredentials
	}

	principal := model.Principal{UserID: cred.UserID, Role: cred.Role}
	token, err := u.tokens.IssueToken(principal)
	if err != nil {
		return model.Principal{}, "", err
	}

	return principal, token, nil
}

// ParseToken extracts principal from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
