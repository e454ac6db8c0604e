package services

import (
	"context"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
)

// TokenSigner issues bearer tokens bound to an email.
type TokenSigner interface {
	Issue(email string) (string, error)
}

type AuthService struct {
	users  UserStore
	signer TokenSigner
}

func NewAuthService(users UserStore, signer TokenSigner) *AuthService {
	return &AuthService{users: users, signer: signer}
}

// IssueToken signs a token for email only if a user with that email exists.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperrors.Unauthorized("unauthorized")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return "", apperrors.Unauthorized("unauthorized")
	}

	token, err := s.signer.Issue(email)
	if err != nil {
		return "", apperrors.Internal("could not sign token", err)
	}
	return token, nil
}
