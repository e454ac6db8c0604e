package services

import (
	"context"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Save records a signed-in user's profile. Roles are never taken from the client.
func (s *UserService) Save(ctx context.Context, u *models.User) (*mongo.UpdateResult, error) {
	u.Role = ""
	res, err := s.users.Upsert(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return res, nil
}

// IsAdmin looks up email and applies the admin role gate. An unknown email is not an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("look up user: %w", err)
	}
	return IsAdmin(user), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) PromoteAdmin(ctx context.Context, hexID string) (*mongo.UpdateResult, error) {
	id, err := parseID("user", hexID)
	if err != nil {
		return nil, err
	}
	res, err := s.users.PromoteAdmin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}
	return res, nil
}
