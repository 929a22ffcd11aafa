package ports

import (
	"context"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Bio         string
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Username    *string
	Email       *string
	DisplayName *string
	Bio         *string
}

// UserService defines account use cases.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes the account and cascades to its recipes.
	Delete(ctx context.Context, id string) error
}

// CredentialHasher is the opaque credential collaborator: the core stores and
// compares hashes without knowing the algorithm.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Verify(candidate, stored string) bool
}
