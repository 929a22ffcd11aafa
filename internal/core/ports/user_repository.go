package ports

import (
	"context"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

// UserRepository defines persistence operations for users. All queries are
// scoped to the repository's environment partition. Lookups return (nil, nil)
// when no row matches: absence is an expected outcome, not an error.
type UserRepository interface {
	// Create inserts a new user. Username and email uniqueness are checked
	// independently within the environment so callers can tell which field
	// collided (domain.ErrDuplicateUsername / domain.ErrDuplicateEmail).
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername matches exactly and case-sensitively.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update replaces the stored document. Uniqueness of a changed username or
	// email is re-validated with the same duplicate errors as Create.
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user. Owned recipes are removed by the caller via
	// RecipeRepository.DeleteByOwner.
	Delete(ctx context.Context, id string) (bool, error)
}
