package ports

import (
	"context"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

// RecipeRepository defines persistence operations for recipes. All queries are
// scoped to the repository's environment partition.
//
// Owned mutations (Replace, Delete) filter by owner inside the query and do
// not distinguish "no such recipe" from "not yours": that discrimination is
// the ownership guard's job, where the richer error is cheap to produce.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) error
	// FindByID is owner-agnostic: reads are public. Returns (nil, nil) when
	// no recipe matches in this environment.
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	// List returns recipes in catalog order (see domain.SortRecipes). A nil
	// ownerID selects only seed recipes; a non-nil ownerID selects that
	// owner's recipes.
	List(ctx context.Context, ownerID *string) ([]*domain.Recipe, error)
	// Replace conditionally writes the full document, matching on id, owner,
	// and the version the caller read. It reports false when nothing matched,
	// whether because the recipe is missing, owned by someone else, or was
	// concurrently modified. On success the stored version is incremented.
	Replace(ctx context.Context, r *domain.Recipe) (bool, error)
	// Delete removes the recipe when it exists and is owned by ownerID.
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	// DeleteByOwner removes all recipes owned by ownerID (user cascade).
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
