package ports

import (
	"context"
	"time"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

// CreateRecipeInput carries all data needed to create a new recipe.
type CreateRecipeInput struct {
	Name            string
	HeroIngredient  string
	CookTimeMinutes int
	Servings        int
	Ingredients     string
	Instructions    string
	PhotoRef        string
	// OwnerID is the authenticated creator. Empty creates a seed recipe,
	// which only fixture loaders do.
	OwnerID string
}

// UpdateRecipeInput is a partial update: nil fields are left untouched.
type UpdateRecipeInput struct {
	Name            *string
	HeroIngredient  *string
	CookTimeMinutes *int
	Servings        *int
	Ingredients     *string
	Instructions    *string
	PhotoRef        *string
}

// CookingLogInput is one cooking session to record. A zero Timestamp means
// "now".
type CookingLogInput struct {
	Timestamp time.Time
	Notes     string
	Rating    int
}

// RecipeService defines recipe use cases. Mutations take the acting user's id
// and run the ownership guard before touching the store.
type RecipeService interface {
	Create(ctx context.Context, in CreateRecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context, ownerID *string) ([]*domain.Recipe, error)
	Update(ctx context.Context, actorID, id string, in UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, actorID, id string) error
}

// CookingLogService maintains a recipe's cooking log and keeps the derived
// rating consistent with it.
type CookingLogService interface {
	// Add prepends an entry (it becomes index 0) and recomputes the rating.
	Add(ctx context.Context, actorID, recipeID string, in CookingLogInput) (*domain.Recipe, error)
	// Remove deletes the entry at index and recomputes the rating, resetting
	// it to 0 when the log becomes empty. Out-of-range indexes fail with
	// domain.ErrLogIndex.
	Remove(ctx context.Context, actorID, recipeID string, index int) (*domain.Recipe, error)
}
