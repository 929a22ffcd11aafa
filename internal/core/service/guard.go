package service

import (
	"context"

	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// OwnershipGuard authorizes recipe mutations. The check order is fixed and
// externally observable: authentication, then existence, then ownership. An
// authenticated non-owner learns that the recipe exists (403) while a missing
// id yields 404, so reordering the checks would change client-visible codes.
type OwnershipGuard struct {
	recipes ports.RecipeRepository
}

func NewOwnershipGuard(recipes ports.RecipeRepository) *OwnershipGuard {
	return &OwnershipGuard{recipes: recipes}
}

// Authorize returns the recipe when actorID may mutate it. The guard runs its
// own existence lookup rather than inferring intent from the store's
// conflated owned-write results: the second read is what buys the richer
// error discrimination.
func (g *OwnershipGuard) Authorize(ctx context.Context, actorID, recipeID string) (*domain.Recipe, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}

	recipe, err := g.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}

	if recipe.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	return recipe, nil
}
