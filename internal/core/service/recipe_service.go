package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/platefull/recipe-catalog/internal/api/metrics"
	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// replaceAttempts bounds the compare-and-swap retry loop on recipe writes.
const replaceAttempts = 3

// ListingCache abstracts the Redis read-side cache for recipe listings,
// keyed by owner ("" for the seed listing).
type ListingCache interface {
	// Get returns the cached listing and whether it was present.
	Get(ctx context.Context, owner string) ([]*domain.Recipe, bool, error)
	Set(ctx context.Context, owner string, recipes []*domain.Recipe) error
	Invalidate(ctx context.Context, owner string) error
}

// RecipeService implements ports.RecipeService.
type RecipeService struct {
	repo   ports.RecipeRepository
	guard  *OwnershipGuard
	cache  ListingCache
	logger zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, guard *OwnershipGuard, cache ListingCache, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, guard: guard, cache: cache, logger: logger}
}

// Create validates the input and inserts a new recipe with an empty cooking
// log and rating 0. Validation happens before any store call.
func (s *RecipeService) Create(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateRecipeFields(in.Name, in.HeroIngredient, in.CookTimeMinutes, in.Servings); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		ID:              uuid.NewString(),
		OwnerID:         in.OwnerID,
		Name:            in.Name,
		HeroIngredient:  domain.HeroIngredient(in.HeroIngredient),
		CookTimeMinutes: in.CookTimeMinutes,
		Servings:        in.Servings,
		Ingredients:     in.Ingredients,
		Instructions:    in.Instructions,
		PhotoRef:        in.PhotoRef,
		Rating:          0,
		CookingLog:      []domain.CookingLogEntry{},
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Msg("failed to create recipe")
		return nil, err
	}

	s.invalidateListing(ctx, in.OwnerID)
	metrics.RecipesCreatedTotal.WithLabelValues(seedLabel(recipe)).Inc()
	s.logger.Info().Str("recipe_id", recipe.ID).Str("owner_id", in.OwnerID).Msg("recipe created")
	return recipe, nil
}

// Get is a public read, scoped to the environment only.
func (s *RecipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

// List returns the public seed listing (ownerID nil) or one owner's recipes,
// in catalog order. Listings are served from cache when present.
func (s *RecipeService) List(ctx context.Context, ownerID *string) ([]*domain.Recipe, error) {
	key := ""
	if ownerID != nil {
		key = *ownerID
	}

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("listing cache read failed, falling back to store")
	} else if ok {
		return cached, nil
	}

	recipes, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, recipes); err != nil {
		s.logger.Warn().Err(err).Msg("failed to populate listing cache")
	}
	return recipes, nil
}

// Update applies a partial update after the ownership guard passes. The write
// is a conditional replace on the version read under the guard, retried a
// bounded number of times when a concurrent writer got there first.
func (s *RecipeService) Update(ctx context.Context, actorID, id string, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
	if in.HeroIngredient != nil && !domain.ValidHeroIngredient(*in.HeroIngredient) {
		return nil, fmt.Errorf("%w: unknown hero ingredient %q", domain.ErrValidation, *in.HeroIngredient)
	}
	if in.CookTimeMinutes != nil && (*in.CookTimeMinutes < 1 || *in.CookTimeMinutes > 1440) {
		return nil, fmt.Errorf("%w: cook time out of range", domain.ErrValidation)
	}
	if in.Servings != nil && (*in.Servings < 1 || *in.Servings > 50) {
		return nil, fmt.Errorf("%w: servings out of range", domain.ErrValidation)
	}
	if in.Name != nil && *in.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}

	recipe, err := s.mutate(ctx, actorID, id, func(r *domain.Recipe) error {
		applyRecipeUpdate(r, in)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx, actorID)
	s.logger.Info().Str("recipe_id", id).Str("owner_id", actorID).Msg("recipe updated")
	return recipe, nil
}

// Delete hard-deletes an owned recipe.
func (s *RecipeService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.guard.Authorize(ctx, actorID, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id, actorID)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return err
	}
	if !deleted {
		// The recipe passed the guard but vanished before the delete landed.
		return domain.ErrRecipeNotFound
	}

	s.invalidateListing(ctx, actorID)
	s.logger.Info().Str("recipe_id", id).Str("owner_id", actorID).Msg("recipe deleted")
	return nil
}

// mutate runs guard → apply → conditional replace, re-reading and retrying on
// version conflicts. Re-running the guard on each attempt keeps the error
// discrimination correct if the recipe was deleted mid-flight.
func (s *RecipeService) mutate(ctx context.Context, actorID, id string, apply func(*domain.Recipe) error) (*domain.Recipe, error) {
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		recipe, err := s.guard.Authorize(ctx, actorID, id)
		if err != nil {
			return nil, err
		}

		if err := apply(recipe); err != nil {
			return nil, err
		}

		ok, err := s.repo.Replace(ctx, recipe)
		if err != nil {
			return nil, err
		}
		if ok {
			recipe.Version++
			return recipe, nil
		}
		metrics.WriteRetriesTotal.Inc()
		s.logger.Debug().Str("recipe_id", id).Int("attempt", attempt+1).Msg("recipe version conflict, retrying")
	}

	metrics.WriteConflictsTotal.Inc()
	return nil, fmt.Errorf("replace recipe %s: %w", id, domain.ErrWriteConflict)
}

func (s *RecipeService) invalidateListing(ctx context.Context, owner string) {
	if err := s.cache.Invalidate(ctx, owner); err != nil {
		s.logger.Warn().Err(err).Str("owner", owner).Msg("failed to invalidate listing cache")
	}
}

func applyRecipeUpdate(r *domain.Recipe, in ports.UpdateRecipeInput) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.HeroIngredient != nil {
		r.HeroIngredient = domain.HeroIngredient(*in.HeroIngredient)
	}
	if in.CookTimeMinutes != nil {
		r.CookTimeMinutes = *in.CookTimeMinutes
	}
	if in.Servings != nil {
		r.Servings = *in.Servings
	}
	if in.Ingredients != nil {
		r.Ingredients = *in.Ingredients
	}
	if in.Instructions != nil {
		r.Instructions = *in.Instructions
	}
	if in.PhotoRef != nil {
		r.PhotoRef = *in.PhotoRef
	}
}

func validateRecipeFields(name, hero string, cookTime, servings int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !domain.ValidHeroIngredient(hero) {
		return fmt.Errorf("%w: unknown hero ingredient %q", domain.ErrValidation, hero)
	}
	if cookTime < 1 || cookTime > 1440 {
		return fmt.Errorf("%w: cook time must be between 1 and 1440 minutes", domain.ErrValidation)
	}
	if servings < 1 || servings > 50 {
		return fmt.Errorf("%w: servings must be between 1 and 50", domain.ErrValidation)
	}
	return nil
}

func seedLabel(r *domain.Recipe) string {
	if r.IsSeed() {
		return "seed"
	}
	return "owned"
}
