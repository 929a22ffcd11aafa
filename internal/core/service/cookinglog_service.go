package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-catalog/internal/api/metrics"
	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// CookingLogService maintains cooking logs and the derived rating. Log and
// rating are always written in the same conditional replace, so a reader can
// never observe one without the other.
type CookingLogService struct {
	recipes *RecipeService
	logger  zerolog.Logger
}

func NewCookingLogService(recipes *RecipeService, logger zerolog.Logger) *CookingLogService {
	return &CookingLogService{recipes: recipes, logger: logger}
}

// Add prepends a cooking session to the recipe's log and recomputes the
// rating over all entries.
func (s *CookingLogService) Add(ctx context.Context, actorID, recipeID string, in ports.CookingLogInput) (*domain.Recipe, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	entry := domain.CookingLogEntry{
		Timestamp: in.Timestamp,
		Notes:     in.Notes,
		Rating:    in.Rating,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	recipe, err := s.recipes.mutate(ctx, actorID, recipeID, func(r *domain.Recipe) error {
		r.CookingLog = append([]domain.CookingLogEntry{entry}, r.CookingLog...)
		r.Rating = domain.RatingFromLog(r.CookingLog)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recipes.invalidateListing(ctx, actorID)
	metrics.CookingLogEntriesTotal.WithLabelValues("add").Inc()
	s.logger.Info().
		Str("recipe_id", recipeID).
		Int("rating", entry.Rating).
		Int("derived_rating", recipe.Rating).
		Msg("cooking session logged")
	return recipe, nil
}

// Remove deletes the entry at index, shifting later entries left, and
// recomputes the rating (0 when the log becomes empty). The bounds check runs
// inside the retry loop because a concurrent writer can shrink the log
// between attempts.
func (s *CookingLogService) Remove(ctx context.Context, actorID, recipeID string, index int) (*domain.Recipe, error) {
	recipe, err := s.recipes.mutate(ctx, actorID, recipeID, func(r *domain.Recipe) error {
		if index < 0 || index >= len(r.CookingLog) {
			return fmt.Errorf("%w: index %d, log length %d", domain.ErrLogIndex, index, len(r.CookingLog))
		}
		r.CookingLog = append(r.CookingLog[:index], r.CookingLog[index+1:]...)
		r.Rating = domain.RatingFromLog(r.CookingLog)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recipes.invalidateListing(ctx, actorID)
	metrics.CookingLogEntriesTotal.WithLabelValues("remove").Inc()
	s.logger.Info().
		Str("recipe_id", recipeID).
		Int("index", index).
		Int("derived_rating", recipe.Rating).
		Msg("cooking session removed")
	return recipe, nil
}
