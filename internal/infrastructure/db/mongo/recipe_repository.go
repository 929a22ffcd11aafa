package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

const collectionRecipes = "recipes"

// RecipeRepository implements ports.RecipeRepository on MongoDB.
//
// All mutations of an existing document go through Replace, a conditional
// write on the version the caller read. Log and rating always land in the
// same single-document write, which MongoDB applies atomically, so readers
// never observe one without the other.
type RecipeRepository struct {
	col *mongo.Collection
	env domain.Environment
}

func NewRecipeRepository(db *mongo.Database, env domain.Environment) *RecipeRepository {
	return &RecipeRepository{col: db.Collection(collectionRecipes), env: env}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	recipe.Environment = r.env
	if _, err := r.col.InsertOne(ctx, recipe); err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// FindByID is environment-scoped but owner-agnostic: recipe reads are public.
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var recipe domain.Recipe
	err := r.col.FindOne(ctx, bson.M{"_id": id, "environment": r.env}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &recipe, nil
}

// List fetches the seed listing (ownerID nil) or one owner's recipes and
// returns them in catalog order. Listings are small enough (one owner's
// recipes, or the curated seed set) that ordering in process beats pushing
// the two-tier sort into an aggregation pipeline.
func (r *RecipeRepository) List(ctx context.Context, ownerID *string) ([]*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"environment": r.env}
	if ownerID == nil {
		filter["owner_id"] = bson.M{"$exists": false}
	} else {
		filter["owner_id"] = *ownerID
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	var recipes []*domain.Recipe
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	domain.SortRecipes(recipes)
	return recipes, nil
}

// Replace conditionally writes the full document. The filter pins id,
// environment, owner, and the version the caller read; a miss on any of them
// reports false without saying which one failed.
func (r *RecipeRepository) Replace(ctx context.Context, recipe *domain.Recipe) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":         recipe.ID,
		"environment": r.env,
		"version":     recipe.Version,
	}
	addOwnerFilter(filter, recipe.OwnerID)

	replacement := *recipe
	replacement.Environment = r.env
	replacement.Version = recipe.Version + 1

	res, err := r.col.ReplaceOne(ctx, filter, &replacement)
	if err != nil {
		return false, fmt.Errorf("replace recipe: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the recipe when it exists, lives in this environment, and is
// owned by ownerID. Not-found and not-owned are indistinguishable here.
func (r *RecipeRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "environment": r.env}
	addOwnerFilter(filter, ownerID)

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByOwner removes every recipe owned by ownerID (user delete cascade).
func (r *RecipeRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"environment": r.env, "owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete recipes by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// addOwnerFilter pins the owner dimension. Seed recipes store no owner field
// at all, so an empty owner matches on field absence.
func addOwnerFilter(filter bson.M, ownerID string) {
	if ownerID == "" {
		filter["owner_id"] = bson.M{"$exists": false}
	} else {
		filter["owner_id"] = ownerID
	}
}

// EnsureIndexes creates the query indexes on the recipes collection.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "environment", Value: 1}, {Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
