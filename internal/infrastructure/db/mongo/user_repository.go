package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

const collectionUsers = "users"

// Index names double as collision classifiers when a racing insert trips the
// unique constraint instead of the pre-checks.
const (
	indexUniqueUsername = "uniq_env_username"
	indexUniqueEmail    = "uniq_env_email"
)

// UserRepository implements ports.UserRepository on MongoDB. Every query is
// stamped with and filtered by the repository's environment partition.
type UserRepository struct {
	col *mongo.Collection
	env domain.Environment
}

func NewUserRepository(db *mongo.Database, env domain.Environment) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), env: env}
}

// Create inserts a new user. Username and email uniqueness are pre-checked
// independently so the caller learns which field collided; the unique indexes
// close the race window between check and insert.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.checkDuplicates(ctx, u.Username, u.Email, ""); err != nil {
		return err
	}

	u.Environment = r.env
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicate(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["environment"] = r.env

	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Update replaces the stored document, re-validating username and email
// uniqueness against every other user in the environment.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.checkDuplicates(ctx, u.Username, u.Email, u.ID); err != nil {
		return err
	}

	u.Environment = r.env
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID, "environment": r.env}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicate(err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "environment": r.env})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// checkDuplicates evaluates the two uniqueness constraints independently,
// username first, excluding excludeID so self-updates pass.
func (r *UserRepository) checkDuplicates(ctx context.Context, username, email, excludeID string) error {
	for _, check := range []struct {
		field string
		value string
		fail  error
	}{
		{"username", username, domain.ErrDuplicateUsername},
		{"email", email, domain.ErrDuplicateEmail},
	} {
		filter := bson.M{"environment": r.env, check.field: check.value}
		if excludeID != "" {
			filter["_id"] = bson.M{"$ne": excludeID}
		}
		n, err := r.col.CountDocuments(ctx, filter)
		if err != nil {
			return fmt.Errorf("check %s uniqueness: %w", check.field, err)
		}
		if n > 0 {
			return check.fail
		}
	}
	return nil
}

func classifyDuplicate(err error) error {
	if strings.Contains(err.Error(), indexUniqueEmail) {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateUsername
}

// EnsureIndexes creates the per-environment unique indexes on username and
// email.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "environment", Value: 1}, {Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexUniqueUsername),
		},
		{
			Keys:    bson.D{{Key: "environment", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexUniqueEmail),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
