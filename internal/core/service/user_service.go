package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/platefull/recipe-catalog/internal/api/metrics"
	"github.com/platefull/recipe-catalog/internal/core/domain"
	"github.com/platefull/recipe-catalog/internal/core/ports"
)

var usernameRE = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)

// UserService implements registration, login, profile updates, and account
// deletion with recipe cascade.
type UserService struct {
	users     ports.UserRepository
	recipes   ports.RecipeRepository
	cache     ListingCache
	hasher    ports.CredentialHasher
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	recipes ports.RecipeRepository,
	cache ListingCache,
	hasher ports.CredentialHasher,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		users:     users,
		recipes:   recipes,
		cache:     cache,
		hasher:    hasher,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an account. Username and email collisions within the
// environment surface as domain.ErrDuplicateUsername / ErrDuplicateEmail so
// the caller can tell which field to fix.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       in.Username,
		Email:          in.Email,
		CredentialHash: hash,
		DisplayName:    in.DisplayName,
		Bio:            in.Bio,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			metrics.DuplicateUsersTotal.WithLabelValues("username").Inc()
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.DuplicateUsersTotal.WithLabelValues("email").Inc()
		}
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies credentials against the stored hash and issues a session
// token. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.CredentialHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial profile update. Changing username or email
// re-validates uniqueness; UpdatedAt is always refreshed.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username != nil {
		if err := validateUsername(*in.Username); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

// Delete removes the account and hard-deletes every recipe it owns. The
// recipe cascade runs first: if it fails the account survives and the delete
// can be retried, so recipes are never orphaned.
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.recipes.DeleteByOwner(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("recipe cascade failed, account kept")
		return err
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to invalidate listing cache")
	}

	s.logger.Info().Str("user_id", id).Int64("recipes_removed", removed).Msg("user deleted")
	return nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateUsername(username string) error {
	if !usernameRE.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-50 characters of letters, digits, '_' or '-'", domain.ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return nil
}
