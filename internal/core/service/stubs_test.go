package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubRecipeRepo struct {
	byID map[string]*domain.Recipe
	// replaceMisses makes the next N Replace calls report a version conflict,
	// exercising the retry loop.
	replaceMisses int
	failErr       error // if set, every call returns this error
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{byID: make(map[string]*domain.Recipe)}
}

func cloneRecipe(r *domain.Recipe) *domain.Recipe {
	clone := *r
	clone.CookingLog = append([]domain.CookingLogEntry(nil), r.CookingLog...)
	return &clone
}

func (s *stubRecipeRepo) Create(_ context.Context, r *domain.Recipe) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.byID[r.ID] = cloneRecipe(r)
	return nil
}

func (s *stubRecipeRepo) FindByID(_ context.Context, id string) (*domain.Recipe, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	r, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneRecipe(r), nil
}

func (s *stubRecipeRepo) List(_ context.Context, ownerID *string) ([]*domain.Recipe, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	var out []*domain.Recipe
	for _, r := range s.byID {
		if ownerID == nil {
			if !r.IsSeed() {
				continue
			}
		} else if r.OwnerID != *ownerID {
			continue
		}
		out = append(out, cloneRecipe(r))
	}
	domain.SortRecipes(out)
	return out, nil
}

// Replace mirrors the Mongo conditional write: the document must exist with
// the same owner and version.
func (s *stubRecipeRepo) Replace(_ context.Context, r *domain.Recipe) (bool, error) {
	if s.failErr != nil {
		return false, s.failErr
	}
	if s.replaceMisses > 0 {
		s.replaceMisses--
		// Simulate the concurrent writer that won the race.
		if cur, ok := s.byID[r.ID]; ok {
			cur.Version++
		}
		return false, nil
	}
	cur, ok := s.byID[r.ID]
	if !ok || cur.OwnerID != r.OwnerID || cur.Version != r.Version {
		return false, nil
	}
	stored := cloneRecipe(r)
	stored.Version = r.Version + 1
	s.byID[r.ID] = stored
	return true, nil
}

func (s *stubRecipeRepo) Delete(_ context.Context, id, ownerID string) (bool, error) {
	if s.failErr != nil {
		return false, s.failErr
	}
	r, ok := s.byID[id]
	if !ok || r.OwnerID != ownerID {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

func (s *stubRecipeRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}
	var n int64
	for id, r := range s.byID {
		if r.OwnerID == ownerID {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (s *stubUserRepo) duplicateOf(u *domain.User) error {
	for _, existing := range s.byID {
		if existing.ID == u.ID {
			continue
		}
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	for _, existing := range s.byID {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	return nil
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if err := s.duplicateOf(u); err != nil {
		return err
	}
	clone := *u
	s.byID[u.ID] = &clone
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := s.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := s.duplicateOf(u); err != nil {
		return err
	}
	clone := *u
	s.byID[u.ID] = &clone
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	return true, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

// nopCache always misses; writes are counted so invalidation can be asserted.
type nopCache struct {
	sets        int
	invalidates []string
}

func (c *nopCache) Get(context.Context, string) ([]*domain.Recipe, bool, error) {
	return nil, false, nil
}

func (c *nopCache) Set(_ context.Context, _ string, _ []*domain.Recipe) error {
	c.sets++
	return nil
}

func (c *nopCache) Invalidate(_ context.Context, owner string) error {
	c.invalidates = append(c.invalidates, owner)
	return nil
}

// memCache stores listings for real, so a missed invalidation shows up as a
// stale read.
type memCache struct {
	byOwner map[string][]*domain.Recipe
}

func newMemCache() *memCache {
	return &memCache{byOwner: make(map[string][]*domain.Recipe)}
}

func (c *memCache) Get(_ context.Context, owner string) ([]*domain.Recipe, bool, error) {
	recipes, ok := c.byOwner[owner]
	return recipes, ok, nil
}

func (c *memCache) Set(_ context.Context, owner string, recipes []*domain.Recipe) error {
	c.byOwner[owner] = recipes
	return nil
}

func (c *memCache) Invalidate(_ context.Context, owner string) error {
	delete(c.byOwner, owner)
	return nil
}

// plainHasher is a transparent stand-in for the bcrypt collaborator.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }

func (plainHasher) Verify(candidate, stored string) bool {
	return fmt.Sprintf("hash:%s", candidate) == stored
}

var discardLogger = zerolog.Nop()

func newTestRecipeService(repo *stubRecipeRepo) (*RecipeService, *nopCache) {
	cache := &nopCache{}
	guard := NewOwnershipGuard(repo)
	return NewRecipeService(repo, guard, cache, discardLogger), cache
}
