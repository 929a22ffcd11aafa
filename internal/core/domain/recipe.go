package domain

import (
	"math"
	"sort"
	"time"
)

// HeroIngredient is the main ingredient a recipe is built around. Recipes only
// accept values from the fixed set below.
type HeroIngredient string

const (
	HeroChicken    HeroIngredient = "Chicken"
	HeroBeef       HeroIngredient = "Beef"
	HeroPork       HeroIngredient = "Pork"
	HeroFish       HeroIngredient = "Fish"
	HeroSeafood    HeroIngredient = "Seafood"
	HeroVegetables HeroIngredient = "Vegetables"
	HeroPasta      HeroIngredient = "Pasta"
	HeroRice       HeroIngredient = "Rice"
	HeroBeans      HeroIngredient = "Beans"
	HeroEggs       HeroIngredient = "Eggs"
	HeroTofu       HeroIngredient = "Tofu"
)

// HeroIngredients lists every accepted hero ingredient, in display order.
var HeroIngredients = []HeroIngredient{
	HeroChicken, HeroBeef, HeroPork, HeroFish, HeroSeafood,
	HeroVegetables, HeroPasta, HeroRice, HeroBeans, HeroEggs, HeroTofu,
}

// ValidHeroIngredient reports whether s is one of the accepted values.
func ValidHeroIngredient(s string) bool {
	for _, h := range HeroIngredients {
		if string(h) == s {
			return true
		}
	}
	return false
}

// CookingLogEntry records a single cooking session. Entries live only embedded
// in a Recipe, newest first.
type CookingLogEntry struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Rating    int       `json:"rating" bson:"rating"`
}

// Recipe is the core aggregate root. Rating is derived from the cooking log
// and is never set directly by callers. OwnerID is empty for seed recipes that
// belong to no user. Version backs the compare-and-swap write protocol.
type Recipe struct {
	ID              string            `json:"id" bson:"_id"`
	OwnerID         string            `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Name            string            `json:"name" bson:"name"`
	HeroIngredient  HeroIngredient    `json:"hero_ingredient" bson:"hero_ingredient"`
	CookTimeMinutes int               `json:"cook_time_minutes" bson:"cook_time_minutes"`
	Servings        int               `json:"servings" bson:"servings"`
	Ingredients     string            `json:"ingredients" bson:"ingredients"`
	Instructions    string            `json:"instructions" bson:"instructions"`
	PhotoRef        string            `json:"photo_ref,omitempty" bson:"photo_ref,omitempty"`
	Rating          int               `json:"rating" bson:"rating"`
	CookingLog      []CookingLogEntry `json:"cooking_log" bson:"cooking_log"`
	Environment     Environment       `json:"-" bson:"environment"`
	Version         int64             `json:"-" bson:"version"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
}

// IsSeed reports whether the recipe belongs to no user.
func (r *Recipe) IsSeed() bool {
	return r.OwnerID == ""
}

// LastCooked returns the timestamp of the newest log entry (index 0) and
// whether the log is non-empty.
func (r *Recipe) LastCooked() (time.Time, bool) {
	if len(r.CookingLog) == 0 {
		return time.Time{}, false
	}
	return r.CookingLog[0].Timestamp, true
}

// RatingFromLog derives the displayed rating: 0 for an empty log, otherwise
// the mean of all entry ratings rounded half-up to the nearest integer.
func RatingFromLog(log []CookingLogEntry) int {
	if len(log) == 0 {
		return 0
	}
	sum := 0
	for _, e := range log {
		sum += e.Rating
	}
	mean := float64(sum) / float64(len(log))
	rating := int(math.Floor(mean + 0.5))
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return rating
}

// SortRecipes orders a listing in place: recipes that have been cooked come
// first, newest session first; uncooked recipes follow, newest created first.
// A cooked recipe always precedes an uncooked one.
func SortRecipes(recipes []*Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		ti, cookedI := recipes[i].LastCooked()
		tj, cookedJ := recipes[j].LastCooked()
		switch {
		case cookedI && cookedJ:
			return ti.After(tj)
		case cookedI != cookedJ:
			return cookedI
		default:
			return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
		}
	})
}
