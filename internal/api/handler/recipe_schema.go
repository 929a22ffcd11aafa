package handler

import "time"

type createRecipeRequest struct {
	Name            string `json:"name"              validate:"required"`
	HeroIngredient  string `json:"hero_ingredient"   validate:"required,oneof=Chicken Beef Pork Fish Seafood Vegetables Pasta Rice Beans Eggs Tofu"`
	CookTimeMinutes int    `json:"cook_time_minutes" validate:"required,min=1,max=1440"`
	Servings        int    `json:"servings"          validate:"required,min=1,max=50"`
	Ingredients     string `json:"ingredients"`
	Instructions    string `json:"instructions"`
	PhotoRef        string `json:"photo_ref"`
}

// updateRecipeRequest is a partial update: absent fields stay untouched.
type updateRecipeRequest struct {
	Name            *string `json:"name"              validate:"omitempty,min=1"`
	HeroIngredient  *string `json:"hero_ingredient"   validate:"omitempty,oneof=Chicken Beef Pork Fish Seafood Vegetables Pasta Rice Beans Eggs Tofu"`
	CookTimeMinutes *int    `json:"cook_time_minutes" validate:"omitempty,min=1,max=1440"`
	Servings        *int    `json:"servings"          validate:"omitempty,min=1,max=50"`
	Ingredients     *string `json:"ingredients"`
	Instructions    *string `json:"instructions"`
	PhotoRef        *string `json:"photo_ref"`
}

type cookingLogRequest struct {
	// Timestamp is optional; the server clock is used when absent.
	Timestamp *time.Time `json:"timestamp"`
	Notes     string     `json:"notes"`
	Rating    int        `json:"rating" validate:"required,min=1,max=5"`
}
