// Package recipe provides the user's saved recipes and the client-only
// composition editor used to adjust ingredient weights before saving or
// manufacturing.
package recipe

import (
	"context"
	"net/url"

	"github.com/the-sleepless-coder/moodrop-companion/internal/api"
)

// Composition is one ingredient line of a recipe. Weights across a recipe
// sum to 100 by convention.
type Composition struct {
	NoteName   string  `json:"noteName"`
	KoreanName string  `json:"koreanName,omitempty"`
	Type       string  `json:"type"`
	Weight     float64 `json:"weight"`
}

// UserRecipe is a saved custom recipe.
type UserRecipe struct {
	RecipeID    int           `json:"recipeId"`
	UserID      string        `json:"userId"`
	PerfumeName string        `json:"perfumeName"`
	Description string        `json:"description"`
	Composition []Composition `json:"composition"`
}

// Service fetches user recipes from the perfume service.
type Service struct {
	client *api.Client
}

// NewService creates a recipe service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// UserRecipes lists the user's saved recipes.
func (s *Service) UserRecipes(ctx context.Context, userID string) api.Result[[]UserRecipe] {
	return api.Get[[]UserRecipe](ctx, s.client, "/recipe/"+url.PathEscape(userID), nil)
}
