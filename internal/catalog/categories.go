// Package catalog provides the mood/category and note catalogs backed by
// the perfume service, plus the client-side grouping and classification
// rules applied to them.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/the-sleepless-coder/moodrop-companion/internal/api"
)

// CategoryMoodRow is one denormalized tuple from GET /categoryMood.
type CategoryMoodRow struct {
	CategoryID          int    `json:"categoryId"`
	CategoryDescription string `json:"categoryDescription"`
	MoodID              int    `json:"moodId"`
	MoodDescription     string `json:"moodDescription"`
}

// Mood is a fine-grained selectable descriptor grouped under a Category.
type Mood struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"`
}

// Category is a coarse grouping of moods.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Moods []Mood `json:"moods"`
}

// GroupCategories groups flat category/mood tuples into categories.
// Categories appear in first-seen order; moods keep response order.
func GroupCategories(rows []CategoryMoodRow) []Category {
	var order []int
	byID := make(map[int]*Category)

	for _, row := range rows {
		cat, ok := byID[row.CategoryID]
		if !ok {
			cat = &Category{ID: row.CategoryID, Name: row.CategoryDescription}
			byID[row.CategoryID] = cat
			order = append(order, row.CategoryID)
		}
		cat.Moods = append(cat.Moods, Mood{
			ID:         row.MoodID,
			Name:       row.MoodDescription,
			CategoryID: row.CategoryID,
		})
	}

	categories := make([]Category, 0, len(order))
	for _, id := range order {
		categories = append(categories, *byID[id])
	}
	return categories
}

// FlattenCategories is the inverse of GroupCategories.
func FlattenCategories(categories []Category) []CategoryMoodRow {
	var rows []CategoryMoodRow
	for _, cat := range categories {
		for _, mood := range cat.Moods {
			rows = append(rows, CategoryMoodRow{
				CategoryID:          cat.ID,
				CategoryDescription: cat.Name,
				MoodID:              mood.ID,
				MoodDescription:     mood.Name,
			})
		}
	}
	return rows
}

// ReclassRule moves a single mood, identified by its stable server-side ID,
// out of one category into another for display purposes.
type ReclassRule struct {
	MoodID int
	From   string
	To     string
}

// Display reclassification rules confirmed with product: "quietness" (2)
// belongs under Sensory and "vitality" (3) under Emotion, even though the
// server files both under Misc. Keyed by ID because the names are
// localizable.
var reclassRules = []ReclassRule{
	{MoodID: 2, From: "Misc", To: "Sensory"},
	{MoodID: 3, From: "Misc", To: "Emotion"},
}

// ReclassifyCategories applies the display reclassification rules and
// returns a new category list. The source category is kept only if it still
// has moods after its reclassified entries are stripped.
func ReclassifyCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, cat := range categories {
		out[i] = Category{ID: cat.ID, Name: cat.Name, Moods: append([]Mood(nil), cat.Moods...)}
	}

	for _, rule := range reclassRules {
		var moved *Mood
		for i := range out {
			if out[i].Name != rule.From {
				continue
			}
			for j, mood := range out[i].Moods {
				if mood.ID == rule.MoodID {
					m := mood
					moved = &m
					out[i].Moods = append(out[i].Moods[:j], out[i].Moods[j+1:]...)
					break
				}
			}
		}
		if moved == nil {
			continue
		}

		placed := false
		for i := range out {
			if out[i].Name == rule.To {
				out[i].Moods = append(out[i].Moods, *moved)
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, Category{ID: -len(out) - 1, Name: rule.To, Moods: []Mood{*moved}})
		}
	}

	kept := out[:0]
	for _, cat := range out {
		if len(cat.Moods) > 0 {
			kept = append(kept, cat)
		}
	}
	return kept
}

// Cache is an optional short-lived payload cache keyed by resource identity.
// A nil Cache means every lookup is a fresh HTTP round trip, matching the
// service's original behavior.
type Cache interface {
	Get(resource string) ([]byte, bool)
	Put(resource string, payload []byte)
}

const resourceCategoryMood = "categoryMood"

// CategoryService fetches and groups the category/mood catalog.
type CategoryService struct {
	client *api.Client
	cache  Cache
}

// NewCategoryService creates a category service. cache may be nil.
func NewCategoryService(client *api.Client, cache Cache) *CategoryService {
	return &CategoryService{client: client, cache: cache}
}

// CategoriesWithMoods fetches the flat catalog and groups it.
func (s *CategoryService) CategoriesWithMoods(ctx context.Context) api.Result[[]Category] {
	rows := s.fetchRows(ctx)
	return api.Narrow(rows, GroupCategories)
}

// MoodByID fetches the catalog and returns the mood with the given ID.
func (s *CategoryService) MoodByID(ctx context.Context, id int) api.Result[Mood] {
	rows := s.fetchRows(ctx)
	if !rows.Success {
		return api.Fail[Mood](rows.Message)
	}
	for _, row := range rows.Data {
		if row.MoodID == id {
			return api.Ok(Mood{ID: row.MoodID, Name: row.MoodDescription, CategoryID: row.CategoryID})
		}
	}
	return api.Fail[Mood](fmt.Sprintf("mood %d not found", id))
}

// CategoryByID fetches the catalog and returns the category with the given ID.
func (s *CategoryService) CategoryByID(ctx context.Context, id int) api.Result[Category] {
	cats := s.CategoriesWithMoods(ctx)
	if !cats.Success {
		return api.Fail[Category](cats.Message)
	}
	for _, cat := range cats.Data {
		if cat.ID == id {
			return api.Ok(cat)
		}
	}
	return api.Fail[Category](fmt.Sprintf("category %d not found", id))
}

// SearchMoods returns all moods whose name contains the query,
// case-insensitive.
func (s *CategoryService) SearchMoods(ctx context.Context, query string) api.Result[[]Mood] {
	rows := s.fetchRows(ctx)
	if !rows.Success {
		return api.Fail[[]Mood](rows.Message)
	}
	q := strings.ToLower(query)
	var moods []Mood
	for _, row := range rows.Data {
		if strings.Contains(strings.ToLower(row.MoodDescription), q) {
			moods = append(moods, Mood{ID: row.MoodID, Name: row.MoodDescription, CategoryID: row.CategoryID})
		}
	}
	return api.Ok(moods)
}

// fetchRows loads the flat tuple list, consulting the cache when configured.
func (s *CategoryService) fetchRows(ctx context.Context) api.Result[[]CategoryMoodRow] {
	if s.cache != nil {
		if payload, ok := s.cache.Get(resourceCategoryMood); ok {
			var rows []CategoryMoodRow
			if err := json.Unmarshal(payload, &rows); err == nil {
				return api.Ok(rows)
			}
			log.Printf("[CategoryService] Discarding unreadable cache entry: %s", resourceCategoryMood)
		}
	}

	result := api.Get[[]CategoryMoodRow](ctx, s.client, "/categoryMood", nil)
	if result.Success && s.cache != nil {
		if payload, err := json.Marshal(result.Data); err == nil {
			s.cache.Put(resourceCategoryMood, payload)
		}
	}
	return result
}
