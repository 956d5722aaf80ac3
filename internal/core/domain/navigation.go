package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NavigationItem is a single link shown on the dashboard.
type NavigationItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Favicon     string `json:"favicon,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// NavigationCategory groups items under a heading.
// Display order is ascending SortOrder, not insertion order.
type NavigationCategory struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Icon      string           `json:"icon,omitempty"`
	SortOrder int              `json:"sort_order"`
	Items     []NavigationItem `json:"items"`
}

// NavigationDocument is the root of the navigation collection.
type NavigationDocument struct {
	Navigations []NavigationCategory `json:"navigations"`
}

// DefaultNavigations is the seed written when the navigation document does not exist yet.
func DefaultNavigations() []NavigationCategory {
	return []NavigationCategory{
		{
			ID:        "dev",
			Name:      "Development",
			Icon:      "code",
			SortOrder: 1,
			Items: []NavigationItem{
				{ID: "github", Title: "GitHub", URL: "https://github.com", Description: "Where the world builds software", SortOrder: 1},
				{ID: "stackoverflow", Title: "Stack Overflow", URL: "https://stackoverflow.com", Description: "Developer community", SortOrder: 2},
			},
		},
		{
			ID:        "tools",
			Name:      "Tools",
			Icon:      "tool",
			SortOrder: 2,
			Items: []NavigationItem{
				{ID: "chatgpt", Title: "ChatGPT", URL: "https://chat.openai.com", Description: "AI Assistant", SortOrder: 1},
			},
		},
	}
}

// SortByOrder orders categories and their items by ascending sort_order in place.
// Ties keep their persisted relative order.
func SortByOrder(categories []NavigationCategory) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})
	for i := range categories {
		items := categories[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].SortOrder < items[b].SortOrder
		})
	}
}

// Renumber assigns a dense, 1-based sort_order following the slice order.
func Renumber(categories []NavigationCategory) {
	for i := range categories {
		categories[i].SortOrder = i + 1
		for j := range categories[i].Items {
			categories[i].Items[j].SortOrder = j + 1
		}
	}
}

// FilterItems keeps items whose title or description contains query
// (case-insensitive) and drops categories left empty. An empty query
// returns the input unchanged.
func FilterItems(categories []NavigationCategory, query string) []NavigationCategory {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return categories
	}

	out := make([]NavigationCategory, 0, len(categories))
	for _, c := range categories {
		var items []NavigationItem
		for _, it := range c.Items {
			if strings.Contains(strings.ToLower(it.Title), q) ||
				strings.Contains(strings.ToLower(it.Description), q) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		c.Items = items
		out = append(out, c)
	}
	return out
}

// DecodeCategories parses a raw "categories" value. Anything other than a
// JSON array (missing, null, object, scalar) is ErrBadInput.
func DecodeCategories(raw json.RawMessage) ([]NavigationCategory, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrBadInput
	}

	categories := []NavigationCategory{}
	if err := json.Unmarshal(trimmed, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	for i := range categories {
		if categories[i].Items == nil {
			categories[i].Items = []NavigationItem{}
		}
	}
	return categories, nil
}
