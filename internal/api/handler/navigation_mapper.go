package handler

import "github.com/XploitFox/private-navigation-system/internal/core/domain"

func toNavigationsPayload(categories []domain.NavigationCategory) navigationsPayload {
	out := navigationsPayload{Categories: make([]navigationCategoryPayload, 0, len(categories))}
	for _, c := range categories {
		items := make([]navigationItemPayload, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, navigationItemPayload{
				ID:          it.ID,
				Title:       it.Title,
				URL:         it.URL,
				Description: it.Description,
				Favicon:     it.Favicon,
				SortOrder:   it.SortOrder,
			})
		}
		out.Categories = append(out.Categories, navigationCategoryPayload{
			ID:        c.ID,
			Name:      c.Name,
			Icon:      c.Icon,
			SortOrder: c.SortOrder,
			Items:     items,
		})
	}
	return out
}
