package ports

import (
	"context"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// NavigationService defines the dashboard use cases.
type NavigationService interface {
	// List returns all categories, narrowed to matching items when query is non-empty.
	List(ctx context.Context, query string) ([]domain.NavigationCategory, error)
	Save(ctx context.Context, categories []domain.NavigationCategory) error
}
