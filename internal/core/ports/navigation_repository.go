package ports

import (
	"context"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// NavigationRepository reads and replaces the whole navigation document.
type NavigationRepository interface {
	// GetAll returns categories ordered by sort_order. Malformed or empty
	// documents yield an empty slice rather than an error.
	GetAll(ctx context.Context) ([]domain.NavigationCategory, error)
	// SaveAll overwrites the document. A nil slice is rejected with
	// domain.ErrBadInput and leaves the stored document untouched.
	SaveAll(ctx context.Context, categories []domain.NavigationCategory) error
}
