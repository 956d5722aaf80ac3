package jsonstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/XploitFox/private-navigation-system/internal/metrics"
	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

const CollectionNavigations = "navigations"

// NavigationRepository implements ports.NavigationRepository over the navigations document.
type NavigationRepository struct {
	store *Store[domain.NavigationDocument]
	log   zerolog.Logger
}

var _ ports.NavigationRepository = (*NavigationRepository)(nil)

func NewNavigationRepository(backend Backend, log zerolog.Logger) *NavigationRepository {
	return &NavigationRepository{
		store: NewStore(backend, CollectionNavigations, domain.NavigationDocument{
			Navigations: domain.DefaultNavigations(),
		}),
		log: log,
	}
}

// GetAll degrades to an empty dashboard when the document cannot be parsed or
// has no navigations; only backend I/O failures are returned.
func (r *NavigationRepository) GetAll(ctx context.Context) ([]domain.NavigationCategory, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrParse) {
			metrics.NavigationParseFallbacksTotal.Inc()
			r.log.Warn().Err(err).Msg("navigation document is malformed, serving empty dashboard")
			return []domain.NavigationCategory{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	categories := doc.Navigations
	if categories == nil {
		return []domain.NavigationCategory{}, nil
	}
	for i := range categories {
		if categories[i].Items == nil {
			categories[i].Items = []domain.NavigationItem{}
		}
	}
	domain.SortByOrder(categories)
	return categories, nil
}

func (r *NavigationRepository) SaveAll(ctx context.Context, categories []domain.NavigationCategory) error {
	if categories == nil {
		return domain.ErrBadInput
	}
	if err := r.store.Write(ctx, domain.NavigationDocument{Navigations: categories}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	return nil
}
