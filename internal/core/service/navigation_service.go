package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

type NavigationService struct {
	repo  ports.NavigationRepository
	log   zerolog.Logger
	newID func() string
}

func NewNavigationService(repo ports.NavigationRepository, log zerolog.Logger) *NavigationService {
	return &NavigationService{repo: repo, log: log, newID: uuid.NewString}
}

// List returns the dashboard, narrowed by query when it is non-empty.
func (s *NavigationService) List(ctx context.Context, query string) ([]domain.NavigationCategory, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterItems(categories, query), nil
}

// Save replaces the dashboard. Missing ids are generated and sort_order is
// rewritten densely from the array order before persisting.
func (s *NavigationService) Save(ctx context.Context, categories []domain.NavigationCategory) error {
	if categories == nil {
		return domain.ErrBadInput
	}

	out := make([]domain.NavigationCategory, len(categories))
	items := 0
	for i, c := range categories {
		if c.ID == "" {
			c.ID = s.newID()
		}
		list := make([]domain.NavigationItem, len(c.Items))
		for j, it := range c.Items {
			if it.ID == "" {
				it.ID = s.newID()
			}
			list[j] = it
		}
		c.Items = list
		items += len(list)
		out[i] = c
	}
	domain.Renumber(out)

	if err := s.repo.SaveAll(ctx, out); err != nil {
		s.log.Error().Err(err).Msg("failed to save navigation")
		return err
	}

	s.log.Info().Int("categories", len(out)).Int("items", items).Msg("navigation updated")
	return nil
}
