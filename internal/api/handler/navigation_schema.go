package handler

import (
	"encoding/json"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// saveNavigationsRequest keeps categories raw so that a non-array payload can
// be told apart from an empty one.
type saveNavigationsRequest struct {
	Categories json.RawMessage `json:"categories" swaggertype:"array,object"`
}

type navigationItemPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"max=200"`
	URL         string `json:"url" validate:"max=2048"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Favicon     string `json:"favicon,omitempty" validate:"max=2048"`
	SortOrder   int    `json:"sort_order"`
}

type navigationCategoryPayload struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name" validate:"max=100"`
	Icon      string                  `json:"icon,omitempty" validate:"max=100"`
	SortOrder int                     `json:"sort_order"`
	Items     []navigationItemPayload `json:"items" validate:"dive"`
}

// navigationsPayload is the validation target for a decoded save request.
type navigationsPayload struct {
	Categories []navigationCategoryPayload `validate:"dive"`
}

type listNavigationsResponse struct {
	Categories []domain.NavigationCategory `json:"categories"`
	Total      int                         `json:"total"`
}
