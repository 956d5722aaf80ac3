package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

// NavigationHandler serves the dashboard categories.
type NavigationHandler struct {
	service ports.NavigationService
}

func NewNavigationHandler(service ports.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

// List handles GET /api/navigations.
//
// @Summary      List navigation categories
// @Tags         navigations
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Case-insensitive search over item title and description"
// @Success      200  {object}  listNavigationsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /navigations [get]
func (h *NavigationHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []domain.NavigationCategory{}
	}
	return c.JSON(http.StatusOK, listNavigationsResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// Save handles POST /api/navigations. The submitted categories replace the
// stored dashboard wholesale.
//
// @Summary      Replace navigation categories
// @Tags         navigations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveNavigationsRequest  true  "Full category list"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /navigations [post]
func (h *NavigationHandler) Save(c echo.Context) error {
	var req saveNavigationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	categories, err := domain.DecodeCategories(req.Categories)
	if err != nil {
		if errors.Is(err, domain.ErrBadInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid data format")
		}
		return err
	}

	if err := c.Validate(toNavigationsPayload(categories)); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Save(c.Request().Context(), categories); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Navigation updated successfully"})
}
