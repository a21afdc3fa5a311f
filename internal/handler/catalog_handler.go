package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/service"
)

// CatalogHandler handles category and genre endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CatalogEntryRequest creates a category or genre.
type CatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CatalogEntryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	category, err := h.catalogService.CreateCategory(c.Request().Context(), actorFromContext(c), req.Name, req.Slug)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary Delete a category by slug
// @Tags catalog
// @Security BearerAuth
// @Param slug path string true "Slug"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalogService.DeleteCategory(c.Request().Context(), actorFromContext(c), c.Param("slug")); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGenres godoc
// @Summary List genres
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Genre
// @Router /genres [get]
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	genres, err := h.catalogService.ListGenres(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, genres)
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CatalogEntryRequest true "Genre"
// @Success 201 {object} model.Genre
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /genres [post]
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req CatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	genre, err := h.catalogService.CreateGenre(c.Request().Context(), actorFromContext(c), req.Name, req.Slug)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, genre)
}

// DeleteGenre godoc
// @Summary Delete a genre by slug
// @Tags catalog
// @Security BearerAuth
// @Param slug path string true "Slug"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /genres/{slug} [delete]
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	if err := h.catalogService.DeleteGenre(c.Request().Context(), actorFromContext(c), c.Param("slug")); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
