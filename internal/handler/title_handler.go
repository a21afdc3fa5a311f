package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

// TitleHandler handles title endpoints.
type TitleHandler struct {
	titleService service.TitleService
}

// NewTitleHandler creates a new title handler.
func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// TitleRequest creates a title.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// TitlePatchRequest partially updates a title.
type TitlePatchRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// ListTitles godoc
// @Summary List titles with computed ratings
// @Tags titles
// @Produce json
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Param year query int false "Release year"
// @Param name query string false "Name substring"
// @Success 200 {array} model.Title
// @Router /titles [get]
func (h *TitleHandler) ListTitles(c echo.Context) error {
	filter := repository.TitleFilter{
		CategorySlug: c.QueryParam("category"),
		GenreSlug:    c.QueryParam("genre"),
		Name:         c.QueryParam("name"),
	}
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return respondError(domainerrors.NewValidation("year", "must be an integer"))
		}
		filter.Year = year
	}

	titles, err := h.titleService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, titles)
}

// GetTitle godoc
// @Summary Get a title with its rating
// @Tags titles
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} model.Title
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{id} [get]
func (h *TitleHandler) GetTitle(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	title, err := h.titleService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, title)
}

// CreateTitle godoc
// @Summary Create a title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TitleRequest true "Title"
// @Success 201 {object} model.Title
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /titles [post]
func (h *TitleHandler) CreateTitle(c echo.Context) error {
	var req TitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	title, err := h.titleService.Create(c.Request().Context(), actorFromContext(c), service.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, title)
}

// UpdateTitle godoc
// @Summary Partially update a title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Title ID"
// @Param request body TitlePatchRequest true "Fields to change"
// @Success 200 {object} model.Title
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{id} [patch]
func (h *TitleHandler) UpdateTitle(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	var req TitlePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	title, err := h.titleService.Update(c.Request().Context(), actorFromContext(c), id, service.TitlePatch{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, title)
}

// DeleteTitle godoc
// @Summary Delete a title
// @Tags titles
// @Security BearerAuth
// @Param id path int true "Title ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{id} [delete]
func (h *TitleHandler) DeleteTitle(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	if err := h.titleService.Delete(c.Request().Context(), actorFromContext(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
