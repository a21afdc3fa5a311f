package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// ReviewHandler handles review endpoints nested under titles.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRequest creates a review.
type ReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// ReviewPatchRequest partially updates a review.
type ReviewPatchRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse is the public review shape. The author appears as a username
// only; the rest of the account record stays private.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func newReviewResponse(review *model.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
	if review.Author != nil {
		resp.Author = review.Author.Username
	}
	return resp
}

func newReviewResponses(reviews []model.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = newReviewResponse(&reviews[i])
	}
	return out
}

// ListReviews godoc
// @Summary List reviews for a title
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {array} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(err)
	}
	reviews, err := h.reviewService.ListByTitle(c.Request().Context(), titleID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newReviewResponses(reviews))
}

// GetReview godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c echo.Context) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(err)
	}
	reviewID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	review, err := h.reviewService.Get(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// CreateReview godoc
// @Summary Create a review; one per author per title
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(err)
	}
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	review, err := h.reviewService.Create(c.Request().Context(), actorFromContext(c), titleID, req.Text, req.Score)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newReviewResponse(review))
}

// UpdateReview godoc
// @Summary Partially update a review (owner, moderator or admin)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Param request body ReviewPatchRequest true "Fields to change"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(err)
	}
	reviewID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	var req ReviewPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Update(c.Request().Context(), actorFromContext(c), titleID, reviewID, req.Text, req.Score)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// DeleteReview godoc
// @Summary Delete a review (owner, moderator or admin)
// @Tags reviews
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(err)
	}
	reviewID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	if err := h.reviewService.Delete(c.Request().Context(), actorFromContext(c), titleID, reviewID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MethodNotAllowed rejects verbs that are disabled on a route; PUT on reviews
// and comments must go through PATCH instead.
func MethodNotAllowed(c echo.Context) error {
	return respondError(domainerrors.ErrMethodNotAllowed)
}
