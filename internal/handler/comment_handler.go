package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// CommentHandler handles comment endpoints nested under reviews.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest creates or updates a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentResponse is the public comment shape; the author appears as a
// username only.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func newCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Username
	}
	return resp
}

func newCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = newCommentResponse(&comments[i])
	}
	return out
}

func commentPath(c echo.Context) (titleID, reviewID uint, err error) {
	titleID, err = paramUint(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = paramUint(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// ListComments godoc
// @Summary List comments on a review
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {array} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return respondError(err)
	}
	comments, err := h.commentService.ListByReview(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentResponses(comments))
}

// GetComment godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [get]
func (h *CommentHandler) GetComment(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return respondError(err)
	}
	commentID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	comment, err := h.commentService.Get(c.Request().Context(), titleID, reviewID, commentID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// CreateComment godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return respondError(err)
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	comment, err := h.commentService.Create(c.Request().Context(), actorFromContext(c), titleID, reviewID, req.Text)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// UpdateComment godoc
// @Summary Update a comment (owner, moderator or admin)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return respondError(err)
	}
	commentID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(validationError(err))
	}

	comment, err := h.commentService.Update(c.Request().Context(), actorFromContext(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment (owner, moderator or admin)
// @Tags comments
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	titleID, reviewID, err := commentPath(c)
	if err != nil {
		return respondError(err)
	}
	commentID, err := paramUint(c, "id")
	if err != nil {
		return respondError(err)
	}
	if err := h.commentService.Delete(c.Request().Context(), actorFromContext(c), titleID, reviewID, commentID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
