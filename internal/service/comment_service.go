package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// CommentService handles comments nested under reviews.
type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error)
	Create(ctx context.Context, actor permission.Actor, titleID, reviewID uint, text string) (*model.Comment, error)
	Update(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID uint, text string) (*model.Comment, error)
	Delete(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID uint) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  ReviewService
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, reviews ReviewService) CommentService {
	return &commentService{
		comments: comments,
		reviews:  reviews,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.ListByReview(ctx, reviewID)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("lookup comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor permission.Actor, titleID, reviewID uint, text string) (*model.Comment, error) {
	if !permission.Allowed(actor, permission.Content, true, true) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = &model.User{ID: actor.ID, Username: actor.Username}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID uint, text string) (*model.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !permission.Allowed(actor, permission.Content, true, comment.AuthorID == actor.ID) {
		return nil, domainerrors.ErrPermissionDenied
	}

	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !permission.Allowed(actor, permission.Content, true, comment.AuthorID == actor.ID) {
		return domainerrors.ErrPermissionDenied
	}
	return s.comments.Delete(ctx, comment)
}
