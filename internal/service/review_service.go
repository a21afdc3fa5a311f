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

// ReviewService handles reviews nested under titles. Reads are public; writes
// go through the permission evaluator with ownership resolved against the
// stored record.
type ReviewService interface {
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
	Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error)
	Create(ctx context.Context, actor permission.Actor, titleID uint, text string, score int) (*model.Review, error)
	Update(ctx context.Context, actor permission.Actor, titleID, reviewID uint, text *string, score *int) (*model.Review, error)
	Delete(ctx context.Context, actor permission.Actor, titleID, reviewID uint) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  TitleService
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, titles TitleService) ReviewService {
	return &reviewService{
		reviews: reviews,
		titles:  titles,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.ListByTitle(ctx, titleID)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}
	return review, nil
}

// Create inserts a review, enforcing one review per (title, author). The
// existence check is a fast path; the insert itself reports the conflict when
// a concurrent duplicate slips past it.
func (s *reviewService) Create(ctx context.Context, actor permission.Actor, titleID uint, text string, score int) (*model.Review, error) {
	if !permission.Allowed(actor, permission.Content, true, true) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if score < 1 || score > 10 {
		return nil, domainerrors.NewValidation("score", "must be between 1 and 10")
	}
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		return nil, err
	}

	_, err := s.reviews.FindByTitleAndAuthor(ctx, titleID, actor.ID)
	if err == nil {
		return nil, domainerrors.ErrReviewExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	review.Author = &model.User{ID: actor.ID, Username: actor.Username}
	s.titles.InvalidateCache(ctx, titleID)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID uint, text *string, score *int) (*model.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.Allowed(actor, permission.Content, true, review.AuthorID == actor.ID) {
		return nil, domainerrors.ErrPermissionDenied
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		if *score < 1 || *score > 10 {
			return nil, domainerrors.NewValidation("score", "must be between 1 and 10")
		}
		review.Score = *score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	s.titles.InvalidateCache(ctx, titleID)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !permission.Allowed(actor, permission.Content, true, review.AuthorID == actor.ID) {
		return domainerrors.ErrPermissionDenied
	}
	if err := s.reviews.Delete(ctx, review); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	s.titles.InvalidateCache(ctx, titleID)
	return nil
}
