package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

// ReviewRepository defines persistence operations on reviews.
type ReviewRepository interface {
	// Create inserts a review. A duplicate (title, author) pair is reported
	// as errors.ErrReviewExists; the unique index is the authoritative guard
	// against concurrent duplicates.
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, titleID, reviewID uint) (*model.Review, error)
	FindByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, review *model.Review) error
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrReviewExists
		}
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
