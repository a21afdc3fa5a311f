package repository

import (
	"context"
	"math"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Year         int
	Name         string
}

// TitleRepository defines persistence operations on titles, including the
// computed average-score rating.
type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	FindByID(ctx context.Context, id uint) (*model.Title, error)
	Update(ctx context.Context, title *model.Title) error
	ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error
	Delete(ctx context.Context, title *model.Title) error
	List(ctx context.Context, filter TitleFilter) ([]model.Title, error)
	Rating(ctx context.Context, titleID uint) (*int, error)
	Ratings(ctx context.Context, titleIDs []uint) (map[uint]int, error)
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository builds a GORM-backed repository.
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	var title model.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Update(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Select("Genres").Delete(title).Error
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter) ([]model.Title, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		Order("titles.id")

	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Year != 0 {
		q = q.Where("titles.year = ?", filter.Year)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}

	var titles []model.Title
	if err := q.Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

// Rating returns the rounded average review score for a title, or nil when
// the title has no reviews.
func (r *titleRepository) Rating(ctx context.Context, titleID uint) (*int, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return nil, nil
	}
	rating := int(math.Round(*avg))
	return &rating, nil
}

// Ratings returns rounded average scores for the given titles in one query.
// Unreviewed titles are absent from the result.
func (r *titleRepository) Ratings(ctx context.Context, titleIDs []uint) (map[uint]int, error) {
	if len(titleIDs) == 0 {
		return map[uint]int{}, nil
	}

	var rows []struct {
		TitleID uint
		Avg     float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[uint]int, len(rows))
	for _, row := range rows {
		ratings[row.TitleID] = int(math.Round(row.Avg))
	}
	return ratings, nil
}
