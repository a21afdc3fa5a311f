package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/cache"
	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

const titleCacheTTL = 5 * time.Minute

// TitleInput is the admin title-creation payload. Category and genres are
// referenced by slug.
type TitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// TitlePatch is a partial title edit; nil fields are left unchanged.
type TitlePatch struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// TitleService handles titles: public reads with computed ratings, admin
// writes. Single-title reads go through the redis cache; review writes
// invalidate it via InvalidateCache.
type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter) ([]model.Title, error)
	Get(ctx context.Context, id uint) (*model.Title, error)
	Create(ctx context.Context, actor permission.Actor, input TitleInput) (*model.Title, error)
	Update(ctx context.Context, actor permission.Actor, id uint, patch TitlePatch) (*model.Title, error)
	Delete(ctx context.Context, actor permission.Actor, id uint) error
	InvalidateCache(ctx context.Context, id uint)
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	cache      *cache.Client
}

// NewTitleService creates a new title service.
func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	cache *cache.Client,
) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		cache:      cache,
	}
}

func (s *titleService) cacheKey(id uint) string {
	return fmt.Sprintf("title:%d", id)
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter) ([]model.Title, error) {
	titles, err := s.titles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	ids := make([]uint, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}
	ratings, err := s.titles.Ratings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("compute ratings: %w", err)
	}
	for i := range titles {
		if rating, ok := ratings[titles[i].ID]; ok {
			r := rating
			titles[i].Rating = &r
		}
	}
	return titles, nil
}

// Get retrieves a title with its rating, cache-aside.
func (s *titleService) Get(ctx context.Context, id uint) (*model.Title, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Title
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("lookup title: %w", err)
	}
	title.Rating, err = s.titles.Rating(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("compute rating: %w", err)
	}

	if payload, err := json.Marshal(title); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, titleCacheTTL)
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, actor permission.Actor, input TitleInput) (*model.Title, error) {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}

	title := &model.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if input.CategorySlug != "" {
		category, err := s.categories.FindBySlug(ctx, input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domainerrors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("lookup category: %w", err)
		}
		title.CategoryID = &category.ID
		title.Category = category
	}
	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return title, nil
}

func (s *titleService) Update(ctx context.Context, actor permission.Actor, id uint, patch TitlePatch) (*model.Title, error) {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("lookup title: %w", err)
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}
	if patch.CategorySlug != nil {
		if *patch.CategorySlug == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.categories.FindBySlug(ctx, *patch.CategorySlug)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, domainerrors.ErrCategoryNotFound
				}
				return nil, fmt.Errorf("lookup category: %w", err)
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}
	if patch.GenreSlugs != nil {
		genres, err := s.resolveGenres(ctx, *patch.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
		title.Genres = genres
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	s.InvalidateCache(ctx, id)
	return title, nil
}

func (s *titleService) Delete(ctx context.Context, actor permission.Actor, id uint) error {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return domainerrors.ErrPermissionDenied
	}
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrTitleNotFound
		}
		return fmt.Errorf("lookup title: %w", err)
	}
	if err := s.titles.Delete(ctx, title); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	s.InvalidateCache(ctx, id)
	return nil
}

// InvalidateCache drops the cached detail view after a review write changes
// the rating.
func (s *titleService) InvalidateCache(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]model.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("lookup genres: %w", err)
	}
	if len(genres) != len(slugs) {
		return nil, domainerrors.ErrGenreNotFound
	}
	return genres, nil
}
