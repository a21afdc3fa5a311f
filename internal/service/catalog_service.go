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

// CatalogService handles categories and genres: public reads, admin writes.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, actor permission.Actor, name, slug string) (*model.Category, error)
	DeleteCategory(ctx context.Context, actor permission.Actor, slug string) error

	ListGenres(ctx context.Context) ([]model.Genre, error)
	CreateGenre(ctx context.Context, actor permission.Actor, name, slug string) (*model.Genre, error)
	DeleteGenre(ctx context.Context, actor permission.Actor, slug string) error
}

type catalogService struct {
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository) CatalogService {
	return &catalogService{
		categories: categories,
		genres:     genres,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, actor permission.Actor, name, slug string) (*model.Category, error) {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	category := &model.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, actor permission.Actor, slug string) error {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return domainerrors.ErrPermissionDenied
	}
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrCategoryNotFound
		}
		return fmt.Errorf("lookup category: %w", err)
	}
	return s.categories.Delete(ctx, category)
}

func (s *catalogService) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return s.genres.List(ctx)
}

func (s *catalogService) CreateGenre(ctx context.Context, actor permission.Actor, name, slug string) (*model.Genre, error) {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	genre := &model.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, actor permission.Actor, slug string) error {
	if !permission.Allowed(actor, permission.Catalog, true, false) {
		return domainerrors.ErrPermissionDenied
	}
	genre, err := s.genres.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrGenreNotFound
		}
		return fmt.Errorf("lookup genre: %w", err)
	}
	return s.genres.Delete(ctx, genre)
}
