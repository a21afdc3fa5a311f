package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
)

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

// MockGenreRepository is a mock implementation of repository.GenreRepository.
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Genre), args.Error(1)
}

func (m *MockGenreRepository) Delete(ctx context.Context, genre *model.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepository) List(ctx context.Context) ([]model.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Genre), args.Error(1)
}

func TestCatalogService_CreateCategory(t *testing.T) {
	admin := permission.Actor{ID: 1, Role: model.RoleAdmin}

	t.Run("admin creates category", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := NewCatalogService(mockCategories, new(MockGenreRepository))
		category, err := svc.CreateCategory(context.Background(), admin, "Films", "films")
		assert.NoError(t, err)
		assert.Equal(t, "films", category.Slug)
		mockCategories.AssertExpectations(t)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		mockCategories := new(MockCategoryRepository)
		mockCategories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
			Return(gorm.ErrDuplicatedKey)

		svc := NewCatalogService(mockCategories, new(MockGenreRepository))
		_, err := svc.CreateCategory(context.Background(), admin, "Films", "films")
		assert.ErrorIs(t, err, domainerrors.ErrSlugTaken)
	})

	for _, actor := range []permission.Actor{
		{ID: 2, Role: model.RoleUser},
		{ID: 3, Role: model.RoleModerator},
		permission.AnonymousActor,
	} {
		t.Run("write denied for non-admin: "+string(actor.Role), func(t *testing.T) {
			mockCategories := new(MockCategoryRepository)
			svc := NewCatalogService(mockCategories, new(MockGenreRepository))
			_, err := svc.CreateCategory(context.Background(), actor, "Films", "films")
			assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
			mockCategories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogService_DeleteGenre(t *testing.T) {
	admin := permission.Actor{ID: 1, Role: model.RoleAdmin}

	t.Run("admin deletes genre", func(t *testing.T) {
		mockGenres := new(MockGenreRepository)
		genre := &model.Genre{ID: 4, Slug: "rock"}
		mockGenres.On("FindBySlug", mock.Anything, "rock").Return(genre, nil)
		mockGenres.On("Delete", mock.Anything, genre).Return(nil)

		svc := NewCatalogService(new(MockCategoryRepository), mockGenres)
		assert.NoError(t, svc.DeleteGenre(context.Background(), admin, "rock"))
		mockGenres.AssertExpectations(t)
	})

	t.Run("missing genre", func(t *testing.T) {
		mockGenres := new(MockGenreRepository)
		mockGenres.On("FindBySlug", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := NewCatalogService(new(MockCategoryRepository), mockGenres)
		err := svc.DeleteGenre(context.Background(), admin, "ghost")
		assert.ErrorIs(t, err, domainerrors.ErrGenreNotFound)
	})
}

func TestCatalogService_PublicReads(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockGenres := new(MockGenreRepository)
	mockCategories.On("List", mock.Anything).Return([]model.Category{{Slug: "films"}}, nil)
	mockGenres.On("List", mock.Anything).Return([]model.Genre{{Slug: "rock"}}, nil)

	svc := NewCatalogService(mockCategories, mockGenres)

	categories, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, categories, 1)

	genres, err := svc.ListGenres(context.Background())
	assert.NoError(t, err)
	assert.Len(t, genres, 1)
}
