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
	"reviewhub/internal/repository"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (*model.Review, error) {
	args := m.Called(ctx, titleID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	args := m.Called(ctx, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockTitleService is a mock implementation of TitleService.
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter) ([]model.Title, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Title), args.Error(1)
}

func (m *MockTitleService) Get(ctx context.Context, id uint) (*model.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, actor permission.Actor, input TitleInput) (*model.Title, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, actor permission.Actor, id uint, patch TitlePatch) (*model.Title, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, actor permission.Actor, id uint) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockTitleService) InvalidateCache(ctx context.Context, id uint) {
	m.Called(ctx, id)
}

var (
	alice     = permission.Actor{ID: 1, Username: "alice", Role: model.RoleUser}
	bob       = permission.Actor{ID: 2, Username: "bob", Role: model.RoleUser}
	moderator = permission.Actor{ID: 3, Username: "mod", Role: model.RoleModerator}
)

func TestReviewService_Create(t *testing.T) {
	tests := []struct {
		name          string
		actor         permission.Actor
		score         int
		setupMock     func(*MockReviewRepository, *MockTitleService)
		expectedError error
	}{
		{
			name:  "successful creation",
			actor: alice,
			score: 8,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mTitles.On("Get", mock.Anything, uint(5)).Return(&model.Title{ID: 5}, nil)
				mRepo.On("FindByTitleAndAuthor", mock.Anything, uint(5), uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				mTitles.On("InvalidateCache", mock.Anything, uint(5)).Return()
			},
		},
		{
			name:          "anonymous denied",
			actor:         permission.AnonymousActor,
			score:         8,
			setupMock:     func(*MockReviewRepository, *MockTitleService) {},
			expectedError: domainerrors.ErrPermissionDenied,
		},
		{
			name:          "score out of range",
			actor:         alice,
			score:         11,
			setupMock:     func(*MockReviewRepository, *MockTitleService) {},
			expectedError: domainerrors.NewValidation("score", "must be between 1 and 10"),
		},
		{
			name:  "unknown title",
			actor: alice,
			score: 8,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mTitles.On("Get", mock.Anything, uint(5)).Return(nil, domainerrors.ErrTitleNotFound)
			},
			expectedError: domainerrors.ErrTitleNotFound,
		},
		{
			name:  "duplicate caught by fast path",
			actor: alice,
			score: 8,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mTitles.On("Get", mock.Anything, uint(5)).Return(&model.Title{ID: 5}, nil)
				mRepo.On("FindByTitleAndAuthor", mock.Anything, uint(5), uint(1)).
					Return(&model.Review{ID: 9, TitleID: 5, AuthorID: 1}, nil)
			},
			expectedError: domainerrors.ErrReviewExists,
		},
		{
			// concurrent duplicate slips past the existence check and hits
			// the unique index instead
			name:  "duplicate caught by storage constraint",
			actor: alice,
			score: 8,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mTitles.On("Get", mock.Anything, uint(5)).Return(&model.Title{ID: 5}, nil)
				mRepo.On("FindByTitleAndAuthor", mock.Anything, uint(5), uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).
					Return(domainerrors.ErrReviewExists)
			},
			expectedError: domainerrors.ErrReviewExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReviewRepository)
			mockTitles := new(MockTitleService)
			tt.setupMock(mockRepo, mockTitles)

			svc := NewReviewService(mockRepo, mockTitles)
			review, err := svc.Create(context.Background(), tt.actor, 5, "great", tt.score)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				assert.Equal(t, uint(5), review.TitleID)
				assert.Equal(t, tt.actor.ID, review.AuthorID)
				if assert.NotNil(t, review.Author) {
					assert.Equal(t, tt.actor.Username, review.Author.Username)
				}
			}

			mockRepo.AssertExpectations(t)
			mockTitles.AssertExpectations(t)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	stored := func() *model.Review {
		return &model.Review{ID: 9, TitleID: 5, AuthorID: alice.ID, Text: "great", Score: 8}
	}

	tests := []struct {
		name          string
		actor         permission.Actor
		setupMock     func(*MockReviewRepository, *MockTitleService)
		expectedError error
	}{
		{
			name:  "owner edits own review",
			actor: alice,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mRepo.On("FindByID", mock.Anything, uint(5), uint(9)).Return(stored(), nil)
				mRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				mTitles.On("InvalidateCache", mock.Anything, uint(5)).Return()
			},
		},
		{
			name:  "moderator edits any review",
			actor: moderator,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mRepo.On("FindByID", mock.Anything, uint(5), uint(9)).Return(stored(), nil)
				mRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				mTitles.On("InvalidateCache", mock.Anything, uint(5)).Return()
			},
		},
		{
			name:  "non-owner plain user denied",
			actor: bob,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mRepo.On("FindByID", mock.Anything, uint(5), uint(9)).Return(stored(), nil)
			},
			expectedError: domainerrors.ErrPermissionDenied,
		},
		{
			name:  "missing review",
			actor: alice,
			setupMock: func(mRepo *MockReviewRepository, mTitles *MockTitleService) {
				mRepo.On("FindByID", mock.Anything, uint(5), uint(9)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: domainerrors.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReviewRepository)
			mockTitles := new(MockTitleService)
			tt.setupMock(mockRepo, mockTitles)

			text := "updated"
			svc := NewReviewService(mockRepo, mockTitles)
			review, err := svc.Update(context.Background(), tt.actor, 5, 9, &text, nil)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "updated", review.Text)
			}

			mockRepo.AssertExpectations(t)
			mockTitles.AssertExpectations(t)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	stored := &model.Review{ID: 9, TitleID: 5, AuthorID: alice.ID}

	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockTitles := new(MockTitleService)
		mockRepo.On("FindByID", mock.Anything, uint(5), uint(9)).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, stored).Return(nil)
		mockTitles.On("InvalidateCache", mock.Anything, uint(5)).Return()

		svc := NewReviewService(mockRepo, mockTitles)
		assert.NoError(t, svc.Delete(context.Background(), alice, 5, 9))
		mockRepo.AssertExpectations(t)
	})

	t.Run("anonymous denied", func(t *testing.T) {
		mockRepo := new(MockReviewRepository)
		mockTitles := new(MockTitleService)
		mockRepo.On("FindByID", mock.Anything, uint(5), uint(9)).Return(stored, nil)

		svc := NewReviewService(mockRepo, mockTitles)
		err := svc.Delete(context.Background(), permission.AnonymousActor, 5, 9)
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	})
}
