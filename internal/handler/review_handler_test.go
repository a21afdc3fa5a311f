package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/model"
	"reviewhub/internal/permission"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	args := m.Called(ctx, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, actor permission.Actor, titleID uint, text string, score int) (*model.Review, error) {
	args := m.Called(ctx, actor, titleID, text, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID uint, text *string, score *int) (*model.Review, error) {
	args := m.Called(ctx, actor, titleID, reviewID, text, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID uint) error {
	args := m.Called(ctx, actor, titleID, reviewID)
	return args.Error(0)
}

func TestGetReview_AuthorIsUsernameOnly(t *testing.T) {
	review := &model.Review{
		ID:      9,
		TitleID: 5,
		Author: &model.User{
			ID:       7,
			Username: "alice",
			Email:    "a@x.com",
			Role:     model.RoleUser,
		},
		Text:      "great",
		Score:     8,
		CreatedAt: time.Now(),
	}
	mockSvc := new(MockReviewService)
	mockSvc.On("Get", mock.Anything, uint(5), uint(9)).Return(review, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title_id", "id")
	c.SetParamValues("5", "9")

	h := NewReviewHandler(mockSvc)
	assert.NoError(t, h.GetReview(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["author"])
	assert.NotContains(t, rec.Body.String(), "a@x.com")
	assert.NotContains(t, rec.Body.String(), "role")
}

func TestListReviews_AuthorIsUsernameOnly(t *testing.T) {
	reviews := []model.Review{
		{
			ID:     1,
			Author: &model.User{ID: 7, Username: "alice", Email: "a@x.com"},
			Text:   "great",
			Score:  8,
		},
		{ID: 2, Text: "orphaned", Score: 3},
	}
	mockSvc := new(MockReviewService)
	mockSvc.On("ListByTitle", mock.Anything, uint(5)).Return(reviews, nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("title_id")
	c.SetParamValues("5")

	h := NewReviewHandler(mockSvc)
	assert.NoError(t, h.ListReviews(c))

	var body []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.Equal(t, "alice", body[0]["author"])
	assert.Equal(t, "", body[1]["author"])
	assert.NotContains(t, rec.Body.String(), "a@x.com")
}

func TestNewCommentResponse(t *testing.T) {
	comment := &model.Comment{
		ID:     3,
		Author: &model.User{ID: 7, Username: "bob", Email: "b@x.com"},
		Text:   "agreed",
	}

	payload, err := json.Marshal(newCommentResponse(comment))
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"author":"bob"`)
	assert.NotContains(t, string(payload), "b@x.com")
}
