package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/auth"
	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
)

func newUserService(users *MockUserRepository, mail *MockMailer) UserService {
	return NewUserService(users, auth.NewCodeIssuer("test-secret", 24*time.Hour), mail)
}

func TestUserService_List(t *testing.T) {
	admin := permission.Actor{ID: 1, Role: model.RoleAdmin}

	t.Run("admin lists users", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("List", mock.Anything).Return([]model.User{{ID: 1}, {ID: 2}}, nil)

		users, err := newUserService(mockRepo, new(MockMailer)).List(context.Background(), admin)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
	})

	for _, actor := range []permission.Actor{
		{ID: 2, Role: model.RoleUser},
		{ID: 3, Role: model.RoleModerator},
		permission.AnonymousActor,
	} {
		t.Run("non-admin denied: "+string(actor.Role), func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			_, err := newUserService(mockRepo, new(MockMailer)).List(context.Background(), actor)
			assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
			mockRepo.AssertNotCalled(t, "List", mock.Anything)
		})
	}
}

func TestUserService_Create(t *testing.T) {
	admin := permission.Actor{ID: 1, Role: model.RoleAdmin}

	t.Run("admin creates moderator, code is mailed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMail := new(MockMailer)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mockMail.On("SendConfirmationCode", mock.Anything, "m@x.com", "mod", mock.Anything).Return(nil)

		user, err := newUserService(mockRepo, mockMail).Create(context.Background(), admin, CreateUserInput{
			Email:    "m@x.com",
			Username: "mod",
			Role:     model.RoleModerator,
		})
		assert.NoError(t, err)
		assert.Equal(t, model.RoleModerator, user.Role)
		mockMail.AssertNumberOfCalls(t, "SendConfirmationCode", 1)
	})

	t.Run("role defaults to user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMail := new(MockMailer)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mockMail.On("SendConfirmationCode", mock.Anything, "u@x.com", "newbie", mock.Anything).Return(nil)

		user, err := newUserService(mockRepo, mockMail).Create(context.Background(), admin, CreateUserInput{
			Email:    "u@x.com",
			Username: "newbie",
		})
		assert.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := newUserService(new(MockUserRepository), new(MockMailer)).Create(context.Background(), admin, CreateUserInput{
			Email:    "u@x.com",
			Username: "newbie",
			Role:     model.Role("superuser"),
		})
		var ve *domainerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("username me rejected", func(t *testing.T) {
		_, err := newUserService(new(MockUserRepository), new(MockMailer)).Create(context.Background(), admin, CreateUserInput{
			Email:    "u@x.com",
			Username: "ME",
		})
		var ve *domainerrors.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "username", ve.Field)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(gorm.ErrDuplicatedKey)

		_, err := newUserService(mockRepo, new(MockMailer)).Create(context.Background(), admin, CreateUserInput{
			Email:    "u@x.com",
			Username: "taken",
		})
		assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	})

	t.Run("moderator may not create users", func(t *testing.T) {
		_, err := newUserService(new(MockUserRepository), new(MockMailer)).Create(context.Background(),
			permission.Actor{ID: 2, Role: model.RoleModerator}, CreateUserInput{
				Email:    "u@x.com",
				Username: "newbie",
			})
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	actor := permission.Actor{ID: 7, Role: model.RoleUser}
	stored := func() *model.User {
		return &model.User{ID: 7, Username: "alice", Email: "a@x.com", Role: model.RoleUser}
	}

	t.Run("profile fields update", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		bio := "wrote some reviews"
		user, err := newUserService(mockRepo, new(MockMailer)).UpdateMe(context.Background(), actor, ProfileInput{Bio: &bio})
		assert.NoError(t, err)
		assert.Equal(t, "wrote some reviews", user.Bio)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("role change denied on self-service path", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)

		role := model.RoleAdmin
		_, err := newUserService(mockRepo, new(MockMailer)).UpdateMe(context.Background(), actor, ProfileInput{Role: &role})
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("resubmitting the current role is not a mutation", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		role := model.RoleUser
		user, err := newUserService(mockRepo, new(MockMailer)).UpdateMe(context.Background(), actor, ProfileInput{Role: &role})
		assert.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
	})
}

func TestUserService_Update(t *testing.T) {
	admin := permission.Actor{ID: 1, Role: model.RoleAdmin}

	t.Run("admin promotes a user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").
			Return(&model.User{ID: 7, Username: "alice", Role: model.RoleUser}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		role := model.RoleModerator
		user, err := newUserService(mockRepo, new(MockMailer)).Update(context.Background(), admin, "alice", UpdateUserInput{Role: &role})
		assert.NoError(t, err)
		assert.Equal(t, model.RoleModerator, user.Role)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := newUserService(mockRepo, new(MockMailer)).Update(context.Background(), admin, "ghost", UpdateUserInput{})
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}
