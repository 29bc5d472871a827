package impl

import (
	"context"
	"testing"
	"time"

	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	mockRepo "bookkeep/internal/mocks/repository"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := testGroupUser(7)
	input := &usecase.LoginInput{Username: "group", Password: "secret"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByUsername(ctx, "group").Return(user, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.hasher.EXPECT().Check("secret", user.PasswordHash).Return(true)
	fx.sessions.EXPECT().Create(ctx, user).Return(&entity.Session{
		Token:     "token-1",
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "登录成功", output.Message)
	assert.Equal(t, "group", output.User.Username)
	assert.Equal(t, "group_user", output.User.Role)
	require.NotNil(t, output.Session)
	assert.Equal(t, "token-1", output.Session.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := testGroupUser(7)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByUsername(ctx, "group").Return(user, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.hasher.EXPECT().Check("nope", user.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "group", Password: "nope"})

	require.NoError(t, err)
	assert.False(t, output.Success)
	assert.Equal(t, "用户名或密码错误", output.Message)
	assert.Nil(t, output.User)
	assert.Nil(t, output.Session)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

			_ = fn(mockFactory)
		}).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	require.NoError(t, err)
	assert.False(t, output.Success)
	assert.Equal(t, "用户名或密码错误", output.Message)
}

func TestAuthService_Logout_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.sessions.EXPECT().Delete(ctx, "token-1").Return(nil)

	err := fx.service.Logout(ctx, "token-1")

	require.NoError(t, err)
}

func TestAuthService_Me_FillsManagerUsername(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	manager := testGroupUser(3)
	student := testStudent(9, manager.ID)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
			mockUserRepo.EXPECT().FindByID(ctx, manager.ID).Return(manager, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Me(ctx, principalOf(student))

	require.NoError(t, err)
	assert.Equal(t, "student", view.Username)
	assert.Equal(t, "student", view.Role)
	assert.Equal(t, "group", view.ManagerUsername)
}

func TestAuthService_Me_SessionUserGone(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	actor := entity.Principal{UserID: 42, Username: "ghost", Role: entity.RoleStudent}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, uint(42)).Return(nil, repository.ErrUserNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrSessionUserGone, "session user no longer exists"))

	view, err := fx.service.Me(ctx, actor)

	assert.Error(t, err)
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionUserGone))
}
