// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/domain/service"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	sessions  service.SessionStore
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Sessions  service.SessionStore
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager: params.TxManager,
		sessions:  params.Sessions,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login checks the credentials and mints a session on success. A wrong
// username or password is reported through the output, not as an error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Login lookup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to log in")
	}

	if user == nil || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("username", input.Username))

		return &usecase.LoginOutput{Success: false, Message: "用户名或密码错误"}, nil
	}

	session, err := srv.sessions.Create(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	srv.log(ctx).Info("User logged in",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", user.Username),
		slog.String("role", user.Role.String()),
	)

	return &usecase.LoginOutput{
		Success: true,
		Message: "登录成功",
		User:    usecase.NewUserView(user),
		Session: session,
	}, nil
}

// Logout discards the session behind the token.
func (srv *authService) Logout(ctx context.Context, token string) error {
	if err := srv.sessions.Delete(ctx, token); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Info("User logged out")

	return nil
}

// Me returns the freshly loaded account of the authenticated user, so role
// or manager changes show up without a new login.
func (srv *authService) Me(ctx context.Context, actor entity.Principal) (*usecase.UserView, error) {
	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		view = usecase.NewUserView(user)
		if user.ManagerID != nil {
			view.ManagerUsername = usernameOf(ctx, userRepo, *user.ManagerID)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current user")
	}

	return view, nil
}
