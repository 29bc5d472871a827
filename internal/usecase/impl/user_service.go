package impl

import (
	"context"
	"log/slog"

	"bookkeep/config"
	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/domain/service"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager           repository.TransactionManager
	hasher              service.PasswordHasher
	registrationEnabled bool
	logger              *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	registrationEnabled := false
	if params.Config != nil {
		registrationEnabled = params.Config.Registration.Enabled
	}

	return &userService{
		txManager:           params.TxManager,
		hasher:              params.Hasher,
		registrationEnabled: registrationEnabled,
		logger:              params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns every account. Admin only.
func (srv *userService) List(ctx context.Context, actor entity.Principal) ([]*usecase.UserView, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "user list is admin only")
	}

	var views []*usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users, err := repoFactory.NewUserRepository().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		views = make([]*usecase.UserView, 0, len(users))
		for _, user := range users {
			views = append(views, usecase.NewUserView(user))
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return views, nil
}

// Create adds an account with the given role. Admin only.
func (srv *userService) Create(ctx context.Context, actor entity.Principal, input *usecase.CreateUserInput) (*usecase.UserView, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "user creation is admin only")
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole.WithDetails(validRolesDetail()), "unknown role")
	}

	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Usernames are unique across all roles.
		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return errors.Wrap(domainerrors.ErrUsernameTaken, "username already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username")
		}

		user := &entity.User{
			Username:     input.Username,
			Role:         role,
			PasswordHash: "",
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}

		// 2. Supplier accounts may link their supplier, student accounts
		// their manager. Both links are validated before use.
		if role == entity.RoleSupplier && input.SupplierID != nil {
			if _, err := repoFactory.NewSupplierRepository().FindByID(ctx, *input.SupplierID); err != nil {
				if errors.Is(err, repository.ErrSupplierNotFound) {
					return errors.Wrap(domainerrors.ErrSupplierNotFound, "linked supplier does not exist")
				}

				return errors.Wrap(err, "failed to check supplier")
			}
			user.SupplierID = input.SupplierID
		}
		if role == entity.RoleStudent && input.ManagerID != nil {
			manager, err := userRepo.FindByID(ctx, *input.ManagerID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrManagerNotFound, "manager does not exist")
				}

				return errors.Wrap(err, "failed to check manager")
			}
			if manager.Role != entity.RoleGroupUser {
				return errors.Wrap(domainerrors.ErrManagerNotGroupUser, "manager must be a group user")
			}
			user.ManagerID = input.ManagerID
		}

		// 3. Hash the password and persist.
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}
		view = usecase.NewUserView(user)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("User creation failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.String("username", input.Username), slog.String("role", input.Role))

	return view, nil
}

// UpdatePassword resets another account's password. Admin only.
func (srv *userService) UpdatePassword(ctx context.Context, actor entity.Principal, userID uint, input *usecase.UpdatePasswordInput) (*usecase.UserView, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "password reset is admin only")
	}

	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "password reset target missing")
			}

			return errors.Wrap(err, "failed to find user")
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		if err := userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}
		view = usecase.NewUserView(user)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reset password")
	}

	srv.log(ctx).Info("Password reset", slog.Uint64("user_id", uint64(userID)))

	return view, nil
}

// UpdateOwnPassword resets the caller's own password.
func (srv *userService) UpdateOwnPassword(ctx context.Context, actor entity.Principal, input *usecase.UpdatePasswordInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		if err := userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to change password")
	}

	srv.log(ctx).Info("Password changed", slog.Uint64("user_id", uint64(actor.UserID)))

	return nil
}

// Delete removes an account. Admin only, and never the caller's own account.
// Deleting a supplier account takes that supplier's catalog offline.
func (srv *userService) Delete(ctx context.Context, actor entity.Principal, userID uint) error {
	if actor.Role != entity.RoleAdmin {
		return errors.Wrap(domainerrors.ErrAdminRequired, "user deletion is admin only")
	}
	if userID == actor.UserID {
		return errors.Wrap(domainerrors.ErrCannotDeleteSelf, "refusing to delete own account")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "deletion target missing")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// A supplier account going away must not leave its catalog
		// purchasable.
		if user.Role == entity.RoleSupplier && user.SupplierID != nil {
			if err := repoFactory.NewProductRepository().SoftDeleteBySupplier(ctx, *user.SupplierID); err != nil {
				return errors.Wrap(err, "failed to retire supplier products")
			}
		}

		if err := userRepo.Delete(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("User deletion failed", slog.Uint64("user_id", uint64(userID)), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Uint64("user_id", uint64(userID)))

	return nil
}

// Register self-registers a student account under a named group user.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserView, error) {
	if !srv.registrationEnabled {
		return nil, errors.Wrap(domainerrors.ErrRegistrationDisabled, "self registration disabled")
	}

	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// 1. Usernames are unique across all roles.
		if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
			return errors.Wrap(domainerrors.ErrUsernameTaken, "username already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username")
		}

		// 2. The manager must exist and be a group user.
		manager, err := userRepo.FindByUsername(ctx, input.ManagerUsername)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrManagerNotFound, "manager does not exist")
			}

			return errors.Wrap(err, "failed to find manager")
		}
		if manager.Role != entity.RoleGroupUser {
			return errors.Wrap(domainerrors.ErrManagerNotGroupUser, "manager must be a group user")
		}

		// 3. Hash the password and persist the student.
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		user := &entity.User{
			Username:     input.Username,
			Role:         entity.RoleStudent,
			PasswordHash: hash,
			ManagerID:    &manager.ID,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		view = usecase.NewUserView(user)
		view.ManagerUsername = manager.Username

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register")
	}

	srv.log(ctx).Info("Student registered",
		slog.String("username", input.Username),
		slog.String("manager", input.ManagerUsername),
	)

	return view, nil
}

func validRolesDetail() string {
	detail := ""
	for i, role := range entity.ValidRoles() {
		if i > 0 {
			detail += ", "
		}
		detail += role.String()
	}

	return detail
}
