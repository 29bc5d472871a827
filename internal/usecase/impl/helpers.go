package impl

import (
	"context"

	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"

	"github.com/pkg/errors"
)

// loadActor fetches the full account behind an authenticated principal. The
// session may outlive the account, so a miss maps to a 401, not a 404.
func loadActor(ctx context.Context, userRepo repository.UserRepository, actor entity.Principal) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionUserGone, "session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load acting user")
	}

	return user, nil
}

// visibleUserIDs resolves which owners' records the actor may see. Admins see
// everyone (nil, meaning unscoped), group users themselves plus their managed
// students, everyone else only themselves. Management links change, so this
// is resolved fresh on every request.
func visibleUserIDs(ctx context.Context, userRepo repository.UserRepository, actor *entity.User) ([]uint, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil, nil
	case entity.RoleGroupUser:
		managed, err := userRepo.ListManagedIDs(ctx, actor.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list managed users")
		}

		return append([]uint{actor.ID}, managed...), nil
	default:
		return []uint{actor.ID}, nil
	}
}

// managesUser reports whether the group user manages the given owner, either
// as themselves or through a managed student.
func managesUser(ctx context.Context, userRepo repository.UserRepository, groupUser *entity.User, ownerID uint) (bool, error) {
	if ownerID == groupUser.ID {
		return true, nil
	}

	owner, err := userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to load record owner")
	}

	return owner.ManagerID != nil && *owner.ManagerID == groupUser.ID, nil
}

// usernameOf looks up a username for display, returning "" when the account
// is gone rather than failing the read.
func usernameOf(ctx context.Context, userRepo repository.UserRepository, id uint) string {
	user, err := userRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}

	return user.Username
}

// supplierNameOf looks up a supplier name for display, returning "" when the
// supplier is gone rather than failing the read.
func supplierNameOf(ctx context.Context, supplierRepo repository.SupplierRepository, id uint) string {
	supplier, err := supplierRepo.FindByID(ctx, id)
	if err != nil {
		return ""
	}

	return supplier.Name
}
