package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
)

// supplierService implements the SupplierUsecase interface.
type supplierService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewSupplierService is the constructor for supplierService.
func NewSupplierService(txManager repository.TransactionManager, logger *slog.Logger) usecase.SupplierUsecase {
	return &supplierService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *supplierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns every supplier.
func (srv *supplierService) List(ctx context.Context) ([]*usecase.SupplierView, error) {
	var views []*usecase.SupplierView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		suppliers, err := repoFactory.NewSupplierRepository().ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list suppliers")
		}

		views = make([]*usecase.SupplierView, 0, len(suppliers))
		for _, supplier := range suppliers {
			views = append(views, usecase.NewSupplierView(supplier))
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	return views, nil
}

// Get returns a single supplier.
func (srv *supplierService) Get(ctx context.Context, id uint) (*usecase.SupplierView, error) {
	var view *usecase.SupplierView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrSupplierNotFound) {
				return errors.Wrap(domainerrors.ErrSupplierNotFound, "no such supplier")
			}

			return errors.Wrap(err, "failed to find supplier")
		}
		view = usecase.NewSupplierView(supplier)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get supplier")
	}

	return view, nil
}

// Create adds a supplier with a unique name. Admin only.
func (srv *supplierService) Create(ctx context.Context, actor entity.Principal, input *usecase.SupplierInput) (*usecase.SupplierView, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "supplier creation is admin only")
	}

	var view *usecase.SupplierView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplierRepo := repoFactory.NewSupplierRepository()

		if _, err := supplierRepo.FindByName(ctx, input.Name); err == nil {
			return errors.Wrap(domainerrors.ErrSupplierNameTaken, "supplier name already registered")
		} else if !errors.Is(err, repository.ErrSupplierNotFound) {
			return errors.Wrap(err, "failed to check supplier name")
		}

		supplier := &entity.Supplier{Name: input.Name}
		if err := supplierRepo.Create(ctx, supplier); err != nil {
			return errors.Wrap(err, "failed to create supplier")
		}
		view = usecase.NewSupplierView(supplier)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create supplier")
	}

	srv.log(ctx).Info("Supplier created", slog.String("name", input.Name))

	return view, nil
}

// Update renames a supplier. Admin only.
func (srv *supplierService) Update(ctx context.Context, actor entity.Principal, id uint, input *usecase.SupplierInput) (*usecase.SupplierView, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrAdminRequired, "supplier update is admin only")
	}

	var view *usecase.SupplierView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		supplierRepo := repoFactory.NewSupplierRepository()

		supplier, err := supplierRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrSupplierNotFound) {
				return errors.Wrap(domainerrors.ErrSupplierNotFound, "no such supplier")
			}

			return errors.Wrap(err, "failed to find supplier")
		}

		// The new name must not collide with another supplier.
		if existing, err := supplierRepo.FindByName(ctx, input.Name); err == nil {
			if existing.ID != supplier.ID {
				return errors.Wrap(domainerrors.ErrSupplierNameTaken, "supplier name already registered")
			}
		} else if !errors.Is(err, repository.ErrSupplierNotFound) {
			return errors.Wrap(err, "failed to check supplier name")
		}

		supplier.Name = input.Name
		if err := supplierRepo.Update(ctx, supplier); err != nil {
			return errors.Wrap(err, "failed to update supplier")
		}
		view = usecase.NewSupplierView(supplier)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update supplier")
	}

	srv.log(ctx).Info("Supplier renamed", slog.Uint64("supplier_id", uint64(id)), slog.String("name", input.Name))

	return view, nil
}
