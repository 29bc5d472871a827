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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage clamps paging inputs to sane bounds.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(txManager repository.TransactionManager, logger *slog.Logger) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the catalog page visible to the actor. Suppliers are pinned
// to their own catalog; a supplier account without a linked supplier sees an
// empty page rather than an error.
func (srv *productService) List(ctx context.Context, actor entity.Principal, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)
	result := &usecase.ProductPage{Items: []*usecase.ProductView{}, Page: page, PageSize: pageSize}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		filter := repository.ProductFilter{
			SupplierID: input.SupplierID,
			Name:       input.Name,
			Model:      input.Model,
			MinPrice:   input.MinPrice,
			MaxPrice:   input.MaxPrice,
			Page:       page,
			PageSize:   pageSize,
		}
		if user.Role == entity.RoleSupplier {
			if user.SupplierID == nil {
				return nil
			}
			filter.SupplierID = user.SupplierID
		}

		products, total, err := repoFactory.NewProductRepository().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}

		includeInternal := user.Role.CanViewInternalPrice()
		supplierRepo := repoFactory.NewSupplierRepository()
		names := map[uint]string{}
		for _, product := range products {
			name, ok := names[product.SupplierID]
			if !ok {
				name = supplierNameOf(ctx, supplierRepo, product.SupplierID)
				names[product.SupplierID] = name
			}
			result.Items = append(result.Items, usecase.NewProductView(product, name, includeInternal))
		}
		result.Total = total

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return result, nil
}

// Get returns a single product, internal price shaped per role.
func (srv *productService) Get(ctx context.Context, actor entity.Principal, id uint) (*usecase.ProductView, error) {
	var view *usecase.ProductView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		product, err := repoFactory.NewProductRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if user.Role == entity.RoleSupplier && !user.ActsForSupplier(product.SupplierID) {
			return errors.Wrap(domainerrors.ErrProductAccessDenied, "product belongs to another supplier")
		}

		name := supplierNameOf(ctx, repoFactory.NewSupplierRepository(), product.SupplierID)
		view = usecase.NewProductView(product, name, user.Role.CanViewInternalPrice())

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return view, nil
}

// Create adds a product. Suppliers may only stock their own catalog and get
// the internal price pinned to the tax-included price; admins may set both.
func (srv *productService) Create(ctx context.Context, actor entity.Principal, input *usecase.CreateProductInput) (*usecase.ProductView, error) {
	var view *usecase.ProductView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		// 1. Only admins and supplier users stock the catalog.
		if user.Role != entity.RoleAdmin && user.Role != entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrProductCreateDenied, "role may not create products")
		}

		internalPrice := input.TaxIncludedPrice
		if user.Role == entity.RoleSupplier {
			if !user.ActsForSupplier(input.SupplierID) {
				return errors.Wrap(domainerrors.ErrProductSelfOnly, "supplier may only stock own catalog")
			}
		} else if input.InternalPrice != nil {
			internalPrice = *input.InternalPrice
		}

		// 2. The supplier must exist.
		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, input.SupplierID)
		if err != nil {
			if errors.Is(err, repository.ErrSupplierNotFound) {
				return errors.Wrap(domainerrors.ErrSupplierNotFound, "no such supplier")
			}

			return errors.Wrap(err, "failed to find supplier")
		}

		product := &entity.Product{
			Name:             input.Name,
			Brand:            input.Brand,
			Model:            input.Model,
			Specification:    input.Specification,
			InternalPrice:    internalPrice,
			TaxIncludedPrice: input.TaxIncludedPrice,
			SupplierID:       input.SupplierID,
		}
		if err := repoFactory.NewProductRepository().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		view = usecase.NewProductView(product, supplier.Name, user.Role.CanViewInternalPrice())

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Product creation failed", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("name", input.Name), slog.Uint64("supplier_id", uint64(input.SupplierID)))

	return view, nil
}

// Update edits a product. Admin edits any field, the owning supplier any
// field except the internal price.
func (srv *productService) Update(ctx context.Context, actor entity.Principal, id uint, input *usecase.UpdateProductInput) (*usecase.ProductView, error) {
	var view *usecase.ProductView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		productRepo := repoFactory.NewProductRepository()
		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		// 1. Owning supplier or admin, and only the admin touches the
		// internal price.
		switch user.Role {
		case entity.RoleSupplier:
			if !user.ActsForSupplier(product.SupplierID) {
				return errors.Wrap(domainerrors.ErrProductUpdateDenied, "product belongs to another supplier")
			}
			if input.InternalPrice != nil {
				return errors.Wrap(domainerrors.ErrInternalPriceEditDenied, "supplier may not set internal price")
			}
		case entity.RoleAdmin:
		default:
			return errors.Wrap(domainerrors.ErrProductUpdateDenied, "role may not update products")
		}

		// 2. Apply the provided fields.
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Model != nil {
			product.Model = *input.Model
		}
		if input.Specification != nil {
			product.Specification = *input.Specification
		}
		if input.TaxIncludedPrice != nil {
			product.TaxIncludedPrice = *input.TaxIncludedPrice
		}
		if input.InternalPrice != nil && user.Role == entity.RoleAdmin {
			product.InternalPrice = *input.InternalPrice
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		name := supplierNameOf(ctx, repoFactory.NewSupplierRepository(), product.SupplierID)
		view = usecase.NewProductView(product, name, user.Role.CanViewInternalPrice())

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Uint64("product_id", uint64(id)))

	return view, nil
}

// Delete soft-deletes a product. Admin or the owning supplier.
func (srv *productService) Delete(ctx context.Context, actor entity.Principal, id uint) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		productRepo := repoFactory.NewProductRepository()
		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		switch user.Role {
		case entity.RoleSupplier:
			if !user.ActsForSupplier(product.SupplierID) {
				return errors.Wrap(domainerrors.ErrProductDeleteDenied, "product belongs to another supplier")
			}
		case entity.RoleAdmin:
		default:
			return errors.Wrap(domainerrors.ErrProductDeleteDenied, "role may not delete products")
		}

		if err := productRepo.SoftDelete(ctx, product.ID); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Uint64("product_id", uint64(id)))

	return nil
}
