package postgres

import (
	"context"

	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface using GORM.
// Soft-deleted rows are filtered out of every read path.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySupplier retrieves a product by ID scoped to the given supplier.
func (repo *productRepository) FindBySupplier(ctx context.Context, id uint, supplierID uint) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND supplier_id = ? AND is_deleted = ?", id, supplierID, false).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by supplier")
	}

	return toProductDomain(&productM), nil
}

// List retrieves products matching the filter together with the total match
// count before pagination, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_deleted = ?", false)

	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Model != "" {
		query = query.Where("model ILIKE ?", "%"+filter.Model+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("tax_included_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("tax_included_price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	if err := query.
		Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.PageSize)).
		Limit(filter.PageSize).
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt

	return nil
}

// Update modifies an existing product entity in the database.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND is_deleted = ?", product.ID, false).
		Updates(map[string]any{
			"name":               product.Name,
			"brand":              product.Brand,
			"model":              product.Model,
			"specification":      product.Specification,
			"internal_price":     product.InternalPrice,
			"tax_included_price": product.TaxIncludedPrice,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// SoftDelete marks a product as deleted without removing the row.
func (repo *productRepository) SoftDelete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to soft delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// SoftDeleteBySupplier marks every product of the given supplier as deleted.
// A supplier with no live products is not an error.
func (repo *productRepository) SoftDeleteBySupplier(ctx context.Context, supplierID uint) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("supplier_id = ? AND is_deleted = ?", supplierID, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to soft delete supplier products")
	}

	return nil
}

// pageOffset converts one-based page numbers to row offsets.
func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}

	return (page - 1) * pageSize
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:               data.ID,
		Name:             data.Name,
		Brand:            data.Brand,
		Model:            data.Model,
		Specification:    data.Specification,
		InternalPrice:    data.InternalPrice,
		TaxIncludedPrice: data.TaxIncludedPrice,
		SupplierID:       data.SupplierID,
		IsDeleted:        data.IsDeleted,
		CreatedAt:        data.CreatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:               data.ID,
		Name:             data.Name,
		Brand:            data.Brand,
		Model:            data.Model,
		Specification:    data.Specification,
		InternalPrice:    data.InternalPrice,
		TaxIncludedPrice: data.TaxIncludedPrice,
		SupplierID:       data.SupplierID,
		IsDeleted:        data.IsDeleted,
		CreatedAt:        data.CreatedAt,
	}
}
