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

// supplierRepository implements the repository.SupplierRepository interface using GORM.
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository is the constructor for supplierRepository.
func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{
		db: db,
	}
}

// FindByID retrieves a single supplier by its unique ID.
func (repo *supplierRepository) FindByID(ctx context.Context, id uint) (*entity.Supplier, error) {
	var supplierM model.SupplierModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&supplierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, "failed to find supplier by id")
	}

	return toSupplierDomain(&supplierM), nil
}

// FindByName retrieves a single supplier by its unique name.
func (repo *supplierRepository) FindByName(ctx context.Context, name string) (*entity.Supplier, error) {
	var supplierM model.SupplierModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&supplierM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSupplierNotFound
		}

		return nil, errors.Wrap(err, "failed to find supplier by name")
	}

	return toSupplierDomain(&supplierM), nil
}

// ListAll retrieves every supplier, ordered by ID.
func (repo *supplierRepository) ListAll(ctx context.Context) ([]*entity.Supplier, error) {
	var supplierModels []*model.SupplierModel

	if err := repo.db.WithContext(ctx).
		Order("id ASC").
		Find(&supplierModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list suppliers")
	}

	suppliers := make([]*entity.Supplier, 0, len(supplierModels))
	for _, supplierM := range supplierModels {
		suppliers = append(suppliers, toSupplierDomain(supplierM))
	}

	return suppliers, nil
}

// Create persists a new supplier entity to the database.
func (repo *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	supplierM := fromSupplierDomain(supplier)

	if err := repo.db.WithContext(ctx).Create(supplierM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSupplierNameTaken.WrapMessage("supplier name already exists")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create supplier")
	}

	// Update the entity with generated values
	supplier.ID = supplierM.ID
	supplier.CreatedAt = supplierM.CreatedAt

	return nil
}

// Update modifies an existing supplier entity in the database.
func (repo *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SupplierModel{}).
		Where("id = ?", supplier.ID).
		Update("name", supplier.Name)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrSupplierNameTaken.WrapMessage("supplier name already exists")
		}

		return errors.Wrap(result.Error, "failed to update supplier")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSupplierNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toSupplierDomain converts a GORM SupplierModel to a domain Supplier entity.
func toSupplierDomain(data *model.SupplierModel) *entity.Supplier {
	if data == nil {
		return nil
	}

	return &entity.Supplier{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}

// fromSupplierDomain converts a domain Supplier entity to a GORM SupplierModel for persistence.
func fromSupplierDomain(data *entity.Supplier) *model.SupplierModel {
	if data == nil {
		return nil
	}

	return &model.SupplierModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}
