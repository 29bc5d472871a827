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

// serviceRecordRepository implements the repository.ServiceRecordRepository interface using GORM.
type serviceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository is the constructor for serviceRecordRepository.
func NewServiceRecordRepository(db *gorm.DB) repository.ServiceRecordRepository {
	return &serviceRecordRepository{
		db: db,
	}
}

// FindByID retrieves a single service record by its unique ID.
func (repo *serviceRecordRepository) FindByID(ctx context.Context, id uint) (*entity.ServiceRecord, error) {
	var recordM model.ServiceRecordModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find service record by id")
	}

	return toServiceRecordDomain(&recordM), nil
}

// List retrieves service records matching the filter together with the total
// match count before pagination, newest first.
func (repo *serviceRecordRepository) List(ctx context.Context, filter repository.ServiceRecordFilter) ([]*entity.ServiceRecord, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ServiceRecordModel{})

	if filter.UserIDs != nil {
		query = query.Where("user_id IN ?", filter.UserIDs)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ExcludeStatus != nil {
		query = query.Where("status <> ?", string(*filter.ExcludeStatus))
	}
	if filter.Content != "" {
		query = query.Where("content ILIKE ?", "%"+filter.Content+"%")
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count service records")
	}

	var recordModels []*model.ServiceRecordModel
	if err := query.
		Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.PageSize)).
		Limit(filter.PageSize).
		Find(&recordModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list service records")
	}

	records := make([]*entity.ServiceRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toServiceRecordDomain(recordM))
	}

	return records, total, nil
}

// ListConfirmed retrieves every confirmed service record, scoped to the given
// target users when userIDs is non-nil.
func (repo *serviceRecordRepository) ListConfirmed(ctx context.Context, userIDs []uint) ([]*entity.ServiceRecord, error) {
	query := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.StatusConfirmed))

	if userIDs != nil {
		query = query.Where("user_id IN ?", userIDs)
	}

	var recordModels []*model.ServiceRecordModel
	if err := query.
		Order("id ASC").
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list confirmed service records")
	}

	records := make([]*entity.ServiceRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toServiceRecordDomain(recordM))
	}

	return records, nil
}

// Create persists a new service record entity to the database.
func (repo *serviceRecordRepository) Create(ctx context.Context, record *entity.ServiceRecord) error {
	recordM := fromServiceRecordDomain(record)

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create service record")
	}

	// Update the entity with generated values
	record.ID = recordM.ID
	record.Version = recordM.Version
	record.CreatedAt = recordM.CreatedAt
	record.UpdatedAt = recordM.UpdatedAt

	return nil
}

// Update rewrites content and amount if the stored version still matches,
// bumping the version in the same statement. The entity's version is advanced
// to mirror the row.
func (repo *serviceRecordRepository) Update(ctx context.Context, record *entity.ServiceRecord) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ServiceRecordModel{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]any{
			"content": record.Content,
			"amount":  record.Amount,
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update service record")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVersionMismatch
	}

	record.Version++

	return nil
}

// UpdateStatus moves a record to the given status if the stored version
// still matches, bumping the version in the same statement.
func (repo *serviceRecordRepository) UpdateStatus(ctx context.Context, id uint, version uint, status entity.Status) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ServiceRecordModel{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":  string(status),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update service record status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVersionMismatch
	}

	return nil
}

// Delete removes a service record from the database.
func (repo *serviceRecordRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ServiceRecordModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete service record")
	}

	if result.RowsAffected == 0 {
		return repository.ErrServiceRecordNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toServiceRecordDomain converts a GORM ServiceRecordModel to a domain ServiceRecord entity.
func toServiceRecordDomain(data *model.ServiceRecordModel) *entity.ServiceRecord {
	if data == nil {
		return nil
	}

	return &entity.ServiceRecord{
		ID:         data.ID,
		UserID:     data.UserID,
		SupplierID: data.SupplierID,
		Content:    data.Content,
		Amount:     data.Amount,
		Status:     entity.Status(data.Status),
		Version:    data.Version,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromServiceRecordDomain converts a domain ServiceRecord entity to a GORM ServiceRecordModel for persistence.
func fromServiceRecordDomain(data *entity.ServiceRecord) *model.ServiceRecordModel {
	if data == nil {
		return nil
	}

	return &model.ServiceRecordModel{
		ID:         data.ID,
		UserID:     data.UserID,
		SupplierID: data.SupplierID,
		Content:    data.Content,
		Amount:     data.Amount,
		Status:     string(data.Status),
		Version:    data.Version,
		CreatedAt:  data.CreatedAt,
	}
}
