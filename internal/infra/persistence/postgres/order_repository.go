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

// orderRepository implements the repository.OrderRepository interface using GORM.
// Orders travel with their line items on every read and write.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// FindByID retrieves a single order with its line items.
func (repo *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// List retrieves orders matching the filter together with the total match
// count before pagination, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

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
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(pageOffset(filter.Page, filter.PageSize)).
		Limit(filter.PageSize).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// ListConfirmed retrieves every confirmed order, scoped to the given owners
// when userIDs is non-nil.
func (repo *orderRepository) ListConfirmed(ctx context.Context, userIDs []uint) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", string(entity.StatusConfirmed))

	if userIDs != nil {
		query = query.Where("user_id IN ?", userIDs)
	}

	var orderModels []*model.OrderModel
	if err := query.
		Order("id ASC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list confirmed orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Create persists a new order and its line items in one shot. GORM inserts
// the item rows through the association.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.Version = orderM.Version
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
	}

	return nil
}

// UpdateStatus moves an order to the given status if the stored version
// still matches, bumping the version in the same statement.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uint, version uint, status entity.Status) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":  string(status),
			"version": gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVersionMismatch
	}

	return nil
}

// Delete removes an order and its line items from the database.
func (repo *orderRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrderModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:               itemM.ID,
			OrderID:          itemM.OrderID,
			ProductID:        itemM.ProductID,
			Name:             itemM.Name,
			Model:            itemM.Model,
			Specification:    itemM.Specification,
			InternalPrice:    itemM.InternalPrice,
			TaxIncludedPrice: itemM.TaxIncludedPrice,
			Quantity:         itemM.Quantity,
			Muted:            itemM.Muted,
		})
	}

	return &entity.Order{
		ID:         data.ID,
		UserID:     data.UserID,
		SupplierID: data.SupplierID,
		Items:      items,
		Status:     entity.Status(data.Status),
		Version:    data.Version,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:               item.ID,
			OrderID:          item.OrderID,
			ProductID:        item.ProductID,
			Name:             item.Name,
			Model:            item.Model,
			Specification:    item.Specification,
			InternalPrice:    item.InternalPrice,
			TaxIncludedPrice: item.TaxIncludedPrice,
			Quantity:         item.Quantity,
			Muted:            item.Muted,
		})
	}

	return &model.OrderModel{
		ID:         data.ID,
		UserID:     data.UserID,
		SupplierID: data.SupplierID,
		Status:     string(data.Status),
		Version:    data.Version,
		Items:      items,
		CreatedAt:  data.CreatedAt,
	}
}
