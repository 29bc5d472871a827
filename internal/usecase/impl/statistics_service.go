package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
)

// statisticsService implements the StatisticsUsecase interface.
type statisticsService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewStatisticsService is the constructor for statisticsService.
func NewStatisticsService(txManager repository.TransactionManager, logger *slog.Logger) usecase.StatisticsUsecase {
	return &statisticsService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *statisticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Report aggregates confirmed orders and service records per supplier and
// derives tax and balance figures, closing with a grand-total row. Suppliers
// whose master record has gone missing are skipped entirely.
func (srv *statisticsService) Report(ctx context.Context, actor entity.Principal) (*usecase.StatisticsReport, error) {
	report := &usecase.StatisticsReport{Items: []*usecase.StatisticsRowView{}}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}
		if !user.Role.CanViewStatistics() {
			return errors.Wrap(domainerrors.ErrStatisticsAccessDenied, "role may not view statistics")
		}

		userIDs, err := visibleUserIDs(ctx, userRepo, user)
		if err != nil {
			return err
		}

		orders, err := repoFactory.NewOrderRepository().ListConfirmed(ctx, userIDs)
		if err != nil {
			return errors.Wrap(err, "failed to list confirmed orders")
		}
		records, err := repoFactory.NewServiceRecordRepository().ListConfirmed(ctx, userIDs)
		if err != nil {
			return errors.Wrap(err, "failed to list confirmed service records")
		}

		// 1. Accumulate components per supplier.
		canView := user.Role.CanViewInternalPrice()
		rows := map[uint]*entity.StatisticsRow{}
		rowFor := func(supplierID uint) *entity.StatisticsRow {
			row, ok := rows[supplierID]
			if !ok {
				row = &entity.StatisticsRow{SupplierID: supplierID}
				rows[supplierID] = row
			}

			return row
		}

		for _, order := range orders {
			row := rowFor(order.SupplierID)
			row.OrderCount++
			for _, item := range order.Items {
				row.ProductCount += item.Quantity
			}
			totals := entity.ComputeTotals(order.Items, canView)
			row.TotalTaxIncludedPrice += totals.TaxIncludedPrice
			if totals.InternalPrice != nil {
				row.TotalInternalPrice += *totals.InternalPrice
			}
		}
		for _, record := range records {
			rowFor(record.SupplierID).TotalServiceAmount += record.Amount
		}

		// 2. Resolve supplier names in a stable order and derive the figures.
		supplierIDs := make([]uint, 0, len(rows))
		for id := range rows {
			supplierIDs = append(supplierIDs, id)
		}
		sort.Slice(supplierIDs, func(i, j int) bool { return supplierIDs[i] < supplierIDs[j] })

		supplierRepo := repoFactory.NewSupplierRepository()
		grand := &entity.StatisticsRow{SupplierName: entity.GrandTotalName}
		for _, id := range supplierIDs {
			supplier, err := supplierRepo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrSupplierNotFound) {
					continue
				}

				return errors.Wrap(err, "failed to find supplier")
			}

			row := rows[id]
			row.SupplierName = supplier.Name
			row.Derive()

			grand.OrderCount += row.OrderCount
			grand.ProductCount += row.ProductCount
			grand.TotalInternalPrice += row.TotalInternalPrice
			grand.TotalTaxIncludedPrice += row.TotalTaxIncludedPrice
			grand.TotalServiceAmount += row.TotalServiceAmount

			report.Items = append(report.Items, usecase.NewStatisticsRowView(row))
		}
		grand.Derive()
		report.Total = usecase.NewStatisticsRowView(grand)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Statistics report failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to build statistics report")
	}

	srv.log(ctx).Info("Statistics report built",
		slog.Uint64("user_id", uint64(actor.UserID)),
		slog.Int("suppliers", len(report.Items)),
	)

	return report, nil
}
