package impl

import (
	"context"
	"testing"

	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	mockRepo "bookkeep/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatisticsService_Report_AdminAggregatesAllSuppliers(t *testing.T) {
	fx := createTestStatisticsService(t)

	ctx := context.Background()
	admin := testAdmin()

	orders := []*entity.Order{
		{
			ID: 1, UserID: 9, SupplierID: 2, Status: entity.StatusConfirmed,
			Items: []entity.OrderItem{
				{Name: "移液枪", Quantity: 2, TaxIncludedPrice: 100, InternalPrice: floatPtr(80)},
				{Name: "枪头", Quantity: 1, TaxIncludedPrice: 50, InternalPrice: floatPtr(40), Muted: true},
			},
		},
		{
			ID: 2, UserID: 12, SupplierID: 1, Status: entity.StatusConfirmed,
			Items: []entity.OrderItem{
				{Name: "离心机", Quantity: 1, TaxIncludedPrice: 300, InternalPrice: floatPtr(250)},
			},
		},
	}
	records := []*entity.ServiceRecord{
		{ID: 1, UserID: 9, SupplierID: 2, Content: "仪器维修", Amount: 30, Status: entity.StatusConfirmed},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRecordRepo := mockRepo.NewMockServiceRecordRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewServiceRecordRepository().Return(mockRecordRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockOrderRepo.EXPECT().ListConfirmed(ctx, []uint(nil)).Return(orders, nil)
			mockRecordRepo.EXPECT().ListConfirmed(ctx, []uint(nil)).Return(records, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Supplier{ID: 1, Name: "试剂公司"}, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(2)).Return(&entity.Supplier{ID: 2, Name: "耗材公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	report, err := fx.service.Report(ctx, principalOf(admin))

	require.NoError(t, err)
	require.Len(t, report.Items, 2)

	// Rows come back ordered by supplier id regardless of map iteration.
	first := report.Items[0]
	assert.Equal(t, uint(1), first.SupplierID)
	assert.Equal(t, "试剂公司", first.SupplierName)
	assert.Equal(t, 1, first.OrderCount)
	assert.Equal(t, 1, first.ProductCount)
	assert.InDelta(t, 300, first.TotalTaxIncludedPrice, 0.01)
	assert.InDelta(t, 250, first.TotalInternalPrice, 0.01)
	assert.InDelta(t, 6.5, first.TotalTax, 0.01)
	assert.InDelta(t, 43.5, first.TotalBalance, 0.01)

	// Muted items stay out of the money totals but still count as products.
	second := report.Items[1]
	assert.Equal(t, uint(2), second.SupplierID)
	assert.Equal(t, 1, second.OrderCount)
	assert.Equal(t, 3, second.ProductCount)
	assert.InDelta(t, 200, second.TotalTaxIncludedPrice, 0.01)
	assert.InDelta(t, 160, second.TotalInternalPrice, 0.01)
	assert.InDelta(t, 30, second.TotalServiceAmount, 0.01)
	assert.InDelta(t, 5.2, second.TotalTax, 0.01)
	assert.InDelta(t, 4.8, second.TotalBalance, 0.01)

	require.NotNil(t, report.Total)
	assert.Equal(t, entity.GrandTotalName, report.Total.SupplierName)
	assert.Equal(t, uint(0), report.Total.SupplierID)
	assert.Equal(t, 2, report.Total.OrderCount)
	assert.Equal(t, 4, report.Total.ProductCount)
	assert.InDelta(t, 500, report.Total.TotalTaxIncludedPrice, 0.01)
	assert.InDelta(t, 410, report.Total.TotalInternalPrice, 0.01)
	assert.InDelta(t, 11.7, report.Total.TotalTax, 0.01)
	assert.InDelta(t, 48.3, report.Total.TotalBalance, 0.01)
}

func TestStatisticsService_Report_GroupScopedToManaged(t *testing.T) {
	fx := createTestStatisticsService(t)

	ctx := context.Background()
	group := testGroupUser(2)

	orders := []*entity.Order{
		{
			ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusConfirmed,
			Items: []entity.OrderItem{
				{Name: "培养皿", Quantity: 2, TaxIncludedPrice: 150, InternalPrice: floatPtr(100)},
			},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRecordRepo := mockRepo.NewMockServiceRecordRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewServiceRecordRepository().Return(mockRecordRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, group.ID).Return(group, nil)
			mockUserRepo.EXPECT().ListManagedIDs(ctx, group.ID).Return([]uint{9}, nil)
			mockOrderRepo.EXPECT().ListConfirmed(ctx, []uint{2, 9}).Return(orders, nil)
			mockRecordRepo.EXPECT().ListConfirmed(ctx, []uint{2, 9}).Return(nil, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	report, err := fx.service.Report(ctx, principalOf(group))

	require.NoError(t, err)
	require.Len(t, report.Items, 1)

	row := report.Items[0]
	assert.Equal(t, uint(5), row.SupplierID)
	assert.Equal(t, 2, row.ProductCount)
	assert.InDelta(t, 300, row.TotalTaxIncludedPrice, 0.01)
	assert.InDelta(t, 200, row.TotalInternalPrice, 0.01)
	assert.InDelta(t, 13, row.TotalTax, 0.01)
	assert.InDelta(t, 87, row.TotalBalance, 0.01)

	require.NotNil(t, report.Total)
	assert.InDelta(t, 13, report.Total.TotalTax, 0.01)
	assert.InDelta(t, 87, report.Total.TotalBalance, 0.01)
}

func TestStatisticsService_Report_StudentDenied(t *testing.T) {
	fx := createTestStatisticsService(t)

	ctx := context.Background()
	student := testStudent(9, 2)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrStatisticsAccessDenied, "role may not view statistics"))

	report, err := fx.service.Report(ctx, principalOf(student))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStatisticsAccessDenied))
	assert.Nil(t, report)
}

func TestStatisticsService_Report_MissingSupplierSkipped(t *testing.T) {
	fx := createTestStatisticsService(t)

	ctx := context.Background()
	admin := testAdmin()

	orders := []*entity.Order{
		{
			ID: 1, UserID: 9, SupplierID: 3, Status: entity.StatusConfirmed,
			Items: []entity.OrderItem{
				{Name: "幽灵商品", Quantity: 1, TaxIncludedPrice: 999, InternalPrice: floatPtr(900)},
			},
		},
		{
			ID: 2, UserID: 9, SupplierID: 5, Status: entity.StatusConfirmed,
			Items: []entity.OrderItem{
				{Name: "培养皿", Quantity: 1, TaxIncludedPrice: 100, InternalPrice: floatPtr(60)},
			},
		},
	}
	records := []*entity.ServiceRecord{
		{ID: 1, UserID: 9, SupplierID: 3, Content: "旧服务", Amount: 50, Status: entity.StatusConfirmed},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockRecordRepo := mockRepo.NewMockServiceRecordRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewServiceRecordRepository().Return(mockRecordRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockOrderRepo.EXPECT().ListConfirmed(ctx, []uint(nil)).Return(orders, nil)
			mockRecordRepo.EXPECT().ListConfirmed(ctx, []uint(nil)).Return(records, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(3)).Return(nil, repository.ErrSupplierNotFound)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	report, err := fx.service.Report(ctx, principalOf(admin))

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, uint(5), report.Items[0].SupplierID)

	// The orphaned supplier's numbers never reach the grand total either.
	require.NotNil(t, report.Total)
	assert.Equal(t, 1, report.Total.OrderCount)
	assert.InDelta(t, 100, report.Total.TotalTaxIncludedPrice, 0.01)
	assert.InDelta(t, 60, report.Total.TotalInternalPrice, 0.01)
	assert.InDelta(t, 5.2, report.Total.TotalTax, 0.01)
	assert.InDelta(t, 34.8, report.Total.TotalBalance, 0.01)
	assert.InDelta(t, 0, report.Total.TotalServiceAmount, 0.01)
}
