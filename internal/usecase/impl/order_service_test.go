package impl

import (
	"context"
	"testing"
	"time"

	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/domain/service"
	mockRepo "bookkeep/internal/mocks/repository"
	"bookkeep/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create_SnapshotsInternalPrice(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	group := testGroupUser(2)
	input := &usecase.CreateOrderInput{
		SupplierID: 5,
		Items: []usecase.OrderItemInput{
			{ProductID: 1, Name: "移液枪", TaxIncludedPrice: 100, Quantity: 2},
			{ProductID: 2, Name: "离心管", InternalPrice: floatPtr(8), TaxIncludedPrice: 10, Quantity: 5},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockUserRepo.EXPECT().FindByID(ctx, group.ID).Return(group, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			// Only the item without an internal price hits the catalog.
			mockProductRepo.EXPECT().
				FindBySupplier(ctx, uint(1), uint(5)).
				Return(&entity.Product{ID: 1, Name: "移液枪", InternalPrice: 80, TaxIncludedPrice: 100, SupplierID: 5}, nil)
			mockOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					assert.Equal(t, entity.StatusDraft, order.Status)
					require.Len(t, order.Items, 2)
					require.NotNil(t, order.Items[0].InternalPrice)
					assert.InDelta(t, 80, *order.Items[0].InternalPrice, 0.001)
					require.NotNil(t, order.Items[1].InternalPrice)
					assert.InDelta(t, 8, *order.Items[1].InternalPrice, 0.001)
					order.ID = 1
					order.Version = 1
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Create(ctx, principalOf(group), input)

	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
	assert.Equal(t, "draft", view.Status)
	assert.Equal(t, uint(1), view.Version)
	assert.Equal(t, "试剂公司", view.SupplierName)
	assert.Equal(t, "group", view.Username)
	assert.Nil(t, view.TotalTaxIncludedPrice)
	require.Len(t, view.Items, 2)
	require.NotNil(t, view.Items[0].InternalPrice)
	assert.InDelta(t, 80, *view.Items[0].InternalPrice, 0.001)
}

func TestOrderService_Get_AdminSeesTotals(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	admin := testAdmin()
	order := &entity.Order{
		ID:         1,
		UserID:     9,
		SupplierID: 5,
		Status:     entity.StatusSubmitted,
		Version:    2,
		Items: []entity.OrderItem{
			{Name: "移液枪", InternalPrice: floatPtr(80), TaxIncludedPrice: 100, Quantity: 2},
			{Name: "离心管", InternalPrice: floatPtr(8), TaxIncludedPrice: 10, Quantity: 5, Muted: true},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			mockUserRepo.EXPECT().FindByID(ctx, uint(9)).Return(testStudent(9, 2), nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Get(ctx, principalOf(admin), 1)

	require.NoError(t, err)
	assert.Equal(t, "student", view.Username)
	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[1].Muted)
	// Muted items stay listed but never count toward totals.
	require.NotNil(t, view.TotalTaxIncludedPrice)
	assert.InDelta(t, 200, *view.TotalTaxIncludedPrice, 0.001)
	require.NotNil(t, view.TotalInternalPrice)
	assert.InDelta(t, 160, *view.TotalInternalPrice, 0.001)
}

func TestOrderService_Get_StudentPricesStripped(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	student := testStudent(9, 2)
	order := &entity.Order{
		ID:         1,
		UserID:     9,
		SupplierID: 5,
		Status:     entity.StatusSubmitted,
		Version:    1,
		Items: []entity.OrderItem{
			{Name: "移液枪", InternalPrice: floatPtr(80), TaxIncludedPrice: 100, Quantity: 2},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Get(ctx, principalOf(student), 1)

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Nil(t, view.Items[0].InternalPrice)
	require.NotNil(t, view.TotalTaxIncludedPrice)
	assert.InDelta(t, 200, *view.TotalTaxIncludedPrice, 0.001)
	assert.Nil(t, view.TotalInternalPrice)
}

func TestOrderService_List_GroupUserScopedToManaged(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	group := testGroupUser(2)
	orders := []*entity.Order{
		{ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusSubmitted, Items: []entity.OrderItem{{Name: "移液枪", TaxIncludedPrice: 100, Quantity: 1}}},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, group.ID).Return(group, nil)
			mockUserRepo.EXPECT().ListManagedIDs(ctx, group.ID).Return([]uint{9, 12}, nil)
			mockOrderRepo.EXPECT().
				List(ctx, mock.AnythingOfType("repository.OrderFilter")).
				Run(func(ctx context.Context, filter repository.OrderFilter) {
					assert.Equal(t, []uint{2, 9, 12}, filter.UserIDs)
				}).
				Return(orders, int64(7), nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			mockUserRepo.EXPECT().FindByID(ctx, uint(9)).Return(testStudent(9, 2), nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(group), &usecase.ListOrdersInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "student", page.Items[0].Username)
	assert.Nil(t, page.Items[0].TotalTaxIncludedPrice)
}

func TestOrderService_List_SupplierNeverSeesDrafts(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockOrderRepo.EXPECT().
				List(ctx, mock.AnythingOfType("repository.OrderFilter")).
				Run(func(ctx context.Context, filter repository.OrderFilter) {
					require.NotNil(t, filter.SupplierID)
					assert.Equal(t, uint(5), *filter.SupplierID)
					require.NotNil(t, filter.ExcludeStatus)
					assert.Equal(t, entity.StatusDraft, *filter.ExcludeStatus)
				}).
				Return([]*entity.Order{}, int64(0), nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(vendor), &usecase.ListOrdersInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestOrderService_List_ContentFilterTrimsPage(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	admin := testAdmin()
	orders := []*entity.Order{
		{ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusSubmitted, Items: []entity.OrderItem{{Name: "移液枪", TaxIncludedPrice: 100, Quantity: 1}}},
		{ID: 2, UserID: 9, SupplierID: 5, Status: entity.StatusSubmitted, Items: []entity.OrderItem{{Name: "离心管", TaxIncludedPrice: 10, Quantity: 3}}},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockOrderRepo.EXPECT().List(ctx, mock.AnythingOfType("repository.OrderFilter")).Return(orders, int64(2), nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil).Once()
			mockUserRepo.EXPECT().FindByID(ctx, uint(9)).Return(testStudent(9, 2), nil).Once()

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(admin), &usecase.ListOrdersInput{Content: "移液", Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, uint(1), page.Items[0].ID)
}

func TestOrderService_UpdateStatus_GroupSubmitsDraft(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	group := testGroupUser(2)
	order := &entity.Order{
		ID:         1,
		UserID:     2,
		SupplierID: 5,
		Status:     entity.StatusDraft,
		Version:    1,
		Items:      []entity.OrderItem{{Name: "移液枪", TaxIncludedPrice: 100, Quantity: 2}},
	}
	vendor := &entity.User{ID: 6, Username: "vendor", Role: entity.RoleSupplier, SupplierID: uintPtr(5), Email: "vendor@example.com"}

	sent := make(chan service.OrderNotification, 1)
	fx.notifier.EXPECT().
		SendOrderNotification(mock.Anything, mock.AnythingOfType("service.OrderNotification")).
		Run(func(ctx context.Context, notice service.OrderNotification) {
			sent <- notice
		}).
		Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, group.ID).Return(group, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			mockUserRepo.EXPECT().FindBySupplierID(ctx, uint(5)).Return(vendor, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			mockOrderRepo.EXPECT().UpdateStatus(ctx, uint(1), uint(1), entity.StatusSubmitted).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.UpdateStatus(ctx, principalOf(group), 1, &usecase.UpdateStatusInput{Status: "submitted", Version: uintPtr(1)})

	require.NoError(t, err)

	select {
	case notice := <-sent:
		assert.Equal(t, "vendor@example.com", notice.ToEmail)
		assert.Equal(t, "vendor", notice.ToName)
		assert.Equal(t, uint(1), notice.OrderID)
		assert.Equal(t, entity.StatusSubmitted, notice.Status)
		assert.Equal(t, "试剂公司", notice.SupplierName)
		assert.Equal(t, "移液枪 x2", notice.ItemsSummary)
	case <-time.After(time.Second):
		t.Fatal("expected an order notification")
	}
}

func TestOrderService_UpdateStatus_SupplierConfirms(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)
	order := &entity.Order{ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusSubmitted, Version: 3}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			// The owner has no mail address, so no notification goes out.
			mockUserRepo.EXPECT().FindByID(ctx, uint(9)).Return(testStudent(9, 2), nil)
			mockOrderRepo.EXPECT().UpdateStatus(ctx, uint(1), uint(3), entity.StatusConfirmed).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.UpdateStatus(ctx, principalOf(vendor), 1, &usecase.UpdateStatusInput{Status: "confirmed"})

	require.NoError(t, err)
}

func TestOrderService_Delete_StudentRemovesOwnDraft(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	student := testStudent(9, 2)
	order := &entity.Order{ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusDraft, Version: 1}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			mockOrderRepo.EXPECT().Delete(ctx, uint(1)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	outcome, err := fx.service.Delete(ctx, principalOf(student), 1)

	require.NoError(t, err)
	assert.False(t, outcome.Invalidated)
	assert.Equal(t, "订单删除成功", outcome.Message)
}

func TestOrderService_Delete_ConfirmedTurnsInvalid(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	admin := testAdmin()
	order := &entity.Order{ID: 1, UserID: 9, SupplierID: 5, Status: entity.StatusConfirmed, Version: 2}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockOrderRepo.EXPECT().FindByID(ctx, uint(1)).Return(order, nil)
			mockOrderRepo.EXPECT().UpdateStatus(ctx, uint(1), uint(2), entity.StatusInvalid).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	outcome, err := fx.service.Delete(ctx, principalOf(admin), 1)

	require.NoError(t, err)
	assert.True(t, outcome.Invalidated)
	assert.Equal(t, "订单已标记为无效", outcome.Message)
}
