package impl

import (
	"context"
	"testing"

	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	mockRepo "bookkeep/internal/mocks/repository"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_List_GroupUserSeesInternalPrice(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	group := testGroupUser(2)
	products := []*entity.Product{
		{ID: 1, Name: "移液枪", Model: "P200", InternalPrice: 80, TaxIncludedPrice: 100, SupplierID: 5},
		{ID: 2, Name: "离心管", Model: "1.5ml", InternalPrice: 8, TaxIncludedPrice: 10, SupplierID: 5},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, group.ID).Return(group, nil)
			mockProductRepo.EXPECT().List(ctx, mock.AnythingOfType("repository.ProductFilter")).Return(products, int64(2), nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil).Once()

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(group), &usecase.ListProductsInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.Items[0].InternalPrice)
	assert.InDelta(t, 80, *page.Items[0].InternalPrice, 0.001)
	assert.Equal(t, "试剂公司", page.Items[1].SupplierName)
}

func TestProductService_List_SupplierPinnedToOwnCatalog(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockProductRepo.EXPECT().
				List(ctx, mock.AnythingOfType("repository.ProductFilter")).
				Run(func(ctx context.Context, filter repository.ProductFilter) {
					require.NotNil(t, filter.SupplierID)
					assert.Equal(t, uint(5), *filter.SupplierID)
				}).
				Return([]*entity.Product{}, int64(0), nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	// The requested supplier scope is overridden by the account's own link.
	page, err := fx.service.List(ctx, principalOf(vendor), &usecase.ListProductsInput{SupplierID: uintPtr(2), Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestProductService_List_SupplierWithoutLinkSeesNothing(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := &entity.User{ID: 7, Username: "orphan", Role: entity.RoleSupplier, PasswordHash: "hashed"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(vendor), &usecase.ListProductsInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestProductService_List_StudentPriceStripped(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	student := testStudent(9, 2)
	products := []*entity.Product{
		{ID: 1, Name: "移液枪", InternalPrice: 80, TaxIncludedPrice: 100, SupplierID: 5},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
			mockProductRepo.EXPECT().List(ctx, mock.AnythingOfType("repository.ProductFilter")).Return(products, int64(1), nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	page, err := fx.service.List(ctx, principalOf(student), &usecase.ListProductsInput{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].InternalPrice)
	assert.InDelta(t, 100, page.Items[0].TaxIncludedPrice, 0.001)
}

func TestProductService_Get_OtherSupplierDenied(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, SupplierID: 2}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrProductAccessDenied, "product belongs to another supplier"))

	view, err := fx.service.Get(ctx, principalOf(vendor), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductAccessDenied))
	assert.Nil(t, view)
}

func TestProductService_Create_SupplierInternalPricePinned(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)
	input := &usecase.CreateProductInput{
		Name:             "移液枪",
		Model:            "P200",
		InternalPrice:    floatPtr(50),
		TaxIncludedPrice: 100,
		SupplierID:       5,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					// Whatever the supplier sent, internal price follows the tax-included price.
					assert.InDelta(t, 100, product.InternalPrice, 0.001)
					product.ID = 1
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Create(ctx, principalOf(vendor), input)

	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
	assert.Nil(t, view.InternalPrice)
}

func TestProductService_Create_AdminSetsInternalPrice(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	admin := testAdmin()
	input := &usecase.CreateProductInput{
		Name:             "移液枪",
		InternalPrice:    floatPtr(80),
		TaxIncludedPrice: 100,
		SupplierID:       5,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)
			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					assert.InDelta(t, 80, product.InternalPrice, 0.001)
					product.ID = 2
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Create(ctx, principalOf(admin), input)

	require.NoError(t, err)
	require.NotNil(t, view.InternalPrice)
	assert.InDelta(t, 80, *view.InternalPrice, 0.001)
}

func TestProductService_Create_StudentDenied(t *testing.T) {
	fx := createTestProductService(t)

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
		Return(errors.Wrap(domainerrors.ErrProductCreateDenied, "role may not create products"))

	view, err := fx.service.Create(ctx, principalOf(student), &usecase.CreateProductInput{Name: "移液枪", TaxIncludedPrice: 100, SupplierID: 5})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductCreateDenied))
	assert.Nil(t, view)
}

func TestProductService_Update_SupplierCannotTouchInternalPrice(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, SupplierID: 5, InternalPrice: 80, TaxIncludedPrice: 100}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrInternalPriceEditDenied, "supplier may not set internal price"))

	view, err := fx.service.Update(ctx, principalOf(vendor), 1, &usecase.UpdateProductInput{InternalPrice: floatPtr(60)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalPriceEditDenied))
	assert.Nil(t, view)
}

func TestProductService_Update_OtherSupplierDenied(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, SupplierID: 2}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrProductUpdateDenied, "product belongs to another supplier"))

	view, err := fx.service.Update(ctx, principalOf(vendor), 1, &usecase.UpdateProductInput{Name: strPtr("改名")})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductUpdateDenied))
	assert.Nil(t, view)
}

func TestProductService_Update_AdminAppliesFields(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	admin := testAdmin()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockSupplierRepo := mockRepo.NewMockSupplierRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewSupplierRepository().Return(mockSupplierRepo)

			mockUserRepo.EXPECT().FindByID(ctx, admin.ID).Return(admin, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, Name: "移液枪", SupplierID: 5, InternalPrice: 80, TaxIncludedPrice: 100}, nil)
			mockProductRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					assert.Equal(t, "新移液枪", product.Name)
					assert.InDelta(t, 60, product.InternalPrice, 0.001)
				}).
				Return(nil)
			mockSupplierRepo.EXPECT().FindByID(ctx, uint(5)).Return(&entity.Supplier{ID: 5, Name: "试剂公司"}, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	view, err := fx.service.Update(ctx, principalOf(admin), 1, &usecase.UpdateProductInput{
		Name:          strPtr("新移液枪"),
		InternalPrice: floatPtr(60),
	})

	require.NoError(t, err)
	assert.Equal(t, "新移液枪", view.Name)
	require.NotNil(t, view.InternalPrice)
	assert.InDelta(t, 60, *view.InternalPrice, 0.001)
}

func TestProductService_Delete_StudentDenied(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	student := testStudent(9, 2)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, student.ID).Return(student, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, SupplierID: 5}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrProductDeleteDenied, "role may not delete products"))

	err := fx.service.Delete(ctx, principalOf(student), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductDeleteDenied))
}

func TestProductService_Delete_SupplierOwnProduct(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	vendor := testSupplierUser(6, 5)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockUserRepo.EXPECT().FindByID(ctx, vendor.ID).Return(vendor, nil)
			mockProductRepo.EXPECT().FindByID(ctx, uint(1)).Return(&entity.Product{ID: 1, SupplierID: 5}, nil)
			mockProductRepo.EXPECT().SoftDelete(ctx, uint(1)).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.Delete(ctx, principalOf(vendor), 1)

	require.NoError(t, err)
}
