package impl

import (
	"io"
	"log/slog"
	"testing"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	mockRepo "bookkeep/internal/mocks/repository"
	mockSvc "bookkeep/internal/mocks/service"
	"bookkeep/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(registrationEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Registration.Enabled = registrationEnabled

	return cfg
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func principalOf(user *entity.User) entity.Principal {
	return entity.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func testAdmin() *entity.User {
	return &entity.User{ID: 1, Username: "admin", Role: entity.RoleAdmin, PasswordHash: "hashed"}
}

func testGroupUser(id uint) *entity.User {
	return &entity.User{ID: id, Username: "group", Role: entity.RoleGroupUser, PasswordHash: "hashed"}
}

func testStudent(id, managerID uint) *entity.User {
	return &entity.User{ID: id, Username: "student", Role: entity.RoleStudent, PasswordHash: "hashed", ManagerID: &managerID}
}

func testSupplierUser(id, supplierID uint) *entity.User {
	return &entity.User{ID: id, Username: "vendor", Role: entity.RoleSupplier, PasswordHash: "hashed", SupplierID: &supplierID}
}

// --- Fixtures ---

type authServiceFixtures struct {
	service   usecase.AuthUsecase
	txManager *mockRepo.MockTransactionManager
	sessions  *mockSvc.MockSessionStore
	hasher    *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	sessions := mockSvc.NewMockSessionStore(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAuthService(AuthServiceParams{
		TxManager: txManager,
		Sessions:  sessions,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return authServiceFixtures{
		service:   service,
		txManager: txManager,
		sessions:  sessions,
		hasher:    hasher,
	}
}

type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	hasher    *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T, registrationEnabled bool) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewUserService(UserServiceParams{
		TxManager: txManager,
		Hasher:    hasher,
		Config:    newTestConfig(registrationEnabled),
		Logger:    newDiscardLogger(),
	})

	return userServiceFixtures{
		service:   service,
		txManager: txManager,
		hasher:    hasher,
	}
}

type supplierServiceFixtures struct {
	service   usecase.SupplierUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestSupplierService(t *testing.T) supplierServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewSupplierService(txManager, newDiscardLogger())

	return supplierServiceFixtures{service: service, txManager: txManager}
}

type productServiceFixtures struct {
	service   usecase.ProductUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProductService(t *testing.T) productServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewProductService(txManager, newDiscardLogger())

	return productServiceFixtures{service: service, txManager: txManager}
}

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	notifier  *mockSvc.MockNotifier
	qrcode    *mockSvc.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	notifier := mockSvc.NewMockNotifier(t)
	qrcode := mockSvc.NewMockQRCodeService(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		Notifier:  notifier,
		QRCode:    qrcode,
		Logger:    newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		notifier:  notifier,
		qrcode:    qrcode,
	}
}

type serviceRecordServiceFixtures struct {
	service   usecase.ServiceRecordUsecase
	txManager *mockRepo.MockTransactionManager
	notifier  *mockSvc.MockNotifier
}

func createTestServiceRecordService(t *testing.T) serviceRecordServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	notifier := mockSvc.NewMockNotifier(t)

	service := NewServiceRecordService(ServiceRecordServiceParams{
		TxManager: txManager,
		Notifier:  notifier,
		Logger:    newDiscardLogger(),
	})

	return serviceRecordServiceFixtures{
		service:   service,
		txManager: txManager,
		notifier:  notifier,
	}
}

type statisticsServiceFixtures struct {
	service   usecase.StatisticsUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestStatisticsService(t *testing.T) statisticsServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewStatisticsService(txManager, newDiscardLogger())

	return statisticsServiceFixtures{service: service, txManager: txManager}
}
