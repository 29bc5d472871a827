// Package errors defines the application error taxonomy. Every error the
// delivery layer surfaces to a client is an AppError; anything else is
// treated as an unexpected internal failure.
package errors

import (
	"net/http"

	"bookkeep/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError carrying the same business code, so copies
// created by WithDetails still compare equal to their sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Session-related errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"未登录",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Session已过期",
		"",
	)

	// The session is live but the account behind it was deleted.
	ErrSessionUserGone = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_USER_GONE",
		"用户不存在",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"用户不存在",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"用户名已存在",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"无效的用户类型",
		"",
	)

	ErrAdminRequired = NewBaseError(
		http.StatusForbidden,
		"ADMIN_REQUIRED",
		"需要管理员权限",
		"",
	)

	ErrCannotDeleteSelf = NewBaseError(
		http.StatusBadRequest,
		"CANNOT_DELETE_SELF",
		"不能删除自己",
		"",
	)

	ErrPasswordChangeDenied = NewBaseError(
		http.StatusForbidden,
		"PASSWORD_CHANGE_DENIED",
		"只能修改自己的密码",
		"",
	)

	// Registration-related errors
	ErrRegistrationDisabled = NewBaseError(
		http.StatusForbidden,
		"REGISTRATION_DISABLED",
		"系统未开放注册",
		"",
	)

	ErrManagerNotFound = NewBaseError(
		http.StatusNotFound,
		"MANAGER_NOT_FOUND",
		"管理用户不存在",
		"",
	)

	ErrManagerNotGroupUser = NewBaseError(
		http.StatusBadRequest,
		"MANAGER_NOT_GROUP_USER",
		"管理用户必须是课题组用户",
		"",
	)

	// Supplier-related errors
	ErrSupplierNotFound = NewBaseError(
		http.StatusNotFound,
		"SUPPLIER_NOT_FOUND",
		"厂家不存在",
		"",
	)

	ErrSupplierNameTaken = NewBaseError(
		http.StatusBadRequest,
		"SUPPLIER_NAME_TAKEN",
		"厂家名称已存在",
		"",
	)

	// Product-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"商品不存在",
		"",
	)

	ErrProductAccessDenied = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_ACCESS_DENIED",
		"无权访问此商品",
		"",
	)

	ErrProductCreateDenied = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_CREATE_DENIED",
		"无权创建商品",
		"",
	)

	ErrProductSelfOnly = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_SELF_ONLY",
		"只能为自己创建商品",
		"",
	)

	ErrProductUpdateDenied = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_UPDATE_DENIED",
		"无权修改此商品",
		"",
	)

	ErrProductDeleteDenied = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_DELETE_DENIED",
		"无权删除此商品",
		"",
	)

	ErrInternalPriceEditDenied = NewBaseError(
		http.StatusForbidden,
		"INTERNAL_PRICE_EDIT_DENIED",
		"供应商用户不能修改内部价格",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"订单不存在",
		"",
	)

	ErrOrderAccessDenied = NewBaseError(
		http.StatusForbidden,
		"ORDER_ACCESS_DENIED",
		"无权访问此订单",
		"",
	)

	ErrOrderActionDenied = NewBaseError(
		http.StatusForbidden,
		"ORDER_ACTION_DENIED",
		"无权操作此订单",
		"",
	)

	ErrOrderDeleteDenied = NewBaseError(
		http.StatusForbidden,
		"ORDER_DELETE_DENIED",
		"无权删除此订单",
		"",
	)

	ErrSupplierCannotCreateOrder = NewBaseError(
		http.StatusForbidden,
		"SUPPLIER_CANNOT_CREATE_ORDER",
		"厂家用户不能创建订单",
		"",
	)

	ErrSupplierCannotDeleteOrder = NewBaseError(
		http.StatusForbidden,
		"SUPPLIER_CANNOT_DELETE_ORDER",
		"厂家用户不能删除订单",
		"",
	)

	ErrSupplierOnlyConfirmsOrder = NewBaseError(
		http.StatusForbidden,
		"SUPPLIER_ONLY_CONFIRMS_ORDER",
		"厂家用户只能确认订单",
		"",
	)

	ErrGroupUserOrderActions = NewBaseError(
		http.StatusForbidden,
		"GROUP_USER_ORDER_ACTIONS",
		"课题组用户只能发起或删除订单",
		"",
	)

	ErrStudentOrderActions = NewBaseError(
		http.StatusForbidden,
		"STUDENT_ORDER_ACTIONS",
		"学生用户只能发起或删除订单",
		"",
	)

	ErrOrderNotSubmittable = NewBaseError(
		http.StatusBadRequest,
		"ORDER_NOT_SUBMITTABLE",
		"只能发起处于暂存状态的订单",
		"",
	)

	ErrOrderNotConfirmable = NewBaseError(
		http.StatusBadRequest,
		"ORDER_NOT_CONFIRMABLE",
		"只能确认处于发起状态的订单",
		"",
	)

	ErrOrderInvalidated = NewBaseError(
		http.StatusForbidden,
		"ORDER_INVALIDATED",
		"订单已失效",
		"",
	)

	// Service-record-related errors
	ErrServiceNotFound = NewBaseError(
		http.StatusNotFound,
		"SERVICE_NOT_FOUND",
		"服务记录不存在",
		"",
	)

	ErrServiceAccessDenied = NewBaseError(
		http.StatusForbidden,
		"SERVICE_ACCESS_DENIED",
		"无权访问此服务记录",
		"",
	)

	ErrServiceActionDenied = NewBaseError(
		http.StatusForbidden,
		"SERVICE_ACTION_DENIED",
		"无权操作此服务记录",
		"",
	)

	ErrServiceDeleteDenied = NewBaseError(
		http.StatusForbidden,
		"SERVICE_DELETE_DENIED",
		"无权删除此服务记录",
		"",
	)

	ErrServiceUpdateDenied = NewBaseError(
		http.StatusForbidden,
		"SERVICE_UPDATE_DENIED",
		"无权更新此服务记录",
		"",
	)

	ErrOnlySupplierCreatesService = NewBaseError(
		http.StatusForbidden,
		"ONLY_SUPPLIER_CREATES_SERVICE",
		"只有厂家用户可以创建服务记录",
		"",
	)

	ErrOnlySupplierUpdatesService = NewBaseError(
		http.StatusForbidden,
		"ONLY_SUPPLIER_UPDATES_SERVICE",
		"只有厂家用户可以更新服务记录",
		"",
	)

	ErrServiceSelfOnly = NewBaseError(
		http.StatusForbidden,
		"SERVICE_SELF_ONLY",
		"只能为自己创建服务记录",
		"",
	)

	ErrServiceTargetRequired = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_TARGET_REQUIRED",
		"必须提供关联的用户名",
		"",
	)

	ErrServiceTargetIsSupplier = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_TARGET_IS_SUPPLIER",
		"服务记录不能关联到厂家用户",
		"",
	)

	ErrGroupUserServiceActions = NewBaseError(
		http.StatusForbidden,
		"GROUP_USER_SERVICE_ACTIONS",
		"课题组用户只能确认或删除服务记录",
		"",
	)

	ErrStudentServiceActions = NewBaseError(
		http.StatusForbidden,
		"STUDENT_SERVICE_ACTIONS",
		"学生用户只能确认或删除服务记录",
		"",
	)

	ErrSupplierServiceActions = NewBaseError(
		http.StatusForbidden,
		"SUPPLIER_SERVICE_ACTIONS",
		"厂家用户只能发起或删除服务记录",
		"",
	)

	ErrServiceNotSubmittable = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_NOT_SUBMITTABLE",
		"只能发起处于暂存状态的服务记录",
		"",
	)

	ErrServiceNotConfirmable = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_NOT_CONFIRMABLE",
		"只能确认处于发起状态的服务记录",
		"",
	)

	ErrServiceNotEditable = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_NOT_EDITABLE",
		"只能更新暂存状态的服务记录",
		"",
	)

	ErrServiceInvalidated = NewBaseError(
		http.StatusForbidden,
		"SERVICE_INVALIDATED",
		"服务记录已失效",
		"",
	)

	// Statistics-related errors
	ErrStatisticsAccessDenied = NewBaseError(
		http.StatusForbidden,
		"STATISTICS_ACCESS_DENIED",
		"厂家用户和学生用户不能查看统计信息",
		"",
	)

	// Status validation
	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"无效的状态",
		"",
	)

	// Concurrency
	ErrVersionConflict = NewBaseError(
		http.StatusConflict,
		"VERSION_CONFLICT",
		"记录已被其他操作修改，请刷新后重试",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"输入数据验证失败",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"服务器内部错误",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"无权执行此操作",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"资源不存在",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "数据库执行失败"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
