package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/domain/service"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	notifier  service.Notifier
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Notifier  service.Notifier
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		notifier:  params.Notifier,
		qrcode:    params.QRCode,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create opens a draft order, snapshotting every line item. Items arriving
// without an internal price get it copied from the product so later catalog
// edits cannot rewrite history.
func (srv *orderService) Create(ctx context.Context, actor entity.Principal, input *usecase.CreateOrderInput) (*usecase.OrderView, error) {
	var view *usecase.OrderView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		// 1. Suppliers sit on the selling side and cannot raise orders.
		if user.Role == entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrSupplierCannotCreateOrder, "supplier may not create orders")
		}

		// 2. The supplier must exist.
		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, input.SupplierID)
		if err != nil {
			if errors.Is(err, repository.ErrSupplierNotFound) {
				return errors.Wrap(domainerrors.ErrSupplierNotFound, "no such supplier")
			}

			return errors.Wrap(err, "failed to find supplier")
		}

		// 3. Snapshot the items, filling missing internal prices from the
		// catalog scoped to this supplier.
		productRepo := repoFactory.NewProductRepository()
		items := make([]entity.OrderItem, 0, len(input.Items))
		for _, in := range input.Items {
			item := entity.OrderItem{
				ProductID:        in.ProductID,
				Name:             in.Name,
				Model:            in.Model,
				Specification:    in.Specification,
				InternalPrice:    in.InternalPrice,
				TaxIncludedPrice: in.TaxIncludedPrice,
				Quantity:         in.Quantity,
				Muted:            in.Muted,
			}
			if item.InternalPrice == nil {
				product, err := productRepo.FindBySupplier(ctx, in.ProductID, input.SupplierID)
				if err != nil {
					if errors.Is(err, repository.ErrProductNotFound) {
						return errors.Wrap(
							domainerrors.ErrProductNotFound.WithDetails(fmt.Sprintf("商品ID %d 不存在", in.ProductID)),
							"order item references unknown product",
						)
					}

					return errors.Wrap(err, "failed to find product")
				}
				price := product.InternalPrice
				item.InternalPrice = &price
			}
			items = append(items, item)
		}

		order := &entity.Order{
			UserID:     user.ID,
			SupplierID: input.SupplierID,
			Items:      items,
			Status:     entity.StatusDraft,
		}
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		view = srv.buildView(order, user, supplier.Name, user.Username, false)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Order creation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.Uint64("order_id", uint64(view.ID)),
		slog.Uint64("supplier_id", uint64(input.SupplierID)),
		slog.Int("items", len(input.Items)),
	)

	return view, nil
}

// Get returns one order with items and totals shaped per role.
func (srv *orderService) Get(ctx context.Context, actor entity.Principal, id uint) (*usecase.OrderView, error) {
	var view *usecase.OrderView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		order, err := srv.readableOrder(ctx, repoFactory, user, id)
		if err != nil {
			return err
		}

		supplierName := supplierNameOf(ctx, repoFactory.NewSupplierRepository(), order.SupplierID)
		view = srv.buildView(order, user, supplierName, usernameOf(ctx, userRepo, order.UserID), true)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return view, nil
}

// List returns the order page visible to the actor. Content and amount
// filters need the parsed items, so they run over the fetched page rather
// than inside the query.
func (srv *orderService) List(ctx context.Context, actor entity.Principal, input *usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)
	result := &usecase.OrderPage{Items: []*usecase.OrderView{}, Page: page, PageSize: pageSize}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		filter := repository.OrderFilter{
			SupplierID:    input.SupplierID,
			CreatedAfter:  input.StartDate,
			CreatedBefore: input.EndDate,
			Page:          page,
			PageSize:      pageSize,
		}
		if input.Status != nil {
			status := entity.Status(*input.Status)
			filter.Status = &status
		}

		// 1. Scope the query to what the role may see.
		switch user.Role {
		case entity.RoleAdmin:
		case entity.RoleGroupUser:
			ids, err := visibleUserIDs(ctx, userRepo, user)
			if err != nil {
				return err
			}
			filter.UserIDs = ids
		case entity.RoleStudent:
			filter.UserIDs = []uint{user.ID}
		case entity.RoleSupplier:
			if user.SupplierID == nil {
				return nil
			}
			filter.SupplierID = user.SupplierID
			draft := entity.StatusDraft
			filter.ExcludeStatus = &draft
		}

		orders, total, err := repoFactory.NewOrderRepository().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}

		// 2. Containment and amount filters work on the item snapshots, so
		// they are applied to the fetched page.
		if input.Content != "" {
			orders = filterOrdersByContent(orders, input.Content)
			total = int64(len(orders))
		}
		if input.MinAmount != nil || input.MaxAmount != nil {
			orders = filterOrdersByAmount(orders, input.MinAmount, input.MaxAmount)
			total = int64(len(orders))
		}

		// 3. Shape the rows.
		supplierRepo := repoFactory.NewSupplierRepository()
		supplierNames := map[uint]string{}
		usernames := map[uint]string{}
		for _, order := range orders {
			supplierName, ok := supplierNames[order.SupplierID]
			if !ok {
				supplierName = supplierNameOf(ctx, supplierRepo, order.SupplierID)
				supplierNames[order.SupplierID] = supplierName
			}
			username, ok := usernames[order.UserID]
			if !ok {
				username = usernameOf(ctx, userRepo, order.UserID)
				usernames[order.UserID] = username
			}
			result.Items = append(result.Items, srv.buildView(order, user, supplierName, username, false))
		}
		result.Total = total

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return result, nil
}

// UpdateStatus moves an order through its lifecycle. The per role rules and
// their check order follow the business contract exactly; the optional
// version guards against two writers racing the same transition.
func (srv *orderService) UpdateStatus(ctx context.Context, actor entity.Principal, id uint, input *usecase.UpdateStatusInput) error {
	target := entity.Status(input.Status)

	var notice *service.OrderNotification

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		orderRepo := repoFactory.NewOrderRepository()
		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "no such order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		// 1. Role-specific transition rules.
		if err := srv.checkTransition(ctx, userRepo, user, order, target); err != nil {
			return err
		}

		// 2. The target must be a known status.
		if !target.IsValid() {
			return errors.Wrap(domainerrors.ErrInvalidStatus.WithDetails(validStatusesDetail()), "unknown status")
		}

		// 3. Optimistic concurrency: a stale client loses.
		if input.Version != nil && *input.Version != order.Version {
			return errors.Wrap(domainerrors.ErrVersionConflict, "stale version from client")
		}

		// 4. Resolve the notification target before the write.
		notice = srv.noticeFor(ctx, repoFactory, order, target)

		if err := orderRepo.UpdateStatus(ctx, order.ID, order.Version, target); err != nil {
			if errors.Is(err, repository.ErrVersionMismatch) {
				return errors.Wrap(domainerrors.ErrVersionConflict, "concurrent status change")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Order status update failed",
			slog.Uint64("order_id", uint64(id)),
			slog.String("target", input.Status),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Uint64("order_id", uint64(id)),
		slog.String("status", input.Status),
		slog.Uint64("user_id", uint64(actor.UserID)),
	)

	srv.dispatchOrderNotice(ctx, notice)

	return nil
}

// Delete removes a draft or submitted order outright, turns a confirmed one
// invalid, and refuses to touch an invalid one.
func (srv *orderService) Delete(ctx context.Context, actor entity.Principal, id uint) (*usecase.DeleteOutcome, error) {
	outcome := &usecase.DeleteOutcome{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		// Suppliers never delete orders, not even missing ones.
		if user.Role == entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrSupplierCannotDeleteOrder, "supplier may not delete orders")
		}

		orderRepo := repoFactory.NewOrderRepository()
		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "no such order")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if user.Role == entity.RoleGroupUser {
			manages, err := managesUser(ctx, userRepo, user, order.UserID)
			if err != nil {
				return err
			}
			if !manages {
				return errors.Wrap(domainerrors.ErrOrderDeleteDenied, "order belongs to an unmanaged user")
			}
		}
		if user.Role == entity.RoleStudent && order.UserID != user.ID {
			return errors.Wrap(domainerrors.ErrOrderDeleteDenied, "order belongs to another user")
		}

		switch order.Status {
		case entity.StatusInvalid:
			return errors.Wrap(domainerrors.ErrOrderInvalidated, "order already invalid")
		case entity.StatusConfirmed:
			// Confirmed orders stay on the books.
			if err := orderRepo.UpdateStatus(ctx, order.ID, order.Version, entity.StatusInvalid); err != nil {
				if errors.Is(err, repository.ErrVersionMismatch) {
					return errors.Wrap(domainerrors.ErrVersionConflict, "concurrent status change")
				}

				return errors.Wrap(err, "failed to invalidate order")
			}
			outcome.Invalidated = true
			outcome.Message = "订单已标记为无效"
		default:
			if err := orderRepo.Delete(ctx, order.ID); err != nil {
				return errors.Wrap(err, "failed to delete order")
			}
			outcome.Message = "订单删除成功"
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted",
		slog.Uint64("order_id", uint64(id)),
		slog.Bool("invalidated", outcome.Invalidated),
	)

	return outcome, nil
}

// checkTransition enforces who may move an order where. The check order per
// role is part of the API contract: clients rely on which rejection wins.
func (srv *orderService) checkTransition(ctx context.Context, userRepo repository.UserRepository, user *entity.User, order *entity.Order, target entity.Status) error {
	switch user.Role {
	case entity.RoleSupplier:
		if target != entity.StatusConfirmed {
			return errors.Wrap(domainerrors.ErrSupplierOnlyConfirmsOrder, "supplier may only confirm")
		}
		if order.Status != entity.StatusSubmitted {
			return errors.Wrap(domainerrors.ErrOrderNotConfirmable, "only submitted orders confirm")
		}
		if !user.ActsForSupplier(order.SupplierID) {
			return errors.Wrap(domainerrors.ErrOrderActionDenied, "order addressed to another supplier")
		}
	case entity.RoleGroupUser:
		manages, err := managesUser(ctx, userRepo, user, order.UserID)
		if err != nil {
			return err
		}
		if !manages {
			return errors.Wrap(domainerrors.ErrOrderActionDenied, "order belongs to an unmanaged user")
		}
		switch target {
		case entity.StatusSubmitted:
			if order.Status != entity.StatusDraft {
				return errors.Wrap(domainerrors.ErrOrderNotSubmittable, "only drafts submit")
			}
		case entity.StatusInvalid:
		default:
			return errors.Wrap(domainerrors.ErrGroupUserOrderActions, "group user may only submit or invalidate")
		}
	case entity.RoleStudent:
		if order.UserID != user.ID {
			return errors.Wrap(domainerrors.ErrOrderActionDenied, "order belongs to another user")
		}
		switch target {
		case entity.StatusSubmitted:
			if order.Status != entity.StatusDraft {
				return errors.Wrap(domainerrors.ErrOrderNotSubmittable, "only drafts submit")
			}
		case entity.StatusInvalid:
		default:
			return errors.Wrap(domainerrors.ErrStudentOrderActions, "student may only submit or invalidate")
		}
	case entity.RoleAdmin:
	}

	return nil
}

// noticeFor picks who should hear about the transition: submission tells the
// supplier's login, confirmation tells the order's owner. Nil when nobody
// qualifies.
func (srv *orderService) noticeFor(ctx context.Context, repoFactory repository.RepositoryFactory, order *entity.Order, target entity.Status) *service.OrderNotification {
	var recipient *entity.User

	userRepo := repoFactory.NewUserRepository()
	switch target {
	case entity.StatusSubmitted:
		user, err := userRepo.FindBySupplierID(ctx, order.SupplierID)
		if err != nil {
			return nil
		}
		recipient = user
	case entity.StatusConfirmed:
		user, err := userRepo.FindByID(ctx, order.UserID)
		if err != nil {
			return nil
		}
		recipient = user
	default:
		return nil
	}

	if recipient.Email == "" {
		return nil
	}

	return &service.OrderNotification{
		ToEmail:      recipient.Email,
		ToName:       recipient.Username,
		OrderID:      order.ID,
		Status:       target,
		SupplierName: supplierNameOf(ctx, repoFactory.NewSupplierRepository(), order.SupplierID),
		ItemsSummary: entity.SummarizeItems(order.Items),
	}
}

// dispatchOrderNotice sends the mail off the request path. Delivery failures
// are logged and never surface to the caller.
func (srv *orderService) dispatchOrderNotice(ctx context.Context, notice *service.OrderNotification) {
	if notice == nil {
		return
	}

	logger := srv.log(ctx)
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Order notification panicked", slog.Any("panic", r))
			}
		}()

		if err := srv.notifier.SendOrderNotification(sendCtx, *notice); err != nil {
			logger.Warn("Order notification failed",
				slog.Uint64("order_id", uint64(notice.OrderID)),
				slog.Any("error", err),
			)
		}
	}()
}

// readableOrder loads an order and applies the read visibility rules.
func (srv *orderService) readableOrder(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User, id uint) (*entity.Order, error) {
	order, err := repoFactory.NewOrderRepository().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "no such order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	var managed []uint
	if user.Role == entity.RoleGroupUser {
		managed, err = visibleUserIDs(ctx, repoFactory.NewUserRepository(), user)
		if err != nil {
			return nil, err
		}
	}
	if !order.AccessibleBy(user, managed) {
		return nil, errors.Wrap(domainerrors.ErrOrderAccessDenied, "order not visible to role")
	}

	return order, nil
}

// buildView shapes an order for the actor, stripping internal prices for
// roles that may not see them. Totals are attached only on detail reads.
func (srv *orderService) buildView(order *entity.Order, user *entity.User, supplierName, username string, withTotals bool) *usecase.OrderView {
	includeInternal := user.Role.CanViewInternalPrice()

	view := &usecase.OrderView{
		ID:           order.ID,
		UserID:       order.UserID,
		Username:     username,
		SupplierID:   order.SupplierID,
		SupplierName: supplierName,
		Items:        usecase.NewOrderItemViews(order.Items, includeInternal),
		Status:       order.Status.String(),
		Version:      order.Version,
		CreatedAt:    order.CreatedAt,
	}

	if withTotals {
		totals := entity.ComputeTotals(order.Items, includeInternal)
		view.TotalTaxIncludedPrice = &totals.TaxIncludedPrice
		view.TotalInternalPrice = totals.InternalPrice
	}

	return view
}

// filterOrdersByContent keeps orders whose item fields contain the needle,
// case-insensitively.
func filterOrdersByContent(orders []*entity.Order, needle string) []*entity.Order {
	needle = strings.ToLower(needle)
	kept := orders[:0]
	for _, order := range orders {
		for _, item := range order.Items {
			haystack := strings.ToLower(strings.Join([]string{item.Name, item.Model, item.Specification}, " "))
			if strings.Contains(haystack, needle) {
				kept = append(kept, order)
				break
			}
		}
	}

	return kept
}

// filterOrdersByAmount keeps orders whose tax-included total falls inside
// the bounds.
func filterOrdersByAmount(orders []*entity.Order, minAmount, maxAmount *float64) []*entity.Order {
	kept := orders[:0]
	for _, order := range orders {
		amount := entity.ComputeTotals(order.Items, false).TaxIncludedPrice
		if minAmount != nil && amount < *minAmount {
			continue
		}
		if maxAmount != nil && amount > *maxAmount {
			continue
		}
		kept = append(kept, order)
	}

	return kept
}

func validStatusesDetail() string {
	parts := make([]string, 0, 4)
	for _, status := range entity.ValidStatuses() {
		parts = append(parts, status.String())
	}

	return strings.Join(parts, ", ")
}
