package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "bookkeep/internal/delivery/context"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/domain/service"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// serviceRecordService implements the ServiceRecordUsecase interface.
type serviceRecordService struct {
	txManager repository.TransactionManager
	notifier  service.Notifier
	logger    *slog.Logger
}

// ServiceRecordServiceParams holds dependencies for serviceRecordService, injected by Fx.
type ServiceRecordServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Notifier  service.Notifier
	Logger    *slog.Logger
}

// NewServiceRecordService is the constructor for serviceRecordService.
func NewServiceRecordService(params ServiceRecordServiceParams) usecase.ServiceRecordUsecase {
	return &serviceRecordService{
		txManager: params.TxManager,
		notifier:  params.Notifier,
		logger:    params.Logger,
	}
}

func (srv *serviceRecordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create opens a draft service record. Only a supplier login may create one,
// only against its own supplier, and always aimed at a non-supplier target.
func (srv *serviceRecordService) Create(ctx context.Context, actor entity.Principal, input *usecase.CreateServiceInput) (*usecase.ServiceRecordView, error) {
	var view *usecase.ServiceRecordView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		// 1. Creation is the supplier side's move.
		if user.Role != entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrOnlySupplierCreatesService, "only suppliers create service records")
		}
		if !user.ActsForSupplier(input.SupplierID) {
			return errors.Wrap(domainerrors.ErrServiceSelfOnly, "record addressed to another supplier")
		}

		supplier, err := repoFactory.NewSupplierRepository().FindByID(ctx, input.SupplierID)
		if err != nil {
			if errors.Is(err, repository.ErrSupplierNotFound) {
				return errors.Wrap(domainerrors.ErrSupplierNotFound, "no such supplier")
			}

			return errors.Wrap(err, "failed to find supplier")
		}

		// 2. Resolve the target by username.
		if input.UserUsername == "" {
			return errors.Wrap(domainerrors.ErrServiceTargetRequired, "missing target username")
		}
		target, err := userRepo.FindByUsername(ctx, input.UserUsername)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(
					domainerrors.ErrUserNotFound.WithDetails(fmt.Sprintf("用户 '%s' 不存在", input.UserUsername)),
					"no such target user",
				)
			}

			return errors.Wrap(err, "failed to find target user")
		}
		if target.Role == entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrServiceTargetIsSupplier, "target must be a buyer account")
		}

		record := &entity.ServiceRecord{
			UserID:     target.ID,
			SupplierID: input.SupplierID,
			Content:    input.Content,
			Amount:     input.Amount,
			Status:     entity.StatusDraft,
		}
		if err := repoFactory.NewServiceRecordRepository().Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to create service record")
		}

		view = usecase.NewServiceRecordView(record, target.Username, supplier.Name)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Service record creation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create service record")
	}

	srv.log(ctx).Info("Service record created",
		slog.Uint64("service_id", uint64(view.ID)),
		slog.Uint64("supplier_id", uint64(input.SupplierID)),
	)

	return view, nil
}

// Get returns one service record if the actor may read it.
func (srv *serviceRecordService) Get(ctx context.Context, actor entity.Principal, id uint) (*usecase.ServiceRecordView, error) {
	var view *usecase.ServiceRecordView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		record, err := srv.readableRecord(ctx, repoFactory, user, id)
		if err != nil {
			return err
		}

		view = usecase.NewServiceRecordView(record,
			usernameOf(ctx, userRepo, record.UserID),
			supplierNameOf(ctx, repoFactory.NewSupplierRepository(), record.SupplierID),
		)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get service record")
	}

	return view, nil
}

// List returns the service record page visible to the actor. Suppliers see
// their own records at every status; buyers never see drafts.
func (srv *serviceRecordService) List(ctx context.Context, actor entity.Principal, input *usecase.ListServicesInput) (*usecase.ServiceRecordPage, error) {
	page, pageSize := normalizePage(input.Page, input.PageSize)
	result := &usecase.ServiceRecordPage{Items: []*usecase.ServiceRecordView{}, Page: page, PageSize: pageSize}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		filter := repository.ServiceRecordFilter{
			SupplierID:    input.SupplierID,
			Content:       input.Content,
			MinAmount:     input.MinAmount,
			MaxAmount:     input.MaxAmount,
			CreatedAfter:  input.StartDate,
			CreatedBefore: input.EndDate,
			Page:          page,
			PageSize:      pageSize,
		}
		if input.Status != nil {
			status := entity.Status(*input.Status)
			filter.Status = &status
		}

		draft := entity.StatusDraft
		switch user.Role {
		case entity.RoleAdmin:
		case entity.RoleGroupUser:
			ids, err := visibleUserIDs(ctx, userRepo, user)
			if err != nil {
				return err
			}
			filter.UserIDs = ids
			filter.ExcludeStatus = &draft
		case entity.RoleStudent:
			filter.UserIDs = []uint{user.ID}
			filter.ExcludeStatus = &draft
		case entity.RoleSupplier:
			if user.SupplierID == nil {
				return nil
			}
			filter.SupplierID = user.SupplierID
		}

		records, total, err := repoFactory.NewServiceRecordRepository().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list service records")
		}

		supplierRepo := repoFactory.NewSupplierRepository()
		supplierNames := map[uint]string{}
		usernames := map[uint]string{}
		for _, record := range records {
			supplierName, ok := supplierNames[record.SupplierID]
			if !ok {
				supplierName = supplierNameOf(ctx, supplierRepo, record.SupplierID)
				supplierNames[record.SupplierID] = supplierName
			}
			username, ok := usernames[record.UserID]
			if !ok {
				username = usernameOf(ctx, userRepo, record.UserID)
				usernames[record.UserID] = username
			}
			result.Items = append(result.Items, usecase.NewServiceRecordView(record, username, supplierName))
		}
		result.Total = total

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list service records")
	}

	return result, nil
}

// Update rewrites content and amount on a draft. Only the owning supplier
// may edit, and only while the record is still a draft.
func (srv *serviceRecordService) Update(ctx context.Context, actor entity.Principal, id uint, input *usecase.UpdateServiceInput) (*usecase.ServiceRecordView, error) {
	var view *usecase.ServiceRecordView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		recordRepo := repoFactory.NewServiceRecordRepository()
		record, err := recordRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrServiceRecordNotFound) {
				return errors.Wrap(domainerrors.ErrServiceNotFound, "no such service record")
			}

			return errors.Wrap(err, "failed to find service record")
		}

		if user.Role != entity.RoleSupplier {
			return errors.Wrap(domainerrors.ErrOnlySupplierUpdatesService, "only suppliers update service records")
		}
		if !user.ActsForSupplier(record.SupplierID) {
			return errors.Wrap(domainerrors.ErrServiceUpdateDenied, "record belongs to another supplier")
		}
		if record.Status != entity.StatusDraft {
			return errors.Wrap(domainerrors.ErrServiceNotEditable, "record already submitted")
		}

		if input.Content != nil {
			record.Content = *input.Content
		}
		if input.Amount != nil {
			record.Amount = *input.Amount
		}
		if err := recordRepo.Update(ctx, record); err != nil {
			if errors.Is(err, repository.ErrVersionMismatch) {
				return errors.Wrap(domainerrors.ErrVersionConflict, "concurrent record change")
			}

			return errors.Wrap(err, "failed to update service record")
		}

		view = usecase.NewServiceRecordView(record,
			usernameOf(ctx, userRepo, record.UserID),
			supplierNameOf(ctx, repoFactory.NewSupplierRepository(), record.SupplierID),
		)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Service record update failed",
			slog.Uint64("service_id", uint64(id)),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to update service record")
	}

	srv.log(ctx).Info("Service record updated", slog.Uint64("service_id", uint64(id)))

	return view, nil
}

// UpdateStatus moves a service record through its lifecycle. Suppliers
// submit, buyers confirm, roles mirror the order flow with sides swapped.
func (srv *serviceRecordService) UpdateStatus(ctx context.Context, actor entity.Principal, id uint, input *usecase.UpdateStatusInput) error {
	target := entity.Status(input.Status)

	var notice *service.ServiceNotification

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		recordRepo := repoFactory.NewServiceRecordRepository()
		record, err := recordRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrServiceRecordNotFound) {
				return errors.Wrap(domainerrors.ErrServiceNotFound, "no such service record")
			}

			return errors.Wrap(err, "failed to find service record")
		}

		if err := srv.checkTransition(ctx, userRepo, user, record, target); err != nil {
			return err
		}

		if !target.IsValid() {
			return errors.Wrap(domainerrors.ErrInvalidStatus.WithDetails(validStatusesDetail()), "unknown status")
		}

		if input.Version != nil && *input.Version != record.Version {
			return errors.Wrap(domainerrors.ErrVersionConflict, "stale version from client")
		}

		notice = srv.noticeFor(ctx, repoFactory, record, target)

		if err := recordRepo.UpdateStatus(ctx, record.ID, record.Version, target); err != nil {
			if errors.Is(err, repository.ErrVersionMismatch) {
				return errors.Wrap(domainerrors.ErrVersionConflict, "concurrent status change")
			}

			return errors.Wrap(err, "failed to update service record status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Service record status update failed",
			slog.Uint64("service_id", uint64(id)),
			slog.String("target", input.Status),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to update service record status")
	}

	srv.log(ctx).Info("Service record status updated",
		slog.Uint64("service_id", uint64(id)),
		slog.String("status", input.Status),
		slog.Uint64("user_id", uint64(actor.UserID)),
	)

	srv.dispatchServiceNotice(ctx, notice)

	return nil
}

// Delete removes a draft or submitted record, turns a confirmed one invalid,
// and lets only an admin purge an already invalid one.
func (srv *serviceRecordService) Delete(ctx context.Context, actor entity.Principal, id uint) (*usecase.DeleteOutcome, error) {
	outcome := &usecase.DeleteOutcome{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := loadActor(ctx, userRepo, actor)
		if err != nil {
			return err
		}

		recordRepo := repoFactory.NewServiceRecordRepository()
		record, err := recordRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrServiceRecordNotFound) {
				return errors.Wrap(domainerrors.ErrServiceNotFound, "no such service record")
			}

			return errors.Wrap(err, "failed to find service record")
		}

		switch user.Role {
		case entity.RoleGroupUser:
			manages, err := managesUser(ctx, userRepo, user, record.UserID)
			if err != nil {
				return err
			}
			if !manages {
				return errors.Wrap(domainerrors.ErrServiceDeleteDenied, "record targets an unmanaged user")
			}
		case entity.RoleStudent:
			if record.UserID != user.ID {
				return errors.Wrap(domainerrors.ErrServiceDeleteDenied, "record targets another user")
			}
		case entity.RoleSupplier:
			if !user.ActsForSupplier(record.SupplierID) {
				return errors.Wrap(domainerrors.ErrServiceDeleteDenied, "record belongs to another supplier")
			}
		case entity.RoleAdmin:
		}

		switch record.Status {
		case entity.StatusInvalid:
			// Only an admin may purge a voided record.
			if user.Role != entity.RoleAdmin {
				return errors.Wrap(domainerrors.ErrServiceInvalidated, "record already invalid")
			}
			if err := recordRepo.Delete(ctx, record.ID); err != nil {
				return errors.Wrap(err, "failed to delete service record")
			}
			outcome.Message = "服务记录删除成功"
		case entity.StatusConfirmed:
			if err := recordRepo.UpdateStatus(ctx, record.ID, record.Version, entity.StatusInvalid); err != nil {
				if errors.Is(err, repository.ErrVersionMismatch) {
					return errors.Wrap(domainerrors.ErrVersionConflict, "concurrent status change")
				}

				return errors.Wrap(err, "failed to invalidate service record")
			}
			outcome.Invalidated = true
			outcome.Message = "服务记录已标记为无效"
		default:
			if err := recordRepo.Delete(ctx, record.ID); err != nil {
				return errors.Wrap(err, "failed to delete service record")
			}
			outcome.Message = "服务记录删除成功"
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete service record")
	}

	srv.log(ctx).Info("Service record deleted",
		slog.Uint64("service_id", uint64(id)),
		slog.Bool("invalidated", outcome.Invalidated),
	)

	return outcome, nil
}

// checkTransition enforces who may move a record where. Submission is the
// supplier's move and requires a draft; confirmation is the buyer side's
// move and requires a submitted record.
func (srv *serviceRecordService) checkTransition(ctx context.Context, userRepo repository.UserRepository, user *entity.User, record *entity.ServiceRecord, target entity.Status) error {
	switch user.Role {
	case entity.RoleGroupUser:
		manages, err := managesUser(ctx, userRepo, user, record.UserID)
		if err != nil {
			return err
		}
		if !manages {
			return errors.Wrap(domainerrors.ErrServiceActionDenied, "record targets an unmanaged user")
		}
		switch target {
		case entity.StatusConfirmed:
			if record.Status != entity.StatusSubmitted {
				return errors.Wrap(domainerrors.ErrServiceNotConfirmable, "only submitted records confirm")
			}
		case entity.StatusInvalid:
		default:
			return errors.Wrap(domainerrors.ErrGroupUserServiceActions, "group user may only confirm or invalidate")
		}
	case entity.RoleStudent:
		if record.UserID != user.ID {
			return errors.Wrap(domainerrors.ErrServiceActionDenied, "record targets another user")
		}
		switch target {
		case entity.StatusConfirmed:
			if record.Status != entity.StatusSubmitted {
				return errors.Wrap(domainerrors.ErrServiceNotConfirmable, "only submitted records confirm")
			}
		case entity.StatusInvalid:
		default:
			return errors.Wrap(domainerrors.ErrStudentServiceActions, "student may only confirm or invalidate")
		}
	case entity.RoleSupplier:
		switch target {
		case entity.StatusSubmitted:
			if record.Status != entity.StatusDraft {
				return errors.Wrap(domainerrors.ErrServiceNotSubmittable, "only drafts submit")
			}
			if !user.ActsForSupplier(record.SupplierID) {
				return errors.Wrap(domainerrors.ErrServiceActionDenied, "record belongs to another supplier")
			}
		case entity.StatusInvalid:
			if !user.ActsForSupplier(record.SupplierID) {
				return errors.Wrap(domainerrors.ErrServiceActionDenied, "record belongs to another supplier")
			}
		default:
			return errors.Wrap(domainerrors.ErrSupplierServiceActions, "supplier may only submit or invalidate")
		}
	case entity.RoleAdmin:
	}

	return nil
}

// noticeFor picks who should hear about the transition: submission tells the
// service target, confirmation tells the supplier's login.
func (srv *serviceRecordService) noticeFor(ctx context.Context, repoFactory repository.RepositoryFactory, record *entity.ServiceRecord, target entity.Status) *service.ServiceNotification {
	var recipient *entity.User

	userRepo := repoFactory.NewUserRepository()
	switch target {
	case entity.StatusSubmitted:
		user, err := userRepo.FindByID(ctx, record.UserID)
		if err != nil {
			return nil
		}
		recipient = user
	case entity.StatusConfirmed:
		user, err := userRepo.FindBySupplierID(ctx, record.SupplierID)
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

	return &service.ServiceNotification{
		ToEmail:      recipient.Email,
		ToName:       recipient.Username,
		ServiceID:    record.ID,
		Status:       target,
		SupplierName: supplierNameOf(ctx, repoFactory.NewSupplierRepository(), record.SupplierID),
		Content:      record.Content,
		Amount:       record.Amount,
	}
}

func (srv *serviceRecordService) dispatchServiceNotice(ctx context.Context, notice *service.ServiceNotification) {
	if notice == nil {
		return
	}

	logger := srv.log(ctx)
	sendCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Service notification panicked", slog.Any("panic", r))
			}
		}()

		if err := srv.notifier.SendServiceNotification(sendCtx, *notice); err != nil {
			logger.Warn("Service notification failed",
				slog.Uint64("service_id", uint64(notice.ServiceID)),
				slog.Any("error", err),
			)
		}
	}()
}

// readableRecord loads a record and applies the read visibility rules.
func (srv *serviceRecordService) readableRecord(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User, id uint) (*entity.ServiceRecord, error) {
	record, err := repoFactory.NewServiceRecordRepository().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrServiceRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrServiceNotFound, "no such service record")
		}

		return nil, errors.Wrap(err, "failed to find service record")
	}

	var managed []uint
	if user.Role == entity.RoleGroupUser {
		managed, err = visibleUserIDs(ctx, repoFactory.NewUserRepository(), user)
		if err != nil {
			return nil, err
		}
	}
	if !record.AccessibleBy(user, managed) {
		return nil, errors.Wrap(domainerrors.ErrServiceAccessDenied, "record not visible to role")
	}

	return record, nil
}
