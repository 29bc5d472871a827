package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/repository"
	"bookkeep/internal/usecase"

	"github.com/pkg/errors"
)

// Export renders an order as a CSV download. Column layout depends on the
// actor: internal prices appear only for roles allowed to see them.
func (srv *orderService) Export(ctx context.Context, actor entity.Principal, id uint) (*usecase.OrderExport, error) {
	var export *usecase.OrderExport

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		order, err := srv.readableOrder(ctx, repoFactory, user, id)
		if err != nil {
			return err
		}

		data, err := renderOrderCSV(order, user.Role.CanViewInternalPrice())
		if err != nil {
			return errors.Wrap(err, "failed to render order csv")
		}

		export = &usecase.OrderExport{
			Filename:    fmt.Sprintf("订单_%d_%s.csv", order.ID, time.Now().Format("20060102")),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to export order")
	}

	srv.log(ctx).Info("Order exported",
		slog.Uint64("order_id", uint64(id)),
		slog.Uint64("user_id", uint64(actor.UserID)),
	)

	return export, nil
}

// QRCode returns a PNG encoding the order's detail URL. Access follows the
// same rules as reading the order.
func (srv *orderService) QRCode(ctx context.Context, actor entity.Principal, id uint) ([]byte, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := loadActor(ctx, repoFactory.NewUserRepository(), actor)
		if err != nil {
			return err
		}

		_, err = srv.readableOrder(ctx, repoFactory, user, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to authorize order qr code")
	}

	png, err := srv.qrcode.GenerateOrderQR(id)
	if err != nil {
		srv.log(ctx).Error("QR code generation failed",
			slog.Uint64("order_id", uint64(id)),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to generate qr code")
	}

	return png, nil
}

// renderOrderCSV writes item rows, a spacer, and a totals row. The output
// starts with a UTF-8 BOM so spreadsheet apps pick the right encoding.
func renderOrderCSV(order *entity.Order, includeInternal bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)

	header := []string{"商品名", "型号", "规格"}
	if includeInternal {
		header = append(header, "内部价格")
	}
	header = append(header, "含税价格", "数量", "小计")
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "failed to write csv header")
	}

	for _, item := range order.Items {
		row := []string{item.Name, item.Model, item.Specification}
		if includeInternal {
			row = append(row, formatAmount(item.InternalPrice))
		}
		row = append(row,
			formatMoney(item.TaxIncludedPrice),
			strconv.Itoa(item.Quantity),
			formatMoney(item.TaxIncludedPrice*float64(item.Quantity)),
		)
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, "failed to write csv row")
		}
	}

	if err := w.Write(make([]string, len(header))); err != nil {
		return nil, errors.Wrap(err, "failed to write csv spacer")
	}

	totals := entity.ComputeTotals(order.Items, includeInternal)
	footer := []string{"总计", "", ""}
	if includeInternal {
		footer = append(footer, formatAmount(totals.InternalPrice))
	}
	footer = append(footer, "", "", formatMoney(totals.TaxIncludedPrice))
	if err := w.Write(footer); err != nil {
		return nil, errors.Wrap(err, "failed to write csv totals")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush csv")
	}

	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}

	return formatMoney(*v)
}
