package usecase

import (
	"context"

	"bookkeep/internal/domain/entity"
)

// StatisticsUsecase defines the interface for the per-supplier settlement report.
type StatisticsUsecase interface {
	// Report aggregates the confirmed orders and service records visible to
	// the actor into per-supplier tax and balance rows plus a grand total.
	// Admin and group users only.
	Report(ctx context.Context, actor entity.Principal) (*StatisticsReport, error)
}

// StatisticsRowView is one supplier's settlement figures.
type StatisticsRowView struct {
	SupplierID            uint    `json:"supplier_id"`
	SupplierName          string  `json:"supplier_name"`
	OrderCount            int     `json:"order_count"`
	ProductCount          int     `json:"product_count"`
	TotalInternalPrice    float64 `json:"total_internal_price"`
	TotalTaxIncludedPrice float64 `json:"total_tax_included_price"`
	TotalServiceAmount    float64 `json:"total_service_amount"`
	TotalTax              float64 `json:"total_tax"`
	TotalBalance          float64 `json:"total_balance"`
}

// StatisticsReport is the full settlement report.
type StatisticsReport struct {
	Items []*StatisticsRowView `json:"items"`
	Total *StatisticsRowView   `json:"total"`
}

// NewStatisticsRowView maps an aggregation row to its client shape.
func NewStatisticsRowView(row *entity.StatisticsRow) *StatisticsRowView {
	return &StatisticsRowView{
		SupplierID:            row.SupplierID,
		SupplierName:          row.SupplierName,
		OrderCount:            row.OrderCount,
		ProductCount:          row.ProductCount,
		TotalInternalPrice:    row.TotalInternalPrice,
		TotalTaxIncludedPrice: row.TotalTaxIncludedPrice,
		TotalServiceAmount:    row.TotalServiceAmount,
		TotalTax:              row.TotalTax,
		TotalBalance:          row.TotalBalance,
	}
}
