package entity

// StatisticsRow aggregates one supplier's confirmed orders and services.
// The grand-total row uses supplier id 0 and the name "总计".
type StatisticsRow struct {
	SupplierID            uint
	SupplierName          string
	OrderCount            int
	ProductCount          int
	TotalInternalPrice    float64
	TotalTaxIncludedPrice float64
	TotalServiceAmount    float64
	TotalTax              float64
	TotalBalance          float64
}

// GrandTotalName labels the synthetic summary row.
const GrandTotalName = "总计"

// Derive fills the tax and balance figures from the accumulated components.
// Tax applies the rate to the spread between tax-included and internal
// totals; the balance is that spread minus tax minus service spending.
func (r *StatisticsRow) Derive() {
	spread := r.TotalTaxIncludedPrice - r.TotalInternalPrice
	r.TotalTax = spread * TaxRate
	r.TotalBalance = spread - r.TotalTax - r.TotalServiceAmount
}
