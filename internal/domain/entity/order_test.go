package entity

import (
	"math"
	"testing"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	items := []OrderItem{
		{Name: "pipette", InternalPrice: float64Ptr(80), TaxIncludedPrice: 100, Quantity: 2},
		{Name: "gloves", InternalPrice: float64Ptr(40), TaxIncludedPrice: 50, Quantity: 1, Muted: true},
		{Name: "tube rack", TaxIncludedPrice: 30, Quantity: 3},
	}

	tests := []struct {
		name            string
		includeInternal bool
		wantTaxIncluded float64
		wantInternal    *float64
	}{
		{
			name:            "internal included skips muted and priceless items",
			includeInternal: true,
			wantTaxIncluded: 290,
			wantInternal:    float64Ptr(160),
		},
		{
			name:            "internal excluded",
			includeInternal: false,
			wantTaxIncluded: 290,
			wantInternal:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			totals := ComputeTotals(items, tt.includeInternal)
			if totals.TaxIncludedPrice != tt.wantTaxIncluded {
				t.Fatalf("tax included total = %v, want %v", totals.TaxIncludedPrice, tt.wantTaxIncluded)
			}
			if (totals.InternalPrice == nil) != (tt.wantInternal == nil) {
				t.Fatalf("internal total = %v, want %v", totals.InternalPrice, tt.wantInternal)
			}
			if totals.InternalPrice != nil && *totals.InternalPrice != *tt.wantInternal {
				t.Fatalf("internal total = %v, want %v", *totals.InternalPrice, *tt.wantInternal)
			}
		})
	}
}

func TestComputeTotalsMutedItemExcluded(t *testing.T) {
	t.Parallel()

	items := []OrderItem{
		{TaxIncludedPrice: 100, Quantity: 2},
		{TaxIncludedPrice: 50, Quantity: 1, Muted: true},
	}

	totals := ComputeTotals(items, false)
	if totals.TaxIncludedPrice != 200 {
		t.Fatalf("tax included total = %v, want 200", totals.TaxIncludedPrice)
	}
}

func TestStripInternalPrices(t *testing.T) {
	t.Parallel()

	items := []OrderItem{
		{Name: "pipette", InternalPrice: float64Ptr(80), TaxIncludedPrice: 100, Quantity: 2},
		{Name: "tube rack", TaxIncludedPrice: 30, Quantity: 1},
	}

	stripped := StripInternalPrices(items)
	for i, item := range stripped {
		if item.InternalPrice != nil {
			t.Fatalf("item %d still carries an internal price", i)
		}
	}

	if items[0].InternalPrice == nil {
		t.Fatal("source items must not be mutated")
	}
	if stripped[0].TaxIncludedPrice != 100 || stripped[1].Quantity != 1 {
		t.Fatal("non-price fields must be preserved")
	}
}

func TestSummarizeItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []OrderItem
		want  string
	}{
		{
			name:  "empty list",
			items: nil,
			want:  "",
		},
		{
			name: "up to three items listed in full",
			items: []OrderItem{
				{Name: "离心管", Quantity: 2},
				{Name: "移液枪", Quantity: 1},
			},
			want: "离心管 x2, 移液枪 x1",
		},
		{
			name: "more than three items truncated with count",
			items: []OrderItem{
				{Name: "a", Quantity: 1},
				{Name: "b", Quantity: 2},
				{Name: "c", Quantity: 3},
				{Name: "d", Quantity: 4},
				{Name: "e", Quantity: 5},
			},
			want: "a x1, b x2, c x3 等5项",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SummarizeItems(tt.items); got != tt.want {
				t.Fatalf("SummarizeItems() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrderAccessibleBy(t *testing.T) {
	t.Parallel()

	supplierID := uint(7)
	order := &Order{ID: 1, UserID: 10, SupplierID: supplierID, Status: StatusSubmitted}
	draft := &Order{ID: 2, UserID: 10, SupplierID: supplierID, Status: StatusDraft}

	admin := &User{ID: 1, Role: RoleAdmin}
	owner := &User{ID: 10, Role: RoleStudent}
	otherStudent := &User{ID: 11, Role: RoleStudent}
	manager := &User{ID: 20, Role: RoleGroupUser}
	supplierUser := &User{ID: 30, Role: RoleSupplier, SupplierID: &supplierID}
	otherSupplier := uint(8)
	strangerSupplier := &User{ID: 31, Role: RoleSupplier, SupplierID: &otherSupplier}

	tests := []struct {
		name       string
		order      *Order
		actor      *User
		managedIDs []uint
		want       bool
	}{
		{name: "admin sees everything", order: draft, actor: admin, want: true},
		{name: "owner student sees own", order: order, actor: owner, want: true},
		{name: "other student denied", order: order, actor: otherStudent, want: false},
		{name: "manager covering the owner", order: order, actor: manager, managedIDs: []uint{20, 10}, want: true},
		{name: "manager not covering the owner", order: order, actor: manager, managedIDs: []uint{20, 11}, want: false},
		{name: "supplier sees submitted order", order: order, actor: supplierUser, want: true},
		{name: "supplier never sees drafts", order: draft, actor: supplierUser, want: false},
		{name: "unrelated supplier denied", order: order, actor: strangerSupplier, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.order.AccessibleBy(tt.actor, tt.managedIDs); got != tt.want {
				t.Fatalf("AccessibleBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaxRate(t *testing.T) {
	t.Parallel()

	if math.Abs(TaxRate-0.13) > 1e-9 {
		t.Fatalf("TaxRate = %v, want 0.13", TaxRate)
	}
}
