package entity

import (
	"fmt"
	"strings"
	"time"
)

// TaxRate is the procurement tax rate applied to the spread between
// tax-included and internal totals when deriving tax and balance figures.
const TaxRate = 0.13

// Order is a purchase order raised by a group user or student against a
// supplier. Line items snapshot the product fields at creation time and are
// immune to later catalog edits.
type Order struct {
	ID         uint
	UserID     uint
	SupplierID uint
	Items      []OrderItem
	Status     Status
	Version    uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem is one line of an order. InternalPrice is nil when the item was
// stored without one or when it has been stripped for the viewer. A muted
// item stays in the list but is excluded from every total.
type OrderItem struct {
	ID               uint
	OrderID          uint
	ProductID        uint
	Name             string
	Model            string
	Specification    string
	InternalPrice    *float64
	TaxIncludedPrice float64
	Quantity         int
	Muted            bool
}

// OrderTotals is the aggregate of an item list. InternalPrice is nil when
// the caller may not see internal prices.
type OrderTotals struct {
	TaxIncludedPrice float64
	InternalPrice    *float64
}

// ComputeTotals sums the non-muted items of an order. The tax-included total
// always accumulates; the internal total only accumulates when
// includeInternal is set, counting items that carry an internal price.
func ComputeTotals(items []OrderItem, includeInternal bool) OrderTotals {
	var taxIncluded, internal float64
	for _, item := range items {
		if item.Muted {
			continue
		}
		qty := float64(item.Quantity)
		taxIncluded += item.TaxIncludedPrice * qty
		if includeInternal && item.InternalPrice != nil {
			internal += *item.InternalPrice * qty
		}
	}

	totals := OrderTotals{TaxIncludedPrice: taxIncluded}
	if includeInternal {
		totals.InternalPrice = &internal
	}

	return totals
}

// StripInternalPrices returns a copy of the items with every internal price
// removed, for viewers that may not see them.
func StripInternalPrices(items []OrderItem) []OrderItem {
	stripped := make([]OrderItem, len(items))
	for i, item := range items {
		item.InternalPrice = nil
		stripped[i] = item
	}

	return stripped
}

// SummarizeItems renders the first three items as "name x qty" for
// notification mails, appending the total count when more follow.
func SummarizeItems(items []OrderItem) string {
	parts := make([]string, 0, 3)
	for _, item := range items[:min(len(items), 3)] {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}

	summary := strings.Join(parts, ", ")
	if len(items) > 3 {
		summary += fmt.Sprintf(" 等%d项", len(items))
	}

	return summary
}

// AccessibleBy reports whether the actor may read this order. Admin sees
// everything; group users and students see their own and, for group users,
// their managed students' orders; supplier logins see orders addressed to
// their supplier, except drafts which stay hidden until submitted.
func (o *Order) AccessibleBy(actor *User, managedIDs []uint) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleGroupUser:
		return containsID(managedIDs, o.UserID)
	case RoleStudent:
		return o.UserID == actor.ID
	case RoleSupplier:
		return actor.ActsForSupplier(o.SupplierID) && o.Status != StatusDraft
	default:
		return false
	}
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}
