package cart

import (
	"medibook/models"
)

// ComputeTotal returns Σ price×quantity over the lines. Totals are always
// recomputed server-side before persisting; client-supplied totals are
// ignored.
func ComputeTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// AddItem folds a line into the cart. A line with the same service id gets
// its quantity incremented; the unit price captured when the line was first
// added stays locked regardless of later catalog changes.
func AddItem(items []models.CartItem, serviceID, name string, unitPrice float64, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ServiceID == serviceID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{
		ServiceID: serviceID,
		Name:      name,
		Price:     unitPrice,
		Quantity:  quantity,
	})
}

// RemoveItem drops the line with the given service id, if present.
func RemoveItem(items []models.CartItem, serviceID string) []models.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ServiceID != serviceID {
			out = append(out, it)
		}
	}
	return out
}

// MergeItems folds src lines into dst. Quantities of matching lines are
// summed; the dst line's price lock wins on conflict.
func MergeItems(dst, src []models.CartItem) []models.CartItem {
	for _, it := range src {
		dst = AddItem(dst, it.ServiceID, it.Name, it.Price, it.Quantity)
	}
	return dst
}
