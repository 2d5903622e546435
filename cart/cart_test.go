package cart

import (
	"testing"

	"medibook/models"
)

func TestComputeTotal(t *testing.T) {
	cases := []struct {
		name     string
		items    []models.CartItem
		expected float64
	}{
		{
			name:     "empty cart",
			items:    nil,
			expected: 0,
		},
		{
			name: "single line",
			items: []models.CartItem{
				{ServiceID: "s1", Price: 50, Quantity: 1},
			},
			expected: 50,
		},
		{
			name: "quantities multiply",
			items: []models.CartItem{
				{ServiceID: "s1", Price: 50, Quantity: 2},
				{ServiceID: "s2", Price: 19.5, Quantity: 3},
			},
			expected: 158.5,
		},
	}

	for _, c := range cases {
		if got := ComputeTotal(c.items); got != c.expected {
			t.Fatalf("%s: ComputeTotal = %v; want %v", c.name, got, c.expected)
		}
	}
}

func TestAddItemFoldsDuplicates(t *testing.T) {
	items := AddItem(nil, "s1", "Consultation", 50, 1)
	items = AddItem(items, "s1", "Consultation", 50, 1)

	if len(items) != 1 {
		t.Fatalf("expected one line after duplicate add, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if got := ComputeTotal(items); got != 100 {
		t.Fatalf("expected total 100, got %v", got)
	}
}

func TestAddItemKeepsPriceLock(t *testing.T) {
	items := AddItem(nil, "s1", "Consultation", 50, 1)
	// catalog price changed to 80 between the two adds; the lock wins
	items = AddItem(items, "s1", "Consultation", 80, 1)

	if items[0].Price != 50 {
		t.Fatalf("locked price changed: got %v, want 50", items[0].Price)
	}
	if got := ComputeTotal(items); got != 100 {
		t.Fatalf("expected total 100 at locked price, got %v", got)
	}
}

func TestRemoveItem(t *testing.T) {
	items := []models.CartItem{
		{ServiceID: "s1", Price: 50, Quantity: 2},
		{ServiceID: "s2", Price: 30, Quantity: 1},
	}

	items = RemoveItem(items, "s1")
	if len(items) != 1 || items[0].ServiceID != "s2" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	// removing an absent id is a no-op
	items = RemoveItem(items, "missing")
	if len(items) != 1 {
		t.Fatalf("remove of unknown id changed the cart: %+v", items)
	}
}

func TestMergeItems(t *testing.T) {
	user := []models.CartItem{
		{ServiceID: "s1", Name: "Consultation", Price: 50, Quantity: 1},
	}
	visitor := []models.CartItem{
		{ServiceID: "s1", Name: "Consultation", Price: 80, Quantity: 2}, // different lock
		{ServiceID: "s2", Name: "X-Ray", Price: 120, Quantity: 1},
	}

	merged := MergeItems(user, visitor)

	if len(merged) != 2 {
		t.Fatalf("expected 2 lines after merge, got %d", len(merged))
	}
	if merged[0].Quantity != 3 {
		t.Fatalf("expected summed quantity 3, got %d", merged[0].Quantity)
	}
	if merged[0].Price != 50 {
		t.Fatalf("destination price lock should win, got %v", merged[0].Price)
	}
	if merged[1].ServiceID != "s2" || merged[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", merged[1])
	}
}

// Mirrors the storefront walkthrough: add a 50-unit service, add it again,
// then remove it.
func TestVisitorCartScenario(t *testing.T) {
	var items []models.CartItem

	items = AddItem(items, "s1", "Consultation", 50, 1)
	if got := ComputeTotal(items); got != 50 {
		t.Fatalf("after first add total = %v; want 50", got)
	}

	items = AddItem(items, "s1", "Consultation", 50, 1)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("after second add: %+v", items)
	}
	if got := ComputeTotal(items); got != 100 {
		t.Fatalf("after second add total = %v; want 100", got)
	}

	items = RemoveItem(items, "s1")
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %+v", items)
	}
	if got := ComputeTotal(items); got != 0 {
		t.Fatalf("empty cart total = %v; want 0", got)
	}
}
