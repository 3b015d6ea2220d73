package service

import (
	"errors"
	"testing"

	"marketplace/model"
	"marketplace/store"
)

func seedOrders(t *testing.T, st store.Store, orders []model.Order) {
	t.Helper()
	if err := st.Write(store.CollectionOrders, orders); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func multiVendorOrder(id, userID string) model.Order {
	return model.Order{
		ID:     id,
		UserID: userID,
		Items: []model.CartItem{
			{ID: "l1", ProductID: "p1", VendorID: "vendorA", Price: 1000, Quantity: 2},
			{ID: "l2", ProductID: "p2", VendorID: "vendorB", Price: 500, Quantity: 3},
		},
		Total:      3500,
		Shipping:   1500,
		Tax:        263,
		GrandTotal: 5263,
		Status:     model.StatusPending,
	}
}

func TestForUserFiltersExactly(t *testing.T) {
	st := store.NewMemoryStore()
	seedOrders(t, st, []model.Order{
		multiVendorOrder("o1", "u1"),
		multiVendorOrder("o2", "u2"),
		multiVendorOrder("o3", "u1"),
	})
	svc := NewOrderService(st)

	orders, err := svc.ForUser("u1")
	if err != nil {
		t.Fatalf("ForUser failed: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o1" || orders[1].ID != "o3" {
		t.Fatalf("unexpected orders (insertion order must hold): %+v", orders)
	}
}

func TestForVendorMatchesAnyLineItem(t *testing.T) {
	st := store.NewMemoryStore()
	onlyB := model.Order{
		ID:     "o2",
		UserID: "u2",
		Items: []model.CartItem{
			{ID: "l1", ProductID: "p9", VendorID: "vendorB", Price: 700, Quantity: 1},
		},
	}
	seedOrders(t, st, []model.Order{multiVendorOrder("o1", "u1"), onlyB})
	svc := NewOrderService(st)

	orders, err := svc.ForVendor("vendorA")
	if err != nil {
		t.Fatalf("ForVendor failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("expected only the multi-vendor order, got %+v", orders)
	}

	orders, err = svc.ForVendor("vendorB")
	if err != nil {
		t.Fatalf("ForVendor failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected both orders for vendorB, got %+v", orders)
	}
}

func TestVendorRevenueScopedToVendorLines(t *testing.T) {
	order := multiVendorOrder("o1", "u1")

	if got := VendorRevenue(order, "vendorA"); got != 2000 {
		t.Fatalf("vendorA revenue = %d, want 2000", got)
	}
	if got := VendorRevenue(order, "vendorB"); got != 1500 {
		t.Fatalf("vendorB revenue = %d, want 1500", got)
	}
	if got := VendorRevenue(order, "vendorC"); got != 0 {
		t.Fatalf("vendorC revenue = %d, want 0", got)
	}
	// vendor-scoped revenue never uses the grand total
	if VendorRevenue(order, "vendorA")+VendorRevenue(order, "vendorB") == order.GrandTotal {
		t.Fatalf("revenue must exclude shipping and tax")
	}
}

func TestByIDForOwnershipGate(t *testing.T) {
	st := store.NewMemoryStore()
	seedOrders(t, st, []model.Order{multiVendorOrder("o1", "u1")})
	svc := NewOrderService(st)

	owner := model.User{ID: "u1", Role: model.RoleCustomer}
	other := model.User{ID: "u2", Role: model.RoleCustomer}
	admin := model.User{ID: "a1", Role: model.RoleAdmin}

	if _, err := svc.ByIDFor(owner, "o1"); err != nil {
		t.Fatalf("owner should read own order: %v", err)
	}
	if _, err := svc.ByIDFor(admin, "o1"); err != nil {
		t.Fatalf("admin should read any order: %v", err)
	}
	if _, err := svc.ByIDFor(other, "o1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.ByIDFor(owner, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsSumsGrandTotals(t *testing.T) {
	st := store.NewMemoryStore()
	seedOrders(t, st, []model.Order{
		multiVendorOrder("o1", "u1"),
		multiVendorOrder("o2", "u2"),
	})
	svc := NewOrderService(st)

	stats, err := svc.Stats(model.User{ID: "a1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalOrders != 2 || stats.TotalSales != 2*5263 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, err := svc.Stats(model.User{ID: "u1", Role: model.RoleCustomer}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
}
