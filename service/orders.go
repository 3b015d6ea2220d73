package service

import (
	"marketplace/model"
	"marketplace/store"
)

// OrderService is the read side of the order collection. Filters preserve
// insertion order.
type OrderService struct {
	store store.Store
}

func NewOrderService(s store.Store) *OrderService {
	return &OrderService{store: s}
}

func (o *OrderService) all() ([]model.Order, error) {
	var orders []model.Order
	if err := o.store.Read(store.CollectionOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// All returns every order. Admin only.
func (o *OrderService) All(user model.User) ([]model.Order, error) {
	if user.Role != model.RoleAdmin {
		return nil, ErrUnauthorized
	}
	return o.all()
}

// ByID looks an order up without an ownership check.
func (o *OrderService) ByID(id string) (model.Order, error) {
	orders, err := o.all()
	if err != nil {
		return model.Order{}, err
	}
	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}
	return model.Order{}, ErrNotFound
}

// ByIDFor looks an order up on behalf of a user. Only the owner or an
// admin may see it.
func (o *OrderService) ByIDFor(user model.User, id string) (model.Order, error) {
	order, err := o.ByID(id)
	if err != nil {
		return model.Order{}, err
	}
	if order.UserID != user.ID && user.Role != model.RoleAdmin {
		return model.Order{}, ErrUnauthorized
	}
	return order, nil
}

// ForUser returns the orders placed by a user.
func (o *OrderService) ForUser(userID string) ([]model.Order, error) {
	orders, err := o.all()
	if err != nil {
		return nil, err
	}
	out := []model.Order{}
	for _, order := range orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

// ForVendor returns orders containing at least one of the vendor's line
// items.
func (o *OrderService) ForVendor(vendorID string) ([]model.Order, error) {
	orders, err := o.all()
	if err != nil {
		return nil, err
	}
	out := []model.Order{}
	for _, order := range orders {
		for _, item := range order.Items {
			if item.VendorID == vendorID {
				out = append(out, order)
				break
			}
		}
	}
	return out, nil
}

// VendorRevenue sums only the given vendor's line items within an order.
// A multi-vendor order contributes only that vendor's share, not the
// order's grand total.
func VendorRevenue(order model.Order, vendorID string) int64 {
	var sum int64
	for _, item := range order.Items {
		if item.VendorID == vendorID {
			sum += item.Subtotal()
		}
	}
	return sum
}

// SalesStats is the admin dashboard aggregate. TotalSales sums order
// grand totals.
type SalesStats struct {
	TotalSales  int64 `json:"totalSales"`
	TotalOrders int   `json:"totalOrders"`
}

// Stats aggregates across all orders. Admin only.
func (o *OrderService) Stats(user model.User) (SalesStats, error) {
	orders, err := o.All(user)
	if err != nil {
		return SalesStats{}, err
	}
	stats := SalesStats{TotalOrders: len(orders)}
	for _, order := range orders {
		stats.TotalSales += order.GrandTotal
	}
	return stats, nil
}
