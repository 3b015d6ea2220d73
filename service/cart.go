package service

import (
	"fmt"

	"github.com/google/uuid"

	"marketplace/model"
	"marketplace/store"
)

// CartService maintains the single persisted cart: an ordered list of
// line items and a total derived from them. Every mutation recomputes the
// total and writes the cart back before returning.
type CartService struct {
	store  store.Store
	notify Notifier
	newID  func() string
}

func NewCartService(s store.Store, n Notifier) *CartService {
	return &CartService{store: s, notify: n, newID: uuid.NewString}
}

// Get returns the current cart, empty if nothing was persisted yet.
func (c *CartService) Get() (model.Cart, error) {
	var cart model.Cart
	if err := c.store.Read(store.CollectionCart, &cart); err != nil {
		return model.Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

// AddItem merges the item into an existing line with the same productId,
// or appends a new line with a fresh id. The item's own ID field is
// ignored.
func (c *CartService) AddItem(item model.CartItem, quantity int) (model.Cart, error) {
	if quantity < 1 {
		return model.Cart{}, invalid("quantity", "must be at least 1")
	}
	cart, err := c.Get()
	if err != nil {
		return model.Cart{}, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.ID = c.newID()
		item.Quantity = quantity
		cart.Items = append(cart.Items, item)
	}

	if err := c.save(&cart); err != nil {
		return model.Cart{}, err
	}
	c.notify.Notify("Added to cart", fmt.Sprintf("%s has been added to your cart.", item.Name))
	return cart, nil
}

// RemoveItem deletes the line with the given id. Removing an id that is
// not in the cart persists the cart unchanged.
func (c *CartService) RemoveItem(itemID string) (model.Cart, error) {
	cart, err := c.Get()
	if err != nil {
		return model.Cart{}, err
	}
	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	if err := c.save(&cart); err != nil {
		return model.Cart{}, err
	}
	c.notify.Notify("Removed from cart", "Item has been removed from your cart.")
	return cart, nil
}

// SetQuantity replaces the quantity of the line in place. Quantities
// below 1 leave the cart untouched. No confirmation is emitted.
func (c *CartService) SetQuantity(itemID string, quantity int) (model.Cart, error) {
	cart, err := c.Get()
	if err != nil {
		return model.Cart{}, err
	}
	if quantity < 1 {
		return cart, nil
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	if err := c.save(&cart); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// Clear empties the cart and resets the total to zero.
func (c *CartService) Clear() (model.Cart, error) {
	cart := model.Cart{Items: []model.CartItem{}}
	if err := c.save(&cart); err != nil {
		return model.Cart{}, err
	}
	c.notify.Notify("Cart cleared", "All items have been removed from your cart.")
	return cart, nil
}

func (c *CartService) save(cart *model.Cart) error {
	cart.Total = cartTotal(cart.Items)
	return c.store.Write(store.CollectionCart, cart)
}

func cartTotal(items []model.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
