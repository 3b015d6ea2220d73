package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/model"
	"marketplace/payment"
	"marketplace/store"
)

// Settlement constants: a flat shipping fee plus a percentage tax on the
// cart subtotal.
const (
	ShippingFee int64   = 1500
	TaxRate     float64 = 0.075
)

// ErrPaymentInitiation wraps a provider rejection during initiation.
var ErrPaymentInitiation = errors.New("payment initiation failed")

// ErrVerificationFailed is returned when the provider reports a
// non-success status for a reference.
var ErrVerificationFailed = errors.New("payment verification failed")

// CheckoutState tracks a single checkout attempt.
type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateProcessing CheckoutState = "processing"
	StateVerified   CheckoutState = "verified"
	StatePersisted  CheckoutState = "persisted"
	StateCleared    CheckoutState = "cleared"
	StateFailed     CheckoutState = "failed"
)

// Tax is the percentage tax on a subtotal, rounded to whole currency
// units.
func Tax(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * TaxRate))
}

// Settle computes the grand total for a subtotal.
func Settle(subtotal int64) int64 {
	return subtotal + ShippingFee + Tax(subtotal)
}

// CheckoutService drives the settlement flow:
// Idle -> Processing -> Verified -> Persisted -> Cleared, or Failed.
// Only one attempt may be in Processing at a time; a Failed attempt
// leaves the cart untouched and creates no order.
type CheckoutService struct {
	store     store.Store
	cart      *CartService
	providers map[string]payment.Provider
	notify    Notifier

	mu    sync.Mutex
	state CheckoutState

	newID func() string
	now   func() time.Time
}

func NewCheckoutService(s store.Store, cart *CartService, n Notifier, providers ...payment.Provider) *CheckoutService {
	byName := make(map[string]payment.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &CheckoutService{
		store:     s,
		cart:      cart,
		providers: byName,
		notify:    n,
		state:     StateIdle,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// State reports the current phase of the flow, for the "Processing…"
// indicator.
func (c *CheckoutService) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *CheckoutService) setState(s CheckoutState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// begin moves the flow into Processing unless an attempt is already
// running.
func (c *CheckoutService) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateProcessing {
		return ErrCheckoutInProgress
	}
	c.state = StateProcessing
	return nil
}

func validateShipping(info model.ShippingInfo) error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", info.FullName},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"state", info.State},
		{"zipCode", info.ZipCode},
		{"country", info.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			return required(f.name)
		}
	}
	return nil
}

// PlaceOrder runs one checkout attempt for the given user. On success it
// returns the persisted order; on any failure the cart is left untouched
// and no order is created.
func (c *CheckoutService) PlaceOrder(ctx context.Context, user model.User, info model.ShippingInfo, providerName string) (model.Order, error) {
	cart, err := c.cart.Get()
	if err != nil {
		return model.Order{}, err
	}
	if len(cart.Items) == 0 {
		return model.Order{}, invalid("cart", "is empty")
	}
	if err := validateShipping(info); err != nil {
		return model.Order{}, err
	}
	provider, ok := c.providers[providerName]
	if !ok {
		return model.Order{}, invalid("paymentMethod", "unknown provider "+providerName)
	}

	if err := c.begin(); err != nil {
		return model.Order{}, err
	}

	subtotal := cart.Total
	tax := Tax(subtotal)
	grandTotal := subtotal + ShippingFee + tax

	init, err := provider.Initiate(ctx, info.Email, grandTotal)
	if err != nil {
		c.setState(StateFailed)
		c.notify.Notify("Payment failed", "There was an error processing your payment. Please try again.")
		return model.Order{}, fmt.Errorf("%w: %v", ErrPaymentInitiation, err)
	}

	verification, err := provider.Verify(ctx, init.Reference)
	if err != nil {
		c.setState(StateFailed)
		c.notify.Notify("Payment failed", "There was an error processing your payment. Please try again.")
		return model.Order{}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if verification.Status != payment.StatusSuccess {
		c.setState(StateFailed)
		c.notify.Notify("Payment failed", verification.Message)
		return model.Order{}, fmt.Errorf("%w: status %q", ErrVerificationFailed, verification.Status)
	}
	c.setState(StateVerified)

	order := model.Order{
		ID:               c.newID(),
		UserID:           user.ID,
		Items:            cart.Items,
		Total:            subtotal,
		Shipping:         ShippingFee,
		Tax:              tax,
		GrandTotal:       grandTotal,
		ShippingInfo:     info,
		PaymentMethod:    provider.Name(),
		PaymentReference: init.Reference,
		Status:           model.StatusPending,
		CreatedAt:        c.now(),
	}

	var orders []model.Order
	if err := c.store.Read(store.CollectionOrders, &orders); err != nil {
		c.setState(StateFailed)
		return model.Order{}, err
	}
	orders = append(orders, order)
	if err := c.store.Write(store.CollectionOrders, orders); err != nil {
		c.setState(StateFailed)
		return model.Order{}, err
	}
	c.setState(StatePersisted)

	if _, err := c.cart.Clear(); err != nil {
		return order, err
	}
	c.setState(StateCleared)

	c.notify.Notify("Order placed successfully",
		fmt.Sprintf("Your order #%.8s has been placed", order.ID))
	return order, nil
}
