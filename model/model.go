// Package model holds the domain records persisted by the marketplace.
// JSON tags match the collection shapes exactly; changing them breaks
// previously persisted data.
package model

import "time"

// Role of a registered user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// OrderStatus lifecycle vocabulary. Orders are created as StatusPending;
// no transition API exists yet.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

// VendorInfo is present on users with RoleVendor.
type VendorInfo struct {
	StoreName   string `json:"storeName"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
	Approved    bool   `json:"approved"`
}

type User struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password,omitempty"`
	Role       Role        `json:"role"`
	VendorInfo *VendorInfo `json:"vendorInfo,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Product price and all other money fields are integer currency units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	VendorID    string    `json:"vendorId"`
	CategoryID  string    `json:"categoryId"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartItem is a line item inside a cart or an order snapshot.
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	VendorID  string `json:"vendorId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// Subtotal is price times quantity for this line.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is the single persisted cart. Total is always derived from the
// line items, never mutated independently.
type Cart struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

type ShippingInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Order is created once at successful checkout and is immutable after.
// Total is the pre-tax/shipping subtotal; GrandTotal is the settled amount.
type Order struct {
	ID               string       `json:"id"`
	UserID           string       `json:"userId"`
	Items            []CartItem   `json:"items"`
	Total            int64        `json:"total"`
	Shipping         int64        `json:"shipping"`
	Tax              int64        `json:"tax"`
	GrandTotal       int64        `json:"grandTotal"`
	ShippingInfo     ShippingInfo `json:"shippingInfo"`
	PaymentMethod    string       `json:"paymentMethod"`
	PaymentReference string       `json:"paymentReference"`
	Status           OrderStatus  `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}
