// Package store provides the collection accessor the services run on:
// whole collections are read and written as JSON documents under fixed
// string keys. There is no partial-write atomicity and no cross-caller
// transaction; last write wins.
package store

// Collection names. Every persisted shape lives under one of these keys.
const (
	CollectionUsers      = "users"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
	CollectionCart       = "cart"
)

// Store reads and writes JSON-serialized collections. Read leaves out
// untouched when the collection is absent, so callers see the zero value
// (an empty slice, an empty cart). Write overwrites the collection
// entirely.
type Store interface {
	Read(collection string, out any) error
	Write(collection string, v any) error
	Close() error
}
