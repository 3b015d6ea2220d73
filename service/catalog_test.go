package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/model"
	"marketplace/store"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, store.Seed(st))
	return NewCatalogService(st), st
}

func TestProductQueries(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	products, err := svc.Products()
	require.NoError(t, err)
	assert.Len(t, products, 5)

	p, err := svc.ProductByID("1")
	require.NoError(t, err)
	assert.Equal(t, "Samsung Galaxy A54", p.Name)

	_, err = svc.ProductByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	byVendor, err := svc.ProductsByVendor("4")
	require.NoError(t, err)
	assert.Len(t, byVendor, 2)
	for _, p := range byVendor {
		assert.Equal(t, "4", p.VendorID)
	}

	featured, err := svc.FeaturedProducts()
	require.NoError(t, err)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}
	assert.Len(t, featured, 3)
}

func TestCategoryBySlug(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	cat, err := svc.CategoryBySlug("electronics")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", cat.Name)

	_, err = svc.CategoryBySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVendorsOnlyApproved(t *testing.T) {
	svc, st := newCatalogFixture(t)

	// add an unapproved vendor
	var users []model.User
	require.NoError(t, st.Read(store.CollectionUsers, &users))
	users = append(users, model.User{
		ID: "9", Name: "Pending Vendor", Email: "pending@example.com",
		Role:       model.RoleVendor,
		VendorInfo: &model.VendorInfo{StoreName: "Pending Shop"},
	})
	require.NoError(t, st.Write(store.CollectionUsers, users))

	vendors, err := svc.Vendors()
	require.NoError(t, err)
	assert.Len(t, vendors, 3)
	for _, v := range vendors {
		assert.True(t, v.VendorInfo.Approved)
		assert.Empty(t, v.Password)
	}
}

func TestCreateProductRoleGate(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	customer := model.User{ID: "3", Role: model.RoleCustomer}
	vendor := model.User{ID: "2", Role: model.RoleVendor}

	_, err := svc.CreateProduct(customer, model.Product{Name: "Thing", Price: 100})
	assert.ErrorIs(t, err, ErrUnauthorized)

	created, err := svc.CreateProduct(vendor, model.Product{Name: "USB Hub", Price: 8000, Stock: 5, CategoryID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "2", created.VendorID)
	assert.NotEmpty(t, created.ID)

	// invariants: price > 0, stock >= 0
	_, err = svc.CreateProduct(vendor, model.Product{Name: "Free Thing", Price: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)

	_, err = svc.CreateProduct(vendor, model.Product{Name: "Negative", Price: 100, Stock: -1})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "stock", ve.Field)
}

func TestUpdateProductKeepsOwnership(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	vendor := model.User{ID: "2", Role: model.RoleVendor}
	otherVendor := model.User{ID: "4", Role: model.RoleVendor}
	admin := model.User{ID: "1", Role: model.RoleAdmin}

	_, err := svc.UpdateProduct(otherVendor, "1", model.Product{Name: "Hijack", Price: 1})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := svc.UpdateProduct(vendor, "1", model.Product{Name: "Galaxy A54 (2024)", Price: 470000, Stock: 12})
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "2", updated.VendorID)
	assert.Equal(t, int64(470000), updated.Price)

	// admin can edit anyone's product
	_, err = svc.UpdateProduct(admin, "3", model.Product{Name: "Ankara Dress", Price: 16000, Stock: 18})
	require.NoError(t, err)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	vendor := model.User{ID: "2", Role: model.RoleVendor}
	require.NoError(t, svc.DeleteProduct(vendor, "2"))

	_, err := svc.ProductByID("2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(vendor, "2"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(vendor, "3"), ErrUnauthorized)
}
