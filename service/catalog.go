package service

import (
	"time"

	"github.com/google/uuid"

	"marketplace/model"
	"marketplace/store"
)

// CatalogService serves the product, category, and vendor views of the
// storefront and lets vendors manage their own products.
type CatalogService struct {
	store store.Store
	newID func() string
	now   func() time.Time
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s, newID: uuid.NewString, now: time.Now}
}

func (c *CatalogService) Products() ([]model.Product, error) {
	var products []model.Product
	if err := c.store.Read(store.CollectionProducts, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (c *CatalogService) ProductByID(id string) (model.Product, error) {
	products, err := c.Products()
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

func (c *CatalogService) ProductsByVendor(vendorID string) ([]model.Product, error) {
	return c.filterProducts(func(p model.Product) bool { return p.VendorID == vendorID })
}

func (c *CatalogService) ProductsByCategory(categoryID string) ([]model.Product, error) {
	return c.filterProducts(func(p model.Product) bool { return p.CategoryID == categoryID })
}

func (c *CatalogService) FeaturedProducts() ([]model.Product, error) {
	return c.filterProducts(func(p model.Product) bool { return p.Featured })
}

func (c *CatalogService) filterProducts(keep func(model.Product) bool) ([]model.Product, error) {
	products, err := c.Products()
	if err != nil {
		return nil, err
	}
	out := []model.Product{}
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *CatalogService) Categories() ([]model.Category, error) {
	var categories []model.Category
	if err := c.store.Read(store.CollectionCategories, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (c *CatalogService) CategoryBySlug(slug string) (model.Category, error) {
	categories, err := c.Categories()
	if err != nil {
		return model.Category{}, err
	}
	for _, cat := range categories {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return model.Category{}, ErrNotFound
}

// Vendors returns every approved vendor account, passwords blanked.
func (c *CatalogService) Vendors() ([]model.User, error) {
	var users []model.User
	if err := c.store.Read(store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	out := []model.User{}
	for _, u := range users {
		if u.Role == model.RoleVendor && u.VendorInfo != nil && u.VendorInfo.Approved {
			u.Password = ""
			out = append(out, u)
		}
	}
	return out, nil
}

func (c *CatalogService) VendorByID(id string) (model.User, error) {
	vendors, err := c.Vendors()
	if err != nil {
		return model.User{}, err
	}
	for _, v := range vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return model.User{}, ErrNotFound
}

func validateProduct(p model.Product) error {
	if p.Name == "" {
		return required("name")
	}
	if p.Price <= 0 {
		return invalid("price", "must be greater than zero")
	}
	if p.Stock < 0 {
		return invalid("stock", "must not be negative")
	}
	return nil
}

// canManage allows admins everywhere and vendors on their own products.
func canManage(user model.User, vendorID string) bool {
	if user.Role == model.RoleAdmin {
		return true
	}
	return user.Role == model.RoleVendor && user.ID == vendorID
}

// CreateProduct adds a product owned by the acting vendor. Admins may
// create on behalf of any vendor by presetting VendorID.
func (c *CatalogService) CreateProduct(user model.User, p model.Product) (model.Product, error) {
	if user.Role != model.RoleAdmin {
		p.VendorID = user.ID
	}
	if !canManage(user, p.VendorID) {
		return model.Product{}, ErrUnauthorized
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	p.ID = c.newID()
	p.CreatedAt = c.now()

	products, err := c.Products()
	if err != nil {
		return model.Product{}, err
	}
	products = append(products, p)
	if err := c.store.Write(store.CollectionProducts, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces an existing product in place, keeping its id,
// owner, and creation time.
func (c *CatalogService) UpdateProduct(user model.User, id string, p model.Product) (model.Product, error) {
	products, err := c.Products()
	if err != nil {
		return model.Product{}, err
	}
	for i, existing := range products {
		if existing.ID != id {
			continue
		}
		if !canManage(user, existing.VendorID) {
			return model.Product{}, ErrUnauthorized
		}
		p.ID = existing.ID
		p.VendorID = existing.VendorID
		p.CreatedAt = existing.CreatedAt
		if err := validateProduct(p); err != nil {
			return model.Product{}, err
		}
		products[i] = p
		if err := c.store.Write(store.CollectionProducts, products); err != nil {
			return model.Product{}, err
		}
		return p, nil
	}
	return model.Product{}, ErrNotFound
}

// DeleteProduct removes a product owned by the acting vendor.
func (c *CatalogService) DeleteProduct(user model.User, id string) error {
	products, err := c.Products()
	if err != nil {
		return err
	}
	for i, existing := range products {
		if existing.ID != id {
			continue
		}
		if !canManage(user, existing.VendorID) {
			return ErrUnauthorized
		}
		products = append(products[:i], products[i+1:]...)
		return c.store.Write(store.CollectionProducts, products)
	}
	return ErrNotFound
}
