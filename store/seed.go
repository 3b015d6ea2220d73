package store

import (
	"time"

	"marketplace/model"
)

// Seed fills empty collections with demo data so a fresh install has
// something to browse. Collections that already hold data are left alone.
func Seed(s Store) error {
	now := time.Now()

	var users []model.User
	if err := s.Read(CollectionUsers, &users); err != nil {
		return err
	}
	if len(users) == 0 {
		users = []model.User{
			{
				ID: "1", Name: "Admin User", Email: "admin@example.com",
				Password: "admin123", Role: model.RoleAdmin, CreatedAt: now,
			},
			{
				ID: "2", Name: "Vendor User", Email: "vendor@example.com",
				Password: "vendor123", Role: model.RoleVendor, CreatedAt: now,
				VendorInfo: &model.VendorInfo{
					StoreName:   "Tech Gadgets",
					Description: "The best tech gadgets at affordable prices",
					Approved:    true,
				},
			},
			{
				ID: "3", Name: "Customer User", Email: "customer@example.com",
				Password: "customer123", Role: model.RoleCustomer, CreatedAt: now,
			},
			{
				ID: "4", Name: "Fashion Vendor", Email: "fashion@example.com",
				Password: "fashion123", Role: model.RoleVendor, CreatedAt: now,
				VendorInfo: &model.VendorInfo{
					StoreName:   "Nigerian Fashion Hub",
					Description: "Traditional and modern Nigerian fashion for all occasions",
					Approved:    true,
				},
			},
			{
				ID: "5", Name: "Book Vendor", Email: "books@example.com",
				Password: "books123", Role: model.RoleVendor, CreatedAt: now,
				VendorInfo: &model.VendorInfo{
					StoreName:   "African Literature Store",
					Description: "The best collection of African literature and educational books",
					Approved:    true,
				},
			},
		}
		if err := s.Write(CollectionUsers, users); err != nil {
			return err
		}
	}

	var categories []model.Category
	if err := s.Read(CollectionCategories, &categories); err != nil {
		return err
	}
	if len(categories) == 0 {
		categories = []model.Category{
			{ID: "1", Name: "Electronics", Slug: "electronics"},
			{ID: "2", Name: "Clothing", Slug: "clothing"},
			{ID: "3", Name: "Books", Slug: "books"},
			{ID: "4", Name: "Home & Kitchen", Slug: "home-kitchen"},
		}
		if err := s.Write(CollectionCategories, categories); err != nil {
			return err
		}
	}

	var products []model.Product
	if err := s.Read(CollectionProducts, &products); err != nil {
		return err
	}
	if len(products) == 0 {
		products = []model.Product{
			{
				ID: "1", Name: "Samsung Galaxy A54",
				Description: "6.4-inch smartphone with 128GB storage, 8GB RAM and 50MP camera",
				Price:       450000, VendorID: "2", CategoryID: "1",
				Stock: 15, Featured: true, CreatedAt: now,
			},
			{
				ID: "2", Name: "Oraimo FreePods 4",
				Description: "Wireless earbuds with noise cancellation and 30-hour battery life",
				Price:       25000, VendorID: "2", CategoryID: "1",
				Stock: 30, Featured: true, CreatedAt: now,
			},
			{
				ID: "3", Name: "Ankara Print Dress",
				Description: "Traditional Nigerian Ankara print dress with modern design",
				Price:       15000, VendorID: "4", CategoryID: "2",
				Stock: 20, CreatedAt: now,
			},
			{
				ID: "4", Name: "Agbada Set",
				Description: "Three-piece embroidered Agbada set for special occasions",
				Price:       35000, VendorID: "4", CategoryID: "2",
				Stock: 10, Featured: true, CreatedAt: now,
			},
			{
				ID: "5", Name: "Things Fall Apart",
				Description: "Chinua Achebe's classic novel, paperback edition",
				Price:       4500, VendorID: "5", CategoryID: "3",
				Stock: 50, CreatedAt: now,
			},
		}
		if err := s.Write(CollectionProducts, products); err != nil {
			return err
		}
	}

	return nil
}
