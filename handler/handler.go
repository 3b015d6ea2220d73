// Package handler is the HTTP layer over the marketplace services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"marketplace/model"
	"marketplace/service"
)

type Handler struct {
	auth     *service.AuthService
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
	orders   *service.OrderService
	log      *zap.Logger
}

func New(auth *service.AuthService, catalog *service.CatalogService, cart *service.CartService, checkout *service.CheckoutService, orders *service.OrderService, log *zap.Logger) *Handler {
	return &Handler{
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		log:      log,
	}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Auth
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Catalog
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	r.HandleFunc("/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/vendors", h.ListVendors).Methods("GET")
	r.HandleFunc("/vendors/{id}", h.GetVendor).Methods("GET")

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/update", h.UpdateCartItem).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/clear", h.ClearCart).Methods("POST")

	// Checkout
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")
	r.HandleFunc("/checkout/state", h.CheckoutState).Methods("GET")

	// Orders
	r.HandleFunc("/orders", h.ListOrders).Methods("GET")
	r.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	r.HandleFunc("/vendor/orders", h.VendorOrders).Methods("GET")
	r.HandleFunc("/admin/stats", h.AdminStats).Methods("GET")
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceErr maps service error kinds to HTTP statuses.
func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeErr(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPaymentInitiation), errors.Is(err, service.ErrVerificationFailed):
		writeErr(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrCheckoutInProgress):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("internal error", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// currentUser resolves the caller's identity from the X-User-ID header.
// The session layer upstream is responsible for setting it; here it is
// taken as fact and resolved against the user collection.
func (h *Handler) currentUser(r *http.Request) (model.User, error) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		return model.User{}, service.ErrUnauthorized
	}
	user, err := h.auth.UserByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return model.User{}, service.ErrUnauthorized
		}
		return model.User{}, err
	}
	return user, nil
}

// --- Auth ---

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string     `json:"name"`
		Email    string     `json:"email"`
		Password string     `json:"password"`
		Role     model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	user, err := h.auth.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		// credential mismatch surfaces as 401 rather than 400
		var ve *service.ValidationError
		if errors.As(err, &ve) && ve.Field == "credentials" {
			writeErr(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// --- Catalog ---

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		products []model.Product
		err      error
	)
	switch {
	case q.Get("vendor_id") != "":
		products, err = h.catalog.ProductsByVendor(q.Get("vendor_id"))
	case q.Get("category_id") != "":
		products, err = h.catalog.ProductsByCategory(q.Get("category_id"))
	case q.Get("featured") == "true":
		products, err = h.catalog.FeaturedProducts()
	default:
		products, err = h.catalog.Products()
	}
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ProductByID(mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	created, err := h.catalog.CreateProduct(user, p)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	updated, err := h.catalog.UpdateProduct(user, mux.Vars(r)["id"], p)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	if err := h.catalog.DeleteProduct(user, mux.Vars(r)["id"]); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	// ?slug= narrows to one category
	if slug := r.URL.Query().Get("slug"); slug != "" {
		category, err := h.catalog.CategoryBySlug(slug)
		if err != nil {
			h.writeServiceErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
		return
	}
	categories, err := h.catalog.Categories()
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalog.Vendors()
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.catalog.VendorByID(mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

// --- Cart ---

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Get()
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart handles POST /cart/add
// body: { "productId": "...", "vendorId": "...", "name": "...", "price": 10000, "image": "...", "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.CartItem
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	cart, err := h.cart.AddItem(req.CartItem, req.Quantity)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	cart, err := h.cart.SetQuantity(req.ItemID, req.Quantity)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	cart, err := h.cart.RemoveItem(req.ItemID)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Clear()
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// --- Checkout ---

// Checkout handles POST /checkout/order
// body: { "shippingInfo": {...}, "paymentMethod": "paystack" }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	var req struct {
		ShippingInfo  model.ShippingInfo `json:"shippingInfo"`
		PaymentMethod string             `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	order, err := h.checkout.PlaceOrder(r.Context(), user, req.ShippingInfo, req.PaymentMethod)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) CheckoutState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]service.CheckoutState{"state": h.checkout.State()})
}

// --- Orders ---

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	orders, err := h.orders.ForUser(user.ID)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	order, err := h.orders.ByIDFor(user, mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// VendorOrders returns the vendor's orders with the vendor-scoped revenue
// of each, not the order grand total.
func (h *Handler) VendorOrders(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	if user.Role != model.RoleVendor && user.Role != model.RoleAdmin {
		h.writeServiceErr(w, service.ErrUnauthorized)
		return
	}
	vendorID := user.ID
	if user.Role == model.RoleAdmin && r.URL.Query().Get("vendor_id") != "" {
		vendorID = r.URL.Query().Get("vendor_id")
	}
	orders, err := h.orders.ForVendor(vendorID)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	type vendorOrder struct {
		model.Order
		VendorRevenue int64 `json:"vendorRevenue"`
	}
	out := make([]vendorOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, vendorOrder{Order: o, VendorRevenue: service.VendorRevenue(o, vendorID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	stats, err := h.orders.Stats(user)
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
