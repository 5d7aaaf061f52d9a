package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jeanmendescs/marketplace/internal/core/checkout"
	"github.com/jeanmendescs/marketplace/internal/core/domain"
	"github.com/jeanmendescs/marketplace/internal/core/service"
	"github.com/jeanmendescs/marketplace/internal/port"
)

// HTTPHandler exposes the storefront core over REST. It is a demo surface:
// the presentation layer proper lives client-side.
type HTTPHandler struct {
	catalog  port.Catalog
	cart     *service.CartService
	checkout *service.CheckoutService
}

func NewHTTPHandler(catalog port.Catalog, cart *service.CartService, checkoutSvc *service.CheckoutService) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, cart: cart, checkout: checkoutSvc}
}

// RegisterRoutes registers all routes on the provided router.
func (h *HTTPHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	r.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)

	r.HandleFunc("/api/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id:[0-9]+}", h.RemoveItem).Methods(http.MethodDelete)

	r.HandleFunc("/api/checkout", h.SubmitCheckout).Methods(http.MethodPost)
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

type cartResponse struct {
	Items         []int             `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	LineItems     []domain.LineItem `json:"line_items"`
	Subtotal      string            `json:"subtotal"`
}

type checkoutResponse struct {
	OrderID  string `json:"order_id"`
	Total    string `json:"total"`
	PlacedAt string `json:"placed_at"`
	Redirect string `json:"redirect"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Products())
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, ok := h.catalog.GetProductByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	h.cart.AddToCart(r.Context(), req.ProductID)
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	h.cart.RemoveFromCart(r.Context(), id)
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var form checkout.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conf, fieldErrs, err := h.checkout.Submit(r.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		OrderID:  conf.OrderID,
		Total:    domain.FormatPrice(conf.Total),
		PlacedAt: conf.PlacedAt.UTC().Format(time.RFC3339),
		Redirect: service.ConfirmationPath,
	})
}

func (h *HTTPHandler) cartSnapshot() cartResponse {
	return cartResponse{
		Items:         h.cart.Items(),
		TotalQuantity: h.cart.TotalQuantity(),
		LineItems:     h.cart.LineItems(),
		Subtotal:      domain.FormatPrice(h.cart.Subtotal()),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
