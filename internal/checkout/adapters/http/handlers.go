package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RyuuShuvi/eshop/internal/checkout/app"
	"github.com/RyuuShuvi/eshop/internal/checkout/app/commands"
	"github.com/RyuuShuvi/eshop/internal/checkout/domain"
	"github.com/RyuuShuvi/eshop/internal/checkout/ports"
	shippingapp "github.com/RyuuShuvi/eshop/internal/shipping/app"
	shippingports "github.com/RyuuShuvi/eshop/internal/shipping/ports"
)

// Handler exposes HTTP endpoints for checkout operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the checkout handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/products", h.handleProducts)
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/shipments/", h.handleShipmentByID)
	mux.HandleFunc("/v1/shipping-types", h.handleShippingTypes)
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createProduct(w, r)
	case http.MethodGet:
		h.listProducts(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.placeOrder(w, r)
}

func (h *Handler) handleShipmentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/shipments/"), "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "shipping not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.getShipmentStatus(w, r, id)
}

func (h *Handler) handleShippingTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shipping_types": h.service.ListShippingTypes()})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload app.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), payload)
	if err != nil {
		if errors.Is(err, ports.ErrProductExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if isProductValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var payload app.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), payload)
	if err != nil {
		if errors.Is(err, ports.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if isOrderValueError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"order": result})
}

func (h *Handler) getShipmentStatus(w http.ResponseWriter, r *http.Request, id string) {
	status, err := h.service.CheckShippingStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, shippingports.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shipping not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shipping_id": id, "status": status})
}

// isOrderValueError separates rejected requests from infrastructure
// failures: bad commands, insufficient stock and the shipping service's
// contract errors are the caller's to fix.
func isOrderValueError(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, commands.ErrShippingTypeRequired) ||
		errors.Is(err, commands.ErrItemNameRequired) ||
		errors.Is(err, commands.ErrItemQuantityInvalid) ||
		errors.Is(err, shippingapp.ErrShippingTypeNotAvailable) ||
		errors.Is(err, shippingapp.ErrDueDateNotInFuture)
}

func isProductValidationError(err error) bool {
	return errors.Is(err, domain.ErrProductFieldTypes) ||
		errors.Is(err, domain.ErrPriceNotPositive) ||
		errors.Is(err, domain.ErrNameTooShort) ||
		errors.Is(err, domain.ErrNegativeAvailability)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
