package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/paulikeo/mercadito/internal/api/respond"
	"github.com/paulikeo/mercadito/internal/auth"
	"github.com/paulikeo/mercadito/internal/services"
)

// Number accepts a JSON number or a numeric string. Web clients post form
// values, so "9.99" and 9.99 must both coerce.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return errors.New("empty number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("not a number")
	}
	*n = Number(f)
	return nil
}

// ProductPayload defines the structure for create and update requests. All
// three fields are required; updates rewrite all of them. Price and stock
// are pointers so a zero value is distinguishable from a missing field.
type ProductPayload struct {
	Name  string  `json:"name"`
	Price *Number `json:"price"`
	Stock *Number `json:"stock"`
}

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service services.ProductServiceProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{service: service}
}

func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// GetAll returns the full catalog with creator info. The same set is
// returned to every caller, authenticated or not.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		respond.Fail(w, http.StatusInternalServerError, "could not load products")
		return
	}

	respond.OK(w, respond.Envelope{"data": products})
}

// Get returns a single product with its creator summary.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respond.Fail(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		writeErr(w, err, "failed to get product")
		return
	}

	respond.OK(w, respond.Envelope{"product": product})
}

func (h *ProductHandler) decodePayload(w http.ResponseWriter, r *http.Request) (*ProductPayload, bool) {
	var payload ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Fail(w, http.StatusBadRequest, "all fields are required")
		return nil, false
	}
	if payload.Name == "" || payload.Price == nil || payload.Stock == nil {
		respond.Fail(w, http.StatusBadRequest, "all fields are required")
		return nil, false
	}
	if *payload.Price < 0 || *payload.Stock < 0 {
		respond.Fail(w, http.StatusBadRequest, "price and stock must not be negative")
		return nil, false
	}
	return &payload, true
}

// Create persists a new product owned by the authenticated caller.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "no token provided")
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(identity, payload.Name, float64(*payload.Price), int64(*payload.Stock))
	if err != nil {
		writeErr(w, err, "failed to create product")
		return
	}

	log.Info().Int64("product_id", product.ID).Int64("user_id", identity.ID).Msg("product created")
	respond.OK(w, respond.Envelope{"msg": "product created", "product": product})
}

// Update overwrites a product's name, price and stock. Only the creator may
// update; all three fields are always rewritten.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "no token provided")
		return
	}

	id, err := productID(r)
	if err != nil {
		respond.Fail(w, http.StatusNotFound, "product not found")
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	if err := h.service.UpdateProduct(identity, id, payload.Name, float64(*payload.Price), int64(*payload.Stock)); err != nil {
		writeErr(w, err, "failed to update product")
		return
	}

	respond.OK(w, respond.Envelope{"msg": "product updated"})
}

// Delete permanently removes a product. Only the creator may delete.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "no token provided")
		return
	}

	id, err := productID(r)
	if err != nil {
		respond.Fail(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.service.DeleteProduct(identity, id); err != nil {
		writeErr(w, err, "failed to delete product")
		return
	}

	respond.OK(w, respond.Envelope{"msg": "product deleted"})
}
