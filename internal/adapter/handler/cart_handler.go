package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

type CartHandler struct {
	carts *service.CartService
	log   *logrus.Entry
}

func NewCartHandler(carts *service.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   logger.WithField("component", "cart_handler"),
	}
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	view, err := h.carts.GetCart(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "cart fetched", view)
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	view, err := h.carts.AddToCart(r.Context(), account.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "item added to cart", view)
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var req updateCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	view, err := h.carts.UpdateCartItem(r.Context(), account.ID, chi.URLParam(r, "itemId"), req.Quantity)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "cart item updated", view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	view, err := h.carts.RemoveFromCart(r.Context(), account.ID, chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "cart item removed", view)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), account.ID); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "cart cleared", nil)
}
