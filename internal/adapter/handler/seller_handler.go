package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

type SellerHandler struct {
	auth     *service.AuthService
	products *service.ProductService
	orders   *service.OrderService
	uploads  *Uploads
	log      *logrus.Entry
}

func NewSellerHandler(auth *service.AuthService, products *service.ProductService, orders *service.OrderService, uploads *Uploads, logger *logrus.Logger) *SellerHandler {
	return &SellerHandler{
		auth:     auth,
		products: products,
		orders:   orders,
		uploads:  uploads,
		log:      logger.WithField("component", "seller_handler"),
	}
}

func (h *SellerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.SellerSignupInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.SellerSignup(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	// No token on signup; the seller logs in with the issued license id
	// alongside their credentials.
	writeData(w, http.StatusCreated, "seller registered", result)
}

func (h *SellerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.SellerLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "login successful", result)
}

// AddProduct accepts a multipart form: text fields for the product plus
// up to five image files under "images".
func (h *SellerHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	images, err := h.uploads.SaveImages(r, "images", maxProductPics)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: err.Error()})
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid price"})
		return
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid stock"})
		return
	}

	in := service.AddProductInput{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         price,
		Stock:         stock,
		Category:      r.FormValue("category"),
		Subcategories: splitCSV(r.FormValue("subcategories")),
		Images:        images,
	}
	if err := validate.Struct(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "missing required fields"})
		return
	}

	product, err := h.products.AddProduct(r.Context(), account.ID, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "product added", product)
}

func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var in service.UpdateProductInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), account.ID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "product updated", product)
}

// DeactivateProduct soft-deletes: the listing disappears from the
// storefront but the document stays for order history.
func (h *SellerHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	if err := h.products.DeactivateProduct(r.Context(), account.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "product deactivated", nil)
}

func (h *SellerHandler) MyProducts(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	products, err := h.products.SellerProducts(r.Context(), account.ID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "products fetched", products)
}

func (h *SellerHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	orders, err := h.orders.GetSellerOrders(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "orders fetched", orders)
}

type updateItemStatusRequest struct {
	Status string `json:"status"`
}

func (h *SellerHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var req updateItemStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	err := h.orders.UpdateItemStatus(
		r.Context(),
		chi.URLParam(r, "orderId"),
		chi.URLParam(r, "itemId"),
		account.ID,
		domain.ItemStatus(req.Status),
	)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "item status updated", nil)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
