package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

type AdminHandler struct {
	auth      *service.AuthService
	admin     *service.AdminService
	analytics *service.AnalyticsService
	products  *service.ProductService
	log       *logrus.Entry
}

func NewAdminHandler(auth *service.AuthService, admin *service.AdminService, analytics *service.AnalyticsService, products *service.ProductService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		auth:      auth,
		admin:     admin,
		analytics: analytics,
		products:  products,
		log:       logger.WithField("component", "admin_handler"),
	}
}

func (h *AdminHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.AdminSignupInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.AdminSignup(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "admin created", result)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "login successful", result)
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	if err := h.admin.ChangePassword(r.Context(), account.ID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "password changed", nil)
}

func (h *AdminHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "users fetched", users)
}

func (h *AdminHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	active, err := h.admin.ToggleUserStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "user status updated", map[string]bool{"isActive": active})
}

func (h *AdminHandler) AllSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.admin.ListSellers(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "sellers fetched", sellers)
}

func (h *AdminHandler) ToggleSellerStatus(w http.ResponseWriter, r *http.Request) {
	active, err := h.admin.ToggleSellerStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "seller status updated", map[string]bool{"isActive": active})
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	category, err := h.admin.CreateCategory(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "category created", category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	category, err := h.admin.UpdateCategory(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "category updated", category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "category deleted", nil)
}

func (h *AdminHandler) SalesAnalytics(w http.ResponseWriter, r *http.Request) {
	sales, err := h.analytics.SalesByDay(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "sales analytics fetched", sales)
}

func (h *AdminHandler) UserAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.UserStats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "user analytics fetched", stats)
}

func (h *AdminHandler) ProductAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.ProductStats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "product analytics fetched", stats)
}

func (h *AdminHandler) SellerSalesAnalytics(w http.ResponseWriter, r *http.Request) {
	sales, err := h.analytics.SellerSales(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "seller sales fetched", sales)
}

// ProductList is the storefront listing as the admin sees it, served
// through the same cached path as the public endpoint.
func (h *AdminHandler) ProductList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ActiveProducts(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "products fetched", products)
}

func (h *AdminHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.analytics.AllOrders(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "orders fetched", orders)
}
