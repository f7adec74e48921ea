package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

type UserHandler struct {
	auth     *service.AuthService
	users    *service.UserService
	products *service.ProductService
	uploads  *Uploads
	log      *logrus.Entry
}

func NewUserHandler(auth *service.AuthService, users *service.UserService, products *service.ProductService, uploads *Uploads, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		auth:     auth,
		users:    users,
		products: products,
		uploads:  uploads,
		log:      logger.WithField("component", "user_handler"),
	}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.UserSignupInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.UserSignup(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, "account created", result)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	result, err := h.auth.UserLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "login successful", result)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	user, err := h.users.Profile(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "profile fetched", user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	// Only name, mobile and address may change here; anything else in the
	// body is rejected, email included.
	var in service.UpdateProfileInput
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), account.ID, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "profile updated", user)
}

func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	url, err := h.uploads.SaveImage(r, "profilePic")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: err.Error()})
		return
	}

	previous, err := h.users.UpdateProfilePic(r.Context(), account.ID, url)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if previous != "" {
		if err := h.uploads.Remove(previous); err != nil {
			h.log.WithError(err).Warn("failed to remove previous profile picture")
		}
	}
	writeData(w, http.StatusOK, "profile picture updated", map[string]string{"profilePic": url})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	if err := h.users.ChangePassword(r.Context(), account.ID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "password changed", nil)
}

func (h *UserHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	action, err := h.users.ToggleLike(r.Context(), account.ID, chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "product "+action, map[string]string{"action": action})
}

func (h *UserHandler) LikedProducts(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	products, err := h.users.LikedProducts(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "liked products fetched", products)
}

// BrowseProducts is the public storefront listing; no authentication.
func (h *UserHandler) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ActiveProducts(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, "products fetched", products)
}
