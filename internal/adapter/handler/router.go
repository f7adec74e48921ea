package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

// NewRouter assembles the full HTTP surface. Route groups mirror the
// three account realms; the role gate sits directly behind the token
// resolver on each protected subtree.
func NewRouter(
	users *UserHandler,
	carts *CartHandler,
	sellers *SellerHandler,
	admins *AdminHandler,
	tokens port.TokenManager,
	uploads *Uploads,
	logger *logrus.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
	})

	// Public storefront.
	r.Get("/api/products", users.BrowseProducts)

	fileServer := http.FileServer(http.Dir(uploads.Dir()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", users.Signup)
		r.Post("/login", users.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(tokens))
			r.Use(RequireRole(domain.RoleUser))

			r.Get("/profile", users.Profile)
			r.Patch("/profile", users.UpdateProfile)
			r.Patch("/profile/picture", users.UpdateProfilePicture)
			r.Patch("/profile/password", users.ChangePassword)
			r.Post("/is-liked/{productId}", users.ToggleLike)
			r.Get("/likes", users.LikedProducts)
		})
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(Authenticate(tokens))
		r.Use(RequireRole(domain.RoleUser))

		r.Get("/view", carts.View)
		r.Post("/addIn", carts.Add)
		r.Patch("/updateCart/{itemId}", carts.UpdateItem)
		r.Delete("/deleteItems/{itemId}", carts.RemoveItem)
		r.Delete("/clear", carts.Clear)
	})

	r.Route("/api/seller", func(r chi.Router) {
		r.Post("/signup", sellers.Signup)
		r.Post("/login", sellers.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(tokens))
			r.Use(RequireRole(domain.RoleSeller))

			r.Get("/products", sellers.MyProducts)
			r.Post("/add-product", sellers.AddProduct)
			r.Patch("/products/{id}", sellers.UpdateProduct)
			r.Delete("/products/{id}", sellers.DeactivateProduct)
			r.Get("/allOrders", sellers.AllOrders)
			r.Patch("/orders/{orderId}/items/{itemId}", sellers.UpdateItemStatus)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/signup", admins.Signup)
		r.Post("/login", admins.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(tokens))
			r.Use(RequireRole(domain.RoleAdmin))

			r.Patch("/change-password", admins.ChangePassword)
			r.Get("/allUsers", admins.AllUsers)
			r.Patch("/users/{id}/toggle-status", admins.ToggleUserStatus)
			r.Get("/allSellers", admins.AllSellers)
			r.Patch("/sellers/{id}/toggle-status", admins.ToggleSellerStatus)
			r.Post("/add-categories", admins.CreateCategory)
			r.Patch("/categories/{id}", admins.UpdateCategory)
			r.Delete("/categories/{id}", admins.DeleteCategory)
			r.Get("/allOrders", admins.AllOrders)
			r.Get("/product-list", admins.ProductList)
			r.Get("/analytics/sales", admins.SalesAnalytics)
			r.Get("/analytics/users", admins.UserAnalytics)
			r.Get("/analytics/products", admins.ProductAnalytics)
			r.Get("/analytics/seller-sells", admins.SellerSalesAnalytics)
		})
	})

	return r
}
