package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/auth"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/handler"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/adapter/storage"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/service"
)

type testEnv struct {
	server *httptest.Server
	db     *mongo.Database
	stores *storage.MongoAdapters
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ctx := context.Background()

	client, err := storage.Connect(ctx, mongoURI)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	db := client.Database(fmt.Sprintf("flipone_it_%d", time.Now().UnixNano()))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	stores := storage.NewMongoAdapters(db)
	require.NoError(t, stores.EnsureIndexes(ctx, db))

	cache := storage.NewRedisAdapter(rdb)
	cache.InvalidateActiveProducts(ctx)

	tokens := auth.NewJWTManager("integration-test-secret", time.Hour)
	uploads, err := handler.NewUploads(t.TempDir())
	require.NoError(t, err)

	authService := service.NewAuthService(stores.Users, stores.Sellers, stores.Admins, tokens, logger)
	userService := service.NewUserService(stores.Users, stores.Products, logger)
	productService := service.NewProductService(stores.Products, stores.Categories, cache, logger)
	cartService := service.NewCartService(stores.Carts, stores.Products, logger)
	orderService := service.NewOrderService(stores.Orders, stores.Users, logger)
	adminService := service.NewAdminService(stores.Users, stores.Sellers, stores.Admins, stores.Categories, cache, logger)
	analyticsService := service.NewAnalyticsService(stores.Analytics, stores.Orders, logger)

	router := handler.NewRouter(
		handler.NewUserHandler(authService, userService, productService, uploads, logger),
		handler.NewCartHandler(cartService, logger),
		handler.NewSellerHandler(authService, productService, orderService, uploads, logger),
		handler.NewAdminHandler(authService, adminService, analyticsService, productService, logger),
		tokens,
		uploads,
		logger,
	)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cache.InvalidateActiveProducts(context.Background())
		db.Drop(context.Background())
		client.Disconnect(context.Background())
		rdb.Close()
	})

	return &testEnv{server: server, db: db, stores: stores}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (e *testEnv) signupAndLogin(t *testing.T, realm, name, email string) string {
	t.Helper()

	resp, _ := e.request(t, http.MethodPost, "/api/"+realm+"/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := e.request(t, http.MethodPost, "/api/"+realm+"/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func (e *testEnv) addProduct(t *testing.T, sellerToken, name, category string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", name)
	mw.WriteField("description", "integration test product")
	mw.WriteField("price", "49.99")
	mw.WriteField("stock", "10")
	mw.WriteField("category", category)
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/api/seller/add-product", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sellerToken)

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))
	return product.ID
}

func TestIntegration_StorefrontFlow(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.signupAndLogin(t, "admin", "Root Admin", "admin@flipone.test")
	resp, _ := env.request(t, http.MethodPost, "/api/admin/add-categories", adminToken, map[string]interface{}{
		"name":          "Electronics",
		"subcategories": []string{"phones", "laptops"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sellerToken := env.signupAndLogin(t, "seller", "Acme Electronics", "acme@flipone.test")
	productID := env.addProduct(t, sellerToken, "Test Phone", "electronics")

	// The storefront shows the product with no auth.
	resp, listing := env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(listing.Data), "Test Phone")

	// A user fills their cart.
	userToken := env.signupAndLogin(t, "users", "Test Shopper", "shopper@flipone.test")
	resp, cart := env.request(t, http.MethodPost, "/api/cart/addIn", userToken, map[string]interface{}{
		"productId": productID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(cart.Data), "99.98")

	resp, _ = env.request(t, http.MethodGet, "/api/cart/view", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegration_SellerOrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sellerToken := env.signupAndLogin(t, "seller", "Order Seller", "orders@flipone.test")

	// Resolve the seller's id to seed an order for them.
	seller, err := env.stores.Sellers.FindByEmail(ctx, "orders@flipone.test")
	require.NoError(t, err)

	buyer, err := env.stores.Users.Create(ctx, domain.User{
		Name:     "Order Buyer",
		Email:    "order-buyer@flipone.test",
		Role:     domain.RoleUser,
		IsActive: true,
	})
	require.NoError(t, err)

	foreignSeller := primitive.NewObjectID()
	order, err := domain.NewOrder(buyer.ID, []domain.OrderItem{
		{ProductID: primitive.NewObjectID(), Seller: seller.ID, Name: "Mine", Price: 10, Quantity: 1},
		{ProductID: primitive.NewObjectID(), Seller: foreignSeller, Name: "Theirs", Price: 5, Quantity: 1},
	}, "COD")
	require.NoError(t, err)
	require.NoError(t, env.stores.Orders.Create(ctx, order))

	// The listing shows only the seller's own item.
	resp, listing := env.request(t, http.MethodGet, "/api/seller/allOrders", sellerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(listing.Data), "Mine")
	assert.NotContains(t, string(listing.Data), "Theirs")

	itemPath := fmt.Sprintf("/api/seller/orders/%s/items/%s", order.ID.Hex(), order.Items[0].ID.Hex())

	// pending -> shipped -> delivered walks the machine forward.
	resp, _ = env.request(t, http.MethodPatch, itemPath, sellerToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.request(t, http.MethodPatch, itemPath, sellerToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// delivered is terminal.
	resp, body := env.request(t, http.MethodPatch, itemPath, sellerToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Message, "invalid status transition from delivered to shipped")

	// The foreign seller's item is invisible to this seller.
	foreignPath := fmt.Sprintf("/api/seller/orders/%s/items/%s", order.ID.Hex(), order.Items[1].ID.Hex())
	resp, _ = env.request(t, http.MethodPatch, foreignPath, sellerToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_RoleIsolation(t *testing.T) {
	env := setupTestEnv(t)

	userToken := env.signupAndLogin(t, "users", "Plain User", "plain@flipone.test")

	// A user token opens no seller or admin doors.
	resp, _ := env.request(t, http.MethodGet, "/api/seller/allOrders", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = env.request(t, http.MethodGet, "/api/admin/allUsers", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No token at all is unauthorized, not forbidden.
	resp, _ = env.request(t, http.MethodGet, "/api/seller/allOrders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_AdminModeration(t *testing.T) {
	env := setupTestEnv(t)

	adminToken := env.signupAndLogin(t, "admin", "Mod Admin", "mod@flipone.test")
	userToken := env.signupAndLogin(t, "users", "Target User", "target@flipone.test")

	user, err := env.stores.Users.FindByEmail(context.Background(), "target@flipone.test")
	require.NoError(t, err)

	// Disable the account.
	resp, toggled := env.request(t, http.MethodPatch, "/api/admin/users/"+user.ID.Hex()+"/toggle-status", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(toggled.Data), "false")

	// The existing token still works; disabling only blocks the next login.
	resp, _ = env.request(t, http.MethodGet, "/api/users/profile", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.request(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "target@flipone.test",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
