package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Mock OrderRepository. Returns copies the way a real driver decodes
// fresh documents, so mutations only land through Save.
type mockOrderRepo struct {
	mu      sync.Mutex
	orders  map[primitive.ObjectID]domain.Order
	saveErr error
	saves   int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]domain.Order)}
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (m *mockOrderRepo) Create(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *mockOrderRepo) FindBySellerItem(ctx context.Context, orderID, itemID, sellerID primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderItemNotFound
	}
	for _, item := range order.Items {
		if item.ID == itemID && item.Seller == sellerID {
			clone := cloneOrder(order)
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderItemNotFound
}

func (m *mockOrderRepo) FindForSeller(ctx context.Context, sellerID primitive.ObjectID) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []domain.Order
	for _, order := range m.orders {
		for _, item := range order.Items {
			if item.Seller == sellerID {
				result = append(result, cloneOrder(order))
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockOrderRepo) Save(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *mockOrderRepo) get(id primitive.ObjectID) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOrder(m.orders[id])
}

// Mock UserRepository.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, user)
	}
	return result, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.users[user.ID] = user
	return nil
}

// Mock SellerRepository.
type mockSellerRepo struct {
	mu      sync.Mutex
	sellers map[primitive.ObjectID]domain.Seller
}

func newMockSellerRepo() *mockSellerRepo {
	return &mockSellerRepo{sellers: make(map[primitive.ObjectID]domain.Seller)}
}

func (m *mockSellerRepo) Create(ctx context.Context, seller domain.Seller) (domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seller.ID.IsZero() {
		seller.ID = primitive.NewObjectID()
	}
	m.sellers[seller.ID] = seller
	return seller, nil
}

func (m *mockSellerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seller, ok := m.sellers[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &seller, nil
}

func (m *mockSellerRepo) FindByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seller := range m.sellers {
		if seller.Email == email {
			s := seller
			return &s, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockSellerRepo) FindByNameOrEmail(ctx context.Context, name, email string) (*domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seller := range m.sellers {
		if seller.Name == name || seller.Email == email {
			s := seller
			return &s, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockSellerRepo) FindAll(ctx context.Context) ([]domain.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Seller, 0, len(m.sellers))
	for _, seller := range m.sellers {
		result = append(result, seller)
	}
	return result, nil
}

func (m *mockSellerRepo) Update(ctx context.Context, seller domain.Seller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sellers[seller.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.sellers[seller.ID] = seller
	return nil
}

func (m *mockSellerRepo) LicenseIDExists(ctx context.Context, licenseID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, seller := range m.sellers {
		if seller.LicenseID == licenseID {
			return true, nil
		}
	}
	return false, nil
}

// Mock AdminRepository.
type mockAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]domain.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[primitive.ObjectID]domain.Admin)}
}

func (m *mockAdminRepo) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	m.admins[admin.ID] = admin
	return admin, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &admin, nil
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.admins {
		if admin.Email == email {
			a := admin
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockAdminRepo) Update(ctx context.Context, admin domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[admin.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.admins[admin.ID] = admin
	return nil
}

// Mock ProductRepository.
type mockProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]domain.Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.products[product.ID] = product
	return product, nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := m.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindDuplicate(ctx context.Context, sellerID primitive.ObjectID, name string, categoryID primitive.ObjectID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, product := range m.products {
		// Exact name match, same as the store's equality filter.
		if product.Seller == sellerID && product.Name == name && product.Category.ID == categoryID {
			p := product
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductRepo) FindBySeller(ctx context.Context, sellerID primitive.ObjectID, active bool) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Product
	for _, product := range m.products {
		if product.Seller == sellerID && product.IsActive == active {
			result = append(result, product)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindActive(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Product
	for _, product := range m.products {
		if product.IsActive {
			result = append(result, product)
		}
	}
	return result, nil
}

func (m *mockProductRepo) Update(ctx context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

// Mock CategoryRepository.
type mockCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]domain.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[primitive.ObjectID]domain.Category)}
}

func (m *mockCategoryRepo) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	m.categories[category.ID] = category
	return category, nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &category, nil
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, category := range m.categories {
		if category.Name == name {
			c := category
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// Mock CartRepository.
type mockCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]domain.Cart
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[primitive.ObjectID]domain.Cart)}
}

func (m *mockCartRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return &domain.Cart{ID: primitive.NewObjectID(), User: userID, Items: []domain.CartItem{}}, nil
	}
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

func (m *mockCartRepo) Save(ctx context.Context, cart domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.User] = cart
	return nil
}

// Mock CacheRepository.
type mockCache struct {
	mu            sync.Mutex
	products      []domain.Product
	populated     bool
	invalidations int
	readErr       error
}

func (m *mockCache) GetActiveProducts(ctx context.Context) ([]domain.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, false, m.readErr
	}
	if !m.populated {
		return nil, false, nil
	}
	return m.products, true, nil
}

func (m *mockCache) SetActiveProducts(ctx context.Context, products []domain.Product, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
	m.populated = true
	return nil
}

func (m *mockCache) InvalidateActiveProducts(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = nil
	m.populated = false
	m.invalidations++
	return nil
}

// Mock TokenManager.
type mockTokens struct{}

func (mockTokens) Issue(account domain.Account) (string, error) {
	return fmt.Sprintf("token|%s|%s", account.ID, account.Role), nil
}

func (mockTokens) Verify(token string) (domain.Account, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 || parts[0] != "token" {
		return domain.Account{}, fmt.Errorf("bad token")
	}
	return domain.Account{ID: parts[1], Role: domain.Role(parts[2])}, nil
}
