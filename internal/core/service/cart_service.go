package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	log      *logrus.Entry
}

func NewCartService(carts port.CartRepository, products port.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		log:      logger.WithField("component", "cart_service"),
	}
}

// CartView is the cart plus its derived total.
type CartView struct {
	Items       []domain.CartItem `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
}

func (s *CartService) GetCart(ctx context.Context, userID string) (CartView, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	return cartView(cart), nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (CartView, error) {
	if quantity <= 0 {
		return CartView{}, domain.ErrItemQuantityInvalid
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return CartView{}, domain.ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return CartView{}, err
	}
	if !product.IsActive {
		return CartView{}, domain.ErrProductNotFound
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	// An existing line for the same product grows instead of duplicating.
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == pid {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: product.ID,
			Seller:    product.Seller,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Image:     product.Images,
		})
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, *cart); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"userId":    userID,
		"productId": productID,
		"quantity":  quantity,
	}).Info("added to cart")

	return cartView(cart), nil
}

func (s *CartService) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (CartView, error) {
	if quantity <= 0 {
		return CartView{}, domain.ErrItemQuantityInvalid
	}
	iid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return CartView{}, domain.ErrCartItemNotFound
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	item := cart.ItemByID(iid)
	if item == nil {
		return CartView{}, domain.ErrCartItemNotFound
	}
	item.Quantity = quantity
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, *cart); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}
	return cartView(cart), nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID string) (CartView, error) {
	iid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return CartView{}, domain.ErrCartItemNotFound
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	kept := cart.Items[:0:0]
	removed := false
	for _, item := range cart.Items {
		if item.ID == iid {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return CartView{}, domain.ErrCartItemNotFound
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, *cart); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}
	return cartView(cart), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		return domain.ErrCartEmpty
	}
	cart.Items = []domain.CartItem{}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, *cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.log.WithField("userId", userID).Info("cart cleared")
	return nil
}

func (s *CartService) findCart(ctx context.Context, userID string) (*domain.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.carts.FindByUser(ctx, uid)
}

func cartView(cart *domain.Cart) CartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartView{Items: items, TotalAmount: cart.Total()}
}
