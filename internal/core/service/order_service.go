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

// SellerOrderItem is one line of a seller's order view. Only the items
// owned by the requesting seller ever appear here.
type SellerOrderItem struct {
	ItemID      primitive.ObjectID `json:"itemId"`
	ProductName string             `json:"productName"`
	ItemImage   []string           `json:"itemImage"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
	Status      domain.ItemStatus  `json:"status"`
}

type SellerOrder struct {
	OrderID     primitive.ObjectID `json:"orderId"`
	User        string             `json:"user"`
	UserEmail   string             `json:"userEmail"`
	Items       []SellerOrderItem  `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	Date        time.Time          `json:"date"`
}

type OrderService struct {
	orders port.OrderRepository
	users  port.UserRepository
	log    *logrus.Entry
}

func NewOrderService(orders port.OrderRepository, users port.UserRepository, logger *logrus.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		log:    logger.WithField("component", "order_service"),
	}
}

// GetSellerOrders returns every order containing at least one of the
// seller's items, newest first, with foreign sellers' items stripped out.
func (s *OrderService) GetSellerOrders(ctx context.Context, sellerID string) ([]SellerOrder, error) {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	orders, err := s.orders.FindForSeller(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("find orders for seller: %w", err)
	}

	buyers := make(map[primitive.ObjectID]*domain.User)
	result := make([]SellerOrder, 0, len(orders))

	for _, order := range orders {
		view := SellerOrder{
			OrderID:     order.ID,
			Items:       make([]SellerOrderItem, 0, len(order.Items)),
			TotalAmount: order.TotalAmount,
			Date:        order.CreatedAt,
		}

		buyer, ok := buyers[order.User]
		if !ok {
			buyer, err = s.users.FindByID(ctx, order.User)
			if err != nil {
				// A dangling buyer reference must not hide the order
				// from the seller.
				s.log.WithFields(logrus.Fields{
					"orderId": order.ID.Hex(),
					"userId":  order.User.Hex(),
				}).Warn("order references unknown buyer")
				buyer = nil
			}
			buyers[order.User] = buyer
		}
		if buyer != nil {
			view.User = buyer.Name
			view.UserEmail = buyer.Email
		}

		for _, item := range order.Items {
			if item.Seller != sid {
				continue
			}
			view.Items = append(view.Items, SellerOrderItem{
				ItemID:      item.ID,
				ProductName: item.Name,
				ItemImage:   item.Image,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Status:      item.Status,
			})
		}
		result = append(result, view)
	}

	s.log.WithFields(logrus.Fields{
		"sellerId": sellerID,
		"orders":   len(result),
	}).Info("fetched seller orders")

	return result, nil
}

// UpdateItemStatus moves one line item through the fulfillment state
// machine, scoped to the owning seller. The whole order document is
// rewritten on success; there is no version check, so two racing updates
// on the same item resolve last-writer-wins.
func (s *OrderService) UpdateItemStatus(ctx context.Context, orderID, itemID, sellerID string, status domain.ItemStatus) error {
	if status == "" {
		return domain.ErrStatusRequired
	}
	if !status.Valid() {
		return domain.ErrInvalidStatusValue
	}

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return domain.ErrOrderItemNotFound
	}
	iid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return domain.ErrOrderItemNotFound
	}
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.ErrInvalidID
	}

	order, err := s.orders.FindBySellerItem(ctx, oid, iid, sid)
	if err != nil {
		return err
	}

	item := order.ItemByID(iid)
	if item == nil {
		return domain.ErrOrderItemNotFound
	}
	// Re-check ownership on the resolved item itself. The repository
	// already filters on it, but the item a lookup matched and the item
	// addressed by id must be one and the same.
	if item.Seller != sid {
		return domain.ErrOrderItemNotFound
	}

	if err := domain.CanTransitionItem(item.Status, status); err != nil {
		s.log.WithFields(logrus.Fields{
			"sellerId":        sellerID,
			"orderId":         orderID,
			"itemId":          itemID,
			"currentStatus":   item.Status,
			"attemptedStatus": status,
		}).Warn("rejected status transition")
		return err
	}

	item.Status = status
	order.UpdatedAt = time.Now().UTC()

	if err := s.orders.Save(ctx, *order); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"sellerId":  sellerID,
		"orderId":   orderID,
		"itemId":    itemID,
		"newStatus": status,
	}).Info("order item status updated")

	return nil
}
