package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusShipped   ItemStatus = "shipped"
	ItemStatusDelivered ItemStatus = "delivered"
	// ItemStatusCancelled is a terminal enum value. No transition in
	// itemStatusTransitions produces it; nothing in the fulfillment flow
	// ever assigns it.
	ItemStatusCancelled ItemStatus = "cancelled"
)

// itemStatusTransitions maps each fulfillment status to the statuses a
// seller may move an item into. Terminal statuses map to an empty set.
var itemStatusTransitions = map[ItemStatus][]ItemStatus{
	ItemStatusPending:   {ItemStatusShipped},
	ItemStatusShipped:   {ItemStatusDelivered},
	ItemStatusDelivered: {},
	ItemStatusCancelled: {},
}

func (s ItemStatus) Valid() bool {
	_, ok := itemStatusTransitions[s]
	return ok
}

// CanTransitionItem reports whether an item currently in from may move to
// to. A from status missing from the transition table is a data-integrity
// problem and is reported as ErrUnknownItemStatus, never allowed through.
func CanTransitionItem(from, to ItemStatus) error {
	allowed, ok := itemStatusTransitions[from]
	if !ok {
		return ErrUnknownItemStatus
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// OrderItem is one product line inside an Order. It has no lifecycle of
// its own: it is addressed by scanning the parent order's item list.
type OrderItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Seller    primitive.ObjectID `bson:"seller" json:"seller"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     []string           `bson:"image" json:"image"`
	Status    ItemStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        ItemStatus         `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItemByID returns a pointer into the order's item slice, or nil if no
// item carries the given id.
func (o *Order) ItemByID(id primitive.ObjectID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// NewOrder assembles an order at checkout time and validates that the
// total matches the item sum. The total is not re-validated on any later
// mutation path.
func NewOrder(user primitive.ObjectID, items []OrderItem, paymentMethod string) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrOrderItemsRequired
	}
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	now := time.Now().UTC()
	var total float64
	for i := range items {
		if items[i].Quantity <= 0 {
			return Order{}, ErrItemQuantityInvalid
		}
		if items[i].Price < 0 {
			return Order{}, ErrItemPriceInvalid
		}
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		if items[i].Status == "" {
			items[i].Status = ItemStatusPending
		}
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		total += items[i].Price * float64(items[i].Quantity)
	}

	return Order{
		ID:            primitive.NewObjectID(),
		User:          user,
		Items:         items,
		TotalAmount:   total,
		Status:        ItemStatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
