package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransitionItem(t *testing.T) {
	tests := []struct {
		name    string
		from    ItemStatus
		to      ItemStatus
		allowed bool
	}{
		{"pending to shipped", ItemStatusPending, ItemStatusShipped, true},
		{"shipped to delivered", ItemStatusShipped, ItemStatusDelivered, true},
		{"pending to delivered skips shipping", ItemStatusPending, ItemStatusDelivered, false},
		{"shipped back to pending", ItemStatusShipped, ItemStatusPending, false},
		{"shipped to shipped is not idempotent", ItemStatusShipped, ItemStatusShipped, false},
		{"delivered is terminal", ItemStatusDelivered, ItemStatusShipped, false},
		{"delivered rejects pending", ItemStatusDelivered, ItemStatusPending, false},
		{"cancelled is terminal", ItemStatusCancelled, ItemStatusShipped, false},
		{"cancelled rejects delivered", ItemStatusCancelled, ItemStatusDelivered, false},
		{"nothing transitions into cancelled", ItemStatusPending, ItemStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransitionItem(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite)
			assert.Equal(t, tt.from, ite.From)
			assert.Equal(t, tt.to, ite.To)
			assert.Contains(t, err.Error(), string(tt.from))
			assert.Contains(t, err.Error(), string(tt.to))
		})
	}
}

func TestCanTransitionItem_UnknownStatus(t *testing.T) {
	// A status outside the table is a data-integrity problem, not an
	// open door.
	err := CanTransitionItem(ItemStatus("archived"), ItemStatusShipped)
	assert.ErrorIs(t, err, ErrUnknownItemStatus)
}

func TestNewOrder(t *testing.T) {
	user := primitive.NewObjectID()
	seller := primitive.NewObjectID()

	items := []OrderItem{
		{ProductID: primitive.NewObjectID(), Seller: seller, Name: "keyboard", Price: 49.99, Quantity: 2},
		{ProductID: primitive.NewObjectID(), Seller: seller, Name: "mouse", Price: 19.99, Quantity: 1},
	}

	order, err := NewOrder(user, items, "")
	require.NoError(t, err)

	assert.Equal(t, user, order.User)
	assert.Equal(t, "COD", order.PaymentMethod)
	assert.InDelta(t, 119.97, order.TotalAmount, 0.001)
	assert.Equal(t, ItemStatusPending, order.Status)
	for _, item := range order.Items {
		assert.False(t, item.ID.IsZero())
		assert.Equal(t, ItemStatusPending, item.Status)
		assert.False(t, item.CreatedAt.IsZero())
	}
}

func TestNewOrder_Invalid(t *testing.T) {
	user := primitive.NewObjectID()

	_, err := NewOrder(user, nil, "COD")
	assert.ErrorIs(t, err, ErrOrderItemsRequired)

	_, err = NewOrder(user, []OrderItem{{Price: 10, Quantity: 0}}, "COD")
	assert.ErrorIs(t, err, ErrItemQuantityInvalid)

	_, err = NewOrder(user, []OrderItem{{Price: -1, Quantity: 1}}, "COD")
	assert.ErrorIs(t, err, ErrItemPriceInvalid)
}

func TestOrderItemByID(t *testing.T) {
	itemID := primitive.NewObjectID()
	order := Order{Items: []OrderItem{
		{ID: primitive.NewObjectID(), Status: ItemStatusPending},
		{ID: itemID, Status: ItemStatusShipped},
	}}

	item := order.ItemByID(itemID)
	require.NotNil(t, item)
	assert.Equal(t, ItemStatusShipped, item.Status)

	// mutation through the pointer reaches the slice
	item.Status = ItemStatusDelivered
	assert.Equal(t, ItemStatusDelivered, order.Items[1].Status)

	assert.Nil(t, order.ItemByID(primitive.NewObjectID()))
}
