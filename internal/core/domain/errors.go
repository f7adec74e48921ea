package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderItemNotFound covers a missing order, a missing item, and an
	// item owned by a different seller. The three cases are deliberately
	// indistinguishable so ownership is not leaked across sellers.
	ErrOrderItemNotFound = errors.New("order item not found for this seller")

	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidID           = errors.New("invalid identifier")
	ErrStatusRequired      = errors.New("status is required")
	ErrInvalidStatusValue  = errors.New("invalid status value")
	ErrUnknownItemStatus   = errors.New("unknown item status")
	ErrOrderItemsRequired  = errors.New("order must contain at least one item")
	ErrItemQuantityInvalid = errors.New("item quantity must be greater than zero")
	ErrItemPriceInvalid    = errors.New("item price must be non-negative")

	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrPasswordIncorrect  = errors.New("old password is incorrect")

	ErrProductNotFound      = errors.New("product not found")
	ErrProductExists        = errors.New("product already exists in this category")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidSubcategories = errors.New("invalid subcategories")
	ErrTooManyImages        = errors.New("too many product images")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
)

// InvalidTransitionError reports a rejected status-machine move, naming
// both the current and the attempted status.
type InvalidTransitionError struct {
	From ItemStatus
	To   ItemStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition checks whether err is a status-machine violation.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
