package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	GetOpenCart(ctx context.Context, storeID, userID snowflake.ID) (*Cart, error)
	AddItem(ctx context.Context, storeID, userID snowflake.ID, req AddItemRequest) (*Cart, error)
	UpdateItemQuantity(ctx context.Context, storeID, userID snowflake.ID, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, storeID, userID snowflake.ID, itemID string) (*Cart, error)
	Clear(ctx context.Context, storeID, userID snowflake.ID) error
	Checkout(ctx context.Context, storeID, userID snowflake.ID, req CheckoutRequest) (*Order, error)

	GetOrder(ctx context.Context, storeID snowflake.ID, orderID string) (*Order, error)
	ListOrders(ctx context.Context, storeID snowflake.ID, req ListOrdersRequest) ([]Order, pagination.Meta, error)
}

type AddItemRequest struct {
	ProductName    string `json:"productName" binding:"required"`
	UnitPriceCents int64  `json:"unitPriceCents" binding:"required,min=0"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	Notes          string `json:"notes"`
}

type CheckoutRequest struct {
	PaymentMethodID  string `json:"paymentMethodId" binding:"required"`
	DeliveryMethodID string `json:"deliveryMethodId" binding:"required"`
}

type ListOrdersRequest struct {
	pagination.Pagination
	Status string `form:"status"`
	UserID string `form:"userId"`
}

var (
	ErrItemNotFound       = errors.New("cart_item_not_found")
	ErrInvalidItemID      = errors.New("invalid_cart_item_id")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrCartEmpty          = errors.New("cart_empty")
	ErrMethodNotAvailable = errors.New("method_not_available")
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrInvalidOrderID     = errors.New("invalid_order_id")
)
