package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindOpenCart(ctx context.Context, db *gorm.DB, storeID, userID snowflake.ID) (*Cart, error)
	InsertCart(ctx context.Context, db *gorm.DB, cart *Cart) error
	UpdateCart(ctx context.Context, db *gorm.DB, cart *Cart) error

	InsertItem(ctx context.Context, db *gorm.DB, item *CartItem) error
	UpdateItem(ctx context.Context, db *gorm.DB, item *CartItem) error
	DeleteItem(ctx context.Context, db *gorm.DB, cartID, itemID snowflake.ID) error
	DeleteItems(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error

	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	FindOrderByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*Order, error)
	ListOrders(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ListOrdersRequest) ([]Order, int64, error)
}
