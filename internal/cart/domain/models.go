package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CartStatus string

const (
	CartStatusOpen       CartStatus = "open"
	CartStatusCheckedOut CartStatus = "checked_out"
	CartStatusAbandoned  CartStatus = "abandoned"
)

// Cart is the POS basket. One open cart per (store, client).
type Cart struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID snowflake.ID `gorm:"column:store_id;index" json:"storeId"`
	UserID  snowflake.ID `gorm:"column:user_id;index" json:"userId"`
	Status  CartStatus   `gorm:"default:open" json:"status"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	CartID         snowflake.ID `gorm:"column:cart_id;index" json:"cartId"`
	ProductName    string       `gorm:"column:product_name" json:"productName"`
	UnitPriceCents int64        `gorm:"column:unit_price_cents" json:"unitPriceCents"`
	Quantity       int          `json:"quantity"`
	Notes          string       `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the sum of line totals, before delivery.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order snapshots a checked-out cart with the chosen payment and
// delivery methods, so later method edits never rewrite history.
type Order struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID snowflake.ID `gorm:"column:store_id;index" json:"storeId"`
	UserID  snowflake.ID `gorm:"column:user_id;index" json:"userId"`
	CartID  snowflake.ID `gorm:"column:cart_id" json:"cartId"`
	Status  OrderStatus  `gorm:"default:placed" json:"status"`

	SubtotalCents int64 `gorm:"column:subtotal_cents" json:"subtotalCents"`
	DeliveryCents int64 `gorm:"column:delivery_cents" json:"deliveryCents"`
	TotalCents    int64 `gorm:"column:total_cents" json:"totalCents"`

	PaymentMethodID     snowflake.ID `gorm:"column:payment_method_id" json:"paymentMethodId"`
	PaymentMethodTitle  string       `gorm:"column:payment_method_title" json:"paymentMethodTitle"`
	PaymentMethodType   string       `gorm:"column:payment_method_type" json:"paymentMethodType"`
	DeliveryMethodID    snowflake.ID `gorm:"column:delivery_method_id" json:"deliveryMethodId"`
	DeliveryMethodTitle string       `gorm:"column:delivery_method_title" json:"deliveryMethodTitle"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID        snowflake.ID `gorm:"column:order_id;index" json:"orderId"`
	ProductName    string       `gorm:"column:product_name" json:"productName"`
	UnitPriceCents int64        `gorm:"column:unit_price_cents" json:"unitPriceCents"`
	Quantity       int          `json:"quantity"`
	Notes          string       `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
