package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/matjarly/matjarly/internal/cart/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() cartdomain.Repository {
	return &repo{}
}

func (r *repo) FindOpenCart(ctx context.Context, db *gorm.DB, storeID, userID snowflake.ID) (*cartdomain.Cart, error) {
	var cart cartdomain.Cart
	err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("store_id = ? AND user_id = ? AND status = ?", storeID, userID, cartdomain.CartStatusOpen).
		First(&cart).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repo) InsertCart(ctx context.Context, db *gorm.DB, cart *cartdomain.Cart) error {
	return db.WithContext(ctx).Create(cart).Error
}

func (r *repo) UpdateCart(ctx context.Context, db *gorm.DB, cart *cartdomain.Cart) error {
	return db.WithContext(ctx).Omit("Items").Save(cart).Error
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *cartdomain.CartItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *cartdomain.CartItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, cartID, itemID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&cartdomain.CartItem{}).Error
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cartdomain.CartItem{}).Error
}

func (r *repo) InsertOrder(ctx context.Context, db *gorm.DB, order *cartdomain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindOrderByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*cartdomain.Order, error) {
	var order cartdomain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ? AND id = ?", storeID, id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) ListOrders(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter cartdomain.ListOrdersRequest) ([]cartdomain.Order, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&cartdomain.Order{}).
		Where("store_id = ?", storeID)

	if status := strings.TrimSpace(filter.Status); status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	if rawUserID := strings.TrimSpace(filter.UserID); rawUserID != "" {
		if userID, err := snowflake.ParseString(rawUserID); err == nil {
			stmt = stmt.Where("user_id = ?", userID)
		}
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []cartdomain.Order
	page := filter.Pagination.Normalize()
	err := stmt.
		Preload("Items").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
