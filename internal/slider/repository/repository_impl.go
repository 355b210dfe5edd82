package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() sliderdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, slider *sliderdomain.StoreSlider) error {
	return db.WithContext(ctx).Create(slider).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, slider *sliderdomain.StoreSlider) error {
	return db.WithContext(ctx).Save(slider).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*sliderdomain.StoreSlider, error) {
	var slider sliderdomain.StoreSlider
	err := db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&slider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &slider, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter sliderdomain.ListRequest) ([]sliderdomain.StoreSlider, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&sliderdomain.StoreSlider{}).
		Where("store_id = ?", storeID)

	if kind := strings.TrimSpace(filter.Kind); kind != "" {
		stmt = stmt.Where("kind = ?", kind)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sliders []sliderdomain.StoreSlider
	page := filter.Pagination.Normalize()
	err := stmt.
		Order("sort_order ASC, created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&sliders).Error
	if err != nil {
		return nil, 0, err
	}
	return sliders, total, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]sliderdomain.StoreSlider, error) {
	var sliders []sliderdomain.StoreSlider
	err := db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("sort_order ASC, created_at DESC").
		Find(&sliders).Error
	if err != nil {
		return nil, err
	}
	return sliders, nil
}

// IncrementCounter bumps view_count or click_count in a single UPDATE
// so concurrent hits never lose increments.
func (r *repo) IncrementCounter(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID, column string) error {
	result := db.WithContext(ctx).
		Model(&sliderdomain.StoreSlider{}).
		Where("store_id = ? AND id = ?", storeID, id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sliderdomain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&sliderdomain.StoreSlider{}).Error
}
