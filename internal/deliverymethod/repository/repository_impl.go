package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() dmdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, method *dmdomain.DeliveryMethod) error {
	return db.WithContext(ctx).Create(method).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, method *dmdomain.DeliveryMethod) error {
	return db.WithContext(ctx).Save(method).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*dmdomain.DeliveryMethod, error) {
	var method dmdomain.DeliveryMethod
	err := db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&method).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter dmdomain.ListRequest) ([]dmdomain.DeliveryMethod, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&dmdomain.DeliveryMethod{}).
		Where("store_id = ?", storeID)

	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var methods []dmdomain.DeliveryMethod
	page := filter.Pagination.Normalize()
	err := stmt.
		Order("is_default DESC, created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&methods).Error
	if err != nil {
		return nil, 0, err
	}
	return methods, total, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]dmdomain.DeliveryMethod, error) {
	var methods []dmdomain.DeliveryMethod
	err := db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("is_default DESC, created_at DESC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *repo) UnsetDefault(ctx context.Context, db *gorm.DB, storeID snowflake.ID) error {
	return db.WithContext(ctx).
		Exec("UPDATE delivery_methods SET is_default = ? WHERE store_id = ? AND is_default = ?",
			false, storeID, true).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&dmdomain.DeliveryMethod{}).Error
}
