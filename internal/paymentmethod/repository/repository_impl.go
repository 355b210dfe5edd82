package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pmdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, method *pmdomain.PaymentMethod) error {
	return db.WithContext(ctx).Create(method).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, method *pmdomain.PaymentMethod) error {
	return db.WithContext(ctx).Save(method).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*pmdomain.PaymentMethod, error) {
	var method pmdomain.PaymentMethod
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

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter pmdomain.ListRequest) ([]pmdomain.PaymentMethod, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&pmdomain.PaymentMethod{}).
		Where("store_id = ?", storeID)

	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}
	if methodType := strings.TrimSpace(filter.MethodType); methodType != "" {
		stmt = stmt.Where("method_type = ?", methodType)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var methods []pmdomain.PaymentMethod
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

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]pmdomain.PaymentMethod, error) {
	var methods []pmdomain.PaymentMethod
	err := db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("is_default DESC, created_at DESC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *repo) CountByType(ctx context.Context, db *gorm.DB, storeID snowflake.ID, methodType pmdomain.MethodType, excludeID snowflake.ID) (int64, error) {
	stmt := db.WithContext(ctx).
		Model(&pmdomain.PaymentMethod{}).
		Where("store_id = ? AND method_type = ?", storeID, methodType)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) UnsetDefault(ctx context.Context, db *gorm.DB, storeID snowflake.ID) error {
	return db.WithContext(ctx).
		Exec("UPDATE payment_methods SET is_default = ? WHERE store_id = ? AND is_default = ?",
			false, storeID, true).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&pmdomain.PaymentMethod{}).Error
}
