package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ownerdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, owner *ownerdomain.Owner) error {
	return db.WithContext(ctx).Create(owner).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, owner *ownerdomain.Owner) error {
	return db.WithContext(ctx).Save(owner).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*ownerdomain.Owner, error) {
	var owner ownerdomain.Owner
	err := db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) FindActiveByUser(ctx context.Context, db *gorm.DB, storeID, userID snowflake.ID) (*ownerdomain.Owner, error) {
	var owner ownerdomain.Owner
	err := db.WithContext(ctx).
		Where("store_id = ? AND user_id = ? AND status = ?", storeID, userID, ownerdomain.OwnerStatusActive).
		First(&owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) FindPrimary(ctx context.Context, db *gorm.DB, storeID snowflake.ID) (*ownerdomain.Owner, error) {
	var owner ownerdomain.Owner
	err := db.WithContext(ctx).
		Where("store_id = ? AND is_primary_owner = ?", storeID, true).
		First(&owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ownerdomain.ListRequest) ([]ownerdomain.Owner, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&ownerdomain.Owner{}).
		Where("store_id = ?", storeID)

	if status := strings.TrimSpace(filter.Status); status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var owners []ownerdomain.Owner
	page := filter.Pagination.Normalize()
	err := stmt.
		Order("is_primary_owner DESC, created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&owners).Error
	if err != nil {
		return nil, 0, err
	}
	return owners, total, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&ownerdomain.Owner{}).Error
}
