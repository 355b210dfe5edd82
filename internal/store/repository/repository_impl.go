package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() storedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, store *storedomain.Store) error {
	return db.WithContext(ctx).Create(store).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, store *storedomain.Store) error {
	return db.WithContext(ctx).Save(store).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*storedomain.Store, error) {
	var store storedomain.Store
	err := db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*storedomain.Store, error) {
	var store storedomain.Store
	err := db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug)).First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter storedomain.ListRequest) ([]storedomain.Store, int64, error) {
	stmt := db.WithContext(ctx).Model(&storedomain.Store{})

	if status := strings.TrimSpace(filter.Status); status != "" {
		stmt = stmt.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		stmt = stmt.Where("name_ar LIKE ? OR name_en LIKE ? OR slug LIKE ?", like, like, like)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []storedomain.Store
	page := filter.Pagination.Normalize()
	err := stmt.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&storedomain.Store{}).Error
}
