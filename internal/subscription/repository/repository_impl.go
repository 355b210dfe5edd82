package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) ListActiveBatch(ctx context.Context, db *gorm.DB, afterID snowflake.ID, limit int) ([]storedomain.Store, error) {
	var stores []storedomain.Store
	err := db.WithContext(ctx).
		Where("status = ? AND id > ?", storedomain.StoreStatusActive, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}
