package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, owner *Owner) error
	Update(ctx context.Context, db *gorm.DB, owner *Owner) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*Owner, error)
	FindActiveByUser(ctx context.Context, db *gorm.DB, storeID, userID snowflake.ID) (*Owner, error)
	FindPrimary(ctx context.Context, db *gorm.DB, storeID snowflake.ID) (*Owner, error)
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ListRequest) ([]Owner, int64, error)
	Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error
}
