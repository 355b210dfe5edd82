package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, slider *StoreSlider) error
	Update(ctx context.Context, db *gorm.DB, slider *StoreSlider) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*StoreSlider, error)
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ListRequest) ([]StoreSlider, int64, error)
	ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]StoreSlider, error)
	IncrementCounter(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID, column string) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error
}
