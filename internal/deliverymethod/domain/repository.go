package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, method *DeliveryMethod) error
	Update(ctx context.Context, db *gorm.DB, method *DeliveryMethod) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*DeliveryMethod, error)
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ListRequest) ([]DeliveryMethod, int64, error)
	ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]DeliveryMethod, error)
	UnsetDefault(ctx context.Context, db *gorm.DB, storeID snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error
}
