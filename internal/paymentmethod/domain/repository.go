package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	Update(ctx context.Context, db *gorm.DB, method *PaymentMethod) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*PaymentMethod, error)
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID, filter ListRequest) ([]PaymentMethod, int64, error)
	ListActive(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]PaymentMethod, error)
	CountByType(ctx context.Context, db *gorm.DB, storeID snowflake.ID, methodType MethodType, excludeID snowflake.ID) (int64, error)
	UnsetDefault(ctx context.Context, db *gorm.DB, storeID snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) error
}
