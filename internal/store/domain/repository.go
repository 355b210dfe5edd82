package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, store *Store) error
	Update(ctx context.Context, db *gorm.DB, store *Store) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Store, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Store, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Store, int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
