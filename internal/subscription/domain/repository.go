package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	"gorm.io/gorm"
)

type Repository interface {
	// ListActiveBatch pages through active stores by ascending ID for
	// the expiry sweep.
	ListActiveBatch(ctx context.Context, db *gorm.DB, afterID snowflake.ID, limit int) ([]storedomain.Store, error)
}
