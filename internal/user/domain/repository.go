package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	Update(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]User, error)
	FindByResetTokenHash(ctx context.Context, db *gorm.DB, hash string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]User, int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// CountEmailConflicts counts other accounts that would collide with
	// the given email under the role's uniqueness rule.
	CountEmailConflicts(ctx context.Context, db *gorm.DB, role Role, storeID *snowflake.ID, email string, excludeID snowflake.ID) (int64, error)
}
