package storecontext

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoStoreContext = errors.New("no_store_context")
	ErrInvalidStoreID = errors.New("invalid_store_id")
)

const RoleSuperadmin = "superadmin"

// Resolver determines which store a request operates on.
//
// Resolution order:
//  1. explicit ?storeId= from a superadmin caller
//  2. store already placed in the context by route middleware
//  3. the caller's active owner record
type Resolver struct {
	db  *gorm.DB
	log *zap.Logger
}

type ResolverParams struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewResolver(p ResolverParams) *Resolver {
	return &Resolver{
		db:  p.DB,
		log: p.Log.Named("storecontext.resolver"),
	}
}

// Resolve returns the store ID the current request is scoped to.
func (r *Resolver) Resolve(ctx context.Context, queryStoreID string) (snowflake.ID, error) {
	identity, _ := IdentityFromContext(ctx)

	if raw := strings.TrimSpace(queryStoreID); raw != "" && identity.Role == RoleSuperadmin {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			return 0, ErrInvalidStoreID
		}
		return parsed, nil
	}

	if storeID, ok := StoreIDFromContext(ctx); ok {
		return storeID, nil
	}

	if identity.UserID != 0 {
		storeID, err := r.storeForOwner(ctx, identity.UserID)
		if err != nil {
			return 0, err
		}
		if storeID != 0 {
			return storeID, nil
		}
	}

	return 0, ErrNoStoreContext
}

func (r *Resolver) storeForOwner(ctx context.Context, userID snowflake.ID) (snowflake.ID, error) {
	var row struct {
		StoreID snowflake.ID `gorm:"column:store_id"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT store_id
		 FROM owners
		 WHERE user_id = ? AND status = 'active'
		 ORDER BY is_primary_owner DESC, created_at ASC
		 LIMIT 1`,
		userID,
	).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.StoreID, nil
}

var Module = fx.Module("storecontext",
	fx.Provide(NewResolver),
)
