package storecontext

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestResolver(t *testing.T) (*Resolver, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&ownerdomain.Owner{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewResolver(ResolverParams{DB: dbConn, Log: zap.NewNop()}), dbConn
}

func insertOwner(t *testing.T, dbConn *gorm.DB, storeID, userID snowflake.ID, primary bool, status ownerdomain.OwnerStatus, createdAt time.Time) {
	t.Helper()
	err := dbConn.Create(&ownerdomain.Owner{
		ID:             snowflake.ID(int64(storeID)*1000 + int64(userID)),
		StoreID:        storeID,
		UserID:         userID,
		IsPrimaryOwner: primary,
		Status:         status,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}).Error
	if err != nil {
		t.Fatalf("failed to insert owner: %v", err)
	}
}

func TestResolveSuperadminQueryParam(t *testing.T) {
	resolver, _ := newTestResolver(t)

	ctx := WithIdentity(context.Background(), Identity{UserID: 1, Role: RoleSuperadmin})
	storeID, err := resolver.Resolve(ctx, "12345")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if storeID != snowflake.ID(12345) {
		t.Fatalf("expected 12345, got %s", storeID)
	}
}

func TestResolveSuperadminInvalidQueryParam(t *testing.T) {
	resolver, _ := newTestResolver(t)

	ctx := WithIdentity(context.Background(), Identity{UserID: 1, Role: RoleSuperadmin})
	if _, err := resolver.Resolve(ctx, "not-a-number"); err != ErrInvalidStoreID {
		t.Fatalf("expected ErrInvalidStoreID, got %v", err)
	}
}

func TestResolveQueryParamIgnoredForNonSuperadmin(t *testing.T) {
	resolver, dbConn := newTestResolver(t)

	now := time.Now().UTC()
	insertOwner(t, dbConn, 50, 2, true, ownerdomain.OwnerStatusActive, now)

	// An admin may not hop stores via ?storeId; their ownership wins.
	ctx := WithIdentity(context.Background(), Identity{UserID: 2, Role: "admin"})
	storeID, err := resolver.Resolve(ctx, "99999")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if storeID != snowflake.ID(50) {
		t.Fatalf("expected owner store 50, got %s", storeID)
	}
}

func TestResolveContextStoreWins(t *testing.T) {
	resolver, _ := newTestResolver(t)

	ctx := WithIdentity(context.Background(), Identity{UserID: 3, Role: "admin"})
	ctx = WithStoreID(ctx, snowflake.ID(77))

	storeID, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if storeID != snowflake.ID(77) {
		t.Fatalf("expected context store 77, got %s", storeID)
	}
}

func TestResolvePrefersPrimaryOwnership(t *testing.T) {
	resolver, dbConn := newTestResolver(t)

	now := time.Now().UTC()
	insertOwner(t, dbConn, 10, 4, false, ownerdomain.OwnerStatusActive, now.Add(-time.Hour))
	insertOwner(t, dbConn, 20, 4, true, ownerdomain.OwnerStatusActive, now)

	ctx := WithIdentity(context.Background(), Identity{UserID: 4, Role: "admin"})
	storeID, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if storeID != snowflake.ID(20) {
		t.Fatalf("expected primary-owned store 20, got %s", storeID)
	}
}

func TestResolveSkipsInactiveOwnership(t *testing.T) {
	resolver, dbConn := newTestResolver(t)

	now := time.Now().UTC()
	insertOwner(t, dbConn, 10, 5, true, ownerdomain.OwnerStatusInactive, now)

	ctx := WithIdentity(context.Background(), Identity{UserID: 5, Role: "admin"})
	if _, err := resolver.Resolve(ctx, ""); err != ErrNoStoreContext {
		t.Fatalf("expected ErrNoStoreContext, got %v", err)
	}
}

func TestResolveNoContext(t *testing.T) {
	resolver, _ := newTestResolver(t)

	if _, err := resolver.Resolve(context.Background(), ""); err != ErrNoStoreContext {
		t.Fatalf("expected ErrNoStoreContext, got %v", err)
	}
}
