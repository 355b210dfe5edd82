package authorization

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	ownerrepository "github.com/matjarly/matjarly/internal/owner/repository"
	ownerservice "github.com/matjarly/matjarly/internal/owner/service"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc    Service
	owners ownerdomain.Service
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&ownerdomain.Owner{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	owners := ownerservice.NewService(ownerservice.Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Repo:  ownerrepository.Provide(),
	})

	enforcer, err := NewEnforcer(dbConn)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}

	svc := NewService(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		Enforcer: enforcer,
		Owners:   owners,
	})

	return &fixture{svc: svc, owners: owners, db: dbConn}
}

func (f *fixture) addOwner(t *testing.T, storeID, userID snowflake.ID, primary bool, capabilities ...string) {
	t.Helper()
	_, err := f.owners.Add(context.Background(), ownerdomain.AddRequest{
		StoreID:     storeID,
		UserID:      userID.String(),
		Permissions: capabilities,
		IsPrimary:   primary,
	})
	if err != nil {
		t.Fatalf("failed to add owner: %v", err)
	}
}

func TestSuperadminBypassesCapabilities(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Authorize(context.Background(), snowflake.ID(1), "superadmin", snowflake.ID(0), ObjectStore, ActionManage)
	if err != nil {
		t.Fatalf("expected superadmin bypass, got %v", err)
	}
}

func TestCapabilityGrantsAccess(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, false, ownerdomain.CapManageDeliveryMethods)

	err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10), ObjectDeliveryMethod, ActionManage)
	if err != nil {
		t.Fatalf("expected access, got %v", err)
	}
}

func TestMissingCapabilityDenied(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, false, ownerdomain.CapManageDeliveryMethods)

	err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10), ObjectUser, ActionManage)
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNonOwnerDenied(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Authorize(context.Background(), snowflake.ID(3), "admin", snowflake.ID(10), ObjectStore, ActionView)
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCapabilityScopedToStore(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, false, ownerdomain.CapManageDeliveryMethods)

	err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(20), ObjectDeliveryMethod, ActionManage)
	if err != ErrForbidden {
		t.Fatalf("expected denial in foreign store, got %v", err)
	}
}

func TestRevokedCapabilityDenied(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, false, ownerdomain.CapManageSliders)

	if err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10), ObjectSlider, ActionManage); err != nil {
		t.Fatalf("expected access before revocation, got %v", err)
	}

	owner, err := f.owners.ActiveForUser(context.Background(), snowflake.ID(10), snowflake.ID(2))
	if err != nil || owner == nil {
		t.Fatalf("failed to load owner: %v", err)
	}
	empty := []string{}
	if _, err := f.owners.Update(context.Background(), snowflake.ID(10), ownerdomain.UpdateRequest{
		ID:          owner.ID.String(),
		Permissions: &empty,
	}); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	if err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10), ObjectSlider, ActionManage); err != ErrForbidden {
		t.Fatalf("expected denial after revocation, got %v", err)
	}
}

func TestAuthorizePrimary(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, true, ownerdomain.CapManageUsers)
	f.addOwner(t, 10, 3, false, ownerdomain.CapManageUsers)

	if err := f.svc.AuthorizePrimary(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10)); err != nil {
		t.Fatalf("expected primary owner to pass, got %v", err)
	}
	if err := f.svc.AuthorizePrimary(context.Background(), snowflake.ID(3), "admin", snowflake.ID(10)); err != ErrForbidden {
		t.Fatalf("expected non-primary denial, got %v", err)
	}
	if err := f.svc.AuthorizePrimary(context.Background(), snowflake.ID(9), "superadmin", snowflake.ID(10)); err != nil {
		t.Fatalf("expected superadmin bypass, got %v", err)
	}
}

func TestDeactivatedOwnerDenied(t *testing.T) {
	f := newFixture(t)
	f.addOwner(t, 10, 2, false, ownerdomain.CapManageUsers)

	owner, err := f.owners.ActiveForUser(context.Background(), snowflake.ID(10), snowflake.ID(2))
	if err != nil || owner == nil {
		t.Fatalf("failed to load owner: %v", err)
	}
	inactive := ownerdomain.OwnerStatusInactive
	if _, err := f.owners.Update(context.Background(), snowflake.ID(10), ownerdomain.UpdateRequest{
		ID:     owner.ID.String(),
		Status: &inactive,
	}); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	if err := f.svc.Authorize(context.Background(), snowflake.ID(2), "admin", snowflake.ID(10), ObjectUser, ActionView); err != ErrForbidden {
		t.Fatalf("expected denial for deactivated owner, got %v", err)
	}
}
