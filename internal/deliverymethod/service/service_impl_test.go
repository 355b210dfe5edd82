package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	"github.com/matjarly/matjarly/internal/deliverymethod/repository"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, storeID snowflake.ID, section string, value any) {}
func (noopCache) Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string) {}

func newTestService(t *testing.T) dmdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&dmdomain.DeliveryMethod{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return NewService(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
		Cache: noopCache{},
	})
}

func boolPtr(b bool) *bool { return &b }

const testStoreID = snowflake.ID(42)

func createMethod(t *testing.T, svc dmdomain.Service, title string, isDefault bool, active bool) *dmdomain.DeliveryMethod {
	t.Helper()
	method, err := svc.Create(context.Background(), dmdomain.CreateRequest{
		StoreID:   testStoreID,
		TitleAr:   title + "-ar",
		TitleEn:   title,
		IsActive:  boolPtr(active),
		IsDefault: isDefault,
	})
	if err != nil {
		t.Fatalf("failed to create %s: %v", title, err)
	}
	return method
}

func countDefaults(t *testing.T, svc dmdomain.Service) int {
	t.Helper()
	methods, _, err := svc.List(context.Background(), testStoreID, dmdomain.ListRequest{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	n := 0
	for _, m := range methods {
		if m.IsDefault {
			n++
		}
	}
	return n
}

func TestCreateDefaultDemotesPrevious(t *testing.T) {
	svc := newTestService(t)

	first := createMethod(t, svc, "standard", true, true)
	createMethod(t, svc, "express", true, true)

	if got := countDefaults(t, svc); got != 1 {
		t.Fatalf("expected exactly one default, got %d", got)
	}
	reloaded, err := svc.Get(context.Background(), testStoreID, first.ID.String())
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatal("expected first method to be demoted")
	}
}

func TestCreateInactiveDefaultRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), dmdomain.CreateRequest{
		StoreID:   testStoreID,
		TitleAr:   "ar",
		TitleEn:   "en",
		IsActive:  boolPtr(false),
		IsDefault: true,
	})
	if err != dmdomain.ErrDefaultCannotBeInactive {
		t.Fatalf("expected ErrDefaultCannotBeInactive, got %v", err)
	}
}

func TestSetDefaultSwaps(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, "standard", true, true)
	second := createMethod(t, svc, "express", false, true)

	promoted, err := svc.SetDefault(context.Background(), testStoreID, second.ID.String())
	if err != nil {
		t.Fatalf("failed to set default: %v", err)
	}
	if !promoted.IsDefault {
		t.Fatal("expected promoted method to be default")
	}
	if got := countDefaults(t, svc); got != 1 {
		t.Fatalf("expected exactly one default after swap, got %d", got)
	}
}

func TestSetDefaultInactiveRejected(t *testing.T) {
	svc := newTestService(t)

	inactive := createMethod(t, svc, "pickup", false, false)

	_, err := svc.SetDefault(context.Background(), testStoreID, inactive.ID.String())
	if err != dmdomain.ErrInactiveCannotBeDefault {
		t.Fatalf("expected ErrInactiveCannotBeDefault, got %v", err)
	}
}

func TestToggleActiveOnDefaultRejected(t *testing.T) {
	svc := newTestService(t)

	def := createMethod(t, svc, "standard", true, true)

	_, err := svc.ToggleActive(context.Background(), testStoreID, def.ID.String())
	if err != dmdomain.ErrDefaultCannotBeInactive {
		t.Fatalf("expected ErrDefaultCannotBeInactive, got %v", err)
	}
}

func TestUpdateDeactivatingDefaultRejected(t *testing.T) {
	svc := newTestService(t)

	def := createMethod(t, svc, "standard", true, true)

	_, err := svc.Update(context.Background(), testStoreID, dmdomain.UpdateRequest{
		ID:       def.ID.String(),
		IsActive: boolPtr(false),
	})
	if err != dmdomain.ErrDefaultCannotBeInactive {
		t.Fatalf("expected ErrDefaultCannotBeInactive, got %v", err)
	}
}

func TestUpdatePromoteSwapsDefault(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, "standard", true, true)
	second := createMethod(t, svc, "express", false, true)

	updated, err := svc.Update(context.Background(), testStoreID, dmdomain.UpdateRequest{
		ID:        second.ID.String(),
		IsDefault: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("expected updated method to be default")
	}
	if got := countDefaults(t, svc); got != 1 {
		t.Fatalf("expected exactly one default, got %d", got)
	}
}

func TestDeleteDefaultRejected(t *testing.T) {
	svc := newTestService(t)

	def := createMethod(t, svc, "standard", true, true)

	if err := svc.Delete(context.Background(), testStoreID, def.ID.String()); err != dmdomain.ErrDefaultCannotBeDeleted {
		t.Fatalf("expected ErrDefaultCannotBeDeleted, got %v", err)
	}
}

func TestDeleteNonDefault(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, "standard", true, true)
	second := createMethod(t, svc, "express", false, true)

	if err := svc.Delete(context.Background(), testStoreID, second.ID.String()); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), testStoreID, second.ID.String()); err != dmdomain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreScopingHidesOtherStores(t *testing.T) {
	svc := newTestService(t)

	method := createMethod(t, svc, "standard", false, true)

	if _, err := svc.Get(context.Background(), snowflake.ID(999), method.ID.String()); err != dmdomain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign store, got %v", err)
	}
}
