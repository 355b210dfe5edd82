package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
	"github.com/matjarly/matjarly/internal/paymentmethod/repository"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, storeID snowflake.ID, section string, value any) {}
func (noopCache) Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string) {}

const testStoreID = snowflake.ID(7)

func newTestService(t *testing.T) pmdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&pmdomain.PaymentMethod{}); err != nil {
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

func createMethod(t *testing.T, svc pmdomain.Service, methodType pmdomain.MethodType, isDefault bool) *pmdomain.PaymentMethod {
	t.Helper()
	method, err := svc.Create(context.Background(), pmdomain.CreateRequest{
		StoreID:    testStoreID,
		TitleAr:    string(methodType) + "-ar",
		TitleEn:    string(methodType),
		MethodType: methodType,
		IsDefault:  isDefault,
	})
	if err != nil {
		t.Fatalf("failed to create %s method: %v", methodType, err)
	}
	return method
}

func TestSecondLahzaRejected(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, pmdomain.MethodLahza, false)

	_, err := svc.Create(context.Background(), pmdomain.CreateRequest{
		StoreID:    testStoreID,
		TitleAr:    "ar",
		TitleEn:    "en",
		MethodType: pmdomain.MethodLahza,
	})
	if err != pmdomain.ErrLahzaAlreadyExists {
		t.Fatalf("expected ErrLahzaAlreadyExists, got %v", err)
	}
}

func TestLahzaAllowedInOtherStore(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, pmdomain.MethodLahza, false)

	_, err := svc.Create(context.Background(), pmdomain.CreateRequest{
		StoreID:    snowflake.ID(99),
		TitleAr:    "ar",
		TitleEn:    "en",
		MethodType: pmdomain.MethodLahza,
	})
	if err != nil {
		t.Fatalf("expected lahza in a different store to be allowed, got %v", err)
	}
}

func TestUpdateToLahzaRejectedWhenExists(t *testing.T) {
	svc := newTestService(t)

	createMethod(t, svc, pmdomain.MethodLahza, false)
	cash := createMethod(t, svc, pmdomain.MethodCash, false)

	lahza := pmdomain.MethodLahza
	_, err := svc.Update(context.Background(), testStoreID, pmdomain.UpdateRequest{
		ID:         cash.ID.String(),
		MethodType: &lahza,
	})
	if err != pmdomain.ErrLahzaAlreadyExists {
		t.Fatalf("expected ErrLahzaAlreadyExists, got %v", err)
	}
}

func TestUpdateLahzaItselfAllowed(t *testing.T) {
	svc := newTestService(t)

	method := createMethod(t, svc, pmdomain.MethodLahza, false)

	// Re-asserting the same type on the same row is not a duplicate.
	lahza := pmdomain.MethodLahza
	title := "Lahza gateway"
	if _, err := svc.Update(context.Background(), testStoreID, pmdomain.UpdateRequest{
		ID:         method.ID.String(),
		TitleEn:    &title,
		MethodType: &lahza,
	}); err != nil {
		t.Fatalf("failed to update lahza method: %v", err)
	}
}

func TestInvalidMethodTypeRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), pmdomain.CreateRequest{
		StoreID:    testStoreID,
		TitleAr:    "ar",
		TitleEn:    "en",
		MethodType: pmdomain.MethodType("bitcoin"),
	})
	if err != pmdomain.ErrInvalidMethodType {
		t.Fatalf("expected ErrInvalidMethodType, got %v", err)
	}
}

func TestSetDefaultSwapsPaymentMethods(t *testing.T) {
	svc := newTestService(t)

	first := createMethod(t, svc, pmdomain.MethodCash, true)
	second := createMethod(t, svc, pmdomain.MethodCard, false)

	if _, err := svc.SetDefault(context.Background(), testStoreID, second.ID.String()); err != nil {
		t.Fatalf("failed to set default: %v", err)
	}

	reloaded, err := svc.Get(context.Background(), testStoreID, first.ID.String())
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatal("expected previous default to be demoted")
	}
}

func TestDefaultPaymentMethodCannotBeDeleted(t *testing.T) {
	svc := newTestService(t)

	def := createMethod(t, svc, pmdomain.MethodCash, true)

	if err := svc.Delete(context.Background(), testStoreID, def.ID.String()); err != pmdomain.ErrDefaultCannotBeDeleted {
		t.Fatalf("expected ErrDefaultCannotBeDeleted, got %v", err)
	}
}

func TestToggleActiveOnDefaultPaymentMethodRejected(t *testing.T) {
	svc := newTestService(t)

	def := createMethod(t, svc, pmdomain.MethodCash, true)

	if _, err := svc.ToggleActive(context.Background(), testStoreID, def.ID.String()); err != pmdomain.ErrDefaultCannotBeInactive {
		t.Fatalf("expected ErrDefaultCannotBeInactive, got %v", err)
	}
}

func TestSetDefaultInactivePaymentMethodRejected(t *testing.T) {
	svc := newTestService(t)

	method, err := svc.Create(context.Background(), pmdomain.CreateRequest{
		StoreID:    testStoreID,
		TitleAr:    "ar",
		TitleEn:    "en",
		MethodType: pmdomain.MethodQR,
		IsActive:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	if _, err := svc.SetDefault(context.Background(), testStoreID, method.ID.String()); err != pmdomain.ErrInactiveCannotBeDefault {
		t.Fatalf("expected ErrInactiveCannotBeDefault, got %v", err)
	}
}
