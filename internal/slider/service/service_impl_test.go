package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
	"github.com/matjarly/matjarly/internal/slider/repository"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, storeID snowflake.ID, section string, dest any) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, storeID snowflake.ID, section string, value any) {}
func (noopCache) Invalidate(ctx context.Context, storeID snowflake.ID, sections ...string) {}

const testStoreID = snowflake.ID(42)

func newTestService(t *testing.T) sliderdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&sliderdomain.StoreSlider{}); err != nil {
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

func createSlider(t *testing.T, svc sliderdomain.Service, kind sliderdomain.Kind, active bool) *sliderdomain.StoreSlider {
	t.Helper()
	slider, err := svc.Create(context.Background(), sliderdomain.CreateRequest{
		StoreID:  testStoreID,
		Kind:     kind,
		TitleAr:  "عرض",
		TitleEn:  "Promo",
		ImageURL: "https://cdn.example.com/banner.png",
		VideoURL: "https://cdn.example.com/promo.mp4",
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("failed to create slider: %v", err)
	}
	return slider
}

func TestCreateDefaultsToSliderKind(t *testing.T) {
	svc := newTestService(t)

	slider, err := svc.Create(context.Background(), sliderdomain.CreateRequest{
		StoreID:  testStoreID,
		ImageURL: "https://cdn.example.com/banner.png",
	})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if slider.Kind != sliderdomain.KindSlider {
		t.Fatalf("expected slider kind, got %s", slider.Kind)
	}
	if !slider.IsActive {
		t.Fatal("expected new slider active")
	}
}

func TestCreateInvalidKindRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), sliderdomain.CreateRequest{
		StoreID: testStoreID,
		Kind:    "carousel",
	})
	if err != sliderdomain.ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCreateRequiresURLForKind(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), sliderdomain.CreateRequest{
		StoreID: testStoreID,
		Kind:    sliderdomain.KindSlider,
	})
	if err != sliderdomain.ErrMissingURL {
		t.Fatalf("expected ErrMissingURL for slider without image, got %v", err)
	}

	_, err = svc.Create(context.Background(), sliderdomain.CreateRequest{
		StoreID:  testStoreID,
		Kind:     sliderdomain.KindVideo,
		ImageURL: "https://cdn.example.com/banner.png",
	})
	if err != sliderdomain.ErrMissingURL {
		t.Fatalf("expected ErrMissingURL for video without url, got %v", err)
	}
}

func TestCountersIncrement(t *testing.T) {
	svc := newTestService(t)

	slider := createSlider(t, svc, sliderdomain.KindSlider, true)

	for i := 0; i < 3; i++ {
		if err := svc.IncrementView(context.Background(), testStoreID, slider.ID.String()); err != nil {
			t.Fatalf("failed to count view: %v", err)
		}
	}
	if err := svc.IncrementClick(context.Background(), testStoreID, slider.ID.String()); err != nil {
		t.Fatalf("failed to count click: %v", err)
	}

	reloaded, err := svc.Get(context.Background(), testStoreID, slider.ID.String())
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if reloaded.ViewCount != 3 {
		t.Fatalf("expected 3 views, got %d", reloaded.ViewCount)
	}
	if reloaded.ClickCount != 1 {
		t.Fatalf("expected 1 click, got %d", reloaded.ClickCount)
	}
}

func TestCountersScopedToStore(t *testing.T) {
	svc := newTestService(t)

	slider := createSlider(t, svc, sliderdomain.KindSlider, true)

	err := svc.IncrementView(context.Background(), snowflake.ID(999), slider.ID.String())
	if err != sliderdomain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign store, got %v", err)
	}
}

func TestListActiveSkipsInactive(t *testing.T) {
	svc := newTestService(t)

	createSlider(t, svc, sliderdomain.KindSlider, true)
	createSlider(t, svc, sliderdomain.KindVideo, false)

	active, err := svc.ListActive(context.Background(), testStoreID)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active slider, got %d", len(active))
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)

	slider := createSlider(t, svc, sliderdomain.KindSlider, true)

	title := "Summer Promo"
	order := 5
	updated, err := svc.Update(context.Background(), testStoreID, sliderdomain.UpdateRequest{
		ID:        slider.ID.String(),
		TitleEn:   &title,
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if updated.TitleEn != "Summer Promo" || updated.SortOrder != 5 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if updated.TitleAr != "عرض" {
		t.Fatal("expected untouched fields to survive")
	}
}

func TestDeleteSlider(t *testing.T) {
	svc := newTestService(t)

	slider := createSlider(t, svc, sliderdomain.KindSlider, true)

	if err := svc.Delete(context.Background(), testStoreID, slider.ID.String()); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), testStoreID, slider.ID.String()); err != sliderdomain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
