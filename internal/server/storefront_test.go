package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"gorm.io/datatypes"
)

type fakeStoreService struct {
	stores map[string]*storedomain.Store
}

func (f *fakeStoreService) Create(ctx context.Context, req storedomain.CreateRequest) (*storedomain.Store, error) {
	return nil, storedomain.ErrNotFound
}

func (f *fakeStoreService) Get(ctx context.Context, id string) (*storedomain.Store, error) {
	return nil, storedomain.ErrNotFound
}

func (f *fakeStoreService) GetBySlug(ctx context.Context, slug string) (*storedomain.Store, error) {
	store, ok := f.stores[slug]
	if !ok {
		return nil, storedomain.ErrNotFound
	}
	return store, nil
}

func (f *fakeStoreService) List(ctx context.Context, req storedomain.ListRequest) ([]storedomain.Store, pagination.Meta, error) {
	return nil, pagination.Meta{}, nil
}

func (f *fakeStoreService) Update(ctx context.Context, req storedomain.UpdateRequest) (*storedomain.Store, error) {
	return nil, storedomain.ErrNotFound
}

func (f *fakeStoreService) SetStatus(ctx context.Context, id string, status storedomain.StoreStatus, reason storedomain.StatusReason) (*storedomain.Store, error) {
	return nil, storedomain.ErrNotFound
}

func (f *fakeStoreService) Delete(ctx context.Context, id string) error {
	return storedomain.ErrNotFound
}

func newStorefrontRouter(storeSvc storedomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{storeSvc: storeSvc}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/storefront/:slug", srv.GetStorefront)
	return router
}

func storefrontFixture() *fakeStoreService {
	trialEnd := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &fakeStoreService{stores: map[string]*storedomain.Store{
		"coffee-shop": {
			ID:          snowflake.ID(100),
			NameAr:      "متجر القهوة",
			NameEn:      "Coffee Shop",
			Slug:        "coffee-shop",
			Status:      storedomain.StoreStatusActive,
			Phone:       "+970590000000",
			Settings:    datatypes.JSONMap{"theme": "dark"},
			TrialEndsAt: &trialEnd,
		},
		"closed-shop": {
			ID:     snowflake.ID(101),
			NameEn: "Closed Shop",
			Slug:   "closed-shop",
			Status: storedomain.StoreStatusInactive,
		},
	}}
}

func TestStorefrontReturnsPublicView(t *testing.T) {
	router := newStorefrontRouter(storefrontFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/coffee-shop", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	envelope := decodeEnvelope(t, resp)
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %v", envelope.Data)
	}
	if data["slug"] != "coffee-shop" || data["nameEn"] != "Coffee Shop" {
		t.Fatalf("unexpected payload %v", data)
	}
	// Subscription state never leaks onto the public surface.
	if strings.Contains(resp.Body.String(), "trialEndsAt") {
		t.Fatal("expected no subscription fields in public view")
	}
}

func TestStorefrontHidesInactiveStore(t *testing.T) {
	router := newStorefrontRouter(storefrontFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/closed-shop", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if envelope := decodeEnvelope(t, resp); envelope.ErrorCode != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", envelope.ErrorCode)
	}
}

func TestStorefrontUnknownSlug(t *testing.T) {
	router := newStorefrontRouter(storefrontFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
