package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	"github.com/matjarly/matjarly/internal/store/repository"
	"github.com/matjarly/matjarly/pkg/db"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) storedomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&storedomain.Store{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
}

func TestCreateSlugFromEnglishName(t *testing.T) {
	svc := newTestService(t)

	store, err := svc.Create(context.Background(), storedomain.CreateRequest{
		NameAr: "متجر القهوة",
		NameEn: "Coffee Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "coffee-shop", store.Slug)
	assert.Equal(t, storedomain.StoreStatusActive, store.Status)
	assert.True(t, store.AutoRenew)
	assert.Nil(t, store.TrialEndsAt)
}

func TestCreateWithTrialWindow(t *testing.T) {
	svc := newTestService(t)

	store, err := svc.Create(context.Background(), storedomain.CreateRequest{
		NameEn:    "Coffee Shop",
		TrialDays: 14,
	})
	require.NoError(t, err)
	require.NotNil(t, store.TrialEndsAt)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), store.TrialEndsAt.UTC())
}

func TestCreateSlugCollisionGetsSuffix(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "coffee-shop-")
}

func TestCreateWithoutNameRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "  "})
	assert.ErrorIs(t, err, storedomain.ErrInvalidName)
}

func TestGetBySlug(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	found, err := svc.GetBySlug(context.Background(), "coffee-shop")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, storedomain.ErrNotFound)
}

func TestGetInvalidID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, storedomain.ErrInvalidID)
}

func TestUpdateCannotClearBothNames(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), storedomain.UpdateRequest{
		ID:     created.ID.String(),
		NameEn: &empty,
	})
	assert.ErrorIs(t, err, storedomain.ErrInvalidName)
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), storedomain.CreateRequest{
		NameEn: "Coffee Shop",
		Phone:  "+970590000000",
	})
	require.NoError(t, err)

	email := "Hello@Coffee.Shop"
	updated, err := svc.Update(context.Background(), storedomain.UpdateRequest{
		ID:    created.ID.String(),
		Email: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello@coffee.shop", updated.Email)
	assert.Equal(t, "+970590000000", updated.Phone)
	assert.Equal(t, "Coffee Shop", updated.NameEn)
}

func TestSetStatus(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	suspended, err := svc.SetStatus(context.Background(), created.ID.String(), storedomain.StoreStatusSuspended, storedomain.StatusReasonManual)
	require.NoError(t, err)
	assert.Equal(t, storedomain.StoreStatusSuspended, suspended.Status)
	assert.Equal(t, storedomain.StatusReasonManual, suspended.StatusReason)

	reactivated, err := svc.SetStatus(context.Background(), created.ID.String(), storedomain.StoreStatusActive, "")
	require.NoError(t, err)
	assert.Equal(t, storedomain.StoreStatusActive, reactivated.Status)
	assert.Empty(t, reactivated.StatusReason)

	_, err = svc.SetStatus(context.Background(), created.ID.String(), "archived", "")
	assert.ErrorIs(t, err, storedomain.ErrInvalidStatus)
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc := newTestService(t)

	names := []string{"Coffee Shop", "Tea House", "Juice Bar"}
	for _, name := range names {
		_, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: name})
		require.NoError(t, err)
	}

	stores, meta, err := svc.List(context.Background(), storedomain.ListRequest{
		Pagination: pagination.Pagination{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, stores, 2)
	assert.Equal(t, int64(3), meta.TotalItems)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestDeleteRemovesStore(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), storedomain.CreateRequest{NameEn: "Coffee Shop"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID.String()))

	_, err = svc.Get(context.Background(), created.ID.String())
	assert.ErrorIs(t, err, storedomain.ErrNotFound)
}
