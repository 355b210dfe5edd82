package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	planservice "github.com/matjarly/matjarly/internal/plan/service"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	storerepository "github.com/matjarly/matjarly/internal/store/repository"
	storeservice "github.com/matjarly/matjarly/internal/store/service"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	"github.com/matjarly/matjarly/internal/subscription/repository"
	"github.com/matjarly/matjarly/pkg/db"
	pkgrepository "github.com/matjarly/matjarly/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type captureEmail struct {
	sends [][]string
	fail  bool
}

func (c *captureEmail) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (c *captureEmail) SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error {
	if c.fail {
		return context.DeadlineExceeded
	}
	c.sends = append(c.sends, to)
	return nil
}

type fixture struct {
	svc    subscriptiondomain.Service
	stores storedomain.Service
	plans  plandomain.Service
	email  *captureEmail
	clock  *clock.FakeClock
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&storedomain.Store{}, &plandomain.SubscriptionPlan{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	stores := storeservice.NewService(storeservice.Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  storerepository.Provide(),
	})
	plans := planservice.NewService(planservice.Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  pkgrepository.ProvideStore[plandomain.SubscriptionPlan](dbConn),
	})

	mail := &captureEmail{}
	svc := NewService(Params{
		DB:     dbConn,
		Log:    zap.NewNop(),
		Config: config.Config{SubscriptionWarningDays: 3},
		Clock:  clk,
		Repo:   repository.Provide(),
		Stores: stores,
		Plans:  plans,
		Email:  mail,
	})

	return &fixture{svc: svc, stores: stores, plans: plans, email: mail, clock: clk, db: dbConn}
}

func (f *fixture) createStore(t *testing.T, name string, trialDays int) *storedomain.Store {
	t.Helper()
	store, err := f.stores.Create(context.Background(), storedomain.CreateRequest{
		NameAr:    name + "-ar",
		NameEn:    name,
		Email:     name + "@example.com",
		TrialDays: trialDays,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func (f *fixture) createPlan(t *testing.T, code string, kind plandomain.Kind, days int) *plandomain.SubscriptionPlan {
	t.Helper()
	plan, err := f.plans.Create(context.Background(), plandomain.CreateRequest{
		Code:         code,
		Kind:         kind,
		NameAr:       code + "-ar",
		NameEn:       code,
		DurationDays: days,
	})
	if err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}
	return plan
}

func TestActivateSetsSubscriptionWindow(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	f.createPlan(t, "monthly", plandomain.KindMonthly, 30)

	activated, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "monthly",
	})
	if err != nil {
		t.Fatalf("failed to activate: %v", err)
	}
	if activated.SubscriptionStart == nil || activated.SubscriptionEnd == nil {
		t.Fatal("expected subscription window")
	}
	want := f.clock.Now().AddDate(0, 0, 30)
	if !activated.SubscriptionEnd.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, activated.SubscriptionEnd)
	}
}

func TestActivateLifetimeHasNoEnd(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	f.createPlan(t, "lifetime", plandomain.KindLifetime, 0)

	activated, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "lifetime",
	})
	if err != nil {
		t.Fatalf("failed to activate: %v", err)
	}
	if activated.SubscriptionEnd != nil {
		t.Fatal("expected open-ended subscription")
	}
}

func TestActivateInactivePlanRejected(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	plan := f.createPlan(t, "monthly", plandomain.KindMonthly, 30)

	inactive := false
	if _, err := f.plans.Update(context.Background(), plandomain.UpdateRequest{
		ID:       plan.ID.String(),
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("failed to deactivate plan: %v", err)
	}

	_, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "monthly",
	})
	if err != plandomain.ErrPlanInactive {
		t.Fatalf("expected ErrPlanInactive, got %v", err)
	}
}

func TestExtendTrialStacksOnRemainingTime(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)

	extended, err := f.svc.ExtendTrial(context.Background(), store.ID.String(), 7)
	if err != nil {
		t.Fatalf("failed to extend: %v", err)
	}
	want := f.clock.Now().AddDate(0, 0, 21)
	if !extended.TrialEndsAt.Equal(want) {
		t.Fatalf("expected trial end %v, got %v", want, extended.TrialEndsAt)
	}
}

func TestExtendTrialRejectsNonPositiveDays(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)

	if _, err := f.svc.ExtendTrial(context.Background(), store.ID.String(), 0); err != subscriptiondomain.ErrInvalidDays {
		t.Fatalf("expected ErrInvalidDays, got %v", err)
	}
}

func TestCancelImmediateDeactivates(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)

	cancelled, err := f.svc.Cancel(context.Background(), store.ID.String(), true)
	if err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}
	if cancelled.Status != storedomain.StoreStatusInactive {
		t.Fatalf("expected inactive store, got %s", cancelled.Status)
	}
	if cancelled.StatusReason != storedomain.StatusReasonManual {
		t.Fatalf("expected manual reason, got %s", cancelled.StatusReason)
	}
}

func TestRunCheckDeactivatesExpiredTrial(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)

	f.clock.Advance(15 * 24 * time.Hour)

	report, err := f.svc.RunCheck(context.Background())
	if err != nil {
		t.Fatalf("failed to run check: %v", err)
	}
	if report.Checked != 1 || report.Deactivated != 1 {
		t.Fatalf("expected 1 checked and deactivated, got %+v", report)
	}

	reloaded, err := f.stores.Get(context.Background(), store.ID.String())
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if reloaded.Status != storedomain.StoreStatusInactive {
		t.Fatalf("expected inactive store, got %s", reloaded.Status)
	}
	if reloaded.StatusReason != storedomain.StatusReasonTrialExpired {
		t.Fatalf("expected trial_expired, got %s", reloaded.StatusReason)
	}
}

func TestRunCheckDeactivatesExpiredSubscription(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	f.createPlan(t, "monthly", plandomain.KindMonthly, 30)

	if _, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "monthly",
	}); err != nil {
		t.Fatalf("failed to activate: %v", err)
	}

	f.clock.Advance(31 * 24 * time.Hour)

	report, err := f.svc.RunCheck(context.Background())
	if err != nil {
		t.Fatalf("failed to run check: %v", err)
	}
	if report.Deactivated != 1 {
		t.Fatalf("expected 1 deactivated, got %+v", report)
	}

	reloaded, _ := f.stores.Get(context.Background(), store.ID.String())
	if reloaded.StatusReason != storedomain.StatusReasonSubscriptionExpired {
		t.Fatalf("expected subscription_expired, got %s", reloaded.StatusReason)
	}
}

func TestRunCheckWarnsOnceInsideWindow(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	f.createPlan(t, "monthly", plandomain.KindMonthly, 30)

	if _, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "monthly",
	}); err != nil {
		t.Fatalf("failed to activate: %v", err)
	}

	// Two days before expiry, inside the 3-day warning window.
	f.clock.Advance(28 * 24 * time.Hour)

	report, err := f.svc.RunCheck(context.Background())
	if err != nil {
		t.Fatalf("failed to run check: %v", err)
	}
	if report.Warned != 1 {
		t.Fatalf("expected 1 warned, got %+v", report)
	}
	if len(f.email.sends) != 1 {
		t.Fatalf("expected 1 warning email, got %d", len(f.email.sends))
	}

	// A second sweep must not warn again.
	report, err = f.svc.RunCheck(context.Background())
	if err != nil {
		t.Fatalf("failed to run check: %v", err)
	}
	if report.Warned != 0 {
		t.Fatalf("expected no repeat warning, got %+v", report)
	}
	if len(f.email.sends) != 1 {
		t.Fatalf("expected still 1 email, got %d", len(f.email.sends))
	}
}

func TestRunCheckLifetimeNeverExpires(t *testing.T) {
	f := newFixture(t)
	store := f.createStore(t, "souq", 14)
	f.createPlan(t, "lifetime", plandomain.KindLifetime, 0)

	if _, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  store.ID.String(),
		PlanCode: "lifetime",
	}); err != nil {
		t.Fatalf("failed to activate: %v", err)
	}

	f.clock.Advance(365 * 24 * time.Hour)

	report, err := f.svc.RunCheck(context.Background())
	if err != nil {
		t.Fatalf("failed to run check: %v", err)
	}
	if report.Deactivated != 0 || report.Warned != 0 {
		t.Fatalf("expected lifetime store untouched, got %+v", report)
	}
}

func TestRunCheckIsolatesPerStoreErrors(t *testing.T) {
	f := newFixture(t)
	good := f.createStore(t, "good", 14)
	bad := f.createStore(t, "bad", 14)
	f.createPlan(t, "monthly", plandomain.KindMonthly, 30)

	// The failing store is inside the warning window, so the sweep
	// tries to email it and fails; the good store still expires.
	if _, err := f.svc.Activate(context.Background(), subscriptiondomain.ActivateRequest{
		StoreID:  bad.ID.String(),
		PlanCode: "monthly",
	}); err != nil {
		t.Fatalf("failed to activate: %v", err)
	}
	f.email.fail = true

	f.clock.Advance(28 * 24 * time.Hour)

	report, err := f.svc.RunCheck(context.Background())
	if err == nil {
		t.Fatal("expected joined error from failing store")
	}
	if report.Errors != 1 {
		t.Fatalf("expected 1 error, got %+v", report)
	}
	if report.Deactivated != 1 {
		t.Fatalf("expected the good store deactivated, got %+v", report)
	}

	reloaded, _ := f.stores.Get(context.Background(), good.ID.String())
	if reloaded.Status != storedomain.StoreStatusInactive {
		t.Fatalf("expected good store trial-expired, got %s", reloaded.Status)
	}
}
