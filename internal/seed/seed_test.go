package seed

import (
	"testing"

	"github.com/matjarly/matjarly/internal/auth/password"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"github.com/matjarly/matjarly/pkg/db"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&plandomain.SubscriptionPlan{}, &userdomain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return dbConn
}

func TestEnsureDefaultPlansIdempotent(t *testing.T) {
	dbConn := newTestDB(t)

	if err := EnsureDefaultPlans(dbConn); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := EnsureDefaultPlans(dbConn); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var count int64
	if err := dbConn.Model(&plandomain.SubscriptionPlan{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 plans, got %d", count)
	}

	var lifetime plandomain.SubscriptionPlan
	if err := dbConn.Where("code = ?", "lifetime").First(&lifetime).Error; err != nil {
		t.Fatalf("failed to load lifetime plan: %v", err)
	}
	if lifetime.Kind != plandomain.KindLifetime || lifetime.DurationDays != 0 {
		t.Fatalf("unexpected lifetime plan: %+v", lifetime)
	}
}

func TestEnsureDefaultPlansKeepsExistingRows(t *testing.T) {
	dbConn := newTestDB(t)

	if err := EnsureDefaultPlans(dbConn); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := dbConn.Model(&plandomain.SubscriptionPlan{}).
		Where("code = ?", "monthly").
		Update("price_cents", 1299).Error; err != nil {
		t.Fatalf("failed to reprice: %v", err)
	}

	if err := EnsureDefaultPlans(dbConn); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}

	var monthly plandomain.SubscriptionPlan
	if err := dbConn.Where("code = ?", "monthly").First(&monthly).Error; err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if monthly.PriceCents != 1299 {
		t.Fatalf("expected operator override to survive, got %d", monthly.PriceCents)
	}
}

func TestEnsureSuperadminNoopWithoutCredentials(t *testing.T) {
	dbConn := newTestDB(t)

	if err := EnsureSuperadmin(dbConn, "", ""); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}

	var count int64
	if err := dbConn.Model(&userdomain.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}

func TestEnsureSuperadminIdempotent(t *testing.T) {
	dbConn := newTestDB(t)

	if err := EnsureSuperadmin(dbConn, "Admin@Matjarly.com", "s3cret-pass"); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := EnsureSuperadmin(dbConn, "admin@matjarly.com", "other-pass"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var admins []userdomain.User
	if err := dbConn.Where("role = ?", userdomain.RoleSuperadmin).Find(&admins).Error; err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected 1 superadmin, got %d", len(admins))
	}
	if admins[0].Email != "admin@matjarly.com" {
		t.Fatalf("expected normalized email, got %s", admins[0].Email)
	}
	if !password.Verify("s3cret-pass", admins[0].PasswordHash) {
		t.Fatal("expected original password to verify")
	}
	if !admins[0].EmailVerified {
		t.Fatal("expected seeded superadmin to be verified")
	}
}
