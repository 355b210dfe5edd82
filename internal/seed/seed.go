package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/auth/password"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultPlans seeds the built-in subscription plans so a fresh
// install can activate stores without any manual setup. Existing rows
// are left untouched.
func EnsureDefaultPlans(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	defaults := []plandomain.SubscriptionPlan{
		{
			Code:         "monthly",
			Kind:         plandomain.KindMonthly,
			NameAr:       "شهري",
			NameEn:       "Monthly",
			DurationDays: 30,
			PriceCents:   999,
			Currency:     "USD",
			IsActive:     true,
		},
		{
			Code:         "yearly",
			Kind:         plandomain.KindYearly,
			NameAr:       "سنوي",
			NameEn:       "Yearly",
			DurationDays: 365,
			PriceCents:   9999,
			Currency:     "USD",
			IsActive:     true,
		},
		{
			Code:       "lifetime",
			Kind:       plandomain.KindLifetime,
			NameAr:     "مدى الحياة",
			NameEn:     "Lifetime",
			PriceCents: 29999,
			Currency:   "USD",
			IsActive:   true,
		},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, plan := range defaults {
			var existing plandomain.SubscriptionPlan
			err := tx.Where("code = ?", plan.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			plan.ID = node.Generate()
			plan.Features = datatypes.JSON([]byte(`[]`))
			now := time.Now().UTC()
			plan.CreatedAt = now
			plan.UpdatedAt = now
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureSuperadmin seeds a platform superadmin from the configured
// credentials. A no-op when the email is already taken.
func EnsureSuperadmin(db *gorm.DB, email, plaintext string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if email == "" || plaintext == "" {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	normalized := userdomain.NormalizeEmail(email)
	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userdomain.User
		err := tx.Where("email = ? AND role = ?", normalized, userdomain.RoleSuperadmin).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(plaintext)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user := userdomain.User{
			ID:            node.Generate(),
			Role:          userdomain.RoleSuperadmin,
			Email:         normalized,
			PasswordHash:  hashed,
			Name:          "Matjarly Admin",
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(&user).Error
	})
}
