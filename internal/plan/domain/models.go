package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindMonthly  Kind = "monthly"
	KindYearly   Kind = "yearly"
	KindLifetime Kind = "lifetime"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMonthly, KindYearly, KindLifetime:
		return true
	}
	return false
}

// SubscriptionPlan is platform-global; stores subscribe to one.
type SubscriptionPlan struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"uniqueIndex" json:"code"`
	Kind         Kind           `json:"kind"`
	NameAr       string         `gorm:"column:name_ar" json:"nameAr"`
	NameEn       string         `gorm:"column:name_en" json:"nameEn"`
	DurationDays int            `gorm:"column:duration_days" json:"durationDays"`
	PriceCents   int64          `gorm:"column:price_cents" json:"priceCents"`
	Currency     string         `gorm:"default:USD" json:"currency"`
	Features     datatypes.JSON `json:"features,omitempty"`
	IsActive     bool           `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
