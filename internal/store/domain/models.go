package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type StoreStatus string

const (
	StoreStatusActive    StoreStatus = "active"
	StoreStatusInactive  StoreStatus = "inactive"
	StoreStatusSuspended StoreStatus = "suspended"
)

type StatusReason string

const (
	StatusReasonSubscriptionExpired StatusReason = "subscription_expired"
	StatusReasonTrialExpired        StatusReason = "trial_expired"
	StatusReasonManual              StatusReason = "manual"
)

// Store is a merchant tenant. Every scoped resource hangs off its ID.
type Store struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	NameAr        string            `gorm:"column:name_ar" json:"nameAr"`
	NameEn        string            `gorm:"column:name_en" json:"nameEn"`
	DescriptionAr string            `gorm:"column:description_ar" json:"descriptionAr"`
	DescriptionEn string            `gorm:"column:description_en" json:"descriptionEn"`
	Slug          string            `gorm:"uniqueIndex" json:"slug"`
	Status        StoreStatus       `gorm:"default:active" json:"status"`
	StatusReason  StatusReason      `gorm:"column:status_reason" json:"statusReason,omitempty"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	LogoURL       string            `gorm:"column:logo_url" json:"logoUrl"`
	Settings      datatypes.JSONMap `json:"settings"`

	PlanID            *snowflake.ID `gorm:"column:plan_id" json:"planId,omitempty"`
	SubscriptionStart *time.Time    `gorm:"column:subscription_start" json:"subscriptionStart,omitempty"`
	SubscriptionEnd   *time.Time    `gorm:"column:subscription_end" json:"subscriptionEnd,omitempty"`
	TrialEndsAt       *time.Time    `gorm:"column:trial_ends_at" json:"trialEndsAt,omitempty"`
	AutoRenew         bool          `gorm:"column:auto_renew;default:true" json:"autoRenew"`
	ExpiryWarnedAt    *time.Time    `gorm:"column:expiry_warned_at" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Store) TableName() string {
	return "stores"
}
