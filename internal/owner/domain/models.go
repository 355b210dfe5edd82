package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type OwnerStatus string

const (
	OwnerStatusActive   OwnerStatus = "active"
	OwnerStatusInactive OwnerStatus = "inactive"
)

// Capabilities an owner can hold. Stored as a JSON string array on the row
// and mirrored into casbin groupings by the authorization service.
const (
	CapManageUsers           = "manage_users"
	CapManageProducts        = "manage_products"
	CapManagePaymentMethods  = "manage_payment_methods"
	CapManageDeliveryMethods = "manage_delivery_methods"
	CapManageSliders         = "manage_sliders"
	CapManageSettings        = "manage_settings"
	CapManageOrders          = "manage_orders"
	CapViewReports           = "view_reports"
)

func AllCapabilities() []string {
	return []string{
		CapManageUsers,
		CapManageProducts,
		CapManagePaymentMethods,
		CapManageDeliveryMethods,
		CapManageSliders,
		CapManageSettings,
		CapManageOrders,
		CapViewReports,
	}
}

func IsKnownCapability(capability string) bool {
	for _, known := range AllCapabilities() {
		if capability == known {
			return true
		}
	}
	return false
}

// Owner links a user to a store with a capability set. At most one
// primary owner per store.
type Owner struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	StoreID        snowflake.ID   `gorm:"column:store_id;uniqueIndex:idx_owners_store_user" json:"storeId"`
	UserID         snowflake.ID   `gorm:"column:user_id;uniqueIndex:idx_owners_store_user" json:"userId"`
	Permissions    datatypes.JSON `json:"permissions"`
	IsPrimaryOwner bool           `gorm:"column:is_primary_owner" json:"isPrimaryOwner"`
	Status         OwnerStatus    `gorm:"default:active" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Owner) TableName() string {
	return "owners"
}

// Capabilities decodes the stored permission array. A malformed blob
// reads as no capabilities.
func (o *Owner) Capabilities() []string {
	if o == nil || len(o.Permissions) == 0 {
		return nil
	}
	var capabilities []string
	if err := json.Unmarshal(o.Permissions, &capabilities); err != nil {
		return nil
	}
	return capabilities
}

func (o *Owner) HasCapability(capability string) bool {
	for _, held := range o.Capabilities() {
		if held == capability {
			return true
		}
	}
	return false
}
