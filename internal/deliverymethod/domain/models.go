package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DeliveryMethod is a store-scoped shipping option. One method per
// store may be the default, and the default must stay active.
type DeliveryMethod struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID        snowflake.ID `gorm:"column:store_id;index" json:"storeId"`
	TitleAr        string       `gorm:"column:title_ar" json:"titleAr"`
	TitleEn        string       `gorm:"column:title_en" json:"titleEn"`
	DescriptionAr  string       `gorm:"column:description_ar" json:"descriptionAr"`
	DescriptionEn  string       `gorm:"column:description_en" json:"descriptionEn"`
	Price          int64        `json:"price"`
	WhatsappNumber string       `gorm:"column:whatsapp_number" json:"whatsappNumber"`
	EstimatedDays  int          `gorm:"column:estimated_days" json:"estimatedDays"`
	IsActive       bool         `gorm:"column:is_active;default:true" json:"isActive"`
	IsDefault      bool         `gorm:"column:is_default" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DeliveryMethod) TableName() string {
	return "delivery_methods"
}
