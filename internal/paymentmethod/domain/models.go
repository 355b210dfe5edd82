package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type MethodType string

const (
	MethodCash         MethodType = "cash"
	MethodCard         MethodType = "card"
	MethodLahza        MethodType = "lahza"
	MethodQR           MethodType = "qr"
	MethodBankTransfer MethodType = "bank_transfer"
)

func (m MethodType) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodLahza, MethodQR, MethodBankTransfer:
		return true
	}
	return false
}

// PaymentMethod is a store-scoped payment option. At most one default
// per store, and at most one lahza gateway per store.
type PaymentMethod struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	StoreID       snowflake.ID   `gorm:"column:store_id;index" json:"storeId"`
	TitleAr       string         `gorm:"column:title_ar" json:"titleAr"`
	TitleEn       string         `gorm:"column:title_en" json:"titleEn"`
	DescriptionAr string         `gorm:"column:description_ar" json:"descriptionAr"`
	DescriptionEn string         `gorm:"column:description_en" json:"descriptionEn"`
	MethodType    MethodType     `gorm:"column:method_type" json:"methodType"`
	QRCodeURL     string         `gorm:"column:qr_code_url" json:"qrCodeUrl"`
	LogoURL       string         `gorm:"column:logo_url" json:"logoUrl"`
	Images        datatypes.JSON `json:"images,omitempty"`
	IsActive      bool           `gorm:"column:is_active;default:true" json:"isActive"`
	IsDefault     bool           `gorm:"column:is_default" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
