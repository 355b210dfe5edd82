package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Kind string

const (
	KindSlider Kind = "slider"
	KindVideo  Kind = "video"
)

func (k Kind) Valid() bool {
	return k == KindSlider || k == KindVideo
}

// StoreSlider is a storefront banner or promo video with engagement
// counters.
type StoreSlider struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID    snowflake.ID `gorm:"column:store_id;index" json:"storeId"`
	Kind       Kind         `gorm:"default:slider" json:"kind"`
	TitleAr    string       `gorm:"column:title_ar" json:"titleAr"`
	TitleEn    string       `gorm:"column:title_en" json:"titleEn"`
	ImageURL   string       `gorm:"column:image_url" json:"imageUrl"`
	VideoURL   string       `gorm:"column:video_url" json:"videoUrl"`
	LinkURL    string       `gorm:"column:link_url" json:"linkUrl"`
	SortOrder  int          `gorm:"column:sort_order" json:"sortOrder"`
	IsActive   bool         `gorm:"column:is_active;default:true" json:"isActive"`
	ViewCount  int64        `gorm:"column:view_count" json:"viewCount"`
	ClickCount int64        `gorm:"column:click_count" json:"clickCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StoreSlider) TableName() string {
	return "store_sliders"
}
