package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*DeliveryMethod, error)
	Get(ctx context.Context, storeID snowflake.ID, id string) (*DeliveryMethod, error)
	List(ctx context.Context, storeID snowflake.ID, req ListRequest) ([]DeliveryMethod, pagination.Meta, error)
	ListActive(ctx context.Context, storeID snowflake.ID) ([]DeliveryMethod, error)
	Update(ctx context.Context, storeID snowflake.ID, req UpdateRequest) (*DeliveryMethod, error)
	SetDefault(ctx context.Context, storeID snowflake.ID, id string) (*DeliveryMethod, error)
	ToggleActive(ctx context.Context, storeID snowflake.ID, id string) (*DeliveryMethod, error)
	Delete(ctx context.Context, storeID snowflake.ID, id string) error
}

type CreateRequest struct {
	StoreID        snowflake.ID `json:"-"`
	TitleAr        string       `json:"titleAr" binding:"required"`
	TitleEn        string       `json:"titleEn" binding:"required"`
	DescriptionAr  string       `json:"descriptionAr"`
	DescriptionEn  string       `json:"descriptionEn"`
	Price          int64        `json:"price"`
	WhatsappNumber string       `json:"whatsappNumber"`
	EstimatedDays  int          `json:"estimatedDays"`
	IsActive       *bool        `json:"isActive"`
	IsDefault      bool         `json:"isDefault"`
}

type UpdateRequest struct {
	ID             string  `json:"-"`
	TitleAr        *string `json:"titleAr"`
	TitleEn        *string `json:"titleEn"`
	DescriptionAr  *string `json:"descriptionAr"`
	DescriptionEn  *string `json:"descriptionEn"`
	Price          *int64  `json:"price"`
	WhatsappNumber *string `json:"whatsappNumber"`
	EstimatedDays  *int    `json:"estimatedDays"`
	IsActive       *bool   `json:"isActive"`
	IsDefault      *bool   `json:"isDefault"`
}

type ListRequest struct {
	pagination.Pagination
	IsActive *bool `form:"isActive"`
}

var (
	ErrNotFound                = errors.New("delivery_method_not_found")
	ErrInvalidID               = errors.New("invalid_delivery_method_id")
	ErrInactiveCannotBeDefault = errors.New("inactive_cannot_be_default")
	ErrDefaultCannotBeInactive = errors.New("default_cannot_be_inactive")
	ErrDefaultCannotBeDeleted  = errors.New("default_cannot_be_deleted")
)
