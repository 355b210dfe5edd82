package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PaymentMethod, error)
	Get(ctx context.Context, storeID snowflake.ID, id string) (*PaymentMethod, error)
	List(ctx context.Context, storeID snowflake.ID, req ListRequest) ([]PaymentMethod, pagination.Meta, error)
	ListActive(ctx context.Context, storeID snowflake.ID) ([]PaymentMethod, error)
	Update(ctx context.Context, storeID snowflake.ID, req UpdateRequest) (*PaymentMethod, error)
	SetDefault(ctx context.Context, storeID snowflake.ID, id string) (*PaymentMethod, error)
	ToggleActive(ctx context.Context, storeID snowflake.ID, id string) (*PaymentMethod, error)
	Delete(ctx context.Context, storeID snowflake.ID, id string) error
}

type CreateRequest struct {
	StoreID       snowflake.ID `json:"-"`
	TitleAr       string       `json:"titleAr" binding:"required"`
	TitleEn       string       `json:"titleEn" binding:"required"`
	DescriptionAr string       `json:"descriptionAr"`
	DescriptionEn string       `json:"descriptionEn"`
	MethodType    MethodType   `json:"methodType" binding:"required"`
	QRCodeURL     string       `json:"qrCodeUrl"`
	LogoURL       string       `json:"logoUrl"`
	Images        []string     `json:"images"`
	IsActive      *bool        `json:"isActive"`
	IsDefault     bool         `json:"isDefault"`
}

type UpdateRequest struct {
	ID            string      `json:"-"`
	TitleAr       *string     `json:"titleAr"`
	TitleEn       *string     `json:"titleEn"`
	DescriptionAr *string     `json:"descriptionAr"`
	DescriptionEn *string     `json:"descriptionEn"`
	MethodType    *MethodType `json:"methodType"`
	QRCodeURL     *string     `json:"qrCodeUrl"`
	LogoURL       *string     `json:"logoUrl"`
	Images        *[]string   `json:"images"`
	IsActive      *bool       `json:"isActive"`
	IsDefault     *bool       `json:"isDefault"`
}

type ListRequest struct {
	pagination.Pagination
	IsActive   *bool  `form:"isActive"`
	MethodType string `form:"methodType"`
}

var (
	ErrNotFound                = errors.New("payment_method_not_found")
	ErrInvalidID               = errors.New("invalid_payment_method_id")
	ErrInvalidMethodType       = errors.New("invalid_payment_method_type")
	ErrInactiveCannotBeDefault = errors.New("inactive_cannot_be_default")
	ErrDefaultCannotBeInactive = errors.New("default_cannot_be_inactive")
	ErrDefaultCannotBeDeleted  = errors.New("default_cannot_be_deleted")
	ErrLahzaAlreadyExists      = errors.New("lahza_already_exists")
)
