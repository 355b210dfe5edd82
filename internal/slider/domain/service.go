package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*StoreSlider, error)
	Get(ctx context.Context, storeID snowflake.ID, id string) (*StoreSlider, error)
	List(ctx context.Context, storeID snowflake.ID, req ListRequest) ([]StoreSlider, pagination.Meta, error)
	ListActive(ctx context.Context, storeID snowflake.ID) ([]StoreSlider, error)
	Update(ctx context.Context, storeID snowflake.ID, req UpdateRequest) (*StoreSlider, error)
	IncrementView(ctx context.Context, storeID snowflake.ID, id string) error
	IncrementClick(ctx context.Context, storeID snowflake.ID, id string) error
	Delete(ctx context.Context, storeID snowflake.ID, id string) error
}

type CreateRequest struct {
	StoreID   snowflake.ID `json:"-"`
	Kind      Kind         `json:"kind"`
	TitleAr   string       `json:"titleAr"`
	TitleEn   string       `json:"titleEn"`
	ImageURL  string       `json:"imageUrl"`
	VideoURL  string       `json:"videoUrl"`
	LinkURL   string       `json:"linkUrl"`
	SortOrder int          `json:"sortOrder"`
	IsActive  *bool        `json:"isActive"`
}

type UpdateRequest struct {
	ID        string  `json:"-"`
	TitleAr   *string `json:"titleAr"`
	TitleEn   *string `json:"titleEn"`
	ImageURL  *string `json:"imageUrl"`
	VideoURL  *string `json:"videoUrl"`
	LinkURL   *string `json:"linkUrl"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

type ListRequest struct {
	pagination.Pagination
	Kind     string `form:"kind"`
	IsActive *bool  `form:"isActive"`
}

var (
	ErrNotFound    = errors.New("slider_not_found")
	ErrInvalidID   = errors.New("invalid_slider_id")
	ErrInvalidKind = errors.New("invalid_slider_kind")
	ErrMissingURL  = errors.New("slider_url_required")
)
