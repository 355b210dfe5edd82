package domain

import (
	"context"
	"errors"

	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SubscriptionPlan, error)
	Get(ctx context.Context, id string) (*SubscriptionPlan, error)
	GetByCode(ctx context.Context, code string) (*SubscriptionPlan, error)
	List(ctx context.Context, req ListRequest) ([]SubscriptionPlan, pagination.Meta, error)
	ListActive(ctx context.Context) ([]SubscriptionPlan, error)
	Update(ctx context.Context, req UpdateRequest) (*SubscriptionPlan, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Code         string   `json:"code" binding:"required"`
	Kind         Kind     `json:"kind" binding:"required"`
	NameAr       string   `json:"nameAr" binding:"required"`
	NameEn       string   `json:"nameEn" binding:"required"`
	DurationDays int      `json:"durationDays"`
	PriceCents   int64    `json:"priceCents"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

type UpdateRequest struct {
	ID           string    `json:"-"`
	NameAr       *string   `json:"nameAr"`
	NameEn       *string   `json:"nameEn"`
	DurationDays *int      `json:"durationDays"`
	PriceCents   *int64    `json:"priceCents"`
	Currency     *string   `json:"currency"`
	Features     *[]string `json:"features"`
	IsActive     *bool     `json:"isActive"`
}

type ListRequest struct {
	pagination.Pagination
	Kind     string `form:"kind"`
	IsActive *bool  `form:"isActive"`
}

var (
	ErrNotFound        = errors.New("plan_not_found")
	ErrInvalidID       = errors.New("invalid_plan_id")
	ErrInvalidKind     = errors.New("invalid_plan_kind")
	ErrInvalidDuration = errors.New("invalid_plan_duration")
	ErrCodeTaken       = errors.New("plan_code_taken")
	ErrPlanInactive    = errors.New("plan_inactive")
)
