package domain

import (
	"context"
	"errors"
	"time"

	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Store, error)
	Get(ctx context.Context, id string) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	List(ctx context.Context, req ListRequest) ([]Store, pagination.Meta, error)
	Update(ctx context.Context, req UpdateRequest) (*Store, error)
	SetStatus(ctx context.Context, id string, status StoreStatus, reason StatusReason) (*Store, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	NameAr        string         `json:"nameAr" binding:"required"`
	NameEn        string         `json:"nameEn" binding:"required"`
	DescriptionAr string         `json:"descriptionAr"`
	DescriptionEn string         `json:"descriptionEn"`
	Slug          string         `json:"slug"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Address       string         `json:"address"`
	Settings      map[string]any `json:"settings"`
	TrialDays     int            `json:"-"`
}

type UpdateRequest struct {
	ID            string         `json:"-"`
	NameAr        *string        `json:"nameAr"`
	NameEn        *string        `json:"nameEn"`
	DescriptionAr *string        `json:"descriptionAr"`
	DescriptionEn *string        `json:"descriptionEn"`
	Phone         *string        `json:"phone"`
	Email         *string        `json:"email"`
	Address       *string        `json:"address"`
	LogoURL       *string        `json:"logoUrl"`
	Settings      map[string]any `json:"settings"`
}

type ListRequest struct {
	pagination.Pagination
	Status string `form:"status"`
	Search string `form:"search"`
}

var (
	ErrNotFound      = errors.New("store_not_found")
	ErrInvalidID     = errors.New("invalid_store_id")
	ErrInvalidName   = errors.New("invalid_store_name")
	ErrInvalidStatus = errors.New("invalid_store_status")
	ErrSlugTaken     = errors.New("store_slug_taken")
)

// SubscriptionWindow reports whether the store is inside a paid window at t.
func (s *Store) SubscriptionActiveAt(t time.Time) bool {
	if s.SubscriptionStart == nil || s.SubscriptionEnd == nil {
		return false
	}
	return !t.Before(*s.SubscriptionStart) && t.Before(*s.SubscriptionEnd)
}

// TrialActiveAt reports whether the store trial still covers t.
func (s *Store) TrialActiveAt(t time.Time) bool {
	return s.TrialEndsAt != nil && t.Before(*s.TrialEndsAt)
}
