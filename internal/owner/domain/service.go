package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Owner, error)
	Get(ctx context.Context, storeID snowflake.ID, id string) (*Owner, error)
	List(ctx context.Context, storeID snowflake.ID, req ListRequest) ([]Owner, pagination.Meta, error)
	Update(ctx context.Context, storeID snowflake.ID, req UpdateRequest) (*Owner, error)
	TransferPrimary(ctx context.Context, storeID snowflake.ID, newOwnerID string) error
	Remove(ctx context.Context, storeID snowflake.ID, id string) error

	// ActiveForUser is the owner row the resolver and the authorization
	// gate read; nil when the user owns nothing in the store.
	ActiveForUser(ctx context.Context, storeID, userID snowflake.ID) (*Owner, error)
}

type AddRequest struct {
	StoreID     snowflake.ID `json:"-"`
	UserID      string       `json:"userId" binding:"required"`
	Permissions []string     `json:"permissions"`
	IsPrimary   bool         `json:"isPrimary"`
}

type UpdateRequest struct {
	ID          string       `json:"-"`
	Permissions *[]string    `json:"permissions"`
	Status      *OwnerStatus `json:"status"`
}

type ListRequest struct {
	pagination.Pagination
	Status string `form:"status"`
}

var (
	ErrNotFound              = errors.New("owner_not_found")
	ErrInvalidID             = errors.New("invalid_owner_id")
	ErrDuplicateOwner        = errors.New("owner_already_exists")
	ErrPrimaryOwnerProtected = errors.New("primary_owner_protected")
	ErrPrimaryOwnerExists    = errors.New("primary_owner_exists")
	ErrUnknownCapability     = errors.New("unknown_capability")
)
