package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Get(ctx context.Context, id snowflake.ID) (*User, error)
	List(ctx context.Context, req ListRequest) ([]User, pagination.Meta, error)
	Update(ctx context.Context, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, storeID *snowflake.ID, id string) error

	// FindForLogin resolves a normalized email to the account used for
	// authentication. A store ID narrows the lookup to store-scoped
	// accounts; without one, platform-level accounts win.
	FindForLogin(ctx context.Context, email string, storeID *snowflake.ID) (*User, error)

	FindByResetTokenHash(ctx context.Context, hash string) (*User, error)
	Save(ctx context.Context, user *User) error
	EmailAvailable(ctx context.Context, role Role, storeID *snowflake.ID, email string, excludeID snowflake.ID) error
}

type CreateRequest struct {
	Role      Role           `json:"role" binding:"required"`
	StoreID   *snowflake.ID  `json:"-"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=8"`
	Name      string         `json:"name" binding:"required"`
	Phone     string         `json:"phone"`
	Addresses []AddressEntry `json:"addresses"`
}

type AddressEntry struct {
	Label   string `json:"label"`
	City    string `json:"city"`
	Details string `json:"details"`
}

type UpdateRequest struct {
	ID        string          `json:"-"`
	StoreID   *snowflake.ID   `json:"-"`
	Name      *string         `json:"name"`
	Phone     *string         `json:"phone"`
	Addresses *[]AddressEntry `json:"addresses"`
}

type ListRequest struct {
	pagination.Pagination
	StoreID *snowflake.ID `form:"-"`
	Role    string        `form:"role"`
	Search  string        `form:"search"`
}

var (
	ErrNotFound           = errors.New("user_not_found")
	ErrInvalidID          = errors.New("invalid_user_id")
	ErrInvalidRole        = errors.New("invalid_user_role")
	ErrStoreRequired      = errors.New("user_store_required")
	ErrDuplicateEmail     = errors.New("duplicate_email_in_store")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailNotVerified   = errors.New("email_not_verified")
)
