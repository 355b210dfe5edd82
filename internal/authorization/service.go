package authorization

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	ObjectStore          = "store"
	ObjectUser           = "user"
	ObjectOwner          = "owner"
	ObjectProduct        = "product"
	ObjectPaymentMethod  = "payment_method"
	ObjectDeliveryMethod = "delivery_method"
	ObjectSlider         = "slider"
	ObjectSettings       = "settings"
	ObjectOrder          = "order"
	ObjectReport         = "report"
)

const (
	ActionManage = "manage"
	ActionView   = "view"
)

// Service is the fine-grained gate behind the coarse role middleware.
// Owner capability arrays are mirrored into casbin groupings per
// store domain.
type Service interface {
	// Authorize fails with ErrForbidden unless the user holds an
	// active owner row in the store whose capabilities cover the
	// object/action pair. Superadmins bypass.
	Authorize(ctx context.Context, userID snowflake.ID, role string, storeID snowflake.ID, object, action string) error

	// AuthorizePrimary additionally requires the caller to be the
	// store's primary owner (store deletion, owner management).
	AuthorizePrimary(ctx context.Context, userID snowflake.ID, role string, storeID snowflake.ID) error
}

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidActor = errors.New("invalid_actor")
	ErrInvalidStore = errors.New("invalid_store")
)
