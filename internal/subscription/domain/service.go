package domain

import (
	"context"
	"errors"

	storedomain "github.com/matjarly/matjarly/internal/store/domain"
)

type Service interface {
	Activate(ctx context.Context, req ActivateRequest) (*storedomain.Store, error)
	ExtendTrial(ctx context.Context, storeID string, days int) (*storedomain.Store, error)
	Cancel(ctx context.Context, storeID string, immediate bool) (*storedomain.Store, error)

	// RunCheck walks every active store, deactivates the expired ones
	// and emails expiry warnings. Per-store failures are collected, not
	// fatal.
	RunCheck(ctx context.Context) (CheckReport, error)
}

type ActivateRequest struct {
	StoreID      string `json:"-"`
	PlanCode     string `json:"planCode" binding:"required"`
	DurationDays int    `json:"durationDays"`
	AutoRenew    *bool  `json:"autoRenew"`
}

type CheckReport struct {
	Checked     int `json:"checked"`
	Deactivated int `json:"deactivated"`
	Warned      int `json:"warned"`
	Errors      int `json:"errors"`
}

var ErrInvalidDays = errors.New("invalid_trial_days")
