package domain

import (
	"context"
	"errors"

	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
)

// Service provisions a new merchant: store, primary owner and admin
// account in one transaction, then kicks off email verification.
type Service interface {
	Signup(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	StoreNameAr string `json:"storeNameAr" binding:"required"`
	StoreNameEn string `json:"storeNameEn" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone"`
}

type Result struct {
	Store *storedomain.Store `json:"store"`
	User  *userdomain.User   `json:"user"`
}

var ErrInvalidRequest = errors.New("invalid_signup_request")
