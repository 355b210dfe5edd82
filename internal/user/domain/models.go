package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleWholesaler Role = "wholesaler"
	RoleAffiliate  Role = "affiliate"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleClient, RoleWholesaler, RoleAffiliate:
		return true
	}
	return false
}

// StoreScoped reports whether the role exists inside a single store.
func (r Role) StoreScoped() bool {
	return r == RoleAdmin || r == RoleClient
}

type User struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	Role         Role           `gorm:"index" json:"role"`
	StoreID      *snowflake.ID  `gorm:"column:store_id;index" json:"storeId,omitempty"`
	Email        string         `gorm:"index" json:"email"`
	PasswordHash string         `gorm:"column:password_hash" json:"-"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Addresses    datatypes.JSON `json:"addresses,omitempty"`

	EmailVerified     bool       `gorm:"column:email_verified" json:"emailVerified"`
	EmailOTP          string     `gorm:"column:email_otp" json:"-"`
	EmailOTPExpiresAt *time.Time `gorm:"column:email_otp_expires_at" json:"-"`

	PendingEmail             string     `gorm:"column:pending_email" json:"-"`
	PendingEmailOTP          string     `gorm:"column:pending_email_otp" json:"-"`
	PendingEmailOTPExpiresAt *time.Time `gorm:"column:pending_email_otp_expires_at" json:"-"`

	ResetTokenHash      string     `gorm:"column:reset_token_hash" json:"-"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeEmail lowercases the address and, for gmail domains, strips
// dots from the local part. A plus suffix is kept as-is, so tagged
// addresses stay distinct.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		local = strings.ReplaceAll(local, ".", "")
	}
	return local + "@" + domain
}
