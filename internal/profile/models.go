package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser     Role = "USER"
	RoleMerchant Role = "MERCHANT"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleMerchant):
		return true
	default:
		return false
	}
}

// Profile holds the user-editable account fields. Identity and credentials
// live in the external auth service; this table only mirrors display data.
type Profile struct {
	UserID      uuid.UUID `json:"user_id" gorm:"primaryKey;type:uuid"`
	DisplayName string    `json:"display_name" gorm:"not null;size:255"`
	Phone       string    `json:"phone" gorm:"size:32"`
	Language    string    `json:"language" gorm:"size:8;default:'en'"`
	Role        Role      `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type ProfileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	Language    string    `json:"language"`
	Role        Role      `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Language    *string `json:"language" binding:"omitempty,oneof=en lo th"`
}
