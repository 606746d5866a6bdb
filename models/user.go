package models

import "time"

// UserRole defines authorization levels in the system
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

// UserTier is the loyalty segment, distinct from role
type UserTier string

const (
	TierStandard UserTier = "STANDARD"
	TierSilver   UserTier = "SILVER"
	TierGold     UserTier = "GOLD"
	TierPlatinum UserTier = "PLATINUM"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	Role         UserRole  `json:"role" gorm:"not null;default:'CUSTOMER'"`
	Tier         UserTier  `json:"tier" gorm:"not null;default:'STANDARD'"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	Addresses    []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Address belongs to exactly one user. At most one address per user
// carries IsDefault = true; the handlers maintain that invariant.
type Address struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	Type          string    `json:"type"` // HOME, WORK, OTHER
	Name          string    `json:"name" gorm:"not null"`
	Street        string    `json:"street" gorm:"not null"`
	Unit          string    `json:"unit"`
	Building      string    `json:"building"`
	PostalCode    string    `json:"postal_code"`
	District      string    `json:"district"`
	IsDefault     bool      `json:"is_default" gorm:"default:false"`
	DeliveryNotes string    `json:"delivery_notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
