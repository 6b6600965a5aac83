package domain

import (
	"time"

	"gorm.io/gorm"
)

// Roles. Customer is the default; the manager roles gate admin surfaces.
const (
	RoleCustomer         = "Customer"
	RoleInventoryManager = "InventoryManager"
	RoleOrderManager     = "OrderManager"
	RoleProductManager   = "ProductManager"
	RoleSuperAdmin       = "SuperAdmin"
)

// Membership tiers used to scope promotion applicability.
const (
	TierNormal  = "Normal"
	TierPremium = "Premium"
	TierGold    = "Gold"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleInventoryManager, RoleOrderManager, RoleProductManager, RoleSuperAdmin:
		return true
	}
	return false
}

// ValidTier reports whether tier is one of the known membership tiers.
func ValidTier(tier string) bool {
	switch tier {
	case TierNormal, TierPremium, TierGold:
		return true
	}
	return false
}

// User represents both customers and admin staff; Role distinguishes them.
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email          string         `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password       string         `json:"-" gorm:"size:255;not null"`
	Role           string         `json:"role" gorm:"size:32;not null;default:'Customer'"`
	MembershipTier string         `json:"membership_tier" gorm:"size:16;not null;default:'Normal'"`
	Address        string         `json:"address" gorm:"size:255"`
	PhoneNumber    string         `json:"phone_number" gorm:"size:20"`
	Wishlist       []uint         `json:"wishlist" gorm:"serializer:json"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user holds any admin role.
func (u *User) IsStaff() bool {
	return u.Role != RoleCustomer && ValidRole(u.Role)
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
}
