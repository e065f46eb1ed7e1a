package domain

import "time"

type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// CanDecide reports whether the role may approve or reject bookings.
func (r Role) CanDecide() bool {
	return r == RoleManager || r == RoleAdmin
}

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	Name         string
	Role         Role `gorm:"index"`
	Active       bool `gorm:"index"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestaurantAccess is a membership row granting a user rights on a
// restaurant. Decisions require both the role and an access row.
type RestaurantAccess struct {
	UserID       string `gorm:"primaryKey"`
	RestaurantID string `gorm:"primaryKey;index"`
	CreatedAt    time.Time
}
