package domain

import "time"

// Client is identified by normalized phone and created lazily on the first
// confirmation or pre-order coming through the messaging channel. Counters
// are bumped in the same transaction as the booking mutation.
type Client struct {
	ID             string `gorm:"primaryKey"`
	Phone          string `gorm:"uniqueIndex"` // normalized, digits only
	FirstName      string
	TotalBookings  int
	TotalPreOrders int
	FirstBookingAt *time.Time
	LastBookingAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
