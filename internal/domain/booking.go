package domain

import "time"

// Booking is the aggregate root of the confirmation protocol. Its table, and
// therefore its restaurant, never change after creation.
type Booking struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	RestaurantID    string  `gorm:"index"`
	TableID         string  `gorm:"index"`
	ClientID        *string `gorm:"index"` // nil until confirmed over WhatsApp
	ClientName      string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	PersonCount     int
	SpecialRequests string
	StatusCode      string `gorm:"index"`
	// Last inbound message correlated to this booking, kept for tracing
	// duplicate deliveries back to the provider.
	WhatsappMessageID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BookingHistory is an append-only ledger entry: one row per transition,
// written in the same transaction as the status change it records.
type BookingHistory struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	BookingID  int64 `gorm:"index"`
	StatusCode string
	ChangedAt  time.Time
	ChangedBy  *string // nil means the system or the client via webhook
	Comment    *string
}
