// Package events defines the booking lifecycle events published to RabbitMQ
// after each committed transition. Consumers (ops notifications, analytics)
// bind on booking.*.
package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKBookingCreated   = "booking.created"
	RKBookingPending   = "booking.pending"
	RKBookingApproved  = "booking.approved"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
)

// BookingCreated carries enough for a human-readable notification line.
type BookingCreated struct {
	BookingID    int64  `json:"booking_id"`
	RestaurantID string `json:"restaurant_id"`
	TableID      string `json:"table_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PersonCount  int    `json:"person_count"`
}

// BookingTransition is the shared payload for pending/approved/rejected/
// cancelled keys.
type BookingTransition struct {
	BookingID    int64   `json:"booking_id"`
	RestaurantID string  `json:"restaurant_id"`
	Status       string  `json:"status"`
	ChangedBy    *string `json:"changed_by,omitempty"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
