package domain

import (
	"strings"
	"time"
)

// Booking lifecycle codes. The catalog lives in the booking_statuses table
// for admin/display purposes, but the transition rules are fixed here:
// they are part of the protocol, not configuration.
const (
	StatusDraft     = "DRAFT"
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// BookingStatus is the catalog row behind a lifecycle code.
type BookingStatus struct {
	ID           string `gorm:"primaryKey"`
	Code         string `gorm:"uniqueIndex"`
	DisplayOrder int
	Active       bool `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var allowedTransitions = map[string][]string{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
	// CANCELLED and REJECTED are terminal
}

// CanTransition reports whether the status pair is allowed. Codes are
// case-sensitive after upper-casing on input.
func CanTransition(current, target string) bool {
	current = strings.ToUpper(current)
	target = strings.ToUpper(target)
	for _, t := range allowedTransitions[current] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leads out of the code.
func IsTerminal(code string) bool {
	return len(allowedTransitions[strings.ToUpper(code)]) == 0
}

// KnownStatus reports whether the code participates in the lifecycle at all.
func KnownStatus(code string) bool {
	code = strings.ToUpper(code)
	if _, ok := allowedTransitions[code]; ok {
		return true
	}
	return code == StatusRejected || code == StatusCancelled
}
