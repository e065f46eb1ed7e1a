package domain

import "errors"

// Stable machine-readable failure codes. API handlers map these to HTTP
// statuses; the webhook router logs them and still acknowledges the
// provider with a 200.
var (
	ErrNotFound             = errors.New("not_found")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrNotInDraft           = errors.New("not_in_draft")
	ErrNotPending           = errors.New("not_pending")
	ErrAlreadyTerminal      = errors.New("already_terminal")
	ErrCannotCancel         = errors.New("cannot_cancel")
	ErrManagerNotAuthorized = errors.New("manager_not_authorized")
	ErrStatusInUse          = errors.New("status_in_use")
	ErrCapacityExceeded     = errors.New("capacity_exceeded")
	ErrProviderUnsupported  = errors.New("provider_unsupported")
)
