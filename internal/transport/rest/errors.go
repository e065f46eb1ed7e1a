package rest

import (
	"errors"
	"net/http"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/service"
)

// statusFor maps domain failures to HTTP statuses. The error string is the
// stable machine code, so it goes to the body untouched.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrManagerNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotInDraft),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrAlreadyTerminal),
		errors.Is(err, domain.ErrCannotCancel),
		errors.Is(err, domain.ErrStatusInUse),
		errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
