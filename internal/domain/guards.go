package domain

// TransitionGuard inspects the booking's current status under the row lock
// and decides whether to apply the transition. (false, nil) means an
// idempotent no-op: the caller gets the current state back as a success.
type TransitionGuard func(current string) (bool, error)

// DraftGuard admits the client confirmation. A booking already PENDING is a
// duplicate webhook delivery, not an error; providers retry with fresh
// message ids, so the status re-check is the only reliable signal.
func DraftGuard(current string) (bool, error) {
	switch current {
	case StatusDraft:
		return true, nil
	case StatusPending:
		return false, nil
	default:
		return false, ErrNotInDraft
	}
}

// DecisionGuard admits a manager decision to target (APPROVED or REJECTED).
// A repeated press of the same button is a no-op success.
func DecisionGuard(target string) TransitionGuard {
	return func(current string) (bool, error) {
		if current == target {
			return false, nil
		}
		if current == StatusPending {
			return true, nil
		}
		return false, ErrNotPending
	}
}

// CancelGuard admits cancellation from PENDING or APPROVED only.
func CancelGuard(current string) (bool, error) {
	switch current {
	case StatusPending, StatusApproved:
		return true, nil
	case StatusCancelled, StatusRejected:
		return false, ErrAlreadyTerminal
	default:
		return false, ErrCannotCancel
	}
}
