package domain

import (
	"errors"
	"testing"
)

func TestDraftGuard(t *testing.T) {
	if apply, err := DraftGuard(StatusDraft); !apply || err != nil {
		t.Errorf("DRAFT: apply=%v err=%v", apply, err)
	}
	// duplicate delivery: no-op, not an error
	if apply, err := DraftGuard(StatusPending); apply || err != nil {
		t.Errorf("PENDING: apply=%v err=%v", apply, err)
	}
	for _, s := range []string{StatusApproved, StatusRejected, StatusCancelled} {
		if _, err := DraftGuard(s); !errors.Is(err, ErrNotInDraft) {
			t.Errorf("%s: want ErrNotInDraft, got %v", s, err)
		}
	}
}

func TestDecisionGuard(t *testing.T) {
	g := DecisionGuard(StatusApproved)
	if apply, err := g(StatusPending); !apply || err != nil {
		t.Errorf("PENDING: apply=%v err=%v", apply, err)
	}
	// duplicate button press on the same decision: no-op success
	if apply, err := g(StatusApproved); apply || err != nil {
		t.Errorf("APPROVED: apply=%v err=%v", apply, err)
	}
	if _, err := g(StatusRejected); !errors.Is(err, ErrNotPending) {
		t.Errorf("REJECTED: want ErrNotPending, got %v", err)
	}
	if _, err := g(StatusDraft); !errors.Is(err, ErrNotPending) {
		t.Errorf("DRAFT: want ErrNotPending, got %v", err)
	}
}

func TestCancelGuard(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved} {
		if apply, err := CancelGuard(s); !apply || err != nil {
			t.Errorf("%s: apply=%v err=%v", s, apply, err)
		}
	}
	for _, s := range []string{StatusCancelled, StatusRejected} {
		if _, err := CancelGuard(s); !errors.Is(err, ErrAlreadyTerminal) {
			t.Errorf("%s: want ErrAlreadyTerminal, got %v", s, err)
		}
	}
	if _, err := CancelGuard(StatusDraft); !errors.Is(err, ErrCannotCancel) {
		t.Errorf("DRAFT: want ErrCannotCancel, got %v", err)
	}
}
