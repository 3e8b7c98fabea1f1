package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrPendingInvitationExists = errors.New("pending invitation already exists")
	ErrInvalidState            = errors.New("invitation is not in a valid state for this action")
	ErrInvalidToken            = errors.New("invalid invitation token")
	ErrInvitationExpired       = errors.New("invitation has expired")
	ErrInvalidRequest          = errors.New("invalid request")
)

// detailError attaches a user-facing description to a sentinel.
type detailError struct {
	sentinel error
	detail   string
}

func (e *detailError) Error() string { return e.sentinel.Error() + ": " + e.detail }
func (e *detailError) Unwrap() error { return e.sentinel }

func withDetail(sentinel error, format string, args ...any) error {
	return &detailError{sentinel: sentinel, detail: fmt.Sprintf(format, args...)}
}

// Detail returns the user-facing description attached to err, or "".
func Detail(err error) string {
	var de *detailError
	if errors.As(err, &de) {
		return de.detail
	}
	return ""
}
