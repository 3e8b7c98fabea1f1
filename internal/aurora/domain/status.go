package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of an invitation.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusExpired  Status = "EXPIRED"
	StatusRevoked  Status = "REVOKED"
)

var (
	ErrInvalidStatus     = errors.New("domain: invalid invitation status")
	ErrInvalidTransition = errors.New("domain: invalid status transition")
	ErrExpired           = errors.New("domain: invitation has expired")
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{StatusPending, StatusAccepted, StatusExpired, StatusRevoked}

// ParseStatus parses a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

// CanTransition reports whether s may move to the target status.
// Only PENDING has outgoing edges.
func (s Status) CanTransition(to Status) bool {
	if s != StatusPending {
		return false
	}
	return to == StatusAccepted || to == StatusExpired || to == StatusRevoked
}

// CanResend reports whether an invitation in status s may be resent.
func (s Status) CanResend() bool { return s == StatusPending }

// CanRevoke reports whether an invitation in status s may be revoked.
func (s Status) CanRevoke() bool { return s == StatusPending }
