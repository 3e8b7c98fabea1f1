package state

import (
	"maps"

	"github.com/aussiebroadwan/aurora/internal/aurora/domain"
)

// Kind names one class of in-flight operation.
type Kind string

const (
	KindList   Kind = "list"
	KindStats  Kind = "stats"
	KindCreate Kind = "create"
	KindResend Kind = "resend"
	KindRevoke Kind = "revoke"
	KindAccept Kind = "accept"
)

// Kinds lists every operation kind in a stable order.
var Kinds = []Kind{KindList, KindStats, KindCreate, KindResend, KindRevoke, KindAccept}

// Snapshot is a point-in-time copy of the Store. Mutating it does not
// affect the Store.
type Snapshot struct {
	Items      []*domain.Invitation
	Selected   *domain.Invitation
	Pagination domain.Pagination
	Filter     domain.Filter
	Stats      *domain.Stats

	// Busy holds the number of outstanding calls per kind.
	Busy map[Kind]int

	// Err is the message of the most recent failure of any kind.
	Err string

	Version uint64
}

// IsBusy reports whether any call of kind is outstanding.
func (s Snapshot) IsBusy(kind Kind) bool { return s.Busy[kind] > 0 }

func (s Snapshot) clone() Snapshot {
	c := s
	c.Items = make([]*domain.Invitation, len(s.Items))
	for i, inv := range s.Items {
		c.Items[i] = inv.Clone()
	}
	c.Selected = s.Selected.Clone()
	c.Filter = s.Filter.Clone()
	if s.Stats != nil {
		st := *s.Stats
		c.Stats = &st
	}
	c.Busy = maps.Clone(s.Busy)
	return c
}
