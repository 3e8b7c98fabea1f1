// Package idx produces the sortable identifiers used for invitations,
// tenants and memberships.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID. Only use it as a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator mints IDs from a monotonic source. Two IDs minted in the same
// millisecond still sort in creation order, which keeps created_at ties
// stable in listings.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewAt mints an ID stamped with t.
func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy).String())
}

var (
	globalOnce sync.Once
	global     *Generator
)

// New returns an ID for the current time from the shared generator.
func New() ID {
	return NewAt(time.Now())
}

// NewAt returns an ID for t from the shared generator.
func NewAt(t time.Time) ID {
	globalOnce.Do(func() { global = NewGenerator() })
	return global.NewAt(t)
}

// Parse validates s as a ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded timestamp, or the zero time for invalid IDs.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}

// Compare returns -1, 0 or +1 following lexical order.
func Compare(a, b ID) int {
	return strings.Compare(a.String(), b.String())
}
