package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidFilter reports an unknown filter key or a malformed value.
var ErrInvalidFilter = errors.New("domain: invalid filter")

// FilterKey names a single filterable field. The values double as the
// query parameter names on the wire.
type FilterKey string

const (
	FilterStatus        FilterKey = "status"
	FilterEmail         FilterKey = "email"
	FilterInvitedBy     FilterKey = "invited_by"
	FilterCreatedAfter  FilterKey = "created_after"
	FilterCreatedBefore FilterKey = "created_before"
)

// Filter holds the optional list predicates. Zero-valued fields are inactive.
type Filter struct {
	Status        Status
	Email         string // case-insensitive substring
	InvitedBy     string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// ActiveCount returns how many predicates are set.
func (f Filter) ActiveCount() int {
	n := 0
	if f.Status != "" {
		n++
	}
	if f.Email != "" {
		n++
	}
	if f.InvitedBy != "" {
		n++
	}
	if f.CreatedAfter != nil {
		n++
	}
	if f.CreatedBefore != nil {
		n++
	}
	return n
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool { return f.ActiveCount() == 0 }

// Equal compares two filters field by field.
func (f Filter) Equal(o Filter) bool {
	return f.Status == o.Status &&
		f.Email == o.Email &&
		f.InvitedBy == o.InvitedBy &&
		timePtrEqual(f.CreatedAfter, o.CreatedAfter) &&
		timePtrEqual(f.CreatedBefore, o.CreatedBefore)
}

// Clone returns a copy that shares no pointers with f.
func (f Filter) Clone() Filter {
	c := f
	if f.CreatedAfter != nil {
		t := *f.CreatedAfter
		c.CreatedAfter = &t
	}
	if f.CreatedBefore != nil {
		t := *f.CreatedBefore
		c.CreatedBefore = &t
	}
	return c
}

// Query renders the active predicates as query parameters. Inactive fields
// are omitted entirely.
func (f Filter) Query() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set(string(FilterStatus), f.Status.String())
	}
	if f.Email != "" {
		v.Set(string(FilterEmail), f.Email)
	}
	if f.InvitedBy != "" {
		v.Set(string(FilterInvitedBy), f.InvitedBy)
	}
	if f.CreatedAfter != nil {
		v.Set(string(FilterCreatedAfter), f.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if f.CreatedBefore != nil {
		v.Set(string(FilterCreatedBefore), f.CreatedBefore.UTC().Format(time.RFC3339))
	}
	return v
}

// With returns a copy of f with one field replaced. An empty value clears
// the field. Dates are RFC 3339.
func (f Filter) With(key FilterKey, value string) (Filter, error) {
	out := f.Clone()
	value = strings.TrimSpace(value)

	switch key {
	case FilterStatus:
		if value == "" {
			out.Status = ""
			return out, nil
		}
		st, err := ParseStatus(value)
		if err != nil {
			return f, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		out.Status = st
	case FilterEmail:
		out.Email = value
	case FilterInvitedBy:
		out.InvitedBy = value
	case FilterCreatedAfter, FilterCreatedBefore:
		var t *time.Time
		if value != "" {
			parsed, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return f, fmt.Errorf("%w: %s: %w", ErrInvalidFilter, key, err)
			}
			t = &parsed
		}
		if key == FilterCreatedAfter {
			out.CreatedAfter = t
		} else {
			out.CreatedBefore = t
		}
	default:
		return f, fmt.Errorf("%w: unknown key %q", ErrInvalidFilter, key)
	}

	return out, nil
}

// ParseFilter builds a Filter from query parameters. Unknown parameters
// are ignored so pagination keys can share the same query string.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter
	var err error
	for _, key := range []FilterKey{FilterStatus, FilterEmail, FilterInvitedBy, FilterCreatedAfter, FilterCreatedBefore} {
		if f, err = f.With(key, q.Get(string(key))); err != nil {
			return Filter{}, err
		}
	}
	return f, nil
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
