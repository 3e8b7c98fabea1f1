package domain

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Pagination mirrors the paging envelope of a list response. Pages is only
// ever taken from the server.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
	Pages    int
}

func (p Pagination) HasNext() bool     { return p.Page < p.Pages }
func (p Pagination) HasPrevious() bool { return p.Page > 1 }

// InRange reports whether page n exists.
func (p Pagination) InRange(n int) bool { return n >= 1 && n <= p.Pages }

// ClampPageSize applies the default to non-positive sizes and caps the rest
// at max.
func ClampPageSize(size, def, max int) int {
	if size <= 0 {
		return def
	}
	if size > max {
		return max
	}
	return size
}

// PageCount is ceil(total/size), or 0 when there is nothing to page.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Offset returns the zero-based row offset of page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Stats is a snapshot of invitation counts for one tenant.
type Stats struct {
	Total        int
	Pending      int
	Accepted     int
	Expired      int
	Revoked      int
	SentToday    int
	SentThisWeek int
}
