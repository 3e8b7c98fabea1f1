package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/aurora/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = idx.Parse("   ")
	require.ErrorIs(t, err, idx.ErrInvalid)
	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestGeneratorMonotonic(t *testing.T) {
	g := idx.NewGenerator()
	at := time.Unix(1700000000, 0)

	prev := g.NewAt(at)
	for range 50 {
		next := g.NewAt(at)
		require.Equal(t, -1, idx.Compare(prev, next), "same-millisecond IDs must still increase")
		prev = next
	}
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)
	require.WithinDuration(t, tm, id.Time(), time.Millisecond)

	require.True(t, idx.ID("bogus").Time().IsZero())
}
