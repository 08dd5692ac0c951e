package cursor_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter/cursor"
)

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name     string
		req      *cursor.Request
		expected []string
		hasPrev  bool
		hasNext  bool
	}{
		{name: "everything", req: nil, expected: items},
		{name: "first", req: &cursor.Request{First: lo.ToPtr(2)}, expected: []string{"a", "b"}, hasNext: true},
		{name: "first after", req: &cursor.Request{First: lo.ToPtr(2), After: lo.ToPtr("1")}, expected: []string{"c", "d"}, hasPrev: true, hasNext: true},
		{name: "after last item", req: &cursor.Request{First: lo.ToPtr(2), After: lo.ToPtr("4")}, expected: []string{}, hasPrev: true},
		{name: "last", req: &cursor.Request{Last: lo.ToPtr(2)}, expected: []string{"d", "e"}, hasPrev: true},
		{name: "last before", req: &cursor.Request{Last: lo.ToPtr(2), Before: lo.ToPtr("3")}, expected: []string{"b", "c"}, hasPrev: true, hasNext: true},
		{name: "between", req: &cursor.Request{After: lo.ToPtr("0"), Before: lo.ToPtr("3")}, expected: []string{"b", "c"}, hasPrev: true, hasNext: true},
		{name: "first zero", req: &cursor.Request{First: lo.ToPtr(0)}, expected: []string{}, hasNext: true},
		{name: "first beyond end", req: &cursor.Request{First: lo.ToPtr(10), After: lo.ToPtr("2")}, expected: []string{"d", "e"}, hasPrev: true},
		{name: "first max int", req: &cursor.Request{First: lo.ToPtr(math.MaxInt), After: lo.ToPtr("2")}, expected: []string{"d", "e"}, hasPrev: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := cursor.Paginate(items, tt.req, cursor.Offset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page.Nodes())
			assert.Equal(t, tt.hasPrev, page.PageInfo.HasPreviousPage)
			assert.Equal(t, tt.hasNext, page.PageInfo.HasNextPage)
			assert.Equal(t, len(items), page.TotalCount)
		})
	}
}

func TestPaginate_CursorsChain(t *testing.T) {
	items := lo.Range(7)
	codec := cursor.NewCodec(cursor.Base64)

	var (
		seen  []int
		after *string
	)
	for {
		page, err := cursor.Paginate(items, &cursor.Request{First: lo.ToPtr(3), After: after}, codec)
		require.NoError(t, err)
		seen = append(seen, page.Nodes()...)
		if !page.PageInfo.HasNextPage {
			break
		}
		after = page.PageInfo.EndCursor
	}
	assert.Equal(t, items, seen)

	t.Run("forged cursor is refused", func(t *testing.T) {
		forged, err := codec.Encode(math.MaxInt)
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			_, err = cursor.Paginate(items, &cursor.Request{After: &forged}, codec)
		})
		require.ErrorContains(t, err, "out of range")
	})
}

func TestPaginate_Invalid(t *testing.T) {
	items := []int{1, 2, 3}
	tests := []struct {
		name string
		req  *cursor.Request
		err  string
	}{
		{"negative first", &cursor.Request{First: lo.ToPtr(-1)}, "first must be non-negative"},
		{"negative last", &cursor.Request{Last: lo.ToPtr(-1)}, "last must be non-negative"},
		{"first and last", &cursor.Request{First: lo.ToPtr(1), Last: lo.ToPtr(1)}, "first and last cannot be combined"},
		{"bad after", &cursor.Request{After: lo.ToPtr("x")}, "invalid after cursor"},
		{"bad before", &cursor.Request{Before: lo.ToPtr("-3")}, "invalid before cursor"},
		{"after beyond before", &cursor.Request{After: lo.ToPtr("2"), Before: lo.ToPtr("1")}, "after cursor must be less than before cursor"},
		{"after past the end", &cursor.Request{After: lo.ToPtr("3")}, "after cursor: offset 3 is out of range"},
		{"after max int", &cursor.Request{First: lo.ToPtr(1), After: lo.ToPtr(strconv.Itoa(math.MaxInt))}, "out of range"},
		{"before past the end", &cursor.Request{Before: lo.ToPtr("4")}, "before cursor: offset 4 is out of range"},
		{"before max int", &cursor.Request{Last: lo.ToPtr(1), Before: lo.ToPtr(strconv.Itoa(math.MaxInt))}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cursor.Paginate(items, tt.req, cursor.Offset)
			require.ErrorContains(t, err, tt.err)
		})
	}
}
