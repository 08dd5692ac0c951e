package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/sorting"
)

func TestParseSorting(t *testing.T) {
	tests := []struct {
		input    string
		expected []Sorting
		err      bool
	}{
		{input: "", expected: nil},
		{input: "5;1", expected: []Sorting{{Criteria: SortSeriesName}}},
		{input: "5;1|11;2", expected: []Sorting{{Criteria: SortSeriesName}, {Criteria: SortAniDBRating, Descending: true}}},
		{input: "5", err: true},
		{input: "x;1", err: true},
		{input: "5;3", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSorting(tt.input)
			if tt.err {
				require.ErrorIs(t, err, ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConvertSorting(t *testing.T) {
	criteria, err := ConvertSorting([]Sorting{
		{Criteria: SortEpisodeAirDate, Descending: true},
		{Criteria: SortSortName},
	})
	require.NoError(t, err)
	assert.True(t, sorting.Equal(sorting.Criteria{
		sorting.Desc(expression.LastAirDate{}),
		sorting.Asc(expression.SortingName{}),
	}, criteria))

	for c := SortSeriesAddedDate; c <= SortGroupFilterName; c++ {
		_, err := ConvertSorting([]Sorting{{Criteria: c}})
		require.NoError(t, err, c)
	}

	_, err = ConvertSorting([]Sorting{{Criteria: 42}})
	require.ErrorIs(t, err, ErrInvalidParameter)
}
