package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseList_Defaults(t *testing.T) {
	q := ParseList(url.Values{})

	require.Equal(t, DefaultLimit, q.Limit)
	require.Equal(t, 0, q.Offset)
	require.Equal(t, []SortKey{
		{Field: "last_name", Descending: true},
		{Field: "first_name", Descending: false},
	}, q.OrderBy)
	require.Empty(t, q.Where)
}

func TestParseList_LimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
	}{
		{"valid values", "25", "50", 25, 50},
		{"non-numeric falls back to defaults", "abc", "xyz", DefaultLimit, 0},
		{"negative falls back to defaults", "-5", "-1", DefaultLimit, 0},
		{"zero limit falls back to default", "0", "0", DefaultLimit, 0},
		{"limit above cap is clamped", "5000", "", MaxLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.limit != "" {
				values.Set("limit", tt.limit)
			}
			if tt.offset != "" {
				values.Set("offset", tt.offset)
			}

			q := ParseList(values)
			require.Equal(t, tt.wantLimit, q.Limit)
			require.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestParseList_SortBy(t *testing.T) {
	values := url.Values{}
	values.Set("sort_by", "first_name.asc,last_name.desc")

	q := ParseList(values)

	require.Equal(t, []SortKey{
		{Field: "first_name", Descending: false},
		{Field: "last_name", Descending: true},
	}, q.OrderBy)
}

func TestParseList_SortBySkipsBlankAndUnknownTokens(t *testing.T) {
	values := url.Values{}
	values.Set("sort_by", ",email.desc,,mystery_column.asc,id")

	q := ParseList(values)

	require.Equal(t, []SortKey{
		{Field: "email", Descending: true},
		{Field: "id", Descending: false},
	}, q.OrderBy)
}

func TestParseList_SortByInvalidDirectionMeansAscending(t *testing.T) {
	values := url.Values{}
	values.Set("sort_by", "first_name.sideways")

	q := ParseList(values)

	require.Equal(t, []SortKey{{Field: "first_name", Descending: false}}, q.OrderBy)
}

func TestParseList_SortByAllUnknownFallsBackToDefault(t *testing.T) {
	values := url.Values{}
	values.Set("sort_by", "mystery.asc,other.desc")

	q := ParseList(values)

	require.Equal(t, []SortKey{
		{Field: "last_name", Descending: true},
		{Field: "first_name", Descending: false},
	}, q.OrderBy)
}

func TestParseList_Filters(t *testing.T) {
	values := url.Values{}
	values.Set("first_name[contains]", "an")
	values.Set("last_name[equals]", "Doe")

	q := ParseList(values)

	require.ElementsMatch(t, []Filter{
		{Field: "first_name", Op: OpContains, Value: "an"},
		{Field: "last_name", Op: OpEquals, Value: "Doe"},
	}, q.Where)
}

func TestParseList_AbsentFiltersAreOmitted(t *testing.T) {
	values := url.Values{}
	values.Set("first_name[contains]", "")

	q := ParseList(values)

	require.Empty(t, q.Where)
}
