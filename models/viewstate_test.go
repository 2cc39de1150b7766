package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewState_Defaults(t *testing.T) {
	state := ParseViewState(url.Values{})

	assert.Equal(t, ViewState{
		Skip:      0,
		Limit:     10,
		Search:    "",
		SortBy:    "",
		SortOrder: "asc",
		Tag:       "",
	}, state)
}

func TestParseViewState_Scenario(t *testing.T) {
	params, err := url.ParseQuery("skip=20&limit=20&tag=tech")
	require.NoError(t, err)

	state := ParseViewState(params)

	assert.Equal(t, 20, state.Skip)
	assert.Equal(t, 20, state.Limit)
	assert.Equal(t, "tech", state.Tag)
	assert.Equal(t, "", state.Search)
	assert.Equal(t, "", state.SortBy)
	assert.Equal(t, "asc", state.SortOrder)
}

func TestParseViewState_NonNumericFallsBack(t *testing.T) {
	params := url.Values{}
	params.Set("skip", "banana")
	params.Set("limit", "")

	state := ParseViewState(params)

	assert.Equal(t, 0, state.Skip)
	assert.Equal(t, 10, state.Limit)
}

func TestViewStateValues_OmitsZeroValues(t *testing.T) {
	state := ViewState{Skip: 0, Limit: 0, Search: "", SortBy: "", SortOrder: "", Tag: ""}

	assert.Empty(t, state.Encode())
}

func TestViewState_RoundTrip(t *testing.T) {
	original := ViewState{
		Skip:      40,
		Limit:     20,
		Search:    "love",
		SortBy:    "reactions",
		SortOrder: "desc",
		Tag:       "history",
	}

	params, err := url.ParseQuery(original.Encode())
	require.NoError(t, err)

	assert.Equal(t, original, ParseViewState(params))
}

func TestViewState_RoundTripLosesDefaults(t *testing.T) {
	// skip=0 and search="" are omitted on serialize, so they come back as
	// defaults, indistinguishable from never having been set.
	original := ViewState{Skip: 0, Limit: 10, Search: "", SortOrder: "asc"}

	params, err := url.ParseQuery(original.Encode())
	require.NoError(t, err)
	state := ParseViewState(params)

	assert.Equal(t, 0, state.Skip)
	assert.Equal(t, 10, state.Limit)
	assert.Equal(t, "asc", state.SortOrder)
}
