package models

import (
	"net/url"
	"strconv"
)

// Defaults for the browser-visible query parameters.
const (
	DefaultSkip      = 0
	DefaultLimit     = 10
	DefaultSortOrder = "asc"
)

// ViewState is the set of user-controlled parameters that determine which
// collection is fetched and displayed.
type ViewState struct {
	Skip      int    `json:"skip"`
	Limit     int    `json:"limit"`
	Search    string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	Tag       string `json:"tag"`
}

// DefaultViewState returns the state of a URL with no query parameters.
func DefaultViewState() ViewState {
	return ViewState{
		Skip:      DefaultSkip,
		Limit:     DefaultLimit,
		SortOrder: DefaultSortOrder,
	}
}

// ParseViewState reads the six view-state parameters from a query string.
// Missing or non-numeric skip/limit fall back to their defaults rather than
// producing an error.
func ParseViewState(params url.Values) ViewState {
	return ViewState{
		Skip:      parseIntOr(params.Get("skip"), DefaultSkip),
		Limit:     parseIntOr(params.Get("limit"), DefaultLimit),
		Search:    params.Get("search"),
		SortBy:    params.Get("sortBy"),
		SortOrder: stringOr(params.Get("sortOrder"), DefaultSortOrder),
		Tag:       params.Get("tag"),
	}
}

// Values emits only the fields holding a non-zero, non-empty value, so the
// resulting URL stays minimal. A zero skip or an empty search is
// indistinguishable from an absent one after a round trip.
func (v ViewState) Values() url.Values {
	params := url.Values{}
	if v.Skip != 0 {
		params.Set("skip", strconv.Itoa(v.Skip))
	}
	if v.Limit != 0 {
		params.Set("limit", strconv.Itoa(v.Limit))
	}
	if v.Search != "" {
		params.Set("search", v.Search)
	}
	if v.SortBy != "" {
		params.Set("sortBy", v.SortBy)
	}
	if v.SortOrder != "" {
		params.Set("sortOrder", v.SortOrder)
	}
	if v.Tag != "" {
		params.Set("tag", v.Tag)
	}
	return params
}

// Encode serializes the view state as a query string without the leading "?".
func (v ViewState) Encode() string {
	return v.Values().Encode()
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
