package dto

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"stayengine/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	MaxLimit = 100
)

// QueryParams carries pagination and ordering for list endpoints.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" enums:"ASC,DESC"`
}

// ParseQueryParams reads page, limit, sort_by and sort_dir from a query string. Malformed
// numbers fall back to the defaults and limit is capped at MaxLimit. SortBy ends up in the
// ORDER BY clause, so only columns listed in sortable are accepted; anything else resets the
// ordering to newest first.
func ParseQueryParams(query url.Values, sortable ...string) QueryParams {
	params := QueryParams{
		Page:  positive(query.Get(constant.RequestParamPage), constant.DefaultValuePage),
		Limit: min(positive(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit), MaxLimit),
	}

	sortBy := query.Get(constant.RequestParamSortBy)
	if sortBy == "" || !slices.Contains(sortable, sortBy) {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir

		return params
	}

	params.SortBy = sortBy
	params.SortDir = SortDirAsc

	if strings.EqualFold(query.Get(constant.RequestParamSortDir), SortDirDesc) {
		params.SortDir = SortDirDesc
	}

	return params
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	return (max(q.Page, 1) - 1) * q.Limit
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
