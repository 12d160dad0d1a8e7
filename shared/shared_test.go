package shared_test

import (
	"maps"
	"slices"
	"strings"
	"testing"
	"time"

	"stayengine/shared"
	"stayengine/shared/constant"
	"stayengine/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalBool(t *testing.T) {
	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: boolPtr(true)},
		{input: "1", want: boolPtr(true)},
		{input: "F", want: boolPtr(false)},
		{input: "false", want: boolPtr(false)},
		{input: "yes", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ParseOptionalBool(tt.input))
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{name: "empty listing", total: 0, limit: 10, want: 1},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "no limit", total: 21, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.TotalPages(tt.total, tt.limit))
		})
	}
}

func TestChangedColumns(t *testing.T) {
	type listingPatch struct {
		Title     string   `db:"title"`
		Location  string   `db:"location"`
		MaxGuests *int     `db:"max_guests"`
		Active    *bool    `db:"active"`
		Amenities []string `db:"amenities"`
		Note      string   `db:"-"`
		Draft     string
	}

	patch := listingPatch{
		Title:     "Sea view loft",
		MaxGuests: intPtr(4),
		Active:    boolPtr(false),
		Note:      "internal",
		Draft:     "ignored",
	}

	columns := shared.ChangedColumns(&patch, "host-1")

	assert.Equal(t, "Sea view loft", columns["title"])
	assert.Equal(t, 4, columns["max_guests"])
	assert.Equal(t, false, columns["active"])
	assert.Equal(t, "host-1", columns[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, columns[constant.FieldModifiedAt])

	for _, absent := range []string{"location", "amenities", "-", "Draft"} {
		assert.NotContains(t, columns, absent)
	}

	assert.Len(t, columns, 5)
}

func TestChangedColumns_EmptyPatchOnlyStampsMetadata(t *testing.T) {
	type patch struct {
		Title string `db:"title"`
	}

	columns := shared.ChangedColumns(patch{}, "admin-1")

	assert.Equal(t, []string{constant.FieldModifiedAt, constant.FieldModifiedBy}, slices.Sorted(maps.Keys(columns)))
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("booking-1", "id", "rental_bookings")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "booking-1",
		Operator: dto.FilterOperatorEq,
		Table:    "rental_bookings",
	}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Equal(t, "booking-1", args["id"])
	assert.Contains(t, where, "rental_bookings.id")
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "availability:p-1:v3", shared.BuildCacheKey("availability", "p-1", "v3"))
	assert.Equal(t, "property:get", shared.BuildCacheKey("property:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc}
	active := shared.FilterByID("true", "active", "rental_properties")
	owner := shared.FilterByID("host-1", "owner_id", "rental_properties")

	first := shared.BuildCacheKeyWithQuery("property:gets", params, active)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("property:gets", params, active))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("property:gets", params, owner))
	assert.True(t, strings.HasPrefix(first, "property:gets:1:10:created_at:DESC:"), first)
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}
