package dto_test

import (
	"net/url"
	"testing"
	"time"

	"stayengine/shared/constant"
	"stayengine/shared/dto"
	"stayengine/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "host-1",
		ModifiedBy: "system",
	})

	if metadata.CreatedAt != createdAt.Format(constant.DateFormat) {
		t.Errorf("expected CreatedAt to be %s, got %s", createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	}

	if metadata.ModifiedAt != modifiedAt.Format(constant.DateFormat) {
		t.Errorf("expected ModifiedAt to be %s, got %s", modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "host-1" || metadata.ModifiedBy != "system" {
		t.Errorf("unexpected audit users %q %q", metadata.CreatedBy, metadata.ModifiedBy)
	}
}

func TestTimestamp(t *testing.T) {
	paidAt := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	if got := dto.Timestamp(&paidAt); got != paidAt.Format(constant.DateFormat) {
		t.Errorf("expected %s, got %s", paidAt.Format(constant.DateFormat), got)
	}

	if got := dto.Timestamp(nil); got != "" {
		t.Errorf("expected empty timestamp for nil, got %q", got)
	}

	if got := dto.Timestamp(&time.Time{}); got != "" {
		t.Errorf("expected empty timestamp for zero time, got %q", got)
	}
}

func TestParseQueryParams(t *testing.T) {
	sortable := []string{"check_in_date", "created_at"}

	tests := []struct {
		name  string
		query string
		want  dto.QueryParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "explicit values",
			query: "page=3&limit=25&sort_by=check_in_date&sort_dir=desc",
			want:  dto.QueryParams{Page: 3, Limit: 25, SortBy: "check_in_date", SortDir: "DESC"},
		},
		{
			name:  "direction defaults to ascending for an explicit column",
			query: "sort_by=check_in_date",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "check_in_date", SortDir: "ASC"},
		},
		{
			name:  "malformed numbers fall back",
			query: "page=abc&limit=-4",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Page: 1, Limit: dto.MaxLimit, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "unknown column resets ordering",
			query: "sort_by=guest_email%20DESC%2C%20id&sort_dir=ASC",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query %q: %v", tt.query, err)
			}

			if got := dto.ParseQueryParams(query, sortable...); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	if got := (dto.QueryParams{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}

	if got := (dto.QueryParams{Limit: 20}).Offset(); got != 0 {
		t.Errorf("expected offset 0 for unset page, got %d", got)
	}
}

func TestFilter_StrictComparisons(t *testing.T) {
	less := dto.Filter{Field: "start_date", ArgName: "range_end", Operator: dto.FilterOperatorLess, Value: "2024-06-15"}
	greater := dto.Filter{Field: "end_date", ArgName: "range_start", Operator: dto.FilterOperatorGreater, Value: "2024-06-12"}

	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{less, greater}}
	where, args := group.GetWhereClause()

	if where != "(start_date < :range_end AND end_date > :range_start)" {
		t.Errorf("unexpected where clause %q", where)
	}

	if args["range_end"] != "2024-06-15" || args["range_start"] != "2024-06-12" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilter_In(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "slice expands to named args",
			value:     []string{"pending", "confirmed"},
			wantWhere: "rental_bookings.status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "empty slice matches nothing",
			value:     []string{},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "scalar is bound, never interpolated",
			value:     "paid",
			wantWhere: "rental_bookings.status IN (:status)",
			wantArgs:  map[string]any{"status": "paid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := dto.Filter{Field: "status", Table: "rental_bookings", Operator: dto.FilterOperatorIn, Value: tt.value}
			where, args := filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected args %v, got %v", tt.wantArgs, args)
			}

			for key, value := range tt.wantArgs {
				if args[key] != value {
					t.Errorf("expected arg %s to be %v, got %v", key, value, args[key])
				}
			}
		})
	}
}

func TestFilter_LikeEscapesWildcards(t *testing.T) {
	filter := dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "50%_off"}
	where, args := filter.GetWhereClause()

	if where != "LOWER(title) LIKE LOWER(:title)" {
		t.Errorf("unexpected where clause %q", where)
	}

	if args["title"] != `%50\%\_off%` {
		t.Errorf("unexpected like pattern %v", args["title"])
	}
}

func TestFilterGroup_SkipsUnknownOperators(t *testing.T) {
	group := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "active", Operator: "unknown", Value: true},
		dto.Filter{Field: "owner_id", Operator: dto.FilterOperatorEq, Value: "host-1"},
		"not a filter",
	}}

	where, args := group.GetWhereClause()

	if where != "(owner_id = :owner_id)" {
		t.Errorf("unexpected where clause %q", where)
	}

	if len(args) != 1 || args["owner_id"] != "host-1" {
		t.Errorf("unexpected args %v", args)
	}
}
