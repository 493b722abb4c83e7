package repository

import "testing"

func TestListParamsNormalizeDefaults(t *testing.T) {
	params := ListParams{}
	params.Normalize([]string{"id", "created_at"}, "id")

	if params.Page != 1 || params.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %d/%d", params.Page, params.Limit)
	}
	if params.SortBy != "id" || params.SortOrder != "ASC" {
		t.Fatalf("expected default sort id ASC, got %s %s", params.SortBy, params.SortOrder)
	}
}

func TestListParamsNormalizeSilentFallback(t *testing.T) {
	// Una columna fuera de la allow-list cae al default sin error.
	params := ListParams{Page: 2, Limit: 5, SortBy: "password; DROP TABLE users", SortOrder: "sideways"}
	params.Normalize([]string{"id", "title"}, "id")

	if params.SortBy != "id" {
		t.Fatalf("expected fallback to id, got %s", params.SortBy)
	}
	if params.SortOrder != "ASC" {
		t.Fatalf("expected fallback to ASC, got %s", params.SortOrder)
	}
}

func TestListParamsNormalizeAcceptsAllowedSort(t *testing.T) {
	params := ListParams{SortBy: "created_at", SortOrder: "desc"}
	params.Normalize([]string{"id", "created_at"}, "id")

	if params.SortBy != "created_at" || params.SortOrder != "DESC" {
		t.Fatalf("expected created_at DESC, got %s %s", params.SortBy, params.SortOrder)
	}
	if params.OrderClause() != "ORDER BY created_at DESC" {
		t.Fatalf("unexpected order clause %q", params.OrderClause())
	}
}

func TestListParamsNormalizeCapsLimit(t *testing.T) {
	params := ListParams{Limit: 5000}
	params.Normalize([]string{"id"}, "id")
	if params.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", params.Limit)
	}
}

func TestListParamsOffset(t *testing.T) {
	params := ListParams{Page: 3, Limit: 10}
	params.Normalize([]string{"id"}, "id")
	if params.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", params.Offset())
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
