package pagination

import "testing"

func TestNormalizeClampsBounds(t *testing.T) {
	cases := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"zero value", Pagination{}, 1, 10},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"limit too large", Pagination{Page: 2, Limit: 500}, 2, 100},
		{"valid", Pagination{Page: 3, Limit: 25}, 3, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d",
					got.Page, got.Limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Pagination{Page: 3, Limit: 25}).Offset(); got != 50 {
		t.Fatalf("expected offset 50, got %d", got)
	}
	if got := (Pagination{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(Pagination{Page: 2, Limit: 10}, 35)
	if meta.TotalPages != 4 {
		t.Fatalf("expected 4 pages, got %d", meta.TotalPages)
	}
	if meta.CurrentPage != 2 || meta.ItemsPerPage != 10 || meta.TotalItems != 35 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := BuildMeta(Pagination{}, 0)
	if empty.TotalPages != 1 {
		t.Fatalf("expected at least one page, got %d", empty.TotalPages)
	}
}
