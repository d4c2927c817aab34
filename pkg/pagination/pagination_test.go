package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        Params
		wantPage  int
		wantLimit int
	}{
		{"defaults", Params{}, 1, DefaultLimit},
		{"negative page", Params{Page: -2, Limit: 10}, 1, 10},
		{"limit capped", Params{Page: 3, Limit: 500}, 3, MaxLimit},
		{"valid passthrough", Params{Page: 2, Limit: 50}, 2, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
				t.Fatalf("got %+v, want page=%d limit=%d", got, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if off := (Params{Page: 3, Limit: 25}).Offset(); off != 50 {
		t.Fatalf("expected offset 50, got %d", off)
	}
	if off := (Params{}).Offset(); off != 0 {
		t.Fatalf("expected offset 0 for defaults, got %d", off)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 10}, 25)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
	if meta.Page != 2 || meta.Limit != 10 || meta.Total != 25 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := NewMeta(Params{}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", empty.TotalPages)
	}
}
