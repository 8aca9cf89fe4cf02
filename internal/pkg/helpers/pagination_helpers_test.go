package helpers

import "testing"

func TestPaginateWindow(t *testing.T) {
	cases := []struct {
		name                     string
		total, page              int
		wantPage, wantPages      int
		wantStart, wantEnd       int
		wantFrom, wantTo         int
		wantHasPrev, wantHasNext bool
	}{
		{"empty", 0, 1, 1, 1, 0, 0, 0, 0, false, false},
		{"single partial page", 7, 1, 1, 1, 0, 7, 1, 7, false, false},
		{"first of three", 25, 1, 1, 3, 0, 10, 1, 10, false, true},
		{"middle", 25, 2, 2, 3, 10, 20, 11, 20, true, true},
		{"last partial", 25, 3, 3, 3, 20, 25, 21, 25, true, false},
		{"clamped above", 25, 9, 3, 3, 20, 25, 21, 25, true, false},
		{"clamped below", 25, -4, 1, 3, 0, 10, 1, 10, false, true},
		{"exact multiple", 20, 2, 2, 2, 10, 20, 11, 20, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := Paginate(tc.total, tc.page, 10)
			if w.Page != tc.wantPage || w.TotalPages != tc.wantPages {
				t.Fatalf("expected page %d of %d, got %d of %d", tc.wantPage, tc.wantPages, w.Page, w.TotalPages)
			}
			if w.Start != tc.wantStart || w.End != tc.wantEnd {
				t.Fatalf("expected slice [%d:%d], got [%d:%d]", tc.wantStart, tc.wantEnd, w.Start, w.End)
			}
			if w.ShowingFrom != tc.wantFrom || w.ShowingTo != tc.wantTo {
				t.Fatalf("expected showing %d-%d, got %d-%d", tc.wantFrom, tc.wantTo, w.ShowingFrom, w.ShowingTo)
			}
			if w.HasPrev() != tc.wantHasPrev || w.HasNext() != tc.wantHasNext {
				t.Fatalf("expected prev=%v next=%v, got prev=%v next=%v", tc.wantHasPrev, tc.wantHasNext, w.HasPrev(), w.HasNext())
			}
		})
	}
}

func TestPaginatePagesCoverCollection(t *testing.T) {
	for total := 0; total <= 53; total++ {
		first := Paginate(total, 1, 10)
		covered := 0
		for p := 1; p <= first.TotalPages; p++ {
			w := Paginate(total, p, 10)
			if w.Start != covered {
				t.Fatalf("total %d page %d: expected start %d, got %d", total, p, covered, w.Start)
			}
			covered += w.End - w.Start
		}
		if covered != total {
			t.Fatalf("total %d: pages cover %d items", total, covered)
		}
	}
}

func TestPaginateDefaultsInvalidSize(t *testing.T) {
	if w := Paginate(30, 1, 0); w.PageSize != DefaultPageSize {
		t.Fatalf("expected default size %d, got %d", DefaultPageSize, w.PageSize)
	}
	if w := Paginate(30, 1, MaxPageSize+1); w.PageSize != DefaultPageSize {
		t.Fatalf("expected default size for oversized page, got %d", w.PageSize)
	}
}
