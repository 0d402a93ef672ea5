package service

import "testing"

func TestComputeDeductions(t *testing.T) {
	cases := []struct {
		grossCents int64
		want       int64
	}{
		// 6.3% combined pension + maternity.
		{10000000, 630000},
		{12345600, 777772},
		{0, 0},
		{100, 6}, // integer division truncates
	}
	for _, tc := range cases {
		if got := computeDeductions(tc.grossCents); got != tc.want {
			t.Fatalf("computeDeductions(%d) = %d, want %d", tc.grossCents, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 500, 2, 100},
		{5, 25, 5, 25},
	}
	for _, tc := range cases {
		page, pageSize := clampPage(tc.page, tc.pageSize)
		if page != tc.wantPage || pageSize != tc.wantPageSize {
			t.Fatalf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.pageSize, page, pageSize, tc.wantPage, tc.wantPageSize)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{199, 20, 10},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
