package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// empty -> default
		{"", 10, 10},
		// valid ints
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// invalid -> default (no trim)
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow -> default
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestPageQuery(t *testing.T) {
	cases := []struct {
		raw        string
		size       int
		wantPage   int
		wantOffset int
	}{
		{"", 25, 1, 0},
		{"1", 25, 1, 0},
		{"3", 25, 3, 50},
		{"0", 25, 1, 0},
		{"-2", 25, 1, 0},
		{"junk", 10, 1, 0},
	}

	for _, tc := range cases {
		page, offset := PageQuery(tc.raw, tc.size)
		if page != tc.wantPage || offset != tc.wantOffset {
			t.Fatalf("PageQuery(%q, %d) = (%d, %d); want (%d, %d)",
				tc.raw, tc.size, page, offset, tc.wantPage, tc.wantOffset)
		}
	}
}
