package main

import "testing"

func TestParseNavMode(t *testing.T) {
	cases := []struct {
		in      string
		want    NavMode
		wantErr bool
	}{
		{"", NavModeEightSlot, false},
		{"eight-slot", NavModeEightSlot, false},
		{"interlaced", NavModeInterlaced, false},
		{"bogus", 0, true},
	}
	for _, c := range cases {
		got, err := ParseNavMode(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseNavMode(%q) expected an error, got nil", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseNavMode(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseNavMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
