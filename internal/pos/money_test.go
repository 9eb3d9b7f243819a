package pos

import (
	"testing"
)

func TestMinorToMajor(t *testing.T) {
	cases := []struct {
		minor int64
		major float64
	}{
		{0, 0},
		{1, 0.01},
		{99, 0.99},
		{100, 1},
		{28000, 280},
		{-250, -2.5},
	}

	for _, c := range cases {
		got := MinorToMajor(c.minor)
		if got != c.major {
			t.Errorf("MinorToMajor(%d): expected %v, got %v", c.minor, c.major, got)
		}
	}
}

func TestMajorToMinor(t *testing.T) {
	cases := []struct {
		major float64
		minor int64
	}{
		{0, 0},
		{0.01, 1},
		{0.99, 99},
		{1, 100},
		{280, 28000},
		{12.345, 1235},
		{-2.5, -250},
	}

	for _, c := range cases {
		got := MajorToMinor(c.major)
		if got != c.minor {
			t.Errorf("MajorToMinor(%v): expected %d, got %d", c.major, c.minor, got)
		}
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	// whole cent amounts must survive both directions unchanged
	for _, minor := range []int64{0, 1, 99, 100, 1050, 28000, 999999} {
		if got := MajorToMinor(MinorToMajor(minor)); got != minor {
			t.Errorf("round trip of %d cents: got %d", minor, got)
		}
	}
}
