package main

import (
	"math"
	"testing"
)

func TestParseBoundExpr(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 0.0314, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"-pi", -math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{" pi / 2 ", math.Pi / 2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
		{"x+1", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseBoundExpr(tc.input)
		if ok != tc.ok {
			t.Errorf("parseBoundExpr(%q): ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if ok && math.Abs(got-tc.want) > 1e-10 {
			t.Errorf("parseBoundExpr(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatBound(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{math.Pi, "pi"},
		{-math.Pi, "-pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi, "2*pi"},
		{-10, "-10"},
		{1.5, "1.5"},
		{0, "0"},
	}

	for _, tc := range cases {
		if got := formatBound(tc.val); got != tc.want {
			t.Errorf("formatBound(%v) = %q, want %q", tc.val, got, tc.want)
		}
	}
}

func TestBoundRoundTrip(t *testing.T) {
	for _, s := range []string{"pi", "pi/2", "-3*pi/4", "2*pi", "-10", "1.5"} {
		val, ok := parseBoundExpr(s)
		if !ok {
			t.Fatalf("parseBoundExpr(%q) failed", s)
		}
		back, ok := parseBoundExpr(formatBound(val))
		if !ok {
			t.Fatalf("formatBound(%v) produced unparseable %q", val, formatBound(val))
		}
		if math.Abs(back-val) > 1e-10 {
			t.Errorf("round trip of %q drifted: %v -> %v", s, val, back)
		}
	}
}
