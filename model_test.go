package main

import (
	"math"
	"strings"
	"testing"
)

func TestEvaluatePipeline(t *testing.T) {
	m := initialModel(nil)
	m.evaluate("x**2 + y**2")

	if m.parseErr != "" {
		t.Fatalf("unexpected parse error: %s", m.parseErr)
	}
	if m.res == nil {
		t.Fatal("expected a result")
	}
	if got := m.res.expr.String(); got != "x**2 + y**2" {
		t.Errorf("expr = %q, want %q", got, "x**2 + y**2")
	}
	if len(m.res.vars) != 2 {
		t.Errorf("vars = %v, want [x y]", m.res.vars)
	}
	if len(m.res.critical) != 1 {
		t.Fatalf("critical points = %d, want 1", len(m.res.critical))
	}
	if m.res.extrema.GlobalMinimum == nil {
		t.Error("expected a global minimum at the origin")
	}
	if v := m.res.fn(3, 4); math.Abs(v-25) > 1e-9 {
		t.Errorf("fn(3, 4) = %v, want 25", v)
	}
	if !strings.Contains(m.res.report, "COMPREHENSIVE FUNCTION ANALYSIS REPORT") {
		t.Error("report missing header")
	}
}

func TestEvaluateParseErrorKeepsResult(t *testing.T) {
	m := initialModel(nil)
	m.evaluate("x**2")
	if m.res == nil {
		t.Fatal("expected a result")
	}

	m.evaluate("2 +* x")
	if m.parseErr == "" {
		t.Error("expected a parse error")
	}
	if m.res == nil || m.res.raw != "x**2" {
		t.Error("previous result should survive a parse failure")
	}
}

func TestEvaluateConstant(t *testing.T) {
	m := initialModel(nil)
	m.evaluate("pi/2")

	if m.parseErr != "" {
		t.Fatalf("unexpected parse error: %s", m.parseErr)
	}
	// Constant functions still sample as a flat curve.
	if v := m.res.fn(3); math.Abs(v-math.Pi/2) > 1e-12 {
		t.Errorf("fn(3) = %v, want pi/2", v)
	}
}

func TestMarkers(t *testing.T) {
	m := initialModel(nil)
	m.evaluate("x**3 - 3x")

	marks := m.markers()
	if len(marks) != 2 {
		t.Fatalf("markers = %d, want 2", len(marks))
	}
	// Curve markers carry (x, f(x)).
	for _, mk := range marks {
		want := mk.X*mk.X*mk.X - 3*mk.X
		if math.Abs(mk.Y-want) > 1e-6 {
			t.Errorf("marker (%v, %v) not on the curve", mk.X, mk.Y)
		}
	}

	m.showMarkers = false
	if got := m.markers(); got != nil {
		t.Errorf("markers with display off = %v, want nil", got)
	}
}

func TestSetDomainBound(t *testing.T) {
	m := initialModel(nil)

	if !m.setDomainBound(1, 5) {
		t.Fatal("setting x max to 5 should succeed")
	}
	if m.domain.XMax != 5 {
		t.Errorf("x max = %v, want 5", m.domain.XMax)
	}

	// A bound that empties the range is rejected.
	if m.setDomainBound(0, 7) {
		t.Error("x min above x max should be rejected")
	}
	if m.domain.XMin != -10 {
		t.Errorf("x min = %v, want unchanged -10", m.domain.XMin)
	}
}

func TestZoomAndPanKeepWindowValid(t *testing.T) {
	m := initialModel(nil)
	m.zoomDomain(0.5)
	m.panDomain(1, 0)
	m.zoomDomain(2)

	if err := m.domain.Validate(); err != nil {
		t.Errorf("window invalid after zoom/pan: %v", err)
	}
	if math.Abs((m.domain.XMax-m.domain.XMin)-20) > 1e-9 {
		t.Errorf("x span = %v, want 20 after zooming in and back out", m.domain.XMax-m.domain.XMin)
	}
}
