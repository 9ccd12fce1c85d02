// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package matrix

import "testing"

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestIdentityApply(t *testing.T) {
	x, y := Identity().Apply(3, 4)
	if !almostEqual(x, 3) || !almostEqual(y, 4) {
		t.Errorf("identity should not move points, got (%v, %v)", x, y)
	}
}

func TestTranslation(t *testing.T) {
	x, y := Translation(10, -5).Apply(1, 1)
	if !almostEqual(x, 11) || !almostEqual(y, -4) {
		t.Errorf("got (%v, %v), want (11, -4)", x, y)
	}
}

func TestScaling(t *testing.T) {
	x, y := Scaling(2, 3).Apply(5, 5)
	if !almostEqual(x, 10) || !almostEqual(y, 15) {
		t.Errorf("got (%v, %v), want (10, 15)", x, y)
	}
}

func TestRotation90(t *testing.T) {
	// Counter-clockwise 90 degrees: (1,0) -> (0,1)
	x, y := Rotation(90).Apply(1, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 1) {
		t.Errorf("got (%v, %v), want (0, 1)", x, y)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Translate-then-scale applied right to left: scale(2,2) then
	// translate(10,0) post-multiplied should translate first in local
	// space of scale, i.e. m = T * S so m.Apply(1,1) = T(S(1,1)).
	m := Translation(10, 0)
	m.Multiply(Scaling(2, 2))
	x, y := m.Apply(1, 1)
	if !almostEqual(x, 12) || !almostEqual(y, 2) {
		t.Errorf("got (%v, %v), want (12, 2)", x, y)
	}
}

func TestProjectionFlipsY(t *testing.T) {
	p := Projection(480, 360)
	x0, y0 := p.Apply(0, 0)
	if !almostEqual(x0, -1) || !almostEqual(y0, 1) {
		t.Errorf("top-left should map to (-1,1), got (%v,%v)", x0, y0)
	}
	x1, y1 := p.Apply(480, 360)
	if !almostEqual(x1, 1) || !almostEqual(y1, -1) {
		t.Errorf("bottom-right should map to (1,-1), got (%v,%v)", x1, y1)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	cases := [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {128, 64, 200}, {10, 10, 10}, {0, 0, 0}}
	for _, c := range cases {
		h, s, v := RGBToHSV(c[0], c[1], c[2])
		r, g, b := HSVToRGB(h, s, v)
		if absDiff(int(r), int(c[0])) > 1 || absDiff(int(g), int(c[1])) > 1 || absDiff(int(b), int(c[2])) > 1 {
			t.Errorf("round trip for %v: got (%d,%d,%d)", c, r, g, b)
		}
	}
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translation(10, -5)
	m.Multiply(Rotation(37))
	m.Multiply(Scaling(2, 0.5))

	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible matrix")
	}
	x, y := m.Apply(3, 4)
	ix, iy := inv.Apply(x, y)
	if !almostEqual(ix, 3) || !almostEqual(iy, 4) {
		t.Errorf("inverse round trip: got (%v, %v), want (3, 4)", ix, iy)
	}
}

func TestInvertSingularReportsFalse(t *testing.T) {
	singular := &Matrix3{val: [9]float64{0, 0, 0, 0, 0, 0, 0, 0, 1}}
	if _, ok := singular.Invert(); ok {
		t.Errorf("expected singular matrix to report non-invertible")
	}
}

func TestHSVGrayscaleHasZeroSaturation(t *testing.T) {
	_, s, _ := RGBToHSV(100, 100, 100)
	if s != 0 {
		t.Errorf("grayscale should have s=0, got %v", s)
	}
}
