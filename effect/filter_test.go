// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package effect

import (
	"strings"
	"testing"

	"github.com/FaZeKermit323/forkphorus/render"
)

func TestShapeAffecting(t *testing.T) {
	cases := []struct {
		f    render.Filters
		want bool
	}{
		{render.Filters{}, false},
		{render.Filters{Ghost: 50, Brightness: 10, Color: 5}, false},
		{render.Filters{Mosaic: 4}, true},
		{render.Filters{Pixelate: 1}, true},
		{render.Filters{Whirl: 90}, true},
		{render.Filters{Fisheye: -10}, true},
	}
	for _, c := range cases {
		if got := ShapeAffecting(c.f); got != c.want {
			t.Errorf("ShapeAffecting(%+v) = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestCSSApproximationExcludesGhost(t *testing.T) {
	css := CSSApproximation(render.Filters{Ghost: 75, Brightness: 20, Color: 10})
	if strings.Contains(css, "opacity") {
		t.Errorf("CSS approximation must not include ghost/opacity, got %q", css)
	}
	if !strings.Contains(css, "brightness(120%)") {
		t.Errorf("expected brightness(120%%), got %q", css)
	}
	if !strings.Contains(css, "hue-rotate(18deg)") {
		t.Errorf("expected hue-rotate(18deg), got %q", css)
	}
}
