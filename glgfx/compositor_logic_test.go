// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"testing"

	"github.com/FaZeKermit323/forkphorus/render"
)

func TestActiveDefinesOnlyIncludesNonzeroFilters(t *testing.T) {
	f := render.Filters{Brightness: 10, Whirl: 90}
	defines := activeDefines(f)
	if len(defines) != 2 {
		t.Fatalf("expected 2 defines, got %v", defines)
	}
	got := map[string]bool{defines[0]: true, defines[1]: true}
	if !got["BRIGHTNESS"] || !got["WHIRL"] {
		t.Errorf("expected BRIGHTNESS and WHIRL, got %v", defines)
	}
}

func TestActiveDefinesEmptyForZeroFilters(t *testing.T) {
	if defines := activeDefines(render.Filters{}); len(defines) != 0 {
		t.Errorf("expected no defines, got %v", defines)
	}
}

func TestActiveDefinesNeverIncludesGhost(t *testing.T) {
	defines := activeDefines(render.Filters{Ghost: 50})
	for _, d := range defines {
		if d == "GHOST" {
			t.Errorf("ghost should never produce a #define, it's applied unconditionally")
		}
	}
}

func TestShapeDefinesDropsBrightnessAndColor(t *testing.T) {
	f := render.Filters{Brightness: 10, Color: 20, Whirl: 90, Mosaic: 5}
	defines := shapeDefines(f)
	for _, d := range defines {
		if d == "BRIGHTNESS" || d == "COLOR" {
			t.Errorf("shapeDefines should never include %s, got %v", d, defines)
		}
	}
	got := map[string]bool{}
	for _, d := range defines {
		got[d] = true
	}
	if !got["WHIRL"] || !got["MOSAIC"] {
		t.Errorf("expected WHIRL and MOSAIC, got %v", defines)
	}
}

func TestMosaicFactorMatchesRoundPlusTenOverTen(t *testing.T) {
	if got := mosaicFactor(4); got != 1 {
		t.Errorf("mosaicFactor(4) = %v, want 1", got)
	}
	if got := mosaicFactor(40); got != 5 {
		t.Errorf("mosaicFactor(40) = %v, want 5", got)
	}
	if got := mosaicFactor(-40); got != 5 {
		t.Errorf("mosaicFactor(-40) = %v, want 5 (uses |m|)", got)
	}
	if got := mosaicFactor(0); got != 1 {
		t.Errorf("mosaicFactor(0) = %v, want 1", got)
	}
	if got := mosaicFactor(99999); got != 512 {
		t.Errorf("mosaicFactor(99999) = %v, want 512 (clamped)", got)
	}
}

func TestFisheyePowerNeverNegative(t *testing.T) {
	if got := fisheyePower(-200); got != 0 {
		t.Errorf("fisheyePower(-200) = %v, want 0", got)
	}
	if got := fisheyePower(0); got != 1 {
		t.Errorf("fisheyePower(0) = %v, want 1", got)
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-1) != 0 {
		t.Errorf("expected clamp01(-1) = 0")
	}
	if clamp01(2) != 1 {
		t.Errorf("expected clamp01(2) = 1")
	}
	if clamp01(0.5) != 0.5 {
		t.Errorf("expected clamp01(0.5) = 0.5")
	}
}

func TestPixelDimsRoundsAndFloorsAtOne(t *testing.T) {
	w, h := pixelDims(1)
	if w != 480 || h != 360 {
		t.Errorf("pixelDims(1) = (%d, %d), want (480, 360)", w, h)
	}
	w, h = pixelDims(0.001)
	if w < 1 || h < 1 {
		t.Errorf("pixelDims should never report less than one pixel, got (%d, %d)", w, h)
	}
}
