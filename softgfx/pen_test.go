// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import "testing"

func TestPenDotPaintsOpaquePixelsAtCenter(t *testing.T) {
	r, _ := newTestRenderer()
	r.PenDot(redPenColor{}, 6, 0, 0)

	img := r.pen.Image()
	_, _, _, a := img.At(240, 180).RGBA()
	if a == 0 {
		t.Fatalf("expected opaque pixel at dot center")
	}
}

func TestPenLineConnectsEndpoints(t *testing.T) {
	r, _ := newTestRenderer()
	r.PenLine(redPenColor{}, 2, -50, 0, 50, 0)

	img := r.pen.Image()
	_, _, _, a1 := img.At(190, 180).RGBA() // near left endpoint, screen x = 240-50
	_, _, _, a2 := img.At(290, 180).RGBA() // near right endpoint, screen x = 240+50
	if a1 == 0 || a2 == 0 {
		t.Errorf("expected opaque pixels near both line endpoints, got a1=%d a2=%d", a1, a2)
	}
}

func TestPenClearRemovesMarks(t *testing.T) {
	r, _ := newTestRenderer()
	r.PenDot(redPenColor{}, 6, 0, 0)
	r.PenClear()

	img := r.pen.Image()
	_, _, _, a := img.At(240, 180).RGBA()
	if a != 0 {
		t.Errorf("expected pen surface empty after PenClear, got alpha %d", a)
	}
	if r.penDirty {
		t.Errorf("expected penDirty false after PenClear")
	}
}

func TestPenStampHonorsSpriteFilters(t *testing.T) {
	r, _ := newTestRenderer()
	child := newFakeSprite(newSquareCostume(10, nrgba(255, 0, 0, 255)))
	child.x, child.y = 0, 0
	child.filters.Ghost = 50

	if err := r.PenStamp(child); err != nil {
		t.Fatalf("PenStamp: %v", err)
	}
	_, _, _, a := r.pen.Image().At(240, 180).RGBA()
	if a == 0 {
		t.Errorf("expected stamped sprite to leave a mark on the pen surface")
	}
	if a == 0xffff {
		t.Errorf("expected ghost 50 to leave a translucent mark, got full alpha")
	}
	if !r.penDirty {
		t.Errorf("expected penDirty after PenStamp")
	}
}
