// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"image/color"
	"testing"

	"github.com/FaZeKermit323/forkphorus/render"
)

func newTestRenderer() (*StageRenderer, *fakeStage) {
	backdrop := newRectCostume(480, 360, color.NRGBA{0, 0, 255, 255}) // solid blue stage
	stage := newFakeStage(backdrop)
	r := NewStageRenderer(render.Config{Scale: 1, AccurateFilters: true})
	r.Init(stage)
	return r, stage
}

func TestDrawFrameCompositesBackdropAndChild(t *testing.T) {
	r, stage := newTestRenderer()

	child := newFakeSprite(newSquareCostume(10, color.NRGBA{255, 0, 0, 255}))
	child.x, child.y = 0, 0
	stage.children = []render.Sprite{child}

	if err := r.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	img := r.output.Image()
	// Far from the child, the backdrop's blue should show through.
	cr, cg, cb, _ := img.At(5, 5).RGBA()
	if !(cr>>8 == 0 && cg>>8 == 0 && cb>>8 == 255) {
		t.Errorf("expected blue backdrop at corner, got (%d,%d,%d)", cr>>8, cg>>8, cb>>8)
	}
	// At the sprite's screen position (240,180), the red child should show.
	cr, cg, cb, _ = img.At(240, 180).RGBA()
	if !(cr>>8 == 255 && cg>>8 == 0 && cb>>8 == 0) {
		t.Errorf("expected red child at center, got (%d,%d,%d)", cr>>8, cg>>8, cb>>8)
	}
}

func TestDrawFrameSkipsInvisibleChildren(t *testing.T) {
	r, stage := newTestRenderer()

	child := newFakeSprite(newSquareCostume(10, color.NRGBA{255, 0, 0, 255}))
	child.visible = false
	stage.children = []render.Sprite{child}

	if err := r.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	img := r.output.Image()
	cr, _, cb, _ := img.At(240, 180).RGBA()
	if !(cr>>8 == 0 && cb>>8 == 255) {
		t.Errorf("invisible child should not draw, got backdrop-overridden pixel (%d, _, %d)", cr>>8, cb>>8)
	}
}

func TestResizeDefersShrinkUntilPenClear(t *testing.T) {
	r, _ := newTestRenderer()
	r.PenDot(redPenColor{}, 4, 0, 0)
	if !r.penDirty {
		t.Fatalf("expected penDirty after PenDot")
	}

	if err := r.Resize(2); err != nil {
		t.Fatalf("Resize grow: %v", err)
	}
	if r.pen.PixelScale() != 2 {
		t.Errorf("pen should grow immediately, got scale %v", r.pen.PixelScale())
	}

	r.PenDot(redPenColor{}, 4, 0, 0) // keep penDirty true
	if err := r.Resize(1); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	if r.pen.PixelScale() != 2 {
		t.Errorf("pen shrink should be deferred while dirty, got scale %v", r.pen.PixelScale())
	}

	r.PenClear()
	if r.pen.PixelScale() != 1 {
		t.Errorf("PenClear should commit deferred shrink, got scale %v", r.pen.PixelScale())
	}
}

type redPenColor struct{}

func (redPenColor) ToParts() (r, g, b, a float64) { return 1, 0, 0, 1 }
func (redPenColor) ToCSS() string                 { return "rgba(255,0,0,1.0000)" }

var _ render.PenColor = redPenColor{}
