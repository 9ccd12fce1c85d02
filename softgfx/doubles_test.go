// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"image"
	"image/color"

	"github.com/FaZeKermit323/forkphorus/render"
)

// fakeLOD is a render.LOD over a plain in-memory bitmap.
type fakeLOD struct {
	img *image.NRGBA
}

func (f *fakeLOD) Image() *image.NRGBA { return f.img }

func nrgba(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// solidLOD builds a w x h LOD filled with c.
func solidLOD(w, h int, c color.NRGBA) *fakeLOD {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return &fakeLOD{img: img}
}

// fakeCostume is a render.Costume backed by a single fixed-size LOD,
// ignoring the requested scale (good enough for deterministic tests).
type fakeCostume struct {
	width, height     float64
	rotCenterX        float64
	rotCenterY        float64
	bitmapResolution  float64
	scale             float64
	lod               render.LOD
}

func (c *fakeCostume) Width() float64            { return c.width }
func (c *fakeCostume) Height() float64           { return c.height }
func (c *fakeCostume) RotationCenterX() float64  { return c.rotCenterX }
func (c *fakeCostume) RotationCenterY() float64  { return c.rotCenterY }
func (c *fakeCostume) BitmapResolution() float64 { return c.bitmapResolution }
func (c *fakeCostume) Scale() float64            { return c.scale }
func (c *fakeCostume) Get(float64) render.LOD    { return c.lod }

// newSquareCostume builds a costume whose costume-space size matches its
// LOD pixel size exactly (bitmapResolution 1, scale 1), centered at its
// own middle, so its draw rect is easy to reason about in tests.
func newSquareCostume(size int, c color.NRGBA) *fakeCostume {
	return newRectCostume(size, size, c)
}

// newRectCostume is newSquareCostume generalized to independent width and
// height, used for the stage backdrop (480x360).
func newRectCostume(w, h int, c color.NRGBA) *fakeCostume {
	return &fakeCostume{
		width:            float64(w),
		height:           float64(h),
		rotCenterX:       float64(w) / 2,
		rotCenterY:       float64(h) / 2,
		bitmapResolution: 1,
		scale:            1,
		lod:              solidLOD(w, h, c),
	}
}

// fakeSprite is a render.Sprite with directly settable fields.
type fakeSprite struct {
	costumes      []render.Costume
	costumeIndex  int
	x, y          float64
	direction     float64
	spriteScale   float64
	rotationStyle render.RotationStyle
	visible       bool
	filters       render.Filters
}

func newFakeSprite(costume render.Costume) *fakeSprite {
	return &fakeSprite{
		costumes:      []render.Costume{costume},
		direction:     90,
		spriteScale:   1,
		rotationStyle: render.RotationStyleNormal,
		visible:       true,
	}
}

func (s *fakeSprite) Costumes() []render.Costume      { return s.costumes }
func (s *fakeSprite) CurrentCostumeIndex() int        { return s.costumeIndex }
func (s *fakeSprite) ScratchX() float64               { return s.x }
func (s *fakeSprite) ScratchY() float64               { return s.y }
func (s *fakeSprite) Direction() float64              { return s.direction }
func (s *fakeSprite) SpriteScale() float64            { return s.spriteScale }
func (s *fakeSprite) RotationStyle() render.RotationStyle { return s.rotationStyle }
func (s *fakeSprite) Visible() bool                   { return s.visible }
func (s *fakeSprite) SpriteFilters() render.Filters   { return s.filters }

// fakeStage is a render.Stage: a sprite (the backdrop) plus children.
type fakeStage struct {
	fakeSprite
	children []render.Sprite
	zoom     float64
}

func newFakeStage(backdrop render.Costume) *fakeStage {
	st := &fakeStage{zoom: 1}
	st.costumes = []render.Costume{backdrop}
	st.visible = true
	st.spriteScale = 1
	st.rotationStyle = render.RotationStyleNone
	return st
}

func (s *fakeStage) Children() []render.Sprite { return s.children }
func (s *fakeStage) Zoom() float64             { return s.zoom }
func (s *fakeStage) isStage()                  {}

var (
	_ render.Costume = (*fakeCostume)(nil)
	_ render.Sprite  = (*fakeSprite)(nil)
	_ render.Stage   = (*fakeStage)(nil)
)
