// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/FaZeKermit323/forkphorus/matrix"
	"github.com/FaZeKermit323/forkphorus/render"
)

// SpriteCompositor draws sprites (or the stage) onto an owned Surface,
// per spec.md §4.3. It is deliberately small and stateless beyond the
// Surface and its current pixel scale; StageRenderer composes several of
// these for the stage/pen/sprite layers.
type SpriteCompositor struct {
	surface         *Surface
	accurateFilters bool
}

// NewSpriteCompositor wraps surface for per-child drawing.
func NewSpriteCompositor(surface *Surface, accurateFilters bool) *SpriteCompositor {
	return &SpriteCompositor{surface: surface, accurateFilters: accurateFilters}
}

// Canvas implements render.SpriteRenderer.
func (c *SpriteCompositor) Canvas() render.Surface { return c.surface }

// Reset resizes the surface to 480*scale x 360*scale logical pixels,
// reallocating only if the dimensions actually changed; an unchanged
// size is just cleared.
func (c *SpriteCompositor) Reset(pixelScale float64) {
	before := c.surface.img
	c.surface.resize(pixelScale)
	if c.surface.img != before {
		return
	}
	c.surface.Clear()
}

// DrawObjects draws children in order, skipping invisible ones.
func (c *SpriteCompositor) DrawObjects(children []render.Sprite) error {
	for _, child := range children {
		if !child.Visible() {
			continue
		}
		if err := c.DrawChild(child); err != nil {
			return err
		}
	}
	return nil
}

// DrawChild implements the per-child algorithm of spec.md §4.3.
func (c *SpriteCompositor) DrawChild(child render.Sprite) error {
	return c.drawChildOpts(child, drawOpts{op: xdraw.Over})
}

// drawOpts controls the two deviations queries need from an ordinary
// draw: noEffects (skip ghost/color/brightness entirely, used by
// spriteTouchesColor) and a non-default composite op (xdraw.Src, used
// where a backdrop or query layer is drawn first and should replace
// rather than blend).
type drawOpts struct {
	noEffects bool
	op        xdraw.Op
}

func (c *SpriteCompositor) drawChildOpts(child render.Sprite, opts drawOpts) error {
	costumes := child.Costumes()
	idx := child.CurrentCostumeIndex()
	if idx < 0 || idx >= len(costumes) {
		return nil // missing costume: silently skipped (spec.md §7)
	}
	costume := costumes[idx]

	scale := objectScale(costume, child)
	destW := costume.Width() * scale
	destH := costume.Height() * scale
	if destW < 1 || destH < 1 {
		return nil // degenerate geometry: silently skipped (spec.md §7)
	}

	lod := costume.Get(scale)
	srcImg := lod.Image()
	b := srcImg.Bounds()
	if b.Empty() {
		return nil
	}

	m := childTransform(child, costume, b.Dx(), b.Dy())
	if pixelScale := c.surface.PixelScale(); pixelScale != 1 {
		m.MultiplyLeft(matrix.Scaling(pixelScale, pixelScale))
	}

	filtered := srcImg
	if !opts.noEffects {
		filtered = applyFilters(srcImg, child.SpriteFilters(), c.accurateFilters, opts.noEffects)
	}

	v := m.Values()
	s2d := f64.Aff3{v[0], v[1], v[2], v[3], v[4], v[5]}
	xdraw.NearestNeighbor.Transform(c.surface.img, s2d, filtered, b, opts.op, nil)
	return nil
}
