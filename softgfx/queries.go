// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/FaZeKermit323/forkphorus/render"
)

// SpriteTouchesPoint reports whether (x, y), in stage coordinates, lands
// on an opaque pixel of s's current costume after its draw transform,
// without rasterizing anything: it is a pure bounds-and-sample test
// against the source LOD, per spec.md §6.1.
func (r *StageRenderer) SpriteTouchesPoint(s render.Sprite, x, y float64) bool {
	costumes := s.Costumes()
	idx := s.CurrentCostumeIndex()
	if idx < 0 || idx >= len(costumes) {
		return false
	}
	costume := costumes[idx]
	scale := objectScale(costume, s)
	lod := costume.Get(scale)
	m := childTransform(s, costume, lod.Image().Bounds().Dx(), lod.Image().Bounds().Dy())

	inv, ok := m.Invert()
	if !ok {
		return false
	}
	screenX, screenY := 240+x, 180-y
	srcX, srcY := inv.Apply(screenX, screenY)

	img := lod.Image()
	b := img.Bounds()
	px, py := int(srcX), int(srcY)
	if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
		return false
	}
	_, _, _, a := img.At(px, py).RGBA()
	return a != 0
}

// scratchSurfaceSize is the pixel scale of the working surfaces used by
// SpritesIntersect: full stage resolution at scale 1 is enough
// precision for a collision test and keeps per-query allocation small.
const scratchSurfaceSize = 1

// SpritesIntersect reports whether a's silhouette overlaps any sprite in
// others, using axis-aligned bounding boxes first (cheap) and a
// source-in style alpha composite second (exact), per spec.md §6.2. Each
// exact test allocates its own working surfaces.
func (r *StageRenderer) SpritesIntersect(a render.Sprite, others []render.Sprite) bool {
	aCostumes := a.Costumes()
	aIdx := a.CurrentCostumeIndex()
	if aIdx < 0 || aIdx >= len(aCostumes) {
		return false
	}
	aCostume := aCostumes[aIdx]
	aLOD := aCostume.Get(objectScale(aCostume, a))
	aMinX, aMinY, aMaxX, aMaxY := rotatedBounds(a, aCostume, aLOD)

	for _, b := range others {
		if !b.Visible() {
			continue
		}
		bCostumes := b.Costumes()
		bIdx := b.CurrentCostumeIndex()
		if bIdx < 0 || bIdx >= len(bCostumes) {
			continue
		}
		bCostume := bCostumes[bIdx]
		bLOD := bCostume.Get(objectScale(bCostume, b))
		bMinX, bMinY, bMaxX, bMaxY := rotatedBounds(b, bCostume, bLOD)

		if !rectOverlaps(aMinX, aMinY, aMaxX, aMaxY, bMinX, bMinY, bMaxX, bMaxY) {
			continue
		}
		if spritesOverlapExact(a, aCostume, b, bCostume) {
			return true
		}
	}
	return false
}

// spritesOverlapExact draws a into a scratch surface and b into a second
// one, composites b onto a with source-in (keep only pixels where the
// destination is already opaque) and checks whether any pixel in the
// result is opaque.
func spritesOverlapExact(a render.Sprite, aCostume render.Costume, b render.Sprite, bCostume render.Costume) bool {
	surface := NewSurface(scratchSurfaceSize)
	comp := NewSpriteCompositor(surface, true)

	if err := comp.drawChildOpts(a, drawOpts{op: xdraw.Src}); err != nil {
		return false
	}
	bSurface := NewSurface(scratchSurfaceSize)
	if err := NewSpriteCompositor(bSurface, true).DrawChild(b); err != nil {
		return false
	}
	compositeSourceIn{}.Draw(surface.img, surface.img.Bounds(), bSurface.img, image.Point{})

	return anyOpaque(surface.img)
}

// compositeSourceIn has the Draw signature of golang.org/x/image/draw.Op
// and applies the Porter-Duff source-in rule: dst keeps src's color but
// only where dst already had coverage, i.e. the overlap region of the
// two shapes.
type compositeSourceIn struct{}

func (compositeSourceIn) Draw(dst xdraw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	b := dst.Bounds().Intersect(r)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, da := dst.At(x, y).RGBA()
			if da == 0 {
				continue
			}
			sx, sy := x-r.Min.X+sp.X, y-r.Min.Y+sp.Y
			sr, sg, sb, sa := src.At(sx, sy).RGBA()
			if sa == 0 {
				dst.Set(x, y, color.Transparent)
				continue
			}
			dst.Set(x, y, color.RGBA64{R: uint16(sr), G: uint16(sg), B: uint16(sb), A: uint16(sa)})
		}
	}
}

// anyOpaque reports whether img has any non-fully-transparent pixel.
func anyOpaque(img *image.NRGBA) bool {
	pix := img.Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			return true
		}
	}
	return false
}

// renderBackdrop draws the stage backdrop, the pen layer, and every
// visible child except exclude onto a fresh surface at the output's
// pixel scale — the "rest of the world" a touching-color query compares
// a sprite's own silhouette against.
func (r *StageRenderer) renderBackdrop(exclude render.Sprite) *Surface {
	backdrop := NewSurface(r.output.PixelScale())
	comp := NewSpriteCompositor(backdrop, r.accurateFilters)
	comp.Reset(r.output.PixelScale())
	if r.root != nil {
		_ = comp.drawChildOpts(r.root, drawOpts{op: xdraw.Src})
	}
	stddraw.Draw(backdrop.img, backdrop.img.Bounds(), r.pen.img, r.pen.img.Bounds().Min, stddraw.Over)
	if r.root != nil {
		for _, child := range r.root.Children() {
			if child == exclude || !child.Visible() {
				continue
			}
			_ = comp.DrawChild(child)
		}
	}
	return backdrop
}

// SpriteTouchesColor reports whether s, drawn without its own color
// effects (spec.md §6.3: ghost/brightness/color are bypassed for this
// query; this backend draws no shape effects), overlaps a pixel anywhere on the stage
// whose packed 0xRRGGBB equals color24.
func (r *StageRenderer) SpriteTouchesColor(s render.Sprite, color24 uint32) bool {
	backdrop := r.renderBackdrop(s)

	sprite := NewSurface(r.output.PixelScale())
	sComp := NewSpriteCompositor(sprite, r.accurateFilters)
	if err := sComp.drawChildOpts(s, drawOpts{noEffects: true, op: xdraw.Over}); err != nil {
		return false
	}

	return anyPixelMatchesUnderOpaque(sprite.img, backdrop.img, color24)
}

// SpriteColorTouchesColor reports whether any pixel of s matching
// spriteColor24 overlaps a stage pixel matching otherColor24, per
// spec.md §6.4: the strictest and least commonly implemented query.
func (r *StageRenderer) SpriteColorTouchesColor(s render.Sprite, spriteColor24, otherColor24 uint32) bool {
	backdrop := r.renderBackdrop(s)
	maskOutOtherColor(backdrop.img, otherColor24)

	sprite := NewSurface(r.output.PixelScale())
	sComp := NewSpriteCompositor(sprite, r.accurateFilters)
	if err := sComp.DrawChild(s); err != nil {
		return false
	}
	maskOutOtherColor(sprite.img, spriteColor24)

	return imagesOverlapOpaque(sprite.img, backdrop.img)
}

// anyPixelMatchesUnderOpaque reports whether any position opaque in
// sprite has a backdrop pixel whose packed 0xRRGGBB equals color24.
func anyPixelMatchesUnderOpaque(sprite, backdrop *image.NRGBA, color24 uint32) bool {
	wantR := uint8(color24 >> 16)
	wantG := uint8(color24 >> 8)
	wantB := uint8(color24)

	sp, bp := sprite.Pix, backdrop.Pix
	n := len(sp)
	if len(bp) < n {
		n = len(bp)
	}
	for i := 0; i+3 < n; i += 4 {
		if sp[i+3] == 0 {
			continue
		}
		if bp[i+3] == 0 {
			continue
		}
		if bp[i] == wantR && bp[i+1] == wantG && bp[i+2] == wantB {
			return true
		}
	}
	return false
}

// maskOutOtherColor zeroes the alpha of every pixel not matching color24,
// leaving only the pixels relevant to a color-vs-color comparison.
func maskOutOtherColor(img *image.NRGBA, color24 uint32) {
	wantR := uint8(color24 >> 16)
	wantG := uint8(color24 >> 8)
	wantB := uint8(color24)
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != wantR || pix[i+1] != wantG || pix[i+2] != wantB {
			pix[i+3] = 0
		}
	}
}

// imagesOverlapOpaque reports whether a and b (same dimensions) have any
// pixel position where both are opaque.
func imagesOverlapOpaque(a, b *image.NRGBA) bool {
	pa, pb := a.Pix, b.Pix
	n := len(pa)
	if len(pb) < n {
		n = len(pb)
	}
	for i := 3; i < n; i += 4 {
		if pa[i] != 0 && pb[i] != 0 {
			return true
		}
	}
	return false
}
