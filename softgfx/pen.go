// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/FaZeKermit323/forkphorus/render"
)

// penShape rasterizes a filled circle or a round-capped stroked line
// into an alpha mask using a throwaway gg.Context, the way spec.md §9's
// "2D raster dependency" note describes filled arcs and round-capped
// strokes being an external raster API's job.
func penShape(w, h int, draw func(ctx *gg.Context)) *image.Alpha {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	ctx := gg.NewContext(w, h)
	ctx.SetRGBA(1, 1, 1, 1)
	draw(ctx)

	src := ctx.Image()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			mask.SetAlpha(x, y, color.Alpha{A: uint8(a >> 8)})
		}
	}
	return mask
}

// penDotMask rasterizes a filled circle of the given diameter, padded by
// two pixels on each side for the antialiased edge.
func penDotMask(diameter float64) (*image.Alpha, int) {
	r := diameter / 2
	pad := int(math.Ceil(r)) + 2
	size := pad*2 + 1
	return penShape(size, size, func(ctx *gg.Context) {
		ctx.DrawCircle(float64(pad), float64(pad), r)
		ctx.Fill()
	}), pad
}

// penLineMask rasterizes a round-capped stroke from (0,0) to (dx,dy) with
// the given width. The start point sits at the returned offsets: pad plus
// the stroke's extent toward negative x or y, so the whole stroke and its
// round caps (which extend width/2 past each endpoint) stay inside the
// mask bounds.
func penLineMask(dx, dy, width float64) (*image.Alpha, int, int) {
	pad := int(math.Ceil(width/2)) + 2
	offX := pad + int(math.Ceil(math.Max(0, -dx)))
	offY := pad + int(math.Ceil(math.Max(0, -dy)))
	w := int(math.Ceil(math.Abs(dx))) + pad*2
	h := int(math.Ceil(math.Abs(dy))) + pad*2
	mask := penShape(w, h, func(ctx *gg.Context) {
		ctx.SetLineWidth(width)
		ctx.SetLineCap(gg.LineCapRound)
		x0, y0 := float64(offX), float64(offY)
		ctx.MoveTo(x0, y0)
		ctx.LineTo(x0+dx, y0+dy)
		ctx.Stroke()
	})
	return mask, offX, offY
}

// PenClear clears the pen surface to fully transparent. It also commits
// any shrink deferred by Resize since the surface is, by definition,
// empty again afterward.
func (r *StageRenderer) PenClear() {
	r.pen.Clear()
	r.commitDeferredShrink()
	r.penDirty = false
}

// PenDot fills a circle of the given diameter centered at (x, y) in
// stage coordinates with color.
func (r *StageRenderer) PenDot(c render.PenColor, size, x, y float64) {
	pixelScale := r.pen.PixelScale()
	cx, cy := 240+x, 180-y
	mask, pad := penDotMask(size * pixelScale)
	r.blitPenMask(mask, cx*pixelScale-float64(pad), cy*pixelScale-float64(pad), c)
	r.penDirty = true
}

// PenLine strokes a round-capped line of the given width from (x1,y1) to
// (x2,y2). When zoom is 1 and size is close to an odd integer, both
// endpoints are nudged by -0.5 on each axis so the stroke lands exactly
// on a pixel row/column, matching Scratch's odd-width line convention.
func (r *StageRenderer) PenLine(c render.PenColor, size, x1, y1, x2, y2 float64) {
	pixelScale := r.pen.PixelScale()
	rem := math.Mod(size, 2)
	if pixelScale == 1 && rem > 0.5 && rem < 1.5 {
		x1 -= 0.5
		y1 -= 0.5
		x2 -= 0.5
		y2 -= 0.5
	}

	sx1, sy1 := (240+x1)*pixelScale, (180-y1)*pixelScale
	sx2, sy2 := (240+x2)*pixelScale, (180-y2)*pixelScale

	mask, padX, padY := penLineMask(sx2-sx1, sy2-sy1, size*pixelScale)
	r.blitPenMask(mask, sx1-float64(padX), sy1-float64(padY), c)
	r.penDirty = true
}

func (r *StageRenderer) blitPenMask(mask *image.Alpha, originX, originY float64, c render.PenColor) {
	rr, gg_, bb, aa := c.ToParts()
	col := color.NRGBA{
		R: uint8(rr*255 + 0.5),
		G: uint8(gg_*255 + 0.5),
		B: uint8(bb*255 + 0.5),
		A: uint8(aa*255 + 0.5),
	}
	dst := r.pen.Image()
	mb := mask.Bounds()
	dr := image.Rect(int(originX+0.5), int(originY+0.5), int(originX+0.5)+mb.Dx(), int(originY+0.5)+mb.Dy())
	stddraw.DrawMask(dst, dr, &image.Uniform{C: col}, image.Point{}, mask, mb.Min, stddraw.Over)
}

// PenStamp composites sprite onto the pen surface through the same draw
// path as an ordinary sprite draw, so its filters are honored.
func (r *StageRenderer) PenStamp(sprite render.Sprite) error {
	comp := NewSpriteCompositor(r.pen, r.accurateFilters)
	err := comp.DrawChild(sprite)
	if err == nil {
		r.penDirty = true
	}
	return err
}
