// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package softgfx is the self-contained software (CPU raster) backend:
// a render.ProjectRenderer built on plain image.NRGBA buffers, affine
// transforms from golang.org/x/image/draw, and a github.com/gogpu/gg
// context for the pen layer's vector primitives (dots, round-capped
// lines). Everything it does, the GPU backend (package glgfx) can also
// fall back to for queries it has no hardware advantage computing.
package softgfx

import (
	"image"

	"github.com/FaZeKermit323/forkphorus/render"
)

// Surface is a logical 480x360 (times pixelScale) ARGB raster owned by
// the software renderer. It implements render.Surface.
type Surface struct {
	img        *image.NRGBA
	pixelScale float64
}

// NewSurface allocates a surface sized for the given pixel scale (the
// product of config.scale and the stage's zoom).
func NewSurface(pixelScale float64) *Surface {
	s := &Surface{}
	s.resize(pixelScale)
	return s
}

func (s *Surface) resize(pixelScale float64) {
	w := int(480*pixelScale + 0.5)
	h := int(360*pixelScale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			s.pixelScale = pixelScale
			return
		}
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	s.pixelScale = pixelScale
}

// Width implements render.Surface.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height implements render.Surface.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Image exposes the backing buffer for compositing and readback.
func (s *Surface) Image() *image.NRGBA { return s.img }

// PixelScale is the effective logical-unit-to-pixel multiplier in effect
// (config.scale * stage zoom, or just config.scale for surfaces that
// don't track zoom independently).
func (s *Surface) PixelScale() float64 { return s.pixelScale }

// Clear resets every pixel to fully transparent.
func (s *Surface) Clear() {
	// Zeroing the pixel buffer is a fully-transparent NRGBA clear: all
	// four channels zero means alpha 0 regardless of RGB.
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
}

var _ render.Surface = (*Surface)(nil)
