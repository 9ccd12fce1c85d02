// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package pencolor provides a concrete render.PenColor: a clamped RGBA
// color value exposing the toParts/toCSS pair the stage renderer's pen
// operations consume. It is a ready-made color for hosts to draw with; no
// other package in this module imports it, and production hosts may
// supply their own.
package pencolor

import "fmt"

// Color holds r, g, b, a as floats in [0,1]. All mutators clamp afterward.
type Color struct {
	R, G, B, A float64
}

var (
	Clear = New(0, 0, 0, 0)
	Black = New(0, 0, 0, 1)
	White = New(1, 1, 1, 1)
	Red   = New(1, 0, 0, 1)
	Green = New(0, 1, 0, 1)
	Blue  = New(0, 0, 1, 1)
)

// New constructs a clamped Color.
func New(r, g, b, a float64) *Color {
	c := &Color{r, g, b, a}
	c.Clamp()
	return c
}

// NewHex constructs a Color from a packed 0xRRGGBBAA value.
func NewHex(rgba8888 uint32) *Color {
	return New(
		float64((rgba8888>>24)&0xff)/255,
		float64((rgba8888>>16)&0xff)/255,
		float64((rgba8888>>8)&0xff)/255,
		float64(rgba8888&0xff)/255,
	)
}

// Clamp restricts every channel to [0,1] and returns the receiver.
func (c *Color) Clamp() *Color {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	c.R, c.G, c.B, c.A = clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)
	return c
}

// ToParts returns the r, g, b, a components, each in [0,1], for the GPU
// backend's vertex/uniform color uploads.
func (c *Color) ToParts() (r, g, b, a float64) {
	return c.R, c.G, c.B, c.A
}

// ToCSS returns an "rgba(r,g,b,a)" string for the software backend's 2D
// raster context.
func (c *Color) ToCSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.4f)",
		int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5), c.A)
}

// Packed24 returns the opaque 0xRRGGBB packing used by color-match queries.
func (c *Color) Packed24() uint32 {
	return uint32(int(c.R*255+0.5))<<16 | uint32(int(c.G*255+0.5))<<8 | uint32(int(c.B*255+0.5))
}
