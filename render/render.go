// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package render

import "image"

// RotationStyle controls how a sprite's direction affects its draw
// transform. Normal rotates freely; LeftRight only ever mirrors; None
// ignores direction entirely.
type RotationStyle int

const (
	RotationStyleNormal RotationStyle = iota
	RotationStyleLeftRight
	RotationStyleNone
)

// Config carries the two draw-time knobs the host owns: P.config.scale
// (an integer output-resolution multiplier) and P.config.accurateFilters
// (pixel-accurate vs. CSS-approximate color/brightness compositing).
type Config struct {
	Scale           int
	AccurateFilters bool
}

// Filters is the seven-channel per-sprite effect record described in
// spec.md §3. Ghost is opacity-as-percent-removed; Brightness is additive;
// Color is a hue shift in 1/200ths of a turn; the remaining four are the
// shape-affecting effects.
type Filters struct {
	Ghost      float64
	Brightness float64
	Color      float64
	Mosaic     float64
	Pixelate   float64
	Whirl      float64
	Fisheye    float64
}

// LOD is a resolution-specific rasterization of a Costume: a decoded
// bitmap, usable directly for CPU sampling, and (via the texture package)
// cacheable as a GPU texture.
type LOD interface {
	Image() *image.NRGBA
}

// Costume is the opaque image source the core reads metadata from and
// requests rasterized LODs out of. Decoding and vector rasterization are
// an external collaborator's job; Costume only exposes the already
// decoded result at a requested scale.
type Costume interface {
	Width() float64
	Height() float64
	RotationCenterX() float64
	RotationCenterY() float64
	BitmapResolution() float64
	Scale() float64
	Get(desiredScale float64) LOD
}

// Sprite is the duck-typed sprite/stage surface spec.md §3 describes,
// resolved here as a tagged interface: Stage additionally implements
// isStage() so render.IsSprite can discriminate without reflection.
type Sprite interface {
	Costumes() []Costume
	CurrentCostumeIndex() int
	ScratchX() float64
	ScratchY() float64
	Direction() float64
	SpriteScale() float64
	RotationStyle() RotationStyle
	Visible() bool
	SpriteFilters() Filters
}

// Stage is a Sprite plus the fields only the stage itself carries: its
// z-ordered children (bottom to top, excluding the stage) and a zoom
// factor applied on top of Config.Scale.
type Stage interface {
	Sprite
	Children() []Sprite
	Zoom() float64
	isStage()
}

// IsSprite reports whether s is an ordinary sprite rather than the stage.
func IsSprite(s Sprite) bool {
	_, isStage := s.(Stage)
	return !isStage
}

// PenColor is the external pen-color model: components in [0,1] for the
// GPU backend, a CSS color string for the software backend.
type PenColor interface {
	ToParts() (r, g, b, a float64)
	ToCSS() string
}

// Surface is an output raster surface handle. Backends expose their own
// concrete type (an *image.NRGBA-backed canvas, or a GL framebuffer/
// texture pair); Surface is the common handle callers hold without
// depending on either backend package.
type Surface interface {
	Width() int
	Height() int
}

// SpriteRenderer draws one child (a Sprite or the Stage) onto its own
// output surface using whatever transform state is current.
type SpriteRenderer interface {
	Canvas() Surface
	DrawChild(child Sprite) error
}

// ProjectRenderer composites a whole stage: backdrop, pen layer, and
// z-ordered children, plus pen mutation and the four spatial queries.
type ProjectRenderer interface {
	SpriteRenderer

	Stage() Stage
	Init(root Stage) error
	DrawFrame() error
	OnStageFiltersChanged()
	Resize(scale float64) error

	PenLine(c PenColor, size, x1, y1, x2, y2 float64)
	PenDot(c PenColor, size, x, y float64)
	PenStamp(s Sprite) error
	PenClear()

	SpriteTouchesPoint(s Sprite, x, y float64) bool
	SpritesIntersect(a Sprite, others []Sprite) bool
	SpriteTouchesColor(s Sprite, color24 uint32) bool
	SpriteColorTouchesColor(s Sprite, spriteColor24, otherColor24 uint32) bool

	Close() error
}
