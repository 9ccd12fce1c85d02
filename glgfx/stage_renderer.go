// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sirupsen/logrus"

	"github.com/FaZeKermit323/forkphorus/effect"
	"github.com/FaZeKermit323/forkphorus/render"
	"github.com/FaZeKermit323/forkphorus/softgfx"
	"github.com/FaZeKermit323/forkphorus/texture"
)

// StageRenderer is the accelerated ProjectRenderer: the stage backdrop,
// pen layer and every sprite are drawn on GL framebuffers. The pen layer
// is rasterized by its own pen-dot/pen-line programs straight into a
// fixed 480x360 framebuffer, independent of the sprite shader variants.
// An embedded software renderer replays every pen edit in parallel (the
// only CPU-readable copy of pen content) and answers every spatial
// query a GPU framebuffer readback wouldn't pay for, except the one the
// spec singles out: a shape-affecting spriteTouchesPoint, which reads
// back a one-off GPU render of just that sprite.
type StageRenderer struct {
	config   render.Config
	textures *texture.Cache
	comp     *SpriteCompositor

	output     *Framebuffer
	stageCache *Framebuffer
	pen        *Framebuffer

	stageCostume int
	stageDirty   bool
	pixelScale   float64

	penDotProg  *penProgram
	penLineProg *penProgram
	penQuadVAO  uint32
	penQuadVBO  uint32
	penLineVAO  uint32
	penLineVBO  uint32

	cpu *softgfx.StageRenderer
}

// NewStageRenderer constructs a GPU renderer at config.Scale. Must be
// called with a current GL context (see Context in context.go).
func NewStageRenderer(config render.Config) *StageRenderer {
	scale := float64(config.Scale)
	if scale <= 0 {
		scale = 1
	}
	w, h := pixelDims(scale)

	r := &StageRenderer{
		config:       config,
		textures:     texture.New(deleteTexture),
		output:       newFramebuffer(w, h),
		stageCache:   newFramebuffer(w, h),
		pen:          newFramebuffer(stageWidth, stageHeight),
		stageCostume: -1,
		pixelScale:   scale,
		cpu:          softgfx.NewStageRenderer(config),
	}
	r.comp = NewSpriteCompositor(r.output, r.textures)
	r.initPenPrograms()
	return r
}

func (r *StageRenderer) initPenPrograms() {
	dotProg, err := newPenProgram(penDotVertexSource, penDotFragmentSource, []string{"u_center", "u_radius", "u_color"})
	if err != nil {
		logrus.WithError(err).Fatal("glgfx: pen-dot program failed to compile")
	}
	r.penDotProg = dotProg

	lineProg, err := newPenProgram(penLineVertexSource, penLineFragmentSource, []string{"u_color"})
	if err != nil {
		logrus.WithError(err).Fatal("glgfx: pen-line program failed to compile")
	}
	r.penLineProg = lineProg

	quad := [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	gl.GenVertexArrays(1, &r.penQuadVAO)
	gl.GenBuffers(1, &r.penQuadVBO)
	gl.BindVertexArray(r.penQuadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.penQuadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*int(unsafe.Sizeof(quad[0])), gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(unsafe.Sizeof(quad[0])), 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &r.penLineVAO)
	gl.GenBuffers(1, &r.penLineVBO)
	gl.BindVertexArray(r.penLineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.penLineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 2*int(unsafe.Sizeof([2]float32{})), nil, gl.STREAM_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(unsafe.Sizeof([2]float32{})), 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// pixelDims mirrors softgfx.Surface's sizing: 480/360 logical units
// times pixelScale, rounded, floored at 1.
func pixelDims(pixelScale float64) (w, h int) {
	w = int(stageWidth*pixelScale + 0.5)
	h = int(stageHeight*pixelScale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Canvas implements render.SpriteRenderer.
func (r *StageRenderer) Canvas() render.Surface { return r.output }

// Stage implements render.ProjectRenderer.
func (r *StageRenderer) Stage() render.Stage { return r.cpu.Stage() }

// Init attaches root to both the GPU frame assembly and the CPU query
// fallback.
func (r *StageRenderer) Init(root render.Stage) error {
	if err := r.cpu.Init(root); err != nil {
		return err
	}
	r.stageCostume = -1
	logrus.WithField("scale", r.pixelScale).Debug("glgfx: stage renderer initialized")
	return nil
}

// DrawChild implements render.SpriteRenderer against the output
// framebuffer. Callers drawing anywhere else (the backdrop cache) bind
// their own target first and call this directly.
func (r *StageRenderer) DrawChild(child render.Sprite) error {
	return r.comp.DrawChild(child)
}

// DrawFrame composites backdrop, pen, then children bottom to top, per
// spec.md's GPU drawFrame order. The backdrop is only re-rasterized when
// the stage's costume index has changed; the pen layer is its own
// framebuffer, kept current by PenDot/PenLine/PenStamp/PenClear, and is
// blitted with its V axis flipped to land right-side up over the stage.
func (r *StageRenderer) DrawFrame() error {
	root := r.cpu.Stage()
	if root == nil {
		return nil
	}

	idx := root.CurrentCostumeIndex()
	if idx != r.stageCostume || r.stageDirty {
		r.stageCache.Bind()
		r.stageCache.Clear()
		if err := r.comp.DrawChild(root); err != nil {
			return err
		}
		r.stageCostume = idx
		r.stageDirty = false
	}

	r.output.Bind()
	r.output.Clear()
	if err := r.comp.BlitLayer(r.stageCache.Texture()); err != nil {
		return err
	}
	if err := r.comp.BlitLayerFlipped(r.pen.Texture()); err != nil {
		return err
	}
	if err := r.comp.DrawObjects(root.Children()); err != nil {
		return err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// OnStageFiltersChanged marks the cached backdrop stale on both the GPU
// frame assembly and the CPU query fallback.
func (r *StageRenderer) OnStageFiltersChanged() {
	r.cpu.OnStageFiltersChanged()
	r.stageDirty = true
}

// Resize changes the pixel scale, following the stage's current zoom the
// same way softgfx.StageRenderer.Resize does; the CPU side owns that
// arithmetic, so this just mirrors its result into the GPU framebuffers.
// The pen framebuffer stays fixed at stageWidth x stageHeight regardless
// of scale, per spec.md's GPU stage renderer.
func (r *StageRenderer) Resize(scale float64) error {
	if err := r.cpu.Resize(scale); err != nil {
		return err
	}
	newScale := r.cpu.PixelScale()
	if newScale == r.pixelScale {
		return nil
	}
	r.pixelScale = newScale

	w, h := pixelDims(newScale)
	r.output.resize(w, h)
	r.stageCache.resize(w, h)
	r.stageCostume = -1
	return nil
}

// PenDot rasterizes a filled circle straight into the pen framebuffer
// via penDotProg, and replays the same call on the CPU renderer so query
// operations keep seeing pen content.
func (r *StageRenderer) PenDot(c render.PenColor, size, x, y float64) {
	r.cpu.PenDot(c, size, x, y)

	r.pen.Bind()
	r.penDotProg.Use()
	radius := size / 2
	if loc, err := r.penDotProg.Uniform("u_center"); err == nil {
		gl.Uniform2f(loc, float32(x/240), float32(y/180))
	}
	if loc, err := r.penDotProg.Uniform("u_radius"); err == nil {
		gl.Uniform2f(loc, float32(radius/240), float32(radius/180))
	}
	r.setPenColor(r.penDotProg, c)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(r.penQuadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// PenLine rasterizes a GL_LINES primitive straight into the pen
// framebuffer via penLineProg, per spec.md's GPU pen-line description.
// GL_LINES has no round caps and core-profile line width beyond 1px is
// driver-dependent, so this is a visual approximation; it never feeds a
// query, which always reads the CPU pen surface instead.
func (r *StageRenderer) PenLine(c render.PenColor, size, x1, y1, x2, y2 float64) {
	r.cpu.PenLine(c, size, x1, y1, x2, y2)

	r.pen.Bind()
	r.penLineProg.Use()
	r.setPenColor(r.penLineProg, c)

	verts := [2][2]float32{{float32(x1), float32(y1)}, {float32(x2), float32(y2)}}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.penLineVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*int(unsafe.Sizeof(verts[0])), gl.Ptr(&verts[0]))

	gl.LineWidth(float32(size))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(r.penLineVAO)
	gl.DrawArrays(gl.LINES, 0, 2)
	gl.BindVertexArray(0)
}

func (r *StageRenderer) setPenColor(p *penProgram, c render.PenColor) {
	red, green, blue, alpha := c.ToParts()
	if loc, err := p.Uniform("u_color"); err == nil {
		gl.Uniform4f(loc, float32(red), float32(green), float32(blue), float32(alpha))
	}
}

// PenStamp composites sprite onto the pen framebuffer through the same
// per-sprite draw path DrawChild uses (so its effects are honored), and
// replays the stamp on the CPU renderer for query purposes.
func (r *StageRenderer) PenStamp(sprite render.Sprite) error {
	if err := r.cpu.PenStamp(sprite); err != nil {
		return err
	}
	r.pen.Bind()
	return r.comp.DrawChild(sprite)
}

// PenClear clears the pen framebuffer to transparent and replays the
// clear on the CPU renderer.
func (r *StageRenderer) PenClear() {
	r.cpu.PenClear()
	r.pen.Bind()
	r.pen.Clear()
}

// SpriteTouchesPoint delegates to the software backend unless s's
// filters are shape-affecting, in which case it renders s alone into a
// scratch framebuffer with the shape-only variant and reads back one
// pixel, per spec.md's GPU query description.
func (r *StageRenderer) SpriteTouchesPoint(s render.Sprite, x, y float64) bool {
	if !effect.ShapeAffecting(s.SpriteFilters()) {
		return r.cpu.SpriteTouchesPoint(s, x, y)
	}
	return r.spriteTouchesPointReadback(s, x, y)
}

func (r *StageRenderer) spriteTouchesPointReadback(s render.Sprite, x, y float64) bool {
	scratch := newFramebuffer(stageWidth, stageHeight)
	defer scratch.Delete()

	scratch.Bind()
	scratch.Clear()
	if err := r.comp.DrawChildShapeOnly(s); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return false
	}

	// GPU readback origin: (240+x, 180+y), counted from the bottom-left,
	// unlike the (240+x, 180-y) convention elsewhere (see spec.md design
	// note on Y-flip/readback origin).
	px := int32(stageWidth/2 + x)
	py := int32(stageHeight/2 + y)
	if px < 0 || px >= stageWidth || py < 0 || py >= stageHeight {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return false
	}

	var pixel [4]uint8
	gl.ReadPixels(px, py, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return pixel[3] != 0
}

// SpritesIntersect, SpriteTouchesColor and SpriteColorTouchesColor always
// delegate to the software backend: they need the rest of the stage
// composited alongside the query sprite, which is more straightforward
// on the CPU and isn't in the hot path (spec.md §4.6).
func (r *StageRenderer) SpritesIntersect(a render.Sprite, others []render.Sprite) bool {
	return r.cpu.SpritesIntersect(a, others)
}

func (r *StageRenderer) SpriteTouchesColor(s render.Sprite, color24 uint32) bool {
	return r.cpu.SpriteTouchesColor(s, color24)
}

func (r *StageRenderer) SpriteColorTouchesColor(s render.Sprite, spriteColor24, otherColor24 uint32) bool {
	return r.cpu.SpriteColorTouchesColor(s, spriteColor24, otherColor24)
}

// Close releases every GL object this renderer owns.
func (r *StageRenderer) Close() error {
	r.comp.Close()
	r.output.Delete()
	r.stageCache.Delete()
	r.pen.Delete()
	r.penDotProg.Delete()
	r.penLineProg.Delete()
	gl.DeleteBuffers(1, &r.penQuadVBO)
	gl.DeleteVertexArrays(1, &r.penQuadVAO)
	gl.DeleteBuffers(1, &r.penLineVBO)
	gl.DeleteVertexArrays(1, &r.penLineVAO)
	return r.cpu.Close()
}

var _ render.ProjectRenderer = (*StageRenderer)(nil)
