// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"image"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/FaZeKermit323/forkphorus/matrix"
	"github.com/FaZeKermit323/forkphorus/render"
	"github.com/FaZeKermit323/forkphorus/texture"
)

// quadVertex is one corner of a sprite's unit quad: position in
// source-LOD pixel space, texture coordinate in [0,1].
type quadVertex struct {
	x, y float32
	u, v float32
}

// SpriteCompositor draws sprites onto the current GL framebuffer using a
// shader Variant selected by which (non-ghost) effects are active,
// and textures served from a shared texture.Cache.
type SpriteCompositor struct {
	variants *VariantCache
	textures *texture.Cache

	vao, vbo uint32

	canvas     render.Surface
	projection *matrix.Matrix3
}

// stageWidth and stageHeight are the stage's logical dimensions. The
// vertex shader's projection always maps this fixed logical space to
// clip space; higher pixelScale is expressed purely as a bigger
// viewport/framebuffer, the same way a retina display renders the same
// logical layout at a denser resolution rather than a wider one.
const (
	stageWidth  = 480
	stageHeight = 360
)

// NewSpriteCompositor builds a compositor drawing onto canvas. textures
// is shared across every compositor in a StageRenderer so a LOD uploaded
// for the stage backdrop is reused for a sprite costume pointing at the
// same bitmap.
func NewSpriteCompositor(canvas render.Surface, textures *texture.Cache) *SpriteCompositor {
	c := &SpriteCompositor{
		variants:   NewVariantCache(),
		textures:   textures,
		canvas:     canvas,
		projection: matrix.Projection(stageWidth, stageHeight),
	}
	gl.GenVertexArrays(1, &c.vao)
	gl.GenBuffers(1, &c.vbo)
	return c
}

// Canvas implements render.SpriteRenderer.
func (c *SpriteCompositor) Canvas() render.Surface { return c.canvas }

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

// DrawChild implements render.SpriteRenderer: selects the shader variant
// for child's active (non-ghost) effects, uploads its current LOD to
// a texture (through the shared cache), and issues one textured quad draw.
func (c *SpriteCompositor) DrawChild(child render.Sprite) error {
	return c.drawChild(child, activeDefines(child.SpriteFilters()))
}

// DrawChildShapeOnly draws child with its shape-affecting effects
// (mosaic/pixelate/whirl/fisheye), dropping brightness and color. This is
// the spatial-query readback path's draw: only the resulting alpha is
// read back, so brightness and color would be wasted work. Ghost, which
// every variant applies, still scales that alpha.
func (c *SpriteCompositor) DrawChildShapeOnly(child render.Sprite) error {
	return c.drawChild(child, shapeDefines(child.SpriteFilters()))
}

func (c *SpriteCompositor) drawChild(child render.Sprite, defines []string) error {
	costumes := child.Costumes()
	idx := child.CurrentCostumeIndex()
	if idx < 0 || idx >= len(costumes) {
		return nil
	}
	costume := costumes[idx]

	scale := costumeScale(costume, child)
	if costume.Width()*scale < 1 || costume.Height()*scale < 1 {
		return nil
	}

	lod := costume.Get(scale)
	img := lod.Image()
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	filters := child.SpriteFilters()
	variant, err := c.variants.Get(defines)
	if err != nil {
		return err
	}
	variant.Use()

	texName := c.textures.Get(lod, func() uint32 { return uploadTexture(img) })
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texName)
	if loc, err := variant.Uniform("u_texture"); err == nil {
		gl.Uniform1i(loc, 0)
	}

	m := childTransform(child, costume, b.Dx(), b.Dy())
	uploadMatrix(variant, "u_matrix", m)
	uploadMatrix(variant, "u_projection", c.projection)

	if loc, err := variant.Uniform("u_texSize"); err == nil {
		gl.Uniform2f(loc, float32(b.Dx()), float32(b.Dy()))
	}
	setFilterUniforms(variant, filters)

	c.drawQuad(b.Dx(), b.Dy())
	return nil
}

// BlitLayer draws tex, a full stageWidth x stageHeight color target,
// directly onto the canvas with no effects applied. Used to composite
// the cached backdrop onto the frame's output framebuffer each draw.
func (c *SpriteCompositor) BlitLayer(tex uint32) error {
	return c.blitLayer(tex, false)
}

// BlitLayerFlipped is BlitLayer with the source's V axis inverted. The
// pen layer is rasterized by pen-dot/pen-line shaders writing directly
// in NDC (y = scratchY/180), which stores stage-up at the opposite
// texture row from the matrix/projection chain DrawChild and BlitLayer
// use for the backdrop and sprites, so compositing it over the stage
// needs the flip to land right-side up.
func (c *SpriteCompositor) BlitLayerFlipped(tex uint32) error {
	return c.blitLayer(tex, true)
}

func (c *SpriteCompositor) blitLayer(tex uint32, flipY bool) error {
	variant, err := c.variants.Get(nil)
	if err != nil {
		return err
	}
	variant.Use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	if loc, err := variant.Uniform("u_texture"); err == nil {
		gl.Uniform1i(loc, 0)
	}

	uploadMatrix(variant, "u_matrix", matrix.Identity())
	uploadMatrix(variant, "u_projection", c.projection)
	if loc, err := variant.Uniform("u_texSize"); err == nil {
		gl.Uniform2f(loc, stageWidth, stageHeight)
	}
	setFilterUniforms(variant, render.Filters{})

	c.drawQuadFlipped(stageWidth, stageHeight, flipY)
	return nil
}

// drawQuad uploads a fresh unit quad sized w x h (in source-pixel units,
// so the vertex shader's matrix multiply maps it the same way the CPU
// backend maps source pixel bounds to screen space) and issues the draw.
func (c *SpriteCompositor) drawQuad(w, h int) {
	c.drawQuadFlipped(w, h, false)
}

func (c *SpriteCompositor) drawQuadFlipped(w, h int, flipY bool) {
	fw, fh := float32(w), float32(h)
	v0, v1 := float32(0), float32(1)
	if flipY {
		v0, v1 = 1, 0
	}
	verts := [4]quadVertex{
		{0, 0, 0, v0},
		{fw, 0, 1, v0},
		{0, fh, 0, v1},
		{fw, fh, 1, v1},
	}

	stride := int32(unsafe.Sizeof(quadVertex{}))

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(stride), gl.Ptr(&verts[0]), gl.STREAM_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(quadVertex{}.u))
	gl.EnableVertexAttribArray(1)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA) // straight-alpha over, textures are uploaded unpremultiplied
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.BindVertexArray(0)
}

// costumeScale is costume.Scale() * sprite.SpriteScale() for an ordinary
// sprite, or just costume.Scale() for the stage.
func costumeScale(costume render.Costume, child render.Sprite) float64 {
	s := costume.Scale()
	if render.IsSprite(child) {
		s *= child.SpriteScale()
	}
	return s
}

// uploadTexture creates a linearly-filtered, clamped RGBA texture from
// img's straight (unassociated) alpha pixel data.
func uploadTexture(img *image.NRGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// deleteTexture is the texture.Cache eviction callback.
func deleteTexture(name uint32) {
	gl.DeleteTextures(1, &name)
}

// uploadMatrix sets a mat3 uniform to m's column-major values, silently
// skipping a variant that doesn't have the uniform (shouldn't happen for
// u_matrix/u_projection, which every variant keeps; defensive against a
// future define split that drops one).
func uploadMatrix(v *Variant, name string, m *matrix.Matrix3) {
	loc, err := v.Uniform(name)
	if err != nil {
		return
	}
	col := m.Column()
	gl.UniformMatrix3fv(loc, 1, false, &col[0])
}

// activeDefines returns the sorted-by-caller-irrelevant set of #define
// names a Variant needs to express f's currently nonzero effects.
func activeDefines(f render.Filters) []string {
	var defines []string
	if f.Brightness != 0 {
		defines = append(defines, "BRIGHTNESS")
	}
	if f.Color != 0 {
		defines = append(defines, "COLOR")
	}
	if f.Mosaic != 0 {
		defines = append(defines, "MOSAIC")
	}
	if f.Pixelate != 0 {
		defines = append(defines, "PIXELATE")
	}
	if f.Whirl != 0 {
		defines = append(defines, "WHIRL")
	}
	if f.Fisheye != 0 {
		defines = append(defines, "FISHEYE")
	}
	return defines
}

// shapeDefines is activeDefines restricted to the shape-affecting
// effects, the set spec.md's ONLY_SHAPE_FILTERS query variant names.
func shapeDefines(f render.Filters) []string {
	var defines []string
	if f.Mosaic != 0 {
		defines = append(defines, "MOSAIC")
	}
	if f.Pixelate != 0 {
		defines = append(defines, "PIXELATE")
	}
	if f.Whirl != 0 {
		defines = append(defines, "WHIRL")
	}
	if f.Fisheye != 0 {
		defines = append(defines, "FISHEYE")
	}
	return defines
}

// setFilterUniforms uploads every uniform a compiled-in define actually
// reads; the Uniform lookup's error guards each since a variant without a given define
// compiled that uniform out entirely.
func setFilterUniforms(v *Variant, f render.Filters) {
	if loc, err := v.Uniform("u_ghost"); err == nil {
		gl.Uniform1f(loc, float32(clamp01(1-f.Ghost/100)))
	}
	if loc, err := v.Uniform("u_brightness"); err == nil {
		gl.Uniform1f(loc, float32(f.Brightness/100))
	}
	if loc, err := v.Uniform("u_colorShift"); err == nil {
		gl.Uniform1f(loc, float32(f.Color/200))
	}
	if loc, err := v.Uniform("u_mosaic"); err == nil {
		gl.Uniform1f(loc, float32(mosaicFactor(f.Mosaic)))
	}
	if loc, err := v.Uniform("u_pixelate"); err == nil {
		gl.Uniform1f(loc, float32(math.Abs(f.Pixelate)/10))
	}
	if loc, err := v.Uniform("u_whirl"); err == nil {
		gl.Uniform1f(loc, float32(-f.Whirl*3.14159265358979323846/180))
	}
	if loc, err := v.Uniform("u_fisheye"); err == nil {
		gl.Uniform1f(loc, float32(fisheyePower(f.Fisheye)))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mosaicFactor converts a mosaic filter value to a tile count:
// round((|m|+10)/10), clamped to [1, 512].
func mosaicFactor(amount float64) float64 {
	n := math.Round((math.Abs(amount) + 10) / 10)
	if n < 1 {
		n = 1
	}
	if n > 512 {
		n = 512
	}
	return n
}

// fisheyePower converts a fisheye filter value to the warp exponent:
// max(0, (f+100)/100).
func fisheyePower(amount float64) float64 {
	p := (amount + 100) / 100
	if p < 0 {
		p = 0
	}
	return p
}

// Close releases the compositor's GL objects and compiled variants.
func (c *SpriteCompositor) Close() {
	c.variants.Close()
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteVertexArrays(1, &c.vao)
}
