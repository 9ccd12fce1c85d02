// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sirupsen/logrus"
)

// ErrUnknownUniform is returned by Variant.Uniform when a variant was
// compiled without the #define that would have kept a given uniform
// live (the GLSL compiler strips unused uniforms, so its location is
// genuinely absent, not merely unset).
var ErrUnknownUniform = errors.New("glgfx: unknown uniform for this shader variant")

// ErrUnknownAttribute is the attribute counterpart of ErrUnknownUniform.
// No function in this package returns it: Variant looks up uniforms
// only, and vertex attributes are bound at fixed layout locations.
var ErrUnknownAttribute = errors.New("glgfx: unknown attribute for this shader variant")

// Variant is one compiled+linked program for a specific set of active
// (non-ghost) effects, with its uniform locations introspected once
// at link time.
type Variant struct {
	program  uint32
	defines  []string
	uniforms map[string]int32
}

// newVariant compiles and links a program with defines active, per
// go-theft-auto-gui/backend/opengl's createShaderProgram: compile each
// stage, check COMPILE_STATUS, link, check LINK_STATUS, extract the info
// log on failure.
func newVariant(defines []string) (*Variant, error) {
	fragSrc := buildFragmentSource(defines)

	vs, err := compileShader(gl.VERTEX_SHADER, vertexShaderSource)
	if err != nil {
		return nil, fmt.Errorf("glgfx: vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("glgfx: fragment shader (defines=%v): %w", defines, err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("glgfx: program link failed (defines=%v): %s", defines, string(log))
	}

	v := &Variant{program: program, defines: defines, uniforms: make(map[string]int32)}
	for _, name := range []string{
		"u_matrix", "u_projection", "u_texture", "u_ghost", "u_brightness",
		"u_colorShift", "u_mosaic", "u_pixelate", "u_pixelateSkew", "u_whirl",
		"u_fisheye", "u_texSize",
	} {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc >= 0 {
			v.uniforms[name] = loc
		}
	}

	logrus.WithField("defines", defines).Debug("glgfx: compiled shader variant")
	return v, nil
}

// compileShader compiles one shader stage and extracts the info log on
// failure, mirroring createShaderProgram's per-stage error handling.
func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.New(string(log))
	}
	return shader, nil
}

// HasUniform reports whether name survived compilation for this variant.
func (v *Variant) HasUniform(name string) bool {
	_, ok := v.uniforms[name]
	return ok
}

// Uniform returns name's location, or ErrUnknownUniform if this
// variant's defines compiled it out.
func (v *Variant) Uniform(name string) (int32, error) {
	loc, ok := v.uniforms[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s (defines=%v)", ErrUnknownUniform, name, v.defines)
	}
	return loc, nil
}

// Use binds this variant's program as current.
func (v *Variant) Use() { gl.UseProgram(v.program) }

// Delete releases the underlying GL program.
func (v *Variant) Delete() { gl.DeleteProgram(v.program) }

// VariantCache compiles and caches one Variant per distinct sorted
// define set, so an effect combination is only compiled
// once regardless of how many sprites use it.
type VariantCache struct {
	variants map[string]*Variant
}

// NewVariantCache returns an empty cache.
func NewVariantCache() *VariantCache {
	return &VariantCache{variants: make(map[string]*Variant)}
}

// Get returns the Variant for defines, compiling and caching it on
// first request. defines need not be sorted by the caller.
func (c *VariantCache) Get(defines []string) (*Variant, error) {
	sorted := sortDefines(defines)
	key := defineKey(sorted)
	if v, ok := c.variants[key]; ok {
		return v, nil
	}
	v, err := newVariant(sorted)
	if err != nil {
		return nil, err
	}
	c.variants[key] = v
	return v, nil
}

// Close releases every compiled variant.
func (c *VariantCache) Close() {
	for _, v := range c.variants {
		v.Delete()
	}
	c.variants = make(map[string]*Variant)
}
