// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// penDotVertexSource places a unit quad (-1..1 in both axes) around a
// dot center in normalized device coordinates, scaled by a per-axis
// radius; the fragment shader discards whatever falls outside the unit
// circle so the quad rasterizes as a filled circle.
const penDotVertexSource = `
#version 410 core
layout (location = 0) in vec2 aLocal;

out vec2 vLocal;

uniform vec2 u_center;
uniform vec2 u_radius;

void main() {
    vLocal = aLocal;
    vec2 pos = u_center + aLocal * u_radius;
    gl_Position = vec4(pos, 0.0, 1.0);
}
` + "\x00"

const penDotFragmentSource = `
#version 410 core
in vec2 vLocal;
out vec4 fragColor;

uniform vec4 u_color;

void main() {
    if (length(vLocal) > 1.0) {
        discard;
    }
    fragColor = u_color;
}
` + "\x00"

// penLineVertexSource maps raw stage coordinates to NDC via the same
// (x/240, y/180) convention spec.md's GPU stage renderer names, so line
// endpoints need no separate projection uniform.
const penLineVertexSource = `
#version 410 core
layout (location = 0) in vec2 aPos;

void main() {
    gl_Position = vec4(aPos.x / 240.0, aPos.y / 180.0, 0.0, 1.0);
}
` + "\x00"

const penLineFragmentSource = `
#version 410 core
out vec4 fragColor;

uniform vec4 u_color;

void main() {
    fragColor = u_color;
}
` + "\x00"

// penProgram is a small standalone compiled program, for the two pen
// shaders that need neither #define variants nor textures.
type penProgram struct {
	program  uint32
	uniforms map[string]int32
}

func newPenProgram(vsSrc, fsSrc string, uniformNames []string) (*penProgram, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vsSrc)
	if err != nil {
		return nil, fmt.Errorf("glgfx: pen vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return nil, fmt.Errorf("glgfx: pen fragment shader: %w", err)
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
		return nil, fmt.Errorf("glgfx: pen program link failed: %s", string(log))
	}

	p := &penProgram{program: program, uniforms: make(map[string]int32)}
	for _, name := range uniformNames {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc >= 0 {
			p.uniforms[name] = loc
		}
	}
	return p, nil
}

func (p *penProgram) Use() { gl.UseProgram(p.program) }

func (p *penProgram) Uniform(name string) (int32, error) {
	loc, ok := p.uniforms[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUniform, name)
	}
	return loc, nil
}

func (p *penProgram) Delete() { gl.DeleteProgram(p.program) }
