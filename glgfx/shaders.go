// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package glgfx is the OpenGL 4.1 accelerated backend: one shader
// program per combination of active (non-ghost) effects, a texture
// cache keyed by LOD identity, and a software fallback (package softgfx)
// for the spatial queries that need a CPU-readable framebuffer.
package glgfx

import "sort"

// vertexShaderSource transforms each corner of a sprite's unit quad from
// source-pixel space through the per-child affine matrix and the
// stage-to-clip-space projection, both uploaded as mat3 uniforms.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

uniform mat3 u_matrix;
uniform mat3 u_projection;

void main() {
    vec3 pos = u_projection * (u_matrix * vec3(aPos, 1.0));
    gl_Position = vec4(pos.xy, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
` + "\x00"

// fragmentShaderHeader and fragmentShaderBody are joined with a
// #define block built from the active effect set, so each Variant only
// pays for the sampling/effect math its sprites actually use.
const fragmentShaderHeader = `#version 410 core
in vec2 vTexCoord;
out vec4 fragColor;

uniform sampler2D u_texture;
uniform float u_ghost;
uniform float u_brightness;
uniform float u_colorShift;
uniform float u_mosaic;
uniform float u_pixelate;
uniform float u_pixelateSkew;
uniform float u_whirl;
uniform float u_fisheye;
uniform vec2 u_texSize;

`

const fragmentShaderBody = `
vec3 rgb2hsv(vec3 c) {
    vec4 K = vec4(0.0, -1.0/3.0, 2.0/3.0, -1.0);
    vec4 p = mix(vec4(c.bg, K.wz), vec4(c.gb, K.xy), step(c.b, c.g));
    vec4 q = mix(vec4(p.xyw, c.r), vec4(c.r, p.yzx), step(p.x, c.r));
    float d = q.x - min(q.w, q.y);
    float e = 1.0e-10;
    return vec3(abs(q.z + (q.w - q.y) / (6.0 * d + e)), d / (q.x + e), q.x);
}

vec3 hsv2rgb(vec3 c) {
    vec4 K = vec4(1.0, 2.0/3.0, 1.0/3.0, 3.0);
    vec3 p = abs(fract(c.xxx + K.xyz) * 6.0 - K.www);
    return c.z * mix(K.xxx, clamp(p - K.xxx, 0.0, 1.0), c.y);
}

void main() {
    // Effect order is mosaic -> pixelate -> whirl -> fisheye on texture
    // coordinates, then sample, then ghost -> brightness -> color on the
    // sampled pixel: permuting this produces observable differences, so
    // it is not arbitrary.
    vec2 texCoord = vTexCoord;

#ifdef MOSAIC
    {
        texCoord = fract(texCoord * u_mosaic);
    }
#endif

#ifdef PIXELATE
    {
        float size = max(u_pixelate, 1.0);
        vec2 texel = (floor(texCoord * u_texSize / size) + 0.5) * size;
        texCoord = texel / u_texSize;
    }
#endif

#ifdef WHIRL
    {
        const float radius = 0.5;
        vec2 v = texCoord - vec2(radius, radius);
        float dist = length(v / radius);
        float factor = max(1.0 - dist, 0.0);
        float whirlAngle = u_whirl * factor * factor;
        float s = sin(whirlAngle);
        float c = cos(whirlAngle);
        v = vec2(v.x * c - v.y * s, v.x * s + v.y * c);
        texCoord = v + vec2(radius, radius);
    }
#endif

#ifdef FISHEYE
    {
        vec2 v = (texCoord - 0.5) * 2.0;
        float len = length(v);
        float radius = pow(min(len, 1.0), u_fisheye) * max(1.0, len);
        vec2 unit = v / max(len, 0.0001);
        texCoord = (unit * radius) / 2.0 + 0.5;
    }
#endif

    if (texCoord.x < 0.0 || texCoord.x > 1.0 || texCoord.y < 0.0 || texCoord.y > 1.0) {
        discard;
    }

    vec4 color = texture(u_texture, texCoord);
    if (color.a < (1.0 / 250.0)) {
        discard;
    }

    color.a *= u_ghost;

#ifdef BRIGHTNESS
    color.rgb = clamp(color.rgb + u_brightness, 0.0, 1.0);
#endif

#ifdef COLOR
    {
        vec3 hsv = rgb2hsv(color.rgb);
        if (hsv.z < 0.055) {
            hsv = vec3(0.0, 1.0, 0.055);
        } else if (hsv.y < 0.09) {
            hsv.x = 0.0;
            hsv.y = 0.09;
        }
        hsv.x = fract(hsv.x + u_colorShift);
        color.rgb = hsv2rgb(hsv);
    }
#endif

    fragColor = color;
}
` + "\x00"

// defineNames is every feature gate a Variant may compile in, in the
// canonical order used to build a deterministic cache key. Ghost
// (opacity) has no entry: it's a single unconditional alpha multiply in
// every variant, cheap enough that gating it would only multiply the
// number of compiled programs without saving any work.
var defineNames = []string{"BRIGHTNESS", "COLOR", "MOSAIC", "PIXELATE", "WHIRL", "FISHEYE"}

// buildFragmentSource assembles a fragment shader with one #define per
// entry in defines.
func buildFragmentSource(defines []string) string {
	src := fragmentShaderHeader
	for _, d := range defines {
		src += "#define " + d + "\n"
	}
	return src + fragmentShaderBody
}

// sortDefines returns a sorted copy of defines, used both to build a
// deterministic shader variant and as its cache key.
func sortDefines(defines []string) []string {
	out := make([]string, len(defines))
	copy(out, defines)
	sort.Strings(out)
	return out
}

// defineKey joins sorted defines into a cache key string.
func defineKey(defines []string) string {
	key := ""
	for i, d := range defines {
		if i > 0 {
			key += "|"
		}
		key += d
	}
	return key
}
