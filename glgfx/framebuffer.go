// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sirupsen/logrus"

	"github.com/FaZeKermit323/forkphorus/render"
)

// Framebuffer is an off-screen color target: a texture-backed FBO sized
// in device pixels (stageWidth/stageHeight times the active pixel
// scale). It implements render.Surface so it can stand in directly as a
// SpriteCompositor canvas.
type Framebuffer struct {
	fbo, tex uint32
	w, h     int
}

// newFramebuffer allocates a w x h pixel color target.
func newFramebuffer(w, h int) *Framebuffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	f := &Framebuffer{w: w, h: h}
	f.alloc()
	return f
}

func (f *Framebuffer) alloc() {
	gl.GenFramebuffers(1, &f.fbo)
	gl.GenTextures(1, &f.tex)

	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(f.w), int32(f.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex, 0)
	if err := checkFramebufferComplete(); err != nil {
		logrus.WithError(err).Error("glgfx: framebuffer allocation failed")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// resize reallocates the backing texture if the pixel dimensions
// actually changed.
func (f *Framebuffer) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == f.w && h == f.h {
		return
	}
	f.free()
	f.w, f.h = w, h
	f.alloc()
}

// Bind makes f the active draw target and sets the viewport to its full
// extent. Callers restore the previous target (0 for the window's
// default framebuffer) when done.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.w), int32(f.h))
}

// Clear fills f with fully transparent pixels. Assumes f is bound.
func (f *Framebuffer) Clear() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Texture exposes the backing texture name, for drawing f itself as a
// textured quad (the stage-cache-onto-output and pen-onto-output steps).
func (f *Framebuffer) Texture() uint32 { return f.tex }

// Width implements render.Surface.
func (f *Framebuffer) Width() int { return f.w }

// Height implements render.Surface.
func (f *Framebuffer) Height() int { return f.h }

func (f *Framebuffer) free() {
	gl.DeleteFramebuffers(1, &f.fbo)
	gl.DeleteTextures(1, &f.tex)
}

// Delete releases f's GL objects.
func (f *Framebuffer) Delete() { f.free() }

func checkFramebufferComplete() error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("glgfx: framebuffer incomplete: 0x%x", status)
	}
	return nil
}

var _ render.Surface = (*Framebuffer)(nil)
