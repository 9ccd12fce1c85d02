// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
)

func init() {
	// GLFW must run on the thread that created the window.
	runtime.LockOSThread()
}

// Context owns the GLFW window and OpenGL 4.1 core context the
// accelerated backend renders into.
type Context struct {
	window *glfw.Window
}

// NewContext opens a width x height window titled title and makes its
// GL context current, per go-theft-auto-gui's example run(): a 4.1 core
// forward-compatible context, vsync on, gl.Init() after MakeContextCurrent.
func NewContext(width, height int, title string) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glgfx: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glgfx: create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glgfx: gl init: %w", err)
	}

	logrus.WithFields(logrus.Fields{"width": width, "height": height}).Info("glgfx: window opened")
	return &Context{window: window}, nil
}

// ShouldClose reports whether the window's close button or Destroy has
// been triggered.
func (c *Context) ShouldClose() bool { return c.window.ShouldClose() }

// PollEvents processes pending window/input events.
func (c *Context) PollEvents() { glfw.PollEvents() }

// SwapBuffers presents the frame drawn since the last swap.
func (c *Context) SwapBuffers() { c.window.SwapBuffers() }

// Present draws src (normally a StageRenderer's output framebuffer) onto
// the window's default framebuffer, scaled to fill the current window
// size, then swaps buffers.
func (c *Context) Present(comp *SpriteCompositor, src *Framebuffer) error {
	w, h := c.window.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := comp.BlitLayer(src.Texture()); err != nil {
		return err
	}
	c.SwapBuffers()
	return nil
}

// Close destroys the window and terminates GLFW. Only the last live
// Context in a process should call this, since glfw.Terminate affects
// every window.
func (c *Context) Close() {
	c.window.Destroy()
	glfw.Terminate()
}
