// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/sirupsen/logrus"

	"github.com/FaZeKermit323/forkphorus/render"
)

// StageRenderer is the software ProjectRenderer: a stage layer, a
// persistent pen layer, and a z-ordered sprite layer, all composited onto
// one output Surface each frame. It is also the fallback every glgfx
// query that has no hardware-accelerated path delegates to, so its
// internals are built to run standalone off of plain image.NRGBA data,
// never touching a GL context.
type StageRenderer struct {
	root            render.Stage
	config          render.Config
	accurateFilters bool

	output *Surface // composited final frame
	pen    *Surface // persistent pen layer, survives across frames

	stageCache      *Surface // cached rasterized backdrop
	stageCostume    int
	stageDirty      bool

	pixelScale     float64
	deferredShrink float64 // 0 means no shrink pending
	penDirty       bool
}

// NewStageRenderer constructs a software renderer at config.Scale; call
// Init before the first DrawFrame.
func NewStageRenderer(config render.Config) *StageRenderer {
	scale := float64(config.Scale)
	if scale <= 0 {
		scale = 1
	}
	return &StageRenderer{
		config:          config,
		accurateFilters: config.AccurateFilters,
		output:          NewSurface(scale),
		pen:             NewSurface(scale),
		stageCache:      NewSurface(scale),
		stageCostume:    -1,
		pixelScale:      scale,
	}
}

// Canvas implements render.SpriteRenderer.
func (r *StageRenderer) Canvas() render.Surface { return r.output }

// Stage implements render.ProjectRenderer.
func (r *StageRenderer) Stage() render.Stage { return r.root }

// PixelScale is the effective logical-unit-to-pixel multiplier in
// effect (config.scale * stage zoom).
func (r *StageRenderer) PixelScale() float64 { return r.pixelScale }

// Init attaches root and marks the stage backdrop for rasterizing on the
// next DrawFrame.
func (r *StageRenderer) Init(root render.Stage) error {
	r.root = root
	r.stageCostume = -1
	logrus.WithField("scale", r.pixelScale).Debug("softgfx: stage renderer initialized")
	return nil
}

// DrawChild implements render.SpriteRenderer against the output surface.
func (r *StageRenderer) DrawChild(child render.Sprite) error {
	comp := NewSpriteCompositor(r.output, r.accurateFilters)
	return comp.DrawChild(child)
}

// DrawFrame composites backdrop, pen, then children bottom to top, per
// spec.md §4.2's draw order. The backdrop is only re-rasterized when the
// stage's current costume index has changed since the last frame.
func (r *StageRenderer) DrawFrame() error {
	if r.root == nil {
		return nil
	}

	idx := r.root.CurrentCostumeIndex()
	if idx != r.stageCostume || r.stageDirty {
		comp := NewSpriteCompositor(r.stageCache, r.accurateFilters)
		comp.Reset(r.pixelScale)
		if err := comp.drawChildOpts(r.root, drawOpts{op: xdraw.Src}); err != nil {
			return err
		}
		r.stageCostume = idx
		r.stageDirty = false
	}

	stddraw.Draw(r.output.img, r.output.img.Bounds(), r.stageCache.img, r.stageCache.img.Bounds().Min, stddraw.Src)
	stddraw.Draw(r.output.img, r.output.img.Bounds(), r.pen.img, r.pen.img.Bounds().Min, stddraw.Over)

	children := r.root.Children()
	comp := NewSpriteCompositor(r.output, r.accurateFilters)
	return comp.DrawObjects(children)
}

// OnStageFiltersChanged marks the cached backdrop stale; the stage's own
// filters (e.g. ghost on a backdrop) are drawn into stageCache, so a
// change there needs a re-render even if the costume index didn't move.
func (r *StageRenderer) OnStageFiltersChanged() {
	r.stageDirty = true
}

// Resize changes the output pixel scale, per spec.md §4.6. The stage and
// output surfaces follow immediately; the pen surface is only reallocated
// upward right away — shrinking it is deferred until the next PenClear
// unless the pen is already clean, so a zoom-out never truncates pen
// marks still on screen.
func (r *StageRenderer) Resize(scale float64) error {
	zoom := 1.0
	if r.root != nil {
		zoom = r.root.Zoom()
	}
	newScale := scale * zoom
	if newScale == r.pixelScale {
		return nil
	}

	r.output.resize(newScale)
	r.stageCache.resize(newScale)
	r.pixelScale = newScale
	r.stageCostume = -1 // force backdrop re-render at the new scale

	if newScale >= r.pen.PixelScale() || !r.penDirty {
		r.pen.resize(newScale)
		r.deferredShrink = 0
	} else {
		r.deferredShrink = newScale
	}
	return nil
}

// commitDeferredShrink applies a pen-surface shrink postponed by Resize,
// called from PenClear once the pen layer is empty again.
func (r *StageRenderer) commitDeferredShrink() {
	if r.deferredShrink == 0 {
		return
	}
	r.pen.resize(r.deferredShrink)
	r.deferredShrink = 0
}

// Close releases resources. The software backend owns no external
// handles (no GL objects, no file descriptors), so there is nothing to
// release; it exists to satisfy render.ProjectRenderer uniformly with
// the GPU backend.
func (r *StageRenderer) Close() error { return nil }

var _ render.ProjectRenderer = (*StageRenderer)(nil)
