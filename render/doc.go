// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package render defines the contract a Scratch-compatible stage
// compositor implements: a stage backdrop, a persistent pen layer, and a
// z-ordered list of sprites composited into one frame, plus the
// pixel-exact spatial queries the script interpreter's primitives need.
//
// Two backends satisfy this contract: package softgfx (a 2D-raster CPU
// implementation) and package glgfx (an OpenGL-accelerated implementation
// that delegates to softgfx for anything it cannot do itself). Neither
// backend decodes costumes, loads projects, or drives an event loop — the
// host supplies decoded bitmaps and sprite/stage state and calls DrawFrame
// once per frame.
package render
