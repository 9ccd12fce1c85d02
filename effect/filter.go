// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package effect implements the pure, backend-independent parts of the
// per-sprite filter model: telling shape-affecting filters apart from
// color/opacity filters, and approximating the color/brightness filters
// as a CSS filter string for the software backend's approximate mode.
package effect

import (
	"fmt"

	"github.com/FaZeKermit323/forkphorus/render"
)

// ShapeAffecting reports whether f alters texture coordinates (and so
// cannot be approximated by a declarative CSS filter or skipped by the
// GPU backend's shape-only query path).
func ShapeAffecting(f render.Filters) bool {
	return f.Fisheye != 0 || f.Mosaic != 0 || f.Pixelate != 0 || f.Whirl != 0
}

// CSSApproximation renders the non-shape-affecting, non-ghost filters
// (brightness, color) as a CSS filter() string. Ghost is deliberately
// excluded: callers apply it via the surface's global alpha instead, so
// it composites correctly regardless of what the raster backend's filter
// string support looks like.
func CSSApproximation(f render.Filters) string {
	return fmt.Sprintf("brightness(%v%%) hue-rotate(%vdeg)", 100+f.Brightness, f.Color*1.8)
}
