// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"math"

	"github.com/FaZeKermit323/forkphorus/matrix"
	"github.com/FaZeKermit323/forkphorus/render"
)

// objectScale is costume.scale * sprite.scale (1 for the stage, which has
// no SpriteScale of its own).
func objectScale(costume render.Costume, child render.Sprite) float64 {
	s := costume.Scale()
	if render.IsSprite(child) {
		s *= child.SpriteScale()
	}
	return s
}

// childTransform builds the logical-space (pre pixel-scale) source-to-
// destination affine transform for drawing child's current costume LOD,
// per spec.md §3's eight-step chain (steps 3-8; step 1 projection and
// step 2 global output scale are folded into the caller's pixel scale).
func childTransform(child render.Sprite, costume render.Costume, lodW, lodH int) *matrix.Matrix3 {
	rotCenterX := costume.RotationCenterX()
	rotCenterY := costume.RotationCenterY()
	scale := objectScale(costume, child)

	destX := -rotCenterX * scale
	destY := -rotCenterY * scale
	destW := costume.Width() * scale
	destH := costume.Height() * scale

	// Step 8+7: source pixel bounds -> destination rect in logical units.
	sx, sy := 1.0, 1.0
	if lodW > 0 {
		sx = destW / float64(lodW)
	}
	if lodH > 0 {
		sy = destH / float64(lodH)
	}
	m := matrix.Scaling(sx, sy)
	m.MultiplyLeft(matrix.Translation(destX, destY))

	// Step 4: rotation style.
	switch child.RotationStyle() {
	case render.RotationStyleNormal:
		angle := child.Direction() - 90
		m.MultiplyLeft(matrix.Rotation(angle))
	case render.RotationStyleLeftRight:
		if child.Direction() < 0 {
			m.MultiplyLeft(matrix.Scaling(-1, 1))
		}
	case render.RotationStyleNone:
		// no rotation
	}

	// Step 3: translate to the sprite's pixel-snapped screen position.
	snapX, snapY := snapPosition(child.ScratchX(), child.ScratchY())
	m.MultiplyLeft(matrix.Translation(snapX, snapY))

	return m
}

// snapPosition converts Scratch stage coordinates to the top-left-origin
// screen grid and rounds to the nearest integer pixel to avoid seam
// shimmer between adjacent draws, per spec.md §3's "screen = (x+240,
// 180-y)" mapping.
func snapPosition(scratchX, scratchY float64) (float64, float64) {
	return math.Round(scratchX + 240), math.Round(180 - scratchY)
}

// rotatedBounds computes the axis-aligned bounding box, in stage
// coordinates (x+240, 180-y form, i.e. screen-oriented but unscaled),
// of child's current costume after rotation/mirroring/scale.
func rotatedBounds(child render.Sprite, costume render.Costume, lod render.LOD) (minX, minY, maxX, maxY float64) {
	b := lod.Image().Bounds()
	m := childTransform(child, costume, b.Dx(), b.Dy())
	corners := [4][2]float64{{0, 0}, {float64(b.Dx()), 0}, {0, float64(b.Dy())}, {float64(b.Dx()), float64(b.Dy())}}
	first := true
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1])
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			continue
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return
}

// rectOverlaps reports whether two axis-aligned rects, each given as
// (minX, minY, maxX, maxY), overlap. The written test uses non-strict
// inequalities (touching edges count as overlapping) per spec.md §9 open
// question 1: preserved as-is rather than switched to a strict test.
func rectOverlaps(aMinX, aMinY, aMaxX, aMaxY, bMinX, bMinY, bMaxX, bMaxY float64) bool {
	if aMaxX < bMinX || bMaxX < aMinX {
		return false
	}
	if aMaxY < bMinY || bMaxY < aMinY {
		return false
	}
	return true
}

// rectContainsPoint reports whether (x, y) lies within the closed rect
// (minX, minY, maxX, maxY).
func rectContainsPoint(minX, minY, maxX, maxY, x, y float64) bool {
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}
