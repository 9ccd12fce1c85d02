// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package glgfx

import (
	"math"

	"github.com/FaZeKermit323/forkphorus/matrix"
	"github.com/FaZeKermit323/forkphorus/render"
)

// childTransform mirrors softgfx's transform of the same name: both
// backends draw from the same logical-space affine chain (spec.md §3's
// eight-step chain, steps 3-8), one feeding a CPU blit and the other a
// vertex shader uniform.
func childTransform(child render.Sprite, costume render.Costume, lodW, lodH int) *matrix.Matrix3 {
	rotCenterX := costume.RotationCenterX()
	rotCenterY := costume.RotationCenterY()
	scale := costumeScale(costume, child)

	destX := -rotCenterX * scale
	destY := -rotCenterY * scale
	destW := costume.Width() * scale
	destH := costume.Height() * scale

	sx, sy := 1.0, 1.0
	if lodW > 0 {
		sx = destW / float64(lodW)
	}
	if lodH > 0 {
		sy = destH / float64(lodH)
	}
	m := matrix.Scaling(sx, sy)
	m.MultiplyLeft(matrix.Translation(destX, destY))

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

	snapX, snapY := math.Round(child.ScratchX()+240), math.Round(180-child.ScratchY())
	m.MultiplyLeft(matrix.Translation(snapX, snapY))

	return m
}
