// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package softgfx

import (
	"image"
	"math"

	"github.com/FaZeKermit323/forkphorus/matrix"
	"github.com/FaZeKermit323/forkphorus/render"
)

// applyFilters returns a filtered copy of img per spec.md §4.3: ghost is
// always applied as a global-alpha multiply (unless noEffects), then
// either the accurate (pixel-wise HSV, memoized) or approximate
// (cheaper, unmemoized) color/brightness path runs.
func applyFilters(img *image.NRGBA, f render.Filters, accurate, noEffects bool) *image.NRGBA {
	if noEffects {
		return img
	}

	ghostAlpha := clamp01(1 - f.Ghost/100)

	var out *image.NRGBA
	if accurate {
		out = applyAccurate(img, f)
	} else {
		out = applyApproximate(img, f)
	}
	if ghostAlpha < 1 {
		multiplyAlpha(out, ghostAlpha)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func multiplyAlpha(img *image.NRGBA, factor float64) {
	pix := img.Pix
	for i := 3; i < len(pix); i += 4 {
		pix[i] = uint8(clamp01(float64(pix[i])/255*factor) * 255)
	}
}

// applyAccurate implements the "accurate mode" pixel path: hue shift
// first (with the Scratch saturation/value floor applied before the
// shift, and a per-packed-0xRRGGBB memo to skip repeat HSV conversions),
// then additive brightness, clamped, alpha preserved.
func applyAccurate(img *image.NRGBA, f render.Filters) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)

	if f.Color != 0 {
		hueShift := f.Color / 200
		memo := make(map[uint32][3]uint8)
		pix := out.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			r, g, bch, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
			if a == 0 {
				continue
			}
			key := uint32(r)<<16 | uint32(g)<<8 | uint32(bch)
			shifted, ok := memo[key]
			if !ok {
				shifted = shiftHue(r, g, bch, hueShift)
				memo[key] = shifted
			}
			pix[i], pix[i+1], pix[i+2] = shifted[0], shifted[1], shifted[2]
		}
	}

	if f.Brightness != 0 {
		delta := f.Brightness / 100 * 255
		pix := out.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			if pix[i+3] == 0 {
				continue
			}
			pix[i] = addClamp255(pix[i], delta)
			pix[i+1] = addClamp255(pix[i+1], delta)
			pix[i+2] = addClamp255(pix[i+2], delta)
		}
	}
	return out
}

// shiftHue applies the Scratch saturation/value floor, then the hue
// shift modulo 1 with negative wrap: v<0.055 forces pure red at
// v=0.055; else s<0.09 forces saturation 0.09 at hue 0 — both applied
// before the shift amount is added.
func shiftHue(r, g, b uint8, shift float64) [3]uint8 {
	h, s, v := matrix.RGBToHSV(r, g, b)
	if v < 0.055 {
		h, s, v = 0, 1, 0.055
	} else if s < 0.09 {
		h, s = 0, 0.09
	}
	h += shift
	h -= math.Floor(h)
	nr, ng, nb := matrix.HSVToRGB(h, s, v)
	return [3]uint8{nr, ng, nb}
}

func addClamp255(c uint8, delta float64) uint8 {
	v := float64(c) + delta
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// applyApproximate implements the cheap, unmemoized, non-floor-rule path
// used when config.accurateFilters is false: a linear hue-rotate
// approximation (the same matrix CSS's hue-rotate() filter uses) plus
// additive brightness. It intentionally does not match applyAccurate
// pixel-for-pixel; it only needs to be visually close.
func applyApproximate(img *image.NRGBA, f render.Filters) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)

	hueDeg := f.Color * 1.8
	hasHue := hueDeg != 0
	hasBrightness := f.Brightness != 0
	if !hasHue && !hasBrightness {
		return out
	}

	cos, sin := cosSinDeg(hueDeg)
	// Standard CSS hue-rotate() luminance-preserving rotation matrix.
	m := [9]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	}

	delta := f.Brightness / 100 * 255
	pix := out.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		r, g, bch := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
		if hasHue {
			nr := m[0]*r + m[1]*g + m[2]*bch
			ng := m[3]*r + m[4]*g + m[5]*bch
			nb := m[6]*r + m[7]*g + m[8]*bch
			r, g, bch = nr, ng, nb
		}
		if hasBrightness {
			r += delta
			g += delta
			bch += delta
		}
		pix[i] = clampByte(r)
		pix[i+1] = clampByte(g)
		pix[i+2] = clampByte(bch)
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func cosSinDeg(deg float64) (cos, sin float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
