// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package matrix

// RGBToHSV converts 8-bit RGB channels to H in [0,1), S and V in [0,1].
// This must stay bit-identical in intent to the GPU fragment shader's
// inline HSV conversion (glgfx) — both implement the same closed form.
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	v = max
	delta := max - min
	if max == 0 {
		s = 0
	} else {
		s = delta / max
	}

	if delta == 0 {
		h = 0
		return
	}

	switch max {
	case rf:
		h = (gf - bf) / delta
	case gf:
		h = 2 + (bf-rf)/delta
	default:
		h = 4 + (rf-gf)/delta
	}
	h /= 6
	if h < 0 {
		h += 1
	}
	return
}

// HSVToRGB converts H in [0,1), S and V in [0,1] to 8-bit RGB channels.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	if s <= 0 {
		c := clamp255(v)
		return c, c, c
	}

	hh := h * 6
	if hh >= 6 {
		hh = 0
	}
	i := int(hh)
	f := hh - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var rf, gf, bf float64
	switch i {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return clamp255(rf), clamp255(gf), clamp255(bf)
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
