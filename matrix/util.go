// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package matrix

import "math"

func sincos(rad float64) (sin, cos float64) {
	return math.Sincos(rad)
}
