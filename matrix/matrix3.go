// Copyright 2015 pyros2097. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package matrix provides the 3x3 affine transforms and HSV conversions
// shared by both render backends: the same math runs the software
// backend's canvas transform stack and the GPU backend's vertex shader
// uniform, so the two must agree bit-for-bit on intent.
package matrix

// Row indices into Matrix3.val, a row-major 3x3 matrix:
//
//	[ M00 M01 M02 ]
//	[ M10 M11 M12 ]
//	[ M20 M21 M22 ]
const (
	m00 = iota
	m01
	m02
	m10
	m11
	m12
	m20
	m21
	m22
)

// Matrix3 is a row-major affine 3x3 matrix.
type Matrix3 struct {
	val [9]float64
}

// Identity returns the identity matrix.
func Identity() *Matrix3 {
	return &Matrix3{val: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Translation returns a matrix that translates by (tx, ty).
func Translation(tx, ty float64) *Matrix3 {
	return &Matrix3{val: [9]float64{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}}
}

// Scaling returns a matrix that scales by (sx, sy).
func Scaling(sx, sy float64) *Matrix3 {
	return &Matrix3{val: [9]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}}
}

// Rotation returns a matrix that rotates by thetaDeg degrees,
// counter-clockwise positive (Scratch convention).
func Rotation(thetaDeg float64) *Matrix3 {
	s, c := sincos(thetaDeg * degToRad)
	return &Matrix3{val: [9]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}}
}

// Projection maps pixel coordinates (origin top-left, x right, y down,
// w x h in size) to clip space ([-1,1]^2), flipping Y so that larger
// screen-space Y lands lower on screen (i.e. further in -Y clip space).
func Projection(w, h float64) *Matrix3 {
	return &Matrix3{val: [9]float64{
		2 / w, 0, -1,
		0, -2 / h, 1,
		0, 0, 1,
	}}
}

// Values returns the raw row-major 9 values, for uploading to a uniform.
func (m *Matrix3) Values() [9]float64 {
	return m.val
}

// Column returns the matrix in column-major order, the layout most GPU
// uniform upload calls (e.g. UniformMatrix3fv) expect.
func (m *Matrix3) Column() [9]float32 {
	v := m.val
	return [9]float32{
		float32(v[m00]), float32(v[m10]), float32(v[m20]),
		float32(v[m01]), float32(v[m11]), float32(v[m21]),
		float32(v[m02]), float32(v[m12]), float32(v[m22]),
	}
}

// Multiply post-multiplies m by rhs in place: m := m * rhs.
func (m *Matrix3) Multiply(rhs *Matrix3) *Matrix3 {
	a := m.val
	b := rhs.val

	v00 := a[m00]*b[m00] + a[m01]*b[m10] + a[m02]*b[m20]
	v01 := a[m00]*b[m01] + a[m01]*b[m11] + a[m02]*b[m21]
	v02 := a[m00]*b[m02] + a[m01]*b[m12] + a[m02]*b[m22]

	v10 := a[m10]*b[m00] + a[m11]*b[m10] + a[m12]*b[m20]
	v11 := a[m10]*b[m01] + a[m11]*b[m11] + a[m12]*b[m21]
	v12 := a[m10]*b[m02] + a[m11]*b[m12] + a[m12]*b[m22]

	v20 := a[m20]*b[m00] + a[m21]*b[m10] + a[m22]*b[m20]
	v21 := a[m20]*b[m01] + a[m21]*b[m11] + a[m22]*b[m21]
	v22 := a[m20]*b[m02] + a[m21]*b[m12] + a[m22]*b[m22]

	m.val = [9]float64{v00, v01, v02, v10, v11, v12, v20, v21, v22}
	return m
}

// MultiplyLeft pre-multiplies m by lhs in place: m := lhs * m.
func (m *Matrix3) MultiplyLeft(lhs *Matrix3) *Matrix3 {
	a := lhs.val
	b := m.val

	v00 := a[m00]*b[m00] + a[m01]*b[m10] + a[m02]*b[m20]
	v01 := a[m00]*b[m01] + a[m01]*b[m11] + a[m02]*b[m21]
	v02 := a[m00]*b[m02] + a[m01]*b[m12] + a[m02]*b[m22]

	v10 := a[m10]*b[m00] + a[m11]*b[m10] + a[m12]*b[m20]
	v11 := a[m10]*b[m01] + a[m11]*b[m11] + a[m12]*b[m21]
	v12 := a[m10]*b[m02] + a[m11]*b[m12] + a[m12]*b[m22]

	v20 := a[m20]*b[m00] + a[m21]*b[m10] + a[m22]*b[m20]
	v21 := a[m20]*b[m01] + a[m21]*b[m11] + a[m22]*b[m21]
	v22 := a[m20]*b[m02] + a[m21]*b[m12] + a[m22]*b[m22]

	m.val = [9]float64{v00, v01, v02, v10, v11, v12, v20, v21, v22}
	return m
}

// Apply transforms the point (x, y) by m, treating it as a homogeneous
// (x, y, 1) column vector.
func (m *Matrix3) Apply(x, y float64) (float64, float64) {
	v := m.val
	return v[m00]*x + v[m01]*y + v[m02], v[m10]*x + v[m11]*y + v[m12]
}

// Invert returns the inverse of m and true, or (nil, false) if m is
// singular (determinant zero, within floating point tolerance).
func (m *Matrix3) Invert() (*Matrix3, bool) {
	v := m.val
	det := v[m00]*(v[m11]*v[m22]-v[m12]*v[m21]) -
		v[m01]*(v[m10]*v[m22]-v[m12]*v[m20]) +
		v[m02]*(v[m10]*v[m21]-v[m11]*v[m20])
	if det == 0 {
		return nil, false
	}
	inv := 1 / det

	return &Matrix3{val: [9]float64{
		(v[m11]*v[m22] - v[m12]*v[m21]) * inv,
		(v[m02]*v[m21] - v[m01]*v[m22]) * inv,
		(v[m01]*v[m12] - v[m02]*v[m11]) * inv,

		(v[m12]*v[m20] - v[m10]*v[m22]) * inv,
		(v[m00]*v[m22] - v[m02]*v[m20]) * inv,
		(v[m02]*v[m10] - v[m00]*v[m12]) * inv,

		(v[m10]*v[m21] - v[m11]*v[m20]) * inv,
		(v[m01]*v[m20] - v[m00]*v[m21]) * inv,
		(v[m00]*v[m11] - v[m01]*v[m10]) * inv,
	}}, true
}

const degToRad = 3.14159265358979323846 / 180
