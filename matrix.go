// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 float32 matrix stored in column-major order, matching the
// memory layout of WGSL mat4x4<f32>. Element (row r, column c) lives at
// index c*4+r:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
//
// Vectors are columns, so in A.Mul(B) the transform B is applied first.
type Mat4 [16]float32

// Mat4Size is the byte size of a Mat4 once serialized for the GPU.
const Mat4Size = 64

// DepthRemap converts OpenGL clip-space depth (-1..1) into the WebGPU
// convention (0..1): z' = 0.5*z + 0.5*w.
var DepthRemap = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 creates a translation matrix.
func Translate4(v Vec3) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale4 creates a non-uniform scaling matrix.
func Scale4(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateZ4 creates a counter-clockwise rotation about +Z (angle in radians).
func RotateZ4(angle float32) Mat4 {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho creates a right-handed orthographic projection mapping the box
// [left,right]×[bottom,top]×[-near,-far] into the OpenGL clip cube.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w := right - left
	h := top - bottom
	d := far - near
	return Mat4{
		2 / w, 0, 0, 0,
		0, 2 / h, 0, 0,
		0, 0, -2 / d, 0,
		-(right + left) / w, -(top + bottom) / h, -(far + near) / d, 1,
	}
}

// LookAt creates a right-handed view matrix for a camera at eye looking
// toward target with the given up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Mul returns the product m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to the point p (w = 1) and returns the
// resulting xyz without perspective division.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity4()
}

// AppendBytes appends the little-endian encoding of m to dst.
func (m Mat4) AppendBytes(dst []byte) []byte {
	for _, v := range m {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// Bytes returns the 64-byte little-endian encoding of m.
func (m Mat4) Bytes() []byte {
	return m.AppendBytes(make([]byte, 0, Mat4Size))
}
