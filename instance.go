// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

// Instance is the placement of one sprite in world space.
//
// Rotation is in radians about +Z. Anchor is a fraction of the texture
// extent: (0,0) pins the quad's top-left corner to Position, (0.5,0.5)
// centers it, (1,1) pins the bottom-right corner.
type Instance struct {
	Position Vec3
	Rotation float32
	Scale    Vec3
	Anchor   Vec3
}

// DefaultInstance returns the identity placement: origin, no rotation,
// unit scale, top-left anchor.
func DefaultInstance() Instance {
	return Instance{Scale: V3(1, 1, 1)}
}

// Matrix composes the instance into a model matrix for a quad of the
// given extent:
//
//	T(position) · Rz(rotation) · S(scale) · T(-anchor.x·w, +anchor.y·h, 0)
//
// The anchor offset is positive in Y because the quad hangs below its
// origin. NaN and infinite inputs propagate into the result unchanged.
func (i Instance) Matrix(size Extent3D) Mat4 {
	w := float32(size.Width)
	h := float32(size.Height)
	anchor := Translate4(V3(-i.Anchor.X*w, i.Anchor.Y*h, 0))
	return Translate4(i.Position).
		Mul(RotateZ4(i.Rotation)).
		Mul(Scale4(i.Scale)).
		Mul(anchor)
}
