// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

// Sprite is a drawable reference to a texture plus a transform.
//
// Every mutator recomputes the cached model matrix immediately, so
// RawInstance is a plain read and never does arithmetic. The matrix
// depends on the texture extent, which the sprite remembers from the
// last SetTexture or SetTextureSize call.
type Sprite struct {
	texture  TextureID
	size     Extent3D
	instance Instance
	raw      Mat4
}

// New creates a sprite for the given texture with an identity transform
// and an empty extent. Call SetTextureSize once the texture is known, or
// use NewWithSize.
func New(texture TextureID) *Sprite {
	return NewWithSize(texture, Extent3D{})
}

// NewWithSize creates a sprite for a texture of the given extent.
func NewWithSize(texture TextureID, size Extent3D) *Sprite {
	s := &Sprite{
		texture:  texture,
		size:     size,
		instance: DefaultInstance(),
	}
	s.update()
	return s
}

// ForTexture creates a sprite sized to tex.
func ForTexture(tex *Texture) *Sprite {
	return NewWithSize(tex.ID, tex.Size)
}

func (s *Sprite) update() {
	s.raw = s.instance.Matrix(s.size)
}

// TextureID returns the texture the sprite draws.
func (s *Sprite) TextureID() TextureID { return s.texture }

// TextureSize returns the extent the cached matrix was computed for.
func (s *Sprite) TextureSize() Extent3D { return s.size }

// Instance returns a copy of the sprite's placement.
func (s *Sprite) Instance() Instance { return s.instance }

// Position returns the sprite's world position.
func (s *Sprite) Position() Vec3 { return s.instance.Position }

// Rotation returns the sprite's rotation in radians.
func (s *Sprite) Rotation() float32 { return s.instance.Rotation }

// Scale returns the sprite's scale.
func (s *Sprite) Scale() Vec3 { return s.instance.Scale }

// Anchor returns the sprite's anchor.
func (s *Sprite) Anchor() Vec3 { return s.instance.Anchor }

// SetPosition moves the sprite to (x, y, 0).
func (s *Sprite) SetPosition(x, y float32) {
	s.instance.Position = V3(x, y, 0)
	s.update()
}

// SetRotation sets the rotation about +Z in radians.
func (s *Sprite) SetRotation(angle float32) {
	s.instance.Rotation = angle
	s.update()
}

// SetScale sets the scale to (x, y, 1).
func (s *Sprite) SetScale(x, y float32) {
	s.instance.Scale = V3(x, y, 1)
	s.update()
}

// SetAnchor sets the anchor to (x, y, 0).
func (s *Sprite) SetAnchor(x, y float32) {
	s.instance.Anchor = V3(x, y, 0)
	s.update()
}

// SetInstance replaces the whole placement at once.
func (s *Sprite) SetInstance(i Instance) {
	s.instance = i
	s.update()
}

// SetTexture points the sprite at another texture of the given extent.
func (s *Sprite) SetTexture(id TextureID, size Extent3D) {
	s.texture = id
	s.size = size
	s.update()
}

// SetTextureSize updates the extent used for anchoring.
func (s *Sprite) SetTextureSize(size Extent3D) {
	s.size = size
	s.update()
}

// RawInstance returns the cached column-major model matrix.
func (s *Sprite) RawInstance() Mat4 { return s.raw }

// InstanceFor returns the model matrix for a texture of the given extent.
// It equals RawInstance when size matches the sprite's own extent and is
// computed on the fly otherwise; the sprite is never mutated.
func (s *Sprite) InstanceFor(size Extent3D) Mat4 {
	if size == s.size {
		return s.raw
	}
	return s.instance.Matrix(size)
}
