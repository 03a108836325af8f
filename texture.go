// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp"  // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrDecode is returned when image bytes cannot be decoded into a texture.
var ErrDecode = errors.New("sprite: cannot decode image")

// TextureID identifies a texture inside a loader. IDs are unique for the
// lifetime of the loader that issued them.
type TextureID uint32

// DefaultTextureID is reserved for the loader's fallback texture.
const DefaultTextureID TextureID = 0

// Extent3D is the size of a texture in texels. Depth is 1 for 2D textures.
type Extent3D struct {
	Width, Height, Depth uint32
}

// Extent2D is a convenience constructor for a single-layer extent.
func Extent2D(width, height uint32) Extent3D {
	return Extent3D{Width: width, Height: height, Depth: 1}
}

// Texture is a decoded RGBA8 image plus the quad geometry sized to it.
// A Texture is immutable once built; GPU resources for it are created
// lazily by the renderer.
type Texture struct {
	ID       TextureID
	Name     string
	Size     Extent3D
	Pixels   *image.RGBA
	Vertices [4]Vertex
	Indices  [QuadIndexCount]uint16
}

// DecodeTexture decodes PNG, JPEG, GIF, BMP, TIFF or WebP data into a
// texture. The decoded pixels are converted to 8-bit RGBA.
func DecodeTexture(id TextureID, name string, data []byte) (*Texture, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDecode, name, err)
	}
	Logger().Debug("sprite: decoded image", "name", name, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return NewTextureFromImage(id, name, img), nil
}

// NewTextureFromImage builds a texture from an already decoded image.
func NewTextureFromImage(id TextureID, name string, img image.Image) *Texture {
	return newTexture(id, name, toRGBA(img))
}

// NewSolidTexture builds a width×height texture filled with c.
func NewSolidTexture(id TextureID, name string, width, height int, c color.Color) *Texture {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(rgba, rgba.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	return newTexture(id, name, rgba)
}

func newTexture(id TextureID, name string, rgba *image.RGBA) *Texture {
	b := rgba.Bounds()
	size := Extent2D(uint32(b.Dx()), uint32(b.Dy()))
	vertices, indices := BuildQuad(float32(size.Width), float32(size.Height))
	return &Texture{
		ID:       id,
		Name:     name,
		Size:     size,
		Pixels:   rgba,
		Vertices: vertices,
		Indices:  indices,
	}
}

// toRGBA returns img as a tightly packed *image.RGBA with a zero origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}

// BytesPerRow returns the row pitch of the texture's pixel data.
func (t *Texture) BytesPerRow() uint32 {
	return t.Size.Width * 4
}
