// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
)

// errEmptyTexture is returned when a texture has a zero dimension.
var errEmptyTexture = errors.New("render: texture has zero size")

// textureFormat is the format sprite textures are uploaded in.
const textureFormat = gputypes.TextureFormatRGBA8Unorm

// textureEntry holds the GPU resources built once per texture id and kept
// for the lifetime of the renderer.
type textureEntry struct {
	id   sprite.TextureID
	size sprite.Extent3D

	texture   hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup

	vertexBuf  hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32
}

// uploadTexture creates a GPU texture from tex, fills it with the
// decoded pixels and uploads the quad geometry.
func (r *Renderer) uploadTexture(tex *sprite.Texture) (*textureEntry, error) {
	if tex.Size.Width == 0 || tex.Size.Height == 0 {
		return nil, fmt.Errorf("%w: %q (id %d)", errEmptyTexture, tex.Name, tex.ID)
	}
	e := &textureEntry{id: tex.ID, size: tex.Size}
	if err := r.writeTextureEntry(e, tex); err != nil {
		e.destroy(r.device)
		return nil, err
	}
	sprite.Logger().Debug("render: texture cached",
		"id", tex.ID, "name", tex.Name, "width", tex.Size.Width, "height", tex.Size.Height)
	return e, nil
}

func (r *Renderer) writeTextureEntry(e *textureEntry, tex *sprite.Texture) error {
	label := fmt.Sprintf("sprite_texture_%d", tex.ID)
	extent := hal.Extent3D{Width: tex.Size.Width, Height: tex.Size.Height, DepthOrArrayLayers: 1}

	gpuTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        textureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", label, err)
	}
	e.texture = gpuTex

	view, err := r.device.CreateTextureView(gpuTex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        textureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create %s view: %w", label, err)
	}
	e.view = view

	if err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: gpuTex, MipLevel: 0},
		tex.Pixels.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(tex.Pixels.Stride),
			RowsPerImage: tex.Size.Height,
		},
		&extent,
	); err != nil {
		return fmt.Errorf("write %s: %w", label, err)
	}

	bg, err := r.pipeline.bindTexture(label+"_bind_group", view)
	if err != nil {
		return err
	}
	e.bindGroup = bg

	vb, err := r.CreateBuffer(label+"_vertices", sprite.VertexBytes(tex.Vertices[:]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	e.vertexBuf = vb

	ib, err := r.CreateBuffer(label+"_indices", sprite.IndexBytes(tex.Indices[:]),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	e.indexBuf = ib
	e.indexCount = uint32(len(tex.Indices))
	return nil
}

// destroy releases every GPU object of the entry.
func (e *textureEntry) destroy(device hal.Device) {
	if e.bindGroup != nil {
		device.DestroyBindGroup(e.bindGroup)
		e.bindGroup = nil
	}
	if e.indexBuf != nil {
		device.DestroyBuffer(e.indexBuf)
		e.indexBuf = nil
	}
	if e.vertexBuf != nil {
		device.DestroyBuffer(e.vertexBuf)
		e.vertexBuf = nil
	}
	if e.view != nil {
		device.DestroyTextureView(e.view)
		e.view = nil
	}
	if e.texture != nil {
		device.DestroyTexture(e.texture)
		e.texture = nil
	}
}

// instanceBatch is one texture's share of a frame: the matrices gathered
// from sprites and the fresh GPU buffer holding them.
type instanceBatch struct {
	entry    *textureEntry
	matrices []sprite.Mat4
	buffer   hal.Buffer
}

func (b *instanceBatch) bytes() []byte {
	data := make([]byte, 0, len(b.matrices)*instanceStride)
	for _, m := range b.matrices {
		data = m.AppendBytes(data)
	}
	return data
}
