// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
)

// TextureSource resolves texture ids to decoded textures. Implementations
// return a fallback texture for unknown ids instead of nil.
type TextureSource interface {
	TextureByID(id sprite.TextureID) *sprite.Texture
}

// FrameStats describes the most recent successful Render call.
type FrameStats struct {
	// Sprites is the number of sprites submitted.
	Sprites int
	// DrawCalls counts indexed draws, one per texture plus the overlay.
	DrawCalls int
	// Instances maps each drawn texture id to its instance count.
	Instances map[sprite.TextureID]int
	// TexturesUploaded counts cache misses filled during the frame.
	TexturesUploaded int
	// Overlay reports whether the debug overlay was drawn.
	Overlay bool
}

// Renderer draws sprites batched by texture. It owns the device, queue
// and surface it was created with; collaborators get buffer access only
// through Buffers.
//
// GPU resources for a texture are built the first time a sprite uses it
// and kept until Evict or Close. Instance buffers are rebuilt every frame.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	device  hal.Device
	queue   hal.Queue
	surface Surface
	config  SurfaceConfig
	opts    options

	pipeline *spritePipeline
	overlay  *debugOverlay

	// cache holds persistent per-texture resources.
	cache map[sprite.TextureID]*textureEntry
	// empty records zero-size textures already reported as skipped.
	empty map[sprite.TextureID]bool

	// frame holds this frame's instance batches, in first-use order.
	frame      map[sprite.TextureID]*instanceBatch
	order      []sprite.TextureID
	overlayBuf hal.Buffer

	stats  FrameStats
	closed bool
}

// New configures surface for a width×height drawable and builds the
// sprite pipeline. The surface format is the surface's preferred format.
func New(device hal.Device, queue hal.Queue, surface Surface, width, height uint32, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		device:  device,
		queue:   queue,
		surface: surface,
		opts:    o,
		config: SurfaceConfig{
			Format:      surface.PreferredFormat(),
			Width:       width,
			Height:      height,
			PresentMode: o.presentMode,
			Usage:       gputypes.TextureUsageRenderAttachment,
		},
		cache: make(map[sprite.TextureID]*textureEntry),
		empty: make(map[sprite.TextureID]bool),
		frame: make(map[sprite.TextureID]*instanceBatch),
	}
	if err := r.configure(); err != nil {
		return nil, err
	}

	pipeline, err := newSpritePipeline(device, r.config.Format, o.spirv)
	if err != nil {
		return nil, err
	}
	r.pipeline = pipeline

	if o.overlay {
		overlay, err := newDebugOverlay(r, o.overlayFont)
		if err != nil {
			r.pipeline.destroy()
			return nil, err
		}
		r.overlay = overlay
	}

	sprite.Logger().Info("render: renderer ready",
		"width", width, "height", height,
		"present_mode", o.presentMode.String(), "overlay", o.overlay)
	return r, nil
}

func (r *Renderer) configure() error {
	if err := r.surface.Configure(r.device, r.config); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	return nil
}

// Resize reconfigures the surface. A nil size re-applies the current
// configuration, which is how a lost surface is recovered. Sizes with a
// zero dimension are ignored.
func (r *Renderer) Resize(size *Size) error {
	if r.closed {
		return ErrClosed
	}
	if size != nil {
		if size.Width == 0 || size.Height == 0 {
			return nil
		}
		r.config.Width = size.Width
		r.config.Height = size.Height
	}
	sprite.Logger().Debug("render: surface configured", "width", r.config.Width, "height", r.config.Height)
	return r.configure()
}

// Config returns the active surface configuration.
func (r *Renderer) Config() SurfaceConfig {
	return r.config
}

// Buffers returns the buffer capability handed to collaborators.
func (r *Renderer) Buffers() Buffers {
	return r
}

// CreateBuffer creates a buffer of len(data) bytes and uploads data.
func (r *Renderer) CreateBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// WriteBuffer writes data into buf at offset.
func (r *Renderer) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	if err := r.queue.WriteBuffer(buf, offset, data); err != nil {
		return fmt.Errorf("write buffer: %w", err)
	}
	return nil
}

// DestroyBuffer releases a buffer created with CreateBuffer.
func (r *Renderer) DestroyBuffer(buf hal.Buffer) {
	r.device.DestroyBuffer(buf)
}

// BindCamera binds a camera's uniform buffer for use with Render.
func (r *Renderer) BindCamera(c *Camera) (*CameraBinding, error) {
	if r.closed {
		return nil, ErrClosed
	}
	bg, err := r.pipeline.bindCamera(c.Buffer())
	if err != nil {
		return nil, err
	}
	return &CameraBinding{camera: c, bindGroup: bg, device: r.device}, nil
}

// Render draws one frame:
//
//  1. acquire the surface texture
//  2. drop the previous frame's instance buffers
//  3. resolve each sprite's texture, building GPU resources on first use
//  4. gather each sprite's model matrix under its texture id
//  5. upload one instance buffer per texture
//  6. clear and issue one instanced draw per texture
//  7. draw the debug overlay when enabled and t.Frames != 0
//  8. submit and present
//
// Surface failures are returned as ErrSurfaceLost, ErrSurfaceOutOfMemory
// or another error, and no draw is recorded. Textures are drawn in the
// order their first sprite appears in sprites.
func (r *Renderer) Render(sprites iter.Seq[*sprite.Sprite], textures TextureSource, camera *CameraBinding, t *sprite.Time) error {
	if r.closed {
		return ErrClosed
	}
	if camera == nil || camera.bindGroup == nil {
		return ErrNoCamera
	}

	frame, err := r.surface.AcquireTexture()
	if err != nil {
		r.stats = FrameStats{}
		return err
	}
	if frame.Suboptimal {
		sprite.Logger().Debug("render: suboptimal surface texture")
	}

	r.releaseFrame()
	stats := FrameStats{Instances: make(map[sprite.TextureID]int)}

	if err := r.gather(sprites, textures, &stats); err != nil {
		return err
	}
	for _, id := range r.order {
		b := r.frame[id]
		buf, err := r.CreateBuffer(fmt.Sprintf("sprite_instances_%d", id), b.bytes(),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		b.buffer = buf
		stats.Instances[id] = len(b.matrices)
	}

	drawOverlay := r.overlay != nil && t != nil && t.Frames != 0
	if drawOverlay {
		buf, err := r.overlay.prepare(r, *t, camera.camera)
		if err != nil {
			return err
		}
		r.overlayBuf = buf
	}

	if err := r.encode(frame, camera.bindGroup, drawOverlay, &stats); err != nil {
		return err
	}
	if err := r.surface.Present(frame); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	r.stats = stats
	sprite.Logger().Debug("render: frame",
		"sprites", stats.Sprites, "draws", stats.DrawCalls, "uploads", stats.TexturesUploaded)
	return nil
}

// gather resolves textures and groups sprite matrices per texture id.
// Sprites whose id is unknown to textures are drawn with the fallback
// texture the source returns and batched under that texture's id.
// Sprites of a zero-size texture are skipped; the texture is reported
// once until it is evicted.
func (r *Renderer) gather(sprites iter.Seq[*sprite.Sprite], textures TextureSource, stats *FrameStats) error {
	resolved := make(map[sprite.TextureID]*instanceBatch)
	for s := range sprites {
		if s == nil {
			continue
		}
		stats.Sprites++
		b, ok := resolved[s.TextureID()]
		if !ok {
			var err error
			b, err = r.batchFor(textures.TextureByID(s.TextureID()), s.TextureID(), stats)
			if err != nil {
				return err
			}
			resolved[s.TextureID()] = b
		}
		if b == nil {
			continue
		}
		b.matrices = append(b.matrices, s.InstanceFor(b.entry.size))
	}
	return nil
}

// batchFor returns this frame's batch for tex, creating it on first use.
// A nil batch with a nil error means sprites of id are not drawn.
func (r *Renderer) batchFor(tex *sprite.Texture, id sprite.TextureID, stats *FrameStats) (*instanceBatch, error) {
	if tex == nil {
		sprite.Logger().Warn("render: texture unresolved, sprite skipped", "id", id)
		return nil, nil
	}
	if b := r.frame[tex.ID]; b != nil {
		return b, nil
	}
	entry, err := r.entryFor(tex, stats)
	if errors.Is(err, errEmptyTexture) {
		if !r.empty[tex.ID] {
			r.empty[tex.ID] = true
			sprite.Logger().Warn("render: zero-size texture, sprites skipped",
				"id", tex.ID, "name", tex.Name)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b := &instanceBatch{entry: entry}
	r.frame[tex.ID] = b
	r.order = append(r.order, tex.ID)
	return b, nil
}

// entryFor returns the cached resources for tex, uploading them first if
// this id has not been seen.
func (r *Renderer) entryFor(tex *sprite.Texture, stats *FrameStats) (*textureEntry, error) {
	if e, ok := r.cache[tex.ID]; ok {
		return e, nil
	}
	e, err := r.uploadTexture(tex)
	if err != nil {
		return nil, err
	}
	r.cache[tex.ID] = e
	stats.TexturesUploaded++
	return e, nil
}

// encode records the frame's single render pass and submits it.
func (r *Renderer) encode(frame *SurfaceTexture, camera hal.BindGroup, drawOverlay bool, stats *FrameStats) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sprite_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sprite_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sprite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       frame.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.opts.clearColor,
		}},
	})
	rp.SetPipeline(r.pipeline.pipeline)
	for _, id := range r.order {
		b := r.frame[id]
		recordBatch(rp, b.entry, b.buffer, uint32(len(b.matrices)), camera)
		stats.DrawCalls++
	}
	if drawOverlay {
		r.overlay.draw(rp, r.overlayBuf, camera)
		stats.DrawCalls++
		stats.Overlay = true
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmd)

	return submitAndWait(r.device, r.queue, cmd)
}

// recordBatch binds a texture's resources and draws count instances.
func recordBatch(rp hal.RenderPassEncoder, e *textureEntry, instances hal.Buffer, count uint32, camera hal.BindGroup) {
	rp.SetBindGroup(textureGroup, e.bindGroup, nil)
	rp.SetBindGroup(cameraGroup, camera, nil)
	rp.SetVertexBuffer(quadSlot, e.vertexBuf, 0)
	rp.SetVertexBuffer(instanceSlot, instances, 0)
	rp.SetIndexBuffer(e.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(e.indexCount, count, 0, 0, 0)
}

// releaseFrame destroys the previous frame's instance buffers.
func (r *Renderer) releaseFrame() {
	for _, b := range r.frame {
		if b.buffer != nil {
			r.device.DestroyBuffer(b.buffer)
		}
	}
	clear(r.frame)
	r.order = r.order[:0]
	if r.overlayBuf != nil {
		r.device.DestroyBuffer(r.overlayBuf)
		r.overlayBuf = nil
	}
}

// Stats returns statistics for the last successful frame.
func (r *Renderer) Stats() FrameStats {
	s := r.stats
	s.Instances = maps.Clone(r.stats.Instances)
	return s
}

// CachedTextures returns the ids with persistent GPU resources, sorted.
func (r *Renderer) CachedTextures() []sprite.TextureID {
	return slices.Sorted(maps.Keys(r.cache))
}

// HasTexture reports whether id has cached GPU resources.
func (r *Renderer) HasTexture(id sprite.TextureID) bool {
	_, ok := r.cache[id]
	return ok
}

// InstanceCount returns how many instances of id the last frame drew.
func (r *Renderer) InstanceCount(id sprite.TextureID) int {
	if b, ok := r.frame[id]; ok {
		return len(b.matrices)
	}
	return 0
}

// InstanceMatrices returns a copy of the matrices uploaded for id in the
// last frame.
func (r *Renderer) InstanceMatrices(id sprite.TextureID) []sprite.Mat4 {
	if b, ok := r.frame[id]; ok {
		return slices.Clone(b.matrices)
	}
	return nil
}

// Evict releases the cached GPU resources of id. They are rebuilt if a
// later frame uses the texture again. It reports whether id was cached.
func (r *Renderer) Evict(id sprite.TextureID) bool {
	delete(r.empty, id)
	e, ok := r.cache[id]
	if !ok {
		return false
	}
	if b, inFrame := r.frame[id]; inFrame {
		if b.buffer != nil {
			r.device.DestroyBuffer(b.buffer)
		}
		delete(r.frame, id)
		r.order = slices.DeleteFunc(r.order, func(v sprite.TextureID) bool { return v == id })
	}
	e.destroy(r.device)
	delete(r.cache, id)
	return true
}

// Close releases every GPU object owned by the renderer. The device,
// queue and surface are left to their owners. Close is idempotent.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.releaseFrame()
	for id, e := range r.cache {
		e.destroy(r.device)
		delete(r.cache, id)
	}
	clear(r.empty)
	if r.overlay != nil {
		r.overlay.destroy(r.device)
		r.overlay = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy()
		r.pipeline = nil
	}
}
