// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PresentMode selects how finished frames are queued for display.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota
	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate
	// PresentModeMailbox replaces the queued frame without tearing.
	PresentModeMailbox
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	default:
		return fmt.Sprintf("PresentMode(%d)", m)
	}
}

// ParsePresentMode parses the names returned by PresentMode.String.
func ParsePresentMode(s string) (PresentMode, error) {
	switch s {
	case "fifo", "vsync":
		return PresentModeFifo, nil
	case "immediate":
		return PresentModeImmediate, nil
	case "mailbox":
		return PresentModeMailbox, nil
	default:
		return PresentModeFifo, fmt.Errorf("render: unknown present mode %q", s)
	}
}

// Size is a surface size in physical pixels.
type Size struct {
	Width, Height uint32
}

// SurfaceConfig is the configuration applied to a Surface.
type SurfaceConfig struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	Usage       gputypes.TextureUsage
}

// SurfaceTexture is the frame image acquired from a Surface.
type SurfaceTexture struct {
	View   hal.TextureView
	Width  uint32
	Height uint32
	// Suboptimal reports that the frame is usable but the surface should
	// be reconfigured soon.
	Suboptimal bool
}

// Surface is a presentable render target such as a window swapchain.
//
// AcquireTexture reports failures with ErrSurfaceLost,
// ErrSurfaceOutOfMemory, ErrSurfaceOutdated or ErrSurfaceTimeout so the
// caller can decide whether to reconfigure, skip or exit.
type Surface interface {
	PreferredFormat() gputypes.TextureFormat
	Configure(device hal.Device, config SurfaceConfig) error
	AcquireTexture() (*SurfaceTexture, error)
	Present(tex *SurfaceTexture) error
}

// OffscreenSurface renders into a GPU texture instead of a window. It is
// used for headless rendering and tests; Snapshot reads the last
// presented frame back to the CPU.
type OffscreenSurface struct {
	device hal.Device
	config SurfaceConfig

	texture hal.Texture
	view    hal.TextureView

	presented uint64
}

// NewOffscreenSurface creates an unconfigured offscreen surface.
func NewOffscreenSurface() *OffscreenSurface {
	return &OffscreenSurface{}
}

// PreferredFormat returns RGBA8Unorm so snapshots need no channel swizzle.
func (s *OffscreenSurface) PreferredFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Configure (re)creates the backing texture for the given size.
func (s *OffscreenSurface) Configure(device hal.Device, config SurfaceConfig) error {
	if device == nil {
		return ErrNilDevice
	}
	if config.Width == 0 || config.Height == 0 {
		return fmt.Errorf("render: offscreen surface size %dx%d", config.Width, config.Height)
	}
	if s.texture != nil && s.device == device && s.config == config {
		return nil
	}
	s.release()
	s.device = device

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_surface",
		Size:          hal.Extent3D{Width: config.Width, Height: config.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        config.Format,
		Usage:         config.Usage | gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "offscreen_surface_view",
		Format:        config.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("create offscreen view: %w", err)
	}
	s.texture = tex
	s.view = view
	s.config = config
	return nil
}

// AcquireTexture returns the backing texture view.
func (s *OffscreenSurface) AcquireTexture() (*SurfaceTexture, error) {
	if s.view == nil {
		return nil, ErrNotConfigured
	}
	return &SurfaceTexture{View: s.view, Width: s.config.Width, Height: s.config.Height}, nil
}

// Present counts the frame. Offscreen frames are never displayed.
func (s *OffscreenSurface) Present(*SurfaceTexture) error {
	s.presented++
	return nil
}

// Presented returns how many frames have been presented.
func (s *OffscreenSurface) Presented() uint64 {
	return s.presented
}

// Config returns the active configuration.
func (s *OffscreenSurface) Config() SurfaceConfig {
	return s.config
}

// Snapshot copies the surface texture into CPU memory.
func (s *OffscreenSurface) Snapshot(queue hal.Queue) (*image.RGBA, error) {
	if s.texture == nil {
		return nil, ErrNotConfigured
	}
	w, h := s.config.Width, s.config.Height
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "offscreen_readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyTextureToBuffer(s.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.texture, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmd)

	if err := submitAndWait(s.device, queue, cmd); err != nil {
		return nil, err
	}

	mapping, err := s.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := make([]byte, stagingSize)
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), stagingSize))
	if err := s.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow : row*alignedBytesPerRow+bytesPerRow]
		copy(img.Pix[row*bytesPerRow:], src)
	}
	return img, nil
}

// Release destroys the backing texture.
func (s *OffscreenSurface) Release() {
	s.release()
}

func (s *OffscreenSurface) release() {
	if s.device == nil {
		return
	}
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.texture != nil {
		s.device.DestroyTexture(s.texture)
		s.texture = nil
	}
}

// submitAndWait submits cmd and blocks until the GPU has finished it.
func submitAndWait(device hal.Device, queue hal.Queue, cmd hal.CommandBuffer) error {
	index, err := queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if queue.PollCompleted() >= index {
		return nil
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}
